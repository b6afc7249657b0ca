// Package drm turns a server's license string and protection flag into a player license configuration.
package drm

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/reelcast/reelcast/key"
	"github.com/reelcast/reelcast/log"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// ErrMalformedLicense is attached when a license string was used as a license server URL on a best-effort basis.
var ErrMalformedLicense = errors.New("malformed license")

// Kind tags the populated variant of a Config.
type Kind string

const (
	KindNone          Kind = "none"
	KindClearKey      Kind = "clearkey"
	KindLicenseServer Kind = "license-server"
	KindAuthToken     Kind = "auth-token"
)

// Key systems a license server is registered for.
const (
	Widevine  = "com.widevine.alpha"
	PlayReady = "com.microsoft.playready"
)

// ClearKey is an inline key id and key pair.
type ClearKey struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

// LicenseServer is a remote license endpoint.
type LicenseServer struct {
	URL        string   `json:"url"`
	Schemes    []string `json:"schemes"`
	Robustness string   `json:"robustness"`
}

// AuthToken is a bearer token attached to manifest and segment requests.
type AuthToken struct {
	Token string `json:"token"`
}

// Config is a tagged union. Exactly the variant named by Kind is set.
type Config struct {
	Kind          Kind           `json:"kind"`
	ClearKey      *ClearKey      `json:"clear_key,omitempty"`
	LicenseServer *LicenseServer `json:"license_server,omitempty"`
	AuthToken     *AuthToken     `json:"auth_token,omitempty"`
	// Warning is ErrMalformedLicense when the license string had an unexpected shape.
	Warning error `json:"-"`
}

// None is the empty configuration.
func None() Config {
	return Config{Kind: KindNone}
}

// Protected reports whether the configuration needs a key system.
func (c Config) Protected() bool {
	return c.Kind == KindClearKey || c.Kind == KindLicenseServer
}

func (c Config) String() string {
	switch c.Kind {
	case KindClearKey:
		return fmt.Sprintf("clearkey %s", c.ClearKey.ID)
	case KindLicenseServer:
		return fmt.Sprintf("license server %s", c.LicenseServer.URL)
	case KindAuthToken:
		return "auth token"
	default:
		return "none"
	}
}

// Shaka returns the "drm" section of a Shaka Player configuration, or nil when no key system is needed.
func (c Config) Shaka() map[string]any {
	switch c.Kind {
	case KindClearKey:
		return map[string]any{
			"clearKeys": map[string]string{c.ClearKey.ID: c.ClearKey.Key},
		}
	case KindLicenseServer:
		servers := make(map[string]string, len(c.LicenseServer.Schemes))
		advanced := make(map[string]any, len(c.LicenseServer.Schemes))
		for _, scheme := range c.LicenseServer.Schemes {
			servers[scheme] = c.LicenseServer.URL
			advanced[scheme] = map[string]string{
				"videoRobustness": c.LicenseServer.Robustness,
				"audioRobustness": c.LicenseServer.Robustness,
			}
		}
		return map[string]any{"servers": servers, "advanced": advanced}
	default:
		return nil
	}
}

// Builder holds the settings Build falls back to.
type Builder struct {
	// FallbackLicenseServer is used when DRM is required but no license was given. Empty disables it.
	FallbackLicenseServer string
	Robustness            string
}

// Configured returns a builder from the current configuration.
func Configured() Builder {
	return Builder{
		FallbackLicenseServer: viper.GetString(key.DrmFallbackLicenseServer),
		Robustness:            viper.GetString(key.DrmRobustness),
	}
}

// Build builds a configuration with the current settings.
func Build(license mo.Option[string], explicit mo.Option[bool], heuristic bool) Config {
	return Configured().Build(license, explicit, heuristic)
}

// Build decides whether the content is protected and shapes the license.
// An explicit flag is authoritative. Without one, content is protected when the
// heuristic matched or a license is present. A license on unprotected content is an auth token.
func (b Builder) Build(license mo.Option[string], explicit mo.Option[bool], heuristic bool) Config {
	value := strings.TrimSpace(license.OrEmpty())
	protected := explicit.OrElse(heuristic || value != "")

	if !protected {
		if value == "" {
			return None()
		}
		return Config{Kind: KindAuthToken, AuthToken: &AuthToken{Token: value}}
	}

	if value == "" {
		if b.FallbackLicenseServer == "" {
			log.Warn("protected content without license and no fallback license server")
			return None()
		}
		log.Warnf("protected content without license, using fallback license server %s", b.FallbackLicenseServer)
		return b.licenseServer(b.FallbackLicenseServer, nil)
	}

	if isLicenseURL(value) {
		return b.licenseServer(value, nil)
	}

	if id, k, ok := clearKey(value); ok {
		return Config{Kind: KindClearKey, ClearKey: &ClearKey{ID: id, Key: k}}
	}

	return b.licenseServer(value, ErrMalformedLicense)
}

func (b Builder) licenseServer(u string, warning error) Config {
	robustness := b.Robustness
	if robustness == "" {
		robustness = "SW_SECURE_CRYPTO"
	}
	return Config{
		Kind: KindLicenseServer,
		LicenseServer: &LicenseServer{
			URL:        u,
			Schemes:    []string{Widevine, PlayReady},
			Robustness: robustness,
		},
		Warning: warning,
	}
}

func isLicenseURL(value string) bool {
	u, err := url.Parse(value)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// clearKey splits "keyId:key". Exactly one colon and two non-empty halves are required.
func clearKey(value string) (id, k string, ok bool) {
	if strings.Count(value, ":") != 1 {
		return "", "", false
	}
	id, k, _ = strings.Cut(value, ":")
	id, k = strings.TrimSpace(id), strings.TrimSpace(k)
	return id, k, id != "" && k != ""
}

var markers = []string{"drm", "widevine", "playready", "fairplay", "clearkey"}

// Heuristic reports whether a URL looks like protected content.
func Heuristic(raw string) bool {
	raw = strings.ToLower(raw)
	for _, marker := range markers {
		if strings.Contains(raw, marker) {
			return true
		}
	}
	return false
}
