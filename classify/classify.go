// Package classify decides which provider a URL belongs to and which playback strategy it needs.
package classify

import (
	"errors"
	"net/url"
	"path"
	"strings"
	"unicode"

	"github.com/reelcast/reelcast/internal/hostname"
	"github.com/reelcast/reelcast/provider"
	"github.com/samber/lo"
)

// ErrUnknownProvider is the warning attached to URLs no rule recognized.
var ErrUnknownProvider = errors.New("unknown provider")

// Rule names the rule that produced a classification.
type Rule string

const (
	RuleDash       Rule = "dash"
	RuleHost       Rule = "host"
	RuleHLS        Rule = "hls"
	RuleDirect     Rule = "direct"
	RuleUnknown    Rule = "unknown"
	RuleUnparsable Rule = "unparsable"
)

var directContainers = map[string]provider.Container{
	".mp4":  provider.MP4,
	".m4v":  provider.M4V,
	".mkv":  provider.MKV,
	".webm": provider.WebM,
	".avi":  provider.AVI,
}

// Classification is the outcome of Classify.
type Classification struct {
	Provider  provider.Provider
	Category  provider.Category
	Container provider.Container
	Rule      Rule
}

// Warning returns ErrUnknownProvider when no rule matched, nil otherwise.
func (c Classification) Warning() error {
	if c.Provider == provider.Unknown {
		return ErrUnknownProvider
	}
	return nil
}

// Classifier evaluates the ordered rule list against one registry.
type Classifier struct {
	registry *provider.Registry
}

// New returns a classifier over registry.
func New(registry *provider.Registry) *Classifier {
	return &Classifier{registry: registry}
}

var builtin = New(provider.Builtin())

// Classify classifies raw against the built-in providers.
func Classify(raw string) Classification {
	return builtin.Classify(raw)
}

// IsDirectFile reports whether raw is a downloadable file on a non-embed host.
func IsDirectFile(raw string) bool {
	return builtin.IsDirectFile(raw)
}

// Registry returns the provider table the classifier matches against.
func (c *Classifier) Registry() *provider.Registry {
	return c.registry
}

// Classify never fails. Unparsable and unrecognized input is a sandboxed Unknown.
func (c *Classifier) Classify(raw string) Classification {
	u, ok := parse(raw)
	if !ok {
		return unknown(RuleUnparsable)
	}

	host := hostname.Normalize(u.Host)
	p := strings.ToLower(u.Path)
	tokens := tokenize(host + p)

	if strings.HasSuffix(p, ".mpd") || lo.Contains(tokens, "dash") {
		return Classification{
			Provider:  provider.DashManifest,
			Category:  provider.DashDrmWebPlayer,
			Container: provider.DASH,
			Rule:      RuleDash,
		}
	}

	if profile, ok := c.registry.MatchHost(host); ok {
		return Classification{
			Provider:  profile.Provider,
			Category:  profile.Category,
			Container: containerOf(profile.Category, p),
			Rule:      RuleHost,
		}
	}

	if strings.HasSuffix(p, ".m3u8") || lo.Contains(tokens, "hls") {
		return Classification{
			Provider:  provider.HLSStream,
			Category:  provider.NativeAdaptive,
			Container: provider.HLS,
			Rule:      RuleHLS,
		}
	}

	if container, ok := directContainer(u.Scheme, p); ok {
		return Classification{
			Provider:  provider.DirectFile,
			Category:  provider.NativeDirect,
			Container: container,
			Rule:      RuleDirect,
		}
	}

	return unknown(RuleUnknown)
}

// IsDirectFile reports whether raw is an http(s) URL to a direct-file extension on a host
// no provider owns.
func (c *Classifier) IsDirectFile(raw string) bool {
	u, ok := parse(raw)
	if !ok || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	if _, owned := c.registry.MatchHost(u.Host); owned {
		return false
	}
	_, ok = directContainers[path.Ext(strings.ToLower(u.Path))]
	return ok
}

func unknown(rule Rule) Classification {
	return Classification{
		Provider:  provider.Unknown,
		Category:  provider.SandboxedEmbed,
		Container: provider.ContainerUnset,
		Rule:      rule,
	}
}

// parse accepts absolute URLs and bare host/path strings.
func parse(raw string) (*url.URL, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, false
	}
	u.Scheme = strings.ToLower(u.Scheme)
	return u, true
}

// tokenize splits s into its alphanumeric runs.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func directContainer(scheme, p string) (provider.Container, bool) {
	if scheme == "rtmp" || scheme == "rtmps" {
		return provider.RTMP, true
	}
	container, ok := directContainers[path.Ext(p)]
	return container, ok
}

// containerOf hints a container for host-matched profiles with a native category.
func containerOf(category provider.Category, p string) provider.Container {
	switch category {
	case provider.NativeAdaptive:
		return provider.HLS
	case provider.DashDrmWebPlayer:
		return provider.DASH
	case provider.NativeDirect:
		if container, ok := directContainers[path.Ext(p)]; ok {
			return container
		}
	}
	return provider.ContainerUnset
}
