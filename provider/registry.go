package provider

import (
	"fmt"

	"github.com/reelcast/reelcast/key"
	"github.com/reelcast/reelcast/log"
	"github.com/reelcast/reelcast/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Registry is an immutable, ordered provider table. Host matching walks it
// top to bottom, so custom profiles placed first shadow built-in ones.
type Registry struct {
	profiles []*Profile
	index    map[Provider]*Profile
}

// NewRegistry validates profiles and indexes them by provider id.
func NewRegistry(profiles ...*Profile) (*Registry, error) {
	r := &Registry{index: make(map[Provider]*Profile, len(profiles))}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, exists := r.index[p.Provider]; exists {
			return nil, fmt.Errorf("duplicate provider %q", p.Provider)
		}
		r.index[p.Provider] = p
		r.profiles = append(r.profiles, p)
	}
	return r, nil
}

var mediaKinds = []Provider{DashManifest, HLSStream, DirectFile, Unknown}

var builtin = lo.Must(NewRegistry(builtins()...))

// Builtin returns the compiled-in provider table.
func Builtin() *Registry {
	return builtin
}

// Configured returns the built-in table extended with the custom definitions
// found in the providers directory, when custom providers are enabled.
func Configured() (*Registry, error) {
	if !viper.GetBool(key.ProvidersCustomEnabled) {
		return builtin, nil
	}

	custom, err := LoadCustom(where.Providers())
	if err != nil {
		return nil, err
	}
	if len(custom) == 0 {
		return builtin, nil
	}

	log.Infof("loaded %d custom providers", len(custom))
	return builtin.Extend(custom...)
}

// Extend returns a new registry with custom placed ahead of r's profiles.
// A custom profile replaces the built-in row with the same id, except for the media kinds.
func (r *Registry) Extend(custom ...*Profile) (*Registry, error) {
	shadowed := make(map[Provider]bool, len(custom))
	for _, p := range custom {
		if lo.Contains(mediaKinds, p.Provider) {
			return nil, fmt.Errorf("provider id %q is reserved", p.Provider)
		}
		shadowed[p.Provider] = true
	}

	rest := lo.Reject(r.profiles, func(p *Profile, _ int) bool {
		return shadowed[p.Provider]
	})
	return NewRegistry(append(append([]*Profile{}, custom...), rest...)...)
}

// Lookup finds the profile for a provider id.
func (r *Registry) Lookup(p Provider) (*Profile, bool) {
	profile, ok := r.index[p]
	return profile, ok
}

// MustLookup is Lookup for ids known to exist, such as the built-in media kinds.
func (r *Registry) MustLookup(p Provider) *Profile {
	profile, ok := r.index[p]
	if !ok {
		panic(fmt.Sprintf("provider %q is not registered", p))
	}
	return profile
}

// MatchHost returns the first profile owning host.
func (r *Registry) MatchHost(host string) (*Profile, bool) {
	return lo.Find(r.profiles, func(p *Profile) bool {
		return p.MatchesHost(host)
	})
}

// Profiles lists every profile in match order.
func (r *Registry) Profiles() []*Profile {
	return append([]*Profile{}, r.profiles...)
}

// Hosted lists the profiles recognized by host.
func (r *Registry) Hosted() []*Profile {
	return lo.Filter(r.profiles, func(p *Profile, _ int) bool {
		return len(p.Hosts) > 0
	})
}
