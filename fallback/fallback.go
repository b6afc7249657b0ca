// Package fallback produces the alternate URLs tried after a provider's canonical URL failed.
//
// The cascade is a pure function of the attempt index. Callers keep the index;
// moving on to another server is the dispatcher's job.
package fallback

import (
	"fmt"

	"github.com/reelcast/reelcast/enhance"
	"github.com/reelcast/reelcast/key"
	"github.com/reelcast/reelcast/log"
	"github.com/reelcast/reelcast/provider"
	"github.com/reelcast/reelcast/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Attempt is one fallback candidate.
type Attempt struct {
	URL string
	// Params is the resulting query in order.
	Params []provider.Param
	// Index is the zero-based position in the provider's fallback list.
	Index int
	Label string
}

func (a Attempt) String() string {
	return fmt.Sprintf("#%d %s", a.Index, lo.Ternary(a.Label != "", a.Label, a.URL))
}

// Cascade walks the fallback lists of one registry.
type Cascade struct {
	registry   *provider.Registry
	enhancer   *enhance.Enhancer
	defaultMax int
}

// New returns a cascade capping providers without their own limit at defaultMax attempts.
func New(registry *provider.Registry, defaultMax int) *Cascade {
	return &Cascade{
		registry:   registry,
		enhancer:   enhance.New(registry),
		defaultMax: defaultMax,
	}
}

// Configured returns a cascade over registry with the configured default cap.
func Configured(registry *provider.Registry) *Cascade {
	return New(registry, viper.GetInt(key.FallbackDefaultMaxAttempts))
}

// NextAttempt resolves attempt index of the built-in table.
func NextAttempt(server source.Server, p provider.Provider, index int) mo.Option[Attempt] {
	return Configured(provider.Builtin()).NextAttempt(server, p, index)
}

// Limit is the number of attempts p allows.
func (c *Cascade) Limit(p provider.Provider) int {
	profile, ok := c.registry.Lookup(p)
	if !ok {
		return 0
	}
	return profile.Limit(c.defaultMax)
}

// NextAttempt returns attempt index of p's list for server, or None once the list is exhausted.
// Entries built from a content ID are None when the server URL carries no extractable ID.
func (c *Cascade) NextAttempt(server source.Server, p provider.Provider, index int) mo.Option[Attempt] {
	profile, ok := c.registry.Lookup(p)
	if !ok || index < 0 || index >= profile.Limit(c.defaultMax) {
		return mo.None[Attempt]()
	}

	f := profile.Fallbacks[index]
	var id string
	if f.NeedsID() {
		if id, ok = profile.ExtractID(server.URL); !ok {
			log.Debugf("fallback %s #%d needs an id, none found in %s", p, index, server.URL)
			return mo.None[Attempt]()
		}
	}

	u := enhance.Split(c.enhancer.Enhance(server.URL, p))
	if f.Base != "" {
		u.Base = provider.ExpandID(f.Base, id)
	}

	if f.Replace {
		u.Pairs = lo.Map(f.Params, func(param provider.Param, _ int) provider.Param {
			return provider.Param{Key: param.Key, Value: provider.ExpandID(param.Value, id)}
		})
	} else {
		for _, param := range f.Params {
			u = u.Set(param.Key, provider.ExpandID(param.Value, id))
		}
	}

	return mo.Some(Attempt{
		URL:    u.String(),
		Params: u.Pairs,
		Index:  index,
		Label:  f.Label,
	})
}

// Attempts lists every attempt of p for server in order.
func (c *Cascade) Attempts(server source.Server, p provider.Provider) []Attempt {
	var attempts []Attempt
	for i := 0; ; i++ {
		attempt, ok := c.NextAttempt(server, p, i).Get()
		if !ok {
			return attempts
		}
		attempts = append(attempts, attempt)
	}
}
