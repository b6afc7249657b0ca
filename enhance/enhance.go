// Package enhance rewrites provider URLs into their canonical, parameterized form.
//
// Enhancement is idempotent: the provider's own keys are dropped before the
// canonical set is appended, so enhancing an enhanced URL changes nothing.
package enhance

import (
	"errors"
	"net/url"
	"strings"

	"github.com/reelcast/reelcast/provider"
	"github.com/samber/lo"
)

// ErrNoop reports that a canonical-form rewrite was needed but no content ID could be extracted.
var ErrNoop = errors.New("enhancement skipped")

// Enhancer applies the parameter table of one registry.
type Enhancer struct {
	registry *provider.Registry
}

// New returns an enhancer over registry.
func New(registry *provider.Registry) *Enhancer {
	return &Enhancer{registry: registry}
}

var builtin = New(provider.Builtin())

// Enhance enhances raw with the built-in table.
func Enhance(raw string, p provider.Provider) string {
	return builtin.Enhance(raw, p)
}

// EnhanceReport enhances raw with the built-in table and reports skipped rewrites.
func EnhanceReport(raw string, p provider.Provider) (string, error) {
	return builtin.EnhanceReport(raw, p)
}

// Enhance returns the canonical form of raw, or raw itself when p has no table row.
func (e *Enhancer) Enhance(raw string, p provider.Provider) string {
	enhanced, _ := e.EnhanceReport(raw, p)
	return enhanced
}

// EnhanceReport is Enhance that returns ErrNoop alongside the unchanged URL
// when the provider's rewrite could not extract an ID.
func (e *Enhancer) EnhanceReport(raw string, p provider.Provider) (string, error) {
	profile, ok := e.registry.Lookup(p)
	if !ok || (len(profile.Params) == 0 && profile.Rewrite == "") {
		return raw, nil
	}

	u := Split(raw)
	if profile.Rewrite != "" {
		id, ok := profile.ExtractID(raw)
		if !ok {
			return raw, ErrNoop
		}
		u.Base = provider.ExpandID(profile.Rewrite, id)
		u.Pairs = nil
	}

	u.Pairs = append(u.Without(profile.Keys()...).Pairs, profile.Params...)
	return u.String(), nil
}

// URL is a URL split into base, raw query pairs and fragment.
// Pairs keep their original encoding and order.
type URL struct {
	Base     string
	Pairs    []provider.Param
	Fragment string
	// HasFragment distinguishes "a#" from "a".
	HasFragment bool
}

// Split breaks raw at its fragment and first '?'. It never fails.
func Split(raw string) URL {
	var u URL
	raw, u.Fragment, u.HasFragment = strings.Cut(raw, "#")

	base, query, _ := strings.Cut(raw, "?")
	u.Base = base
	u.Pairs = lo.FilterMap(strings.Split(query, "&"), func(pair string, _ int) (provider.Param, bool) {
		if pair == "" {
			return provider.Param{}, false
		}
		k, v, _ := strings.Cut(pair, "=")
		return provider.Param{Key: k, Value: v}, true
	})
	return u
}

// Without returns a copy of u without the pairs whose key is in keys.
func (u URL) Without(keys ...string) URL {
	u.Pairs = lo.Reject(u.Pairs, func(p provider.Param, _ int) bool {
		return lo.Contains(keys, decodeKey(p.Key))
	})
	return u
}

// Set overrides the value of key in place, appending it when missing.
func (u URL) Set(key, value string) URL {
	pairs := append([]provider.Param{}, u.Pairs...)
	found := false
	for i := range pairs {
		if decodeKey(pairs[i].Key) == key {
			pairs[i].Value = value
			found = true
		}
	}
	if !found {
		pairs = append(pairs, provider.Param{Key: key, Value: value})
	}
	u.Pairs = pairs
	return u
}

func (u URL) String() string {
	var b strings.Builder
	b.WriteString(u.Base)
	if len(u.Pairs) > 0 {
		b.WriteByte('?')
		b.WriteString(provider.EncodeParams(u.Pairs))
	}
	if u.HasFragment {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}
	return b.String()
}

func decodeKey(k string) string {
	if decoded, err := url.QueryUnescape(k); err == nil {
		return decoded
	}
	return k
}
