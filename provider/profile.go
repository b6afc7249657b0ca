package provider

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/reelcast/reelcast/internal/hostname"
	"github.com/reelcast/reelcast/util"
	"github.com/samber/lo"
)

// IDPlaceholder marks where an extracted content ID goes in URL templates.
const IDPlaceholder = "{id}"

// Param is one query pair. Value is stored already query-escaped so emitted URLs are stable.
type Param struct {
	Key   string `json:"key" jsonschema:"description=Query parameter name."`
	Value string `json:"value" jsonschema:"description=Query-escaped value. May be empty."`
}

func (p Param) String() string {
	return p.Key + "=" + p.Value
}

// EncodeParams joins params in order.
func EncodeParams(params []Param) string {
	return strings.Join(lo.Map(params, func(p Param, _ int) string { return p.String() }), "&")
}

// Fallback is one alternate parameterization tried after the canonical URL failed.
type Fallback struct {
	// Label names the alternative in logs, e.g. "server=upcloud".
	Label string `json:"label,omitempty" jsonschema:"description=Name of the alternative shown in logs."`
	// Base, when set, replaces everything before the query. It may contain IDPlaceholder.
	Base string `json:"base,omitempty" jsonschema:"description=URL replacing everything before the query. May contain {id}."`
	// Params override keys of the enhanced URL in place, appending the missing ones.
	Params []Param `json:"params,omitempty" jsonschema:"description=Parameters overriding the enhanced URL. Values may contain {id}."`
	// Replace makes Params the whole query instead of overriding keys.
	Replace bool `json:"replace,omitempty" jsonschema:"description=Use params as the whole query instead of overriding keys."`
}

// NeedsID reports whether the fallback is built from an extracted content ID.
func (f Fallback) NeedsID() bool {
	return strings.Contains(f.Base, IDPlaceholder) || lo.SomeBy(f.Params, func(p Param) bool {
		return strings.Contains(p.Value, IDPlaceholder)
	})
}

// Cleanup is the post-load injection applied to a sandboxed page.
type Cleanup struct {
	Selectors  []string
	ForceMedia bool
	// Reinject lists delays after load finish at which the injection runs again.
	Reinject []time.Duration
}

// Profile is one row of the provider table.
type Profile struct {
	Provider Provider
	Name     string
	// Hosts are matched as the domain itself or any subdomain.
	Hosts    []string
	Category Category
	Family   Family
	// Trusted families may hop between members and within their registrable domain.
	Trusted bool
	// Aggregator profiles redirect once to one of Downstream.
	Aggregator bool
	Downstream []string
	// Params is the canonical parameter set, appended in order.
	Params []Param
	// Rewrite is the canonical URL form built from an extracted ID.
	Rewrite string
	// IDPatterns extract the content ID through a named "id" group, first match wins.
	IDPatterns []*regexp.Regexp
	Fallbacks  []Fallback
	// MaxAttempts caps Fallbacks; zero means the configured default.
	MaxAttempts int
	Cleanup     Cleanup
	// LoadTimeout overrides the navigation default when non-zero.
	LoadTimeout time.Duration
	Custom      bool
}

func (p *Profile) String() string {
	if p.Name != "" {
		return p.Name
	}
	return string(p.Provider)
}

// MatchesHost reports whether host belongs to one of the profile's domains.
func (p *Profile) MatchesHost(host string) bool {
	return lo.SomeBy(p.Hosts, func(domain string) bool {
		return hostname.Within(host, domain)
	})
}

// IsDownstream reports whether host is one of the aggregator's redirect targets.
func (p *Profile) IsDownstream(host string) bool {
	return lo.SomeBy(p.Downstream, func(domain string) bool {
		return hostname.Within(host, domain)
	})
}

// ExtractID returns the content ID found in raw.
func (p *Profile) ExtractID(raw string) (string, bool) {
	for _, pattern := range p.IDPatterns {
		if id := util.ReGroups(pattern, raw)["id"]; id != "" {
			return id, true
		}
	}
	return "", false
}

// Keys lists the canonical parameter names.
func (p *Profile) Keys() []string {
	return lo.Map(p.Params, func(param Param, _ int) string { return param.Key })
}

// Canonical is the encoded canonical parameter string.
func (p *Profile) Canonical() string {
	return EncodeParams(p.Params)
}

// Limit is the number of fallback attempts the profile allows.
func (p *Profile) Limit(defaultMax int) int {
	limit := p.MaxAttempts
	if limit <= 0 {
		limit = defaultMax
	}
	return util.Max(0, util.Min(limit, len(p.Fallbacks)))
}

// Validate checks the invariants the engine relies on.
func (p *Profile) Validate() error {
	if p.Provider == "" {
		return errors.New("provider id is empty")
	}
	if !p.Category.Valid() {
		return fmt.Errorf("%s: unknown category %q", p.Provider, p.Category)
	}
	if p.Custom && len(p.Hosts) == 0 {
		return fmt.Errorf("%s: custom providers need at least one host", p.Provider)
	}
	for _, param := range p.Params {
		if param.Key == "" || strings.ContainsAny(param.Key, "&=?#") {
			return fmt.Errorf("%s: invalid parameter key %q", p.Provider, param.Key)
		}
	}

	needsID := strings.Contains(p.Rewrite, IDPlaceholder) || lo.SomeBy(p.Fallbacks, func(f Fallback) bool {
		return f.NeedsID()
	})
	if needsID && len(p.IDPatterns) == 0 {
		return fmt.Errorf("%s: URL templates use %s but no id pattern is defined", p.Provider, IDPlaceholder)
	}
	for _, pattern := range p.IDPatterns {
		if !lo.Contains(pattern.SubexpNames(), "id") {
			return fmt.Errorf("%s: id pattern %q has no named id group", p.Provider, pattern)
		}
	}

	return nil
}

// ExpandID substitutes id into a URL template.
func ExpandID(template, id string) string {
	return strings.ReplaceAll(template, IDPlaceholder, id)
}
