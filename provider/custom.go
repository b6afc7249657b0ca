package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/reelcast/reelcast/constant"
	"github.com/reelcast/reelcast/filesystem"
	"github.com/reelcast/reelcast/util"
	"github.com/samber/lo"
)

// Extension is the file extension of custom provider definitions.
const Extension = ".json"

var scaffoldTemplate = lo.Must(template.New("provider").Funcs(template.FuncMap{
	"json": func(v any) (string, error) {
		data, err := json.Marshal(v)
		return string(data), err
	},
}).Parse(constant.ProviderTemplate))

// Definition is the on-disk form of a custom provider.
type Definition struct {
	ID          string     `json:"id,omitempty" jsonschema:"description=Provider id. Defaults to the file name without extension."`
	Name        string     `json:"name" jsonschema:"description=Display name."`
	Hosts       []string   `json:"hosts" jsonschema:"minItems=1,description=Domains owned by the provider. Subdomains match too."`
	Category    Category   `json:"category,omitempty" jsonschema:"enum=native-direct,enum=native-adaptive,enum=dash-drm-web,enum=sandboxed-embed,description=Playback strategy. Defaults to sandboxed-embed."`
	Family      string     `json:"family,omitempty" jsonschema:"description=Navigation family shared with other providers."`
	Trusted     bool       `json:"trusted,omitempty" jsonschema:"description=Allow hops within the family and the registrable domain."`
	Aggregator  bool       `json:"aggregator,omitempty" jsonschema:"description=The provider redirects once to a downstream host."`
	Downstream  []string   `json:"downstream,omitempty" jsonschema:"description=Redirect targets of an aggregator."`
	Params      []Param    `json:"params,omitempty" jsonschema:"description=Canonical parameters appended in order."`
	Rewrite     string     `json:"rewrite,omitempty" jsonschema:"description=Canonical URL built from the extracted {id}."`
	IDPatterns  []string   `json:"id_patterns,omitempty" jsonschema:"description=Regular expressions with a named id group."`
	Fallbacks   []Fallback `json:"fallbacks,omitempty" jsonschema:"description=Alternatives tried in order after the canonical URL fails."`
	MaxAttempts int        `json:"max_attempts,omitempty" jsonschema:"minimum=0,description=Cap on fallbacks. Zero uses the configured default."`
	Cleanup     struct {
		Selectors  []string `json:"selectors,omitempty" jsonschema:"description=CSS selectors hidden after load."`
		Generic    bool     `json:"generic,omitempty" jsonschema:"description=Also hide the generic ad and overlay selectors."`
		ForceMedia bool     `json:"force_media,omitempty" jsonschema:"description=Force video and iframe elements visible and playing."`
		Reinject   []string `json:"reinject,omitempty" jsonschema:"description=Delays such as 1s or 1500ms after which the cleanup runs again."`
	} `json:"cleanup,omitempty"`
	LoadTimeout string `json:"load_timeout,omitempty" jsonschema:"description=Sandbox load timeout such as 20s."`
}

// Profile converts the definition. id is used when the definition carries none.
func (d *Definition) Profile(id string) (*Profile, error) {
	if d.ID != "" {
		id = d.ID
	}
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return nil, fmt.Errorf("custom provider has no id")
	}

	p := &Profile{
		Provider:    Provider(id),
		Name:        lo.Ternary(d.Name != "", d.Name, id),
		Hosts:       d.Hosts,
		Category:    lo.Ternary(d.Category != "", d.Category, SandboxedEmbed),
		Family:      Family(d.Family),
		Trusted:     d.Trusted,
		Aggregator:  d.Aggregator,
		Downstream:  d.Downstream,
		Params:      d.Params,
		Rewrite:     d.Rewrite,
		Fallbacks:   d.Fallbacks,
		MaxAttempts: d.MaxAttempts,
		Custom:      true,
	}

	for _, expr := range d.IDPatterns {
		pattern, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%s: id pattern: %w", id, err)
		}
		p.IDPatterns = append(p.IDPatterns, pattern)
	}

	p.Cleanup.Selectors = append([]string{}, d.Cleanup.Selectors...)
	if d.Cleanup.Generic {
		p.Cleanup.Selectors = append(p.Cleanup.Selectors, GenericSelectors...)
	}
	p.Cleanup.ForceMedia = d.Cleanup.ForceMedia
	for _, raw := range d.Cleanup.Reinject {
		delay, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: reinject delay: %w", id, err)
		}
		p.Cleanup.Reinject = append(p.Cleanup.Reinject, delay)
	}

	if d.LoadTimeout != "" {
		timeout, err := time.ParseDuration(d.LoadTimeout)
		if err != nil {
			return nil, fmt.Errorf("%s: load timeout: %w", id, err)
		}
		p.LoadTimeout = timeout
	}

	return p, p.Validate()
}

// LoadCustom reads every definition in dir, in file name order.
func LoadCustom(dir string) ([]*Profile, error) {
	files, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var profiles []*Profile
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != Extension {
			continue
		}

		path := filepath.Join(dir, f.Name())
		data, err := filesystem.API().ReadFile(path)
		if err != nil {
			return nil, err
		}

		var def Definition
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&def); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name(), err)
		}

		profile, err := def.Profile(strings.TrimSuffix(f.Name(), Extension))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name(), err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}

// Scaffold writes a starter definition for name and returns its path.
func Scaffold(dir, name string, hosts []string) (string, error) {
	var buf bytes.Buffer
	if err := scaffoldTemplate.Execute(&buf, struct {
		Name  string
		Hosts []string
	}{name, hosts}); err != nil {
		return "", err
	}

	path := filepath.Join(dir, util.SanitizeFilename(strings.ToLower(name))+Extension)
	exists, err := filesystem.API().Exists(path)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("provider %s already exists", path)
	}

	return path, filesystem.API().WriteFile(path, buf.Bytes(), 0o644)
}
