// Package page renders what the web renderers load: the DASH player page and the sandbox cleanup script.
package page

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"text/template"

	"github.com/reelcast/reelcast/constant"
	"github.com/reelcast/reelcast/dispatch"
	"github.com/reelcast/reelcast/drm"
	"github.com/reelcast/reelcast/provider"
	"github.com/samber/lo"
)

// ErrCategory is returned when a plan is rendered by the wrong renderer.
var ErrCategory = errors.New("plan category not supported by renderer")

var (
	dashTemplate    = lo.Must(template.New("dash").Parse(constant.DashPageTemplate))
	cleanupTemplate = lo.Must(template.New("cleanup").Parse(constant.CleanupScriptTemplate))
)

// literal encodes v as a JSON literal safe to embed in a script block.
func literal(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RenderDash renders the web player page of a DASH plan.
// The output is a pure function of the plan.
func RenderDash(plan *dispatch.Plan) ([]byte, error) {
	if plan.Category != provider.DashDrmWebPlayer {
		return nil, fmt.Errorf("dash page for %s: %w", plan.Category, ErrCategory)
	}

	manifest, err := literal(plan.URL)
	if err != nil {
		return nil, err
	}

	drmConfig, err := literal(plan.DRM.Shaka())
	if err != nil {
		return nil, err
	}

	var token *string
	if plan.DRM.Kind == drm.KindAuthToken {
		token = &plan.DRM.AuthToken.Token
	}
	authToken, err := literal(token)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = dashTemplate.Execute(&buf, struct {
		Title        string
		PlayerScript string
		Manifest     string
		DRM          string
		AuthToken    string
		HasAuthToken bool
	}{
		Title:        html.EscapeString(lo.Ternary(plan.ServerName != "", plan.ServerName, constant.App)),
		PlayerScript: constant.ShakaPlayerScript,
		Manifest:     manifest,
		DRM:          drmConfig,
		AuthToken:    authToken,
		HasAuthToken: token != nil,
	})
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Payload is what a sandbox renderer needs for one page.
type Payload struct {
	URL   string
	Rules provider.Cleanup
	// Script is the cleanup injection, run after load finish and again after each Rules.Reinject delay.
	Script string
}

// Sandbox builds the sandbox payload of a plan.
func Sandbox(plan *dispatch.Plan) (*Payload, error) {
	if plan.Category != provider.SandboxedEmbed {
		return nil, fmt.Errorf("sandbox for %s: %w", plan.Category, ErrCategory)
	}

	script, err := CleanupScript(plan.Cleanup)
	if err != nil {
		return nil, err
	}

	return &Payload{URL: plan.URL, Rules: plan.Cleanup, Script: script}, nil
}

// CleanupScript renders the injection for a selector list. An empty list renders an empty script.
func CleanupScript(cleanup provider.Cleanup) (string, error) {
	if len(cleanup.Selectors) == 0 && !cleanup.ForceMedia {
		return "", nil
	}

	selectors, err := literal(lo.Ternary(cleanup.Selectors != nil, cleanup.Selectors, []string{}))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = cleanupTemplate.Execute(&buf, struct {
		Selectors  string
		ForceMedia bool
	}{selectors, cleanup.ForceMedia})
	return buf.String(), err
}
