// Package dispatch resolves a server into a playback plan and decides what to try after a failure.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/reelcast/reelcast/classify"
	"github.com/reelcast/reelcast/drm"
	"github.com/reelcast/reelcast/enhance"
	"github.com/reelcast/reelcast/fallback"
	"github.com/reelcast/reelcast/log"
	"github.com/reelcast/reelcast/navigation"
	"github.com/reelcast/reelcast/provider"
	"github.com/reelcast/reelcast/source"
)

var (
	ErrNoServers           = errors.New("no servers")
	ErrFallbackExhausted   = errors.New("fallback exhausted")
	ErrAllSourcesExhausted = errors.New("all sources exhausted")
)

// Plan is everything a renderer needs to play one attempt.
type Plan struct {
	Category     provider.Category
	URL          string
	Container    provider.Container
	DRM          drm.Config
	Provider     provider.Provider
	AttemptIndex int
	ServerIndex  int
	ServerName   string
	Cleanup      provider.Cleanup
	// Warnings are the non-fatal degradations met while resolving.
	Warnings []error
}

func (p *Plan) String() string {
	return fmt.Sprintf("%s #%d/%d %s", p.ServerName, p.ServerIndex, p.AttemptIndex, p.Category)
}

// Dispatcher resolves plans against one registry.
type Dispatcher struct {
	registry   *provider.Registry
	classifier *classify.Classifier
	enhancer   *enhance.Enhancer
	cascade    *fallback.Cascade
	drm        drm.Builder
}

// New returns a dispatcher from its parts.
func New(registry *provider.Registry, cascade *fallback.Cascade, builder drm.Builder) *Dispatcher {
	return &Dispatcher{
		registry:   registry,
		classifier: classify.New(registry),
		enhancer:   enhance.New(registry),
		cascade:    cascade,
		drm:        builder,
	}
}

// Configured returns a dispatcher over registry with the current configuration.
func Configured(registry *provider.Registry) *Dispatcher {
	return New(registry, fallback.Configured(registry), drm.Configured())
}

// Registry returns the provider table the dispatcher resolves against.
func (d *Dispatcher) Registry() *provider.Registry {
	return d.registry
}

// Resolve resolves the built-in table.
func Resolve(servers []source.Server, index, attempt int) (*Plan, error) {
	return Configured(provider.Builtin()).Resolve(servers, index, attempt)
}

// Resolve builds the plan for attempt of servers[index]. Attempt 0 is the
// enhanced URL, attempt k is fallback k-1 of the server's provider.
func (d *Dispatcher) Resolve(servers []source.Server, index, attempt int) (*Plan, error) {
	if index < 0 || index >= len(servers) {
		return nil, fmt.Errorf("server %d of %d: %w", index, len(servers), ErrNoServers)
	}

	server := servers[index]
	c := d.classifier.Classify(server.URL)
	plan := &Plan{
		Category:     c.Category,
		Container:    c.Container,
		DRM:          drm.None(),
		Provider:     c.Provider,
		AttemptIndex: attempt,
		ServerIndex:  index,
		ServerName:   server.Name,
	}
	plan.warn(c.Warning())

	switch {
	case attempt == 0:
		u, err := d.enhancer.EnhanceReport(server.URL, c.Provider)
		plan.URL = u
		plan.warn(err)
	case attempt > 0:
		a, ok := d.cascade.NextAttempt(server, c.Provider, attempt-1).Get()
		if !ok {
			return nil, fmt.Errorf("%s attempt %d: %w", server, attempt, ErrFallbackExhausted)
		}
		plan.URL = a.URL
	default:
		return nil, fmt.Errorf("%s attempt %d: %w", server, attempt, ErrFallbackExhausted)
	}

	if c.Category == provider.DashDrmWebPlayer {
		plan.DRM = d.drm.Build(server.License, server.DRM, drm.Heuristic(server.URL))
		plan.warn(plan.DRM.Warning)
	}

	if c.Category == provider.SandboxedEmbed {
		if profile, ok := d.registry.Lookup(c.Provider); ok {
			plan.Cleanup = profile.Cleanup
		}
	}

	log.Debugf("resolved %s to %s (%s, drm %s)", server, plan.URL, plan.Provider, plan.DRM)
	return plan, nil
}

// Next resolves the plan to try after failed: the next attempt of the same
// server whose URL differs from the failed one, then attempt 0 of the next server.
func Next(servers []source.Server, failed *Plan) (*Plan, error) {
	return Configured(provider.Builtin()).Next(servers, failed)
}

// Next applies the advance policy after failed did not play.
func (d *Dispatcher) Next(servers []source.Server, failed *Plan) (*Plan, error) {
	for attempt := failed.AttemptIndex + 1; ; attempt++ {
		plan, err := d.Resolve(servers, failed.ServerIndex, attempt)
		if errors.Is(err, ErrFallbackExhausted) || errors.Is(err, ErrNoServers) {
			break
		}
		if err != nil {
			return nil, err
		}
		if plan.URL == failed.URL {
			log.Debugf("skipping attempt %d of %s, same url as the failed one", attempt, plan.ServerName)
			continue
		}
		return plan, nil
	}

	if next := failed.ServerIndex + 1; next < len(servers) {
		return d.Resolve(servers, next, 0)
	}
	return nil, ErrAllSourcesExhausted
}

// UserMessage maps a terminal error to the text shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAllSourcesExhausted), errors.Is(err, ErrNoServers):
		return "no playable source"
	case errors.Is(err, navigation.ErrRedirectLoopExceeded),
		errors.Is(err, navigation.ErrLoadTimeout),
		errors.Is(err, ErrFallbackExhausted):
		return "source unavailable, try another"
	default:
		return err.Error()
	}
}

func (p *Plan) warn(err error) {
	if err != nil {
		p.Warnings = append(p.Warnings, err)
	}
}
