// Package session drives playback of an item: resolve, render, and advance on failure until a source plays.
package session

import (
	"context"
	"errors"

	"github.com/reelcast/reelcast/dispatch"
	"github.com/reelcast/reelcast/log"
	"github.com/reelcast/reelcast/source"
)

// Renderer plays a plan. A nil error means playback started and the plan worked.
type Renderer interface {
	Render(ctx context.Context, plan *dispatch.Plan) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, plan *dispatch.Plan) error

func (f RendererFunc) Render(ctx context.Context, plan *dispatch.Plan) error {
	return f(ctx, plan)
}

// Options tune Run.
type Options struct {
	// Start is the server index tried first.
	Start int
	// OnFailure is called after each plan that failed to render.
	OnFailure func(plan *dispatch.Plan, err error)
}

// Run tries plans in dispatch order until one renders. Servers before
// options.Start are tried after the last one. It returns the plan that worked,
// dispatch.ErrAllSourcesExhausted when none did, or the context error.
func Run(ctx context.Context, d *dispatch.Dispatcher, servers []source.Server, r Renderer, options Options) (*dispatch.Plan, error) {
	plan, err := d.Resolve(servers, options.Start, 0)
	if err != nil {
		return nil, err
	}

	var wrapped bool

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		log.Infof("playing %s", plan)
		err := r.Render(ctx, plan)
		if err == nil {
			return plan, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}

		log.Warnf("%s failed: %v", plan, err)
		if options.OnFailure != nil {
			options.OnFailure(plan, err)
		}

		plan, err = d.Next(servers, plan)
		if errors.Is(err, dispatch.ErrAllSourcesExhausted) && !wrapped && options.Start > 0 {
			wrapped = true
			log.Infof("wrapping around to the servers before #%d", options.Start)
			plan, err = d.Resolve(servers, 0, 0)
		}
		if err != nil {
			return nil, err
		}
		if wrapped && plan.ServerIndex >= options.Start {
			return nil, dispatch.ErrAllSourcesExhausted
		}
	}
}
