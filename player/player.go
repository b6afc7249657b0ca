// Package player renders playback plans: natively through mpv, or through the
// system browser for DASH pages and sandboxed embeds.
package player

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/reelcast/reelcast/dispatch"
	"github.com/reelcast/reelcast/key"
	"github.com/reelcast/reelcast/provider"
	"github.com/reelcast/reelcast/session"
	"github.com/spf13/viper"
)

var (
	// ErrUnsupported is returned for plans a renderer cannot play.
	ErrUnsupported = errors.New("plan not supported by player")
	// ErrPlaybackFailed is returned when the player gave up on the source.
	ErrPlaybackFailed = errors.New("playback failed")
)

// Names of the configurable players.
const (
	NameMPV     = "mpv"
	NameBrowser = "browser"
	NameAuto    = "auto"
)

// Names lists the values accepted by the player.default setting.
func Names() []string {
	return []string{NameMPV, NameBrowser, NameAuto}
}

// Auto routes native categories and unprotected DASH to Native and everything else to Web.
type Auto struct {
	Native session.Renderer
	Web    session.Renderer
}

func (a *Auto) Render(ctx context.Context, plan *dispatch.Plan) error {
	if nativeCapable(plan) {
		return a.Native.Render(ctx, plan)
	}
	return a.Web.Render(ctx, plan)
}

// nativeCapable reports whether mpv can play plan on its own.
func nativeCapable(plan *dispatch.Plan) bool {
	switch plan.Category {
	case provider.NativeDirect, provider.NativeAdaptive:
		return true
	case provider.DashDrmWebPlayer:
		return !plan.DRM.Protected()
	default:
		return false
	}
}

// Configured returns the renderer named by the player.default setting.
func Configured() (session.Renderer, error) {
	native := NewMPV(viper.GetDuration(key.PlayerStartupGrace))
	web := NewBrowser(viper.GetString(key.PlayerBrowser))

	switch name := strings.ToLower(viper.GetString(key.Player)); name {
	case NameMPV:
		return native, nil
	case NameBrowser:
		return web, nil
	case NameAuto, "":
		return &Auto{Native: native, Web: web}, nil
	default:
		return nil, fmt.Errorf("unknown player %q, expected one of %s", name, strings.Join(Names(), ", "))
	}
}
