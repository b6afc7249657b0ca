package player

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/reelcast/reelcast/dispatch"
	"github.com/reelcast/reelcast/filesystem"
	"github.com/reelcast/reelcast/log"
	"github.com/reelcast/reelcast/open"
	"github.com/reelcast/reelcast/page"
	"github.com/reelcast/reelcast/provider"
	"github.com/reelcast/reelcast/where"
)

// Browser hands plans to a web browser. DASH plans are rendered to a page in
// the temp directory first. The browser gives no feedback, so a started
// browser counts as playing.
type Browser struct {
	// App is the browser to use. Empty means the system default handler.
	App string
	// Dir receives rendered pages. Empty means where.Temp().
	Dir string

	open func(input, app string) error
}

// NewBrowser returns a browser renderer for app.
func NewBrowser(app string) *Browser {
	return &Browser{App: app, open: open.StartWith}
}

func (b *Browser) Render(ctx context.Context, plan *dispatch.Plan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := b.Target(plan)
	if err != nil {
		return err
	}

	log.Infof("opening %s in %s", target, b)
	return b.open(target, b.App)
}

// Target returns what the browser should open for plan.
func (b *Browser) Target(plan *dispatch.Plan) (string, error) {
	switch plan.Category {
	case provider.DashDrmWebPlayer:
		return b.WritePage(plan)
	case provider.SandboxedEmbed, provider.NativeDirect:
		return plan.URL, nil
	default:
		return "", fmt.Errorf("browser: %s: %w", plan.Category, ErrUnsupported)
	}
}

// WritePage renders the DASH page of plan and returns its path.
// Identical plans map to the same file.
func (b *Browser) WritePage(plan *dispatch.Plan) (string, error) {
	html, err := page.RenderDash(plan)
	if err != nil {
		return "", err
	}

	dir := b.Dir
	if dir == "" {
		dir = where.Temp()
	}

	sum := sha256.Sum256(html)
	path := filepath.Join(dir, "dash-"+hex.EncodeToString(sum[:6])+".html")
	if err := filesystem.WriteAtomic(path, html); err != nil {
		return "", err
	}
	return path, nil
}

func (b *Browser) String() string {
	if b.App == "" {
		return "the default browser"
	}
	return b.App
}
