package player

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/reelcast/reelcast/dispatch"
	"github.com/reelcast/reelcast/drm"
	"github.com/reelcast/reelcast/log"
)

// MPV plays native plans with the mpv binary.
type MPV struct {
	Binary string
	// StartupGrace is how long mpv must survive for the source to count as playing.
	StartupGrace time.Duration
}

// NewMPV returns an mpv renderer using the binary found in PATH.
func NewMPV(grace time.Duration) *MPV {
	if grace <= 0 {
		grace = 5 * time.Second
	}
	return &MPV{Binary: "mpv", StartupGrace: grace}
}

// Render starts mpv and waits for it to exit. mpv exiting with an error
// within the startup grace is a playback failure, anything later is the user quitting.
func (m *MPV) Render(ctx context.Context, plan *dispatch.Plan) error {
	if !nativeCapable(plan) {
		return fmt.Errorf("mpv: %s: %w", plan.Category, ErrUnsupported)
	}

	args, err := mpvArgs(plan)
	if err != nil {
		return err
	}

	cmd := exec.Command(m.Binary, args...)
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	exited := make(chan error, 1)
	go func() {
		exited <- cmd.Wait()
	}()

	grace := time.NewTimer(m.StartupGrace)
	defer grace.Stop()

	select {
	case err := <-exited:
		if err != nil {
			return fmt.Errorf("mpv exited during startup: %v: %w", err, ErrPlaybackFailed)
		}
		return nil
	case <-ctx.Done():
		_ = killProcess(cmd)
		<-exited
		return ctx.Err()
	case <-grace.C:
		log.Infof("mpv is playing %s", plan.URL)
	}

	select {
	case err := <-exited:
		if err != nil {
			log.Warnf("mpv exited: %v", err)
		}
		return nil
	case <-ctx.Done():
		_ = killProcess(cmd)
		<-exited
		return nil
	}
}

// mpvArgs builds the command line for plan. Only the title, headers and
// target are passed so the user's mpv.conf stays in charge.
func mpvArgs(plan *dispatch.Plan) ([]string, error) {
	target, err := sanitizeMediaTarget(plan.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid media target: %w", err)
	}

	title := sanitizeTitle(plan.ServerName)
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--force-window=yes",
	}
	if title != "" {
		args = append(args, "--force-media-title="+title)
	}
	for _, header := range headers(plan.DRM) {
		args = append(args, "--http-header-fields-append="+header)
	}

	return append(args, "--", target), nil
}

// headers lists the auth token headers of cfg. Each one is passed with its
// own append option, so commas in the token reach the server unchanged.
func headers(cfg drm.Config) []string {
	if cfg.Kind != drm.KindAuthToken {
		return nil
	}

	token := cfg.AuthToken.Token
	return []string{
		"Authorization: Bearer " + token,
		"X-Auth-Token: " + token,
	}
}

// sanitizeMediaTarget rejects targets mpv would read as flags or unsupported protocols.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "rtmp", "rtmps":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
