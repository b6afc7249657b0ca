// Package manifest inspects HLS playlists: the variants of a master playlist
// and the segments and encryption of a media playlist.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/grafov/m3u8"
	"github.com/reelcast/reelcast/network"
	"github.com/samber/lo"
)

var ErrNoVariants = errors.New("no variants in master playlist")

// Variant is one rendition of a master playlist.
type Variant struct {
	URL       string
	Bandwidth uint32
	Width     int
	Height    int
	FrameRate float64
	Codecs    string
}

func (v Variant) String() string {
	if v.Height == 0 {
		return fmt.Sprintf("%dkbps", v.Bandwidth/1000)
	}
	return fmt.Sprintf("%dp %dkbps", v.Height, v.Bandwidth/1000)
}

// Playlist summarizes a decoded playlist.
type Playlist struct {
	Master   bool
	Variants []Variant
	Segments int
	Duration time.Duration
	// Live is set for media playlists without an end tag.
	Live bool
	// Encryption is the key method, empty when segments are clear.
	Encryption string
	// KeyFormat is the key system of the key tag; "identity" or empty for plain AES.
	KeyFormat string
}

// Protected reports whether segments need a key system beyond plain AES.
func (p *Playlist) Protected() bool {
	return p.Encryption != "" && p.KeyFormat != "" && p.KeyFormat != "identity"
}

// Parse decodes a playlist. Relative variant URIs are resolved against base.
func Parse(r io.Reader, base string) (*Playlist, error) {
	decoded, kind, err := m3u8.DecodeFrom(r, true)
	if err != nil {
		return nil, fmt.Errorf("decode playlist: %w", err)
	}

	switch kind {
	case m3u8.MASTER:
		master := decoded.(*m3u8.MasterPlaylist)
		p := &Playlist{Master: true}
		for _, v := range master.Variants {
			if v == nil || v.Iframe {
				continue
			}
			width, height := resolution(v.Resolution)
			p.Variants = append(p.Variants, Variant{
				URL:       resolve(base, v.URI),
				Bandwidth: v.Bandwidth,
				Width:     width,
				Height:    height,
				FrameRate: v.FrameRate,
				Codecs:    v.Codecs,
			})
		}
		return p, nil
	case m3u8.MEDIA:
		media := decoded.(*m3u8.MediaPlaylist)
		p := &Playlist{Live: !media.Closed}
		if media.Key != nil {
			p.setKey(media.Key)
		}
		for _, segment := range media.Segments {
			if segment == nil {
				break
			}
			p.Segments++
			p.Duration += time.Duration(segment.Duration * float64(time.Second))
			if segment.Key != nil {
				p.setKey(segment.Key)
			}
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown playlist type")
	}
}

func (p *Playlist) setKey(key *m3u8.Key) {
	if key.Method == "" || strings.EqualFold(key.Method, "NONE") {
		return
	}
	p.Encryption = key.Method
	p.KeyFormat = key.Keyformat
}

// Pick returns the variant of height, else the tallest below it, else the shortest.
// Ties prefer the higher bandwidth.
func (p *Playlist) Pick(height int) (Variant, error) {
	sized := lo.Filter(p.Variants, func(v Variant, _ int) bool { return v.Height > 0 })
	if len(sized) == 0 {
		if len(p.Variants) == 0 {
			return Variant{}, ErrNoVariants
		}
		return lo.MaxBy(p.Variants, func(a, b Variant) bool { return a.Bandwidth > b.Bandwidth }), nil
	}

	better := func(a, b Variant) bool {
		if a.Height != b.Height {
			return a.Height > b.Height
		}
		return a.Bandwidth > b.Bandwidth
	}

	below := lo.Filter(sized, func(v Variant, _ int) bool { return v.Height <= height })
	if len(below) > 0 {
		return lo.MaxBy(below, better), nil
	}

	lowest := lo.MinBy(sized, func(a, b Variant) bool { return a.Height < b.Height })
	return lo.MaxBy(lo.Filter(sized, func(v Variant, _ int) bool { return v.Height == lowest.Height }), better), nil
}

// Fetch downloads and parses the playlist at raw.
func Fetch(ctx context.Context, client *http.Client, raw string) (*Playlist, error) {
	resp, err := network.Get(ctx, client, raw)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return Parse(resp.Body, raw)
}

func resolution(value string) (width, height int) {
	w, h, ok := strings.Cut(strings.ToLower(value), "x")
	if !ok {
		return 0, 0
	}
	width, _ = strconv.Atoi(w)
	height, _ = strconv.Atoi(h)
	return width, height
}

// resolve makes ref absolute against base. The base query is carried over to
// relative references without their own, since CDNs sign the whole directory.
func resolve(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil || base == "" {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if r.IsAbs() {
		return ref
	}

	resolved := b.ResolveReference(r)
	if r.RawQuery == "" {
		resolved.RawQuery = b.RawQuery
	}
	return resolved.String()
}
