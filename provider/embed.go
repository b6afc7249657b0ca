package provider

import (
	"fmt"
	"net/url"
)

// Kind distinguishes movies from episodic content when building embed URLs.
type Kind string

const (
	Movie Kind = "movie"
	TV    Kind = "tv"
)

// Target names the content an embed URL is built for.
type Target struct {
	Kind    Kind
	ID      string
	Season  int
	Episode int
}

func (t Target) validate() error {
	if t.ID == "" {
		return fmt.Errorf("content id is empty")
	}
	switch t.Kind {
	case Movie:
		return nil
	case TV:
		if t.Season < 1 || t.Episode < 1 {
			return fmt.Errorf("season and episode must be positive, got %d and %d", t.Season, t.Episode)
		}
		return nil
	default:
		return fmt.Errorf("unknown content kind %q", t.Kind)
	}
}

// slashPath renders /movie/{id} or /tv/{id}/{season}/{episode} under base.
func slashPath(base string) func(Target) string {
	return func(t Target) string {
		if t.Kind == Movie {
			return fmt.Sprintf("%s/movie/%s", base, url.PathEscape(t.ID))
		}
		return fmt.Sprintf("%s/tv/%s/%d/%d", base, url.PathEscape(t.ID), t.Season, t.Episode)
	}
}

var embedBuilders = map[Provider]func(Target) string{
	VidSrc:     slashPath("https://vidsrc.to/embed"),
	VidSrcXyz:  slashPath("https://vidsrc.xyz/embed"),
	EmbedSu:    slashPath("https://embed.su/embed"),
	VidLink:    slashPath("https://vidlink.pro"),
	AutoEmbed:  slashPath("https://player.autoembed.cc/embed"),
	SuperEmbed: slashPath("https://superembed.mov"),
	VidJoy: func(t Target) string {
		if t.Kind == Movie {
			return "https://vidjoy.pro/embed/movie/" + url.PathEscape(t.ID)
		}
		return fmt.Sprintf("https://vidjoy.pro/embed/tv/%s-%d-%d", url.PathEscape(t.ID), t.Season, t.Episode)
	},
	VidBinge: func(t Target) string {
		if t.Kind == Movie {
			return "https://vidbinge.dev/embed/movie?tmdb=" + url.QueryEscape(t.ID)
		}
		return fmt.Sprintf("https://vidbinge.dev/embed/tv?tmdb=%s&season=%d&episode=%d", url.QueryEscape(t.ID), t.Season, t.Episode)
	},
	MultiEmbed: func(t Target) string {
		if t.Kind == Movie {
			return "https://multiembed.mov/directstream.php?video_id=" + url.QueryEscape(t.ID) + "&tmdb=1"
		}
		return fmt.Sprintf("https://multiembed.mov/directstream.php?video_id=%s&tmdb=1&s=%d&e=%d", url.QueryEscape(t.ID), t.Season, t.Episode)
	},
}

var directBuilders = map[Provider]string{
	YouTube:     "https://www.youtube.com/embed/{id}",
	GoogleDrive: "https://drive.google.com/file/d/{id}/preview",
	Mega:        "https://mega.nz/file/{id}",
}

// EmbedProviders lists the providers BuildEmbedURL supports.
func EmbedProviders() []Provider {
	return []Provider{VidSrc, VidSrcXyz, VidJoy, VidBinge, EmbedSu, VidLink, AutoEmbed, SuperEmbed, MultiEmbed}
}

// BuildEmbedURL builds the embed page URL of a catalog ID on an aggregator-style provider.
func BuildEmbedURL(p Provider, t Target) (string, error) {
	build, ok := embedBuilders[p]
	if !ok {
		return "", fmt.Errorf("provider %q does not build embed URLs", p)
	}
	if err := t.validate(); err != nil {
		return "", err
	}
	return build(t), nil
}

// BuildDirectURL builds the page URL of a platform-native video or file ID.
func BuildDirectURL(p Provider, id string) (string, error) {
	template, ok := directBuilders[p]
	if !ok {
		return "", fmt.Errorf("provider %q does not build direct URLs", p)
	}
	if id == "" {
		return "", fmt.Errorf("video id is empty")
	}
	return ExpandID(template, url.PathEscape(id)), nil
}
