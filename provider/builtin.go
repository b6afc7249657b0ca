package provider

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/samber/lo"
)

// GenericSelectors hide ad, overlay and popup layers on any sandboxed page.
var GenericSelectors = []string{
	"[class*=ad]",
	"[id*=ad]",
	"[class*=ads]",
	"[id*=ads]",
	"[class*=overlay]",
	"[class*=popup]",
	"[class*=modal]",
}

var (
	youtubeID = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)(?P<id>[a-zA-Z0-9_-]{11})`)
	driveID   = regexp.MustCompile(`drive\.google\.com/(?:file/d/|open\?id=|uc\?(?:[^#]*&)?id=)(?P<id>[a-zA-Z0-9_-]+)`)
	megaID    = regexp.MustCompile(`mega\.nz/(?:file/|folder/|embed/)(?P<id>[a-zA-Z0-9_-]+)`)

	// Aggregator IDs: an explicit video_id, then a TMDB path segment, then an IMDB id.
	videoIDParam = regexp.MustCompile(`[?&]video_id=(?P<id>[a-zA-Z0-9_-]+)`)
	tmdbID       = regexp.MustCompile(`(?:tmdb|movie|tv)/(?P<id>\d+)`)
	imdbID       = regexp.MustCompile(`(?P<id>tt\d+)`)
)

var (
	genericReinject = []time.Duration{1500 * time.Millisecond}
	slowReinject    = []time.Duration{time.Second, 3 * time.Second, 5 * time.Second, 8 * time.Second}
)

// parseParams splits a literal query into ordered params. Only used on table literals.
func parseParams(query string) []Param {
	return lo.FilterMap(strings.Split(query, "&"), func(pair string, _ int) (Param, bool) {
		if pair == "" {
			return Param{}, false
		}
		k, v, _ := strings.Cut(pair, "=")
		return Param{Key: k, Value: v}, true
	})
}

// playerParams is the embedded-player parameter set shared by SuperEmbed and YouTube.
func playerParams(origin string) []Param {
	escaped := url.QueryEscape(origin)
	return append(
		parseParams("autoplay=1&muted=0&controls=1&rel=0&showinfo=0&iv_load_policy=3&modestbranding=1&playsinline=1&enablejsapi=1"),
		Param{Key: "origin", Value: escaped},
		Param{Key: "widget_referrer", Value: escaped},
	)
}

var playerVariants = []string{
	"autoplay=1&muted=0&controls=1&rel=0&showinfo=0&iv_load_policy=3&modestbranding=1&playsinline=1&enablejsapi=1",
	"autoplay=1&muted=1&controls=1&rel=0&showinfo=0&iv_load_policy=3&modestbranding=1&playsinline=1",
	"autoplay=0&muted=0&controls=1&rel=0&showinfo=0&iv_load_policy=3&modestbranding=1&playsinline=1",
	"autoplay=1&muted=0&controls=0&rel=0&showinfo=0&iv_load_policy=3&modestbranding=1&playsinline=1",
}

// override builds fallbacks that swap one key through values.
func override(key string, values ...string) []Fallback {
	return lo.Map(values, func(v string, _ int) Fallback {
		return Fallback{Label: key + "=" + v, Params: []Param{{Key: key, Value: v}}}
	})
}

// replace builds fallbacks whose query is replaced wholesale, optionally on a new base.
func replace(base string, queries ...string) []Fallback {
	return lo.Map(queries, func(q string, _ int) Fallback {
		return Fallback{Label: q, Base: base, Params: parseParams(q), Replace: true}
	})
}

func sandbox(extra ...string) Cleanup {
	return Cleanup{
		Selectors:  append(append([]string{}, GenericSelectors...), extra...),
		ForceMedia: true,
		Reinject:   genericReinject,
	}
}

func builtins() []*Profile {
	return []*Profile{
		{
			Provider:    VidSrc,
			Name:        "VidSrc",
			Hosts:       []string{"vidsrc.to", "vidsrc.net", "vidsrc.me"},
			Category:    SandboxedEmbed,
			Family:      FamilyPreferred,
			Trusted:     true,
			Params:      parseParams("server=vidcloud&quality=1080p&autoplay=1&t=1"),
			Fallbacks:   override("server", "vidcloud", "upcloud", "nova", "streamwish"),
			MaxAttempts: 4,
			Cleanup:     sandbox(),
		},
		{
			Provider: VidSrcXyz,
			Name:     "VidSrc.xyz",
			Hosts:    []string{"vidsrc.xyz"},
			Category: SandboxedEmbed,
			Family:   FamilyPreferred,
			Trusted:  true,
			Params:   parseParams("autoplay=1"),
			Cleanup:  sandbox(),
		},
		{
			Provider:    VidJoy,
			Name:        "VidJoy",
			Hosts:       []string{"vidjoy.pro"},
			Category:    SandboxedEmbed,
			Params:      parseParams("quality=1080p&server=auto&autoplay=1&sub.file="),
			Fallbacks:   override("quality", "1080p", "720p", "480p", "360p"),
			MaxAttempts: 4,
			Cleanup:     sandbox(),
		},
		{
			Provider:    VidBinge,
			Name:        "VidBinge",
			Hosts:       []string{"vidbinge.dev"},
			Category:    SandboxedEmbed,
			Params:      parseParams("quality=auto&autoplay=1&sub=1"),
			Fallbacks:   override("quality", "auto", "1080p", "720p", "480p"),
			MaxAttempts: 4,
			Cleanup:     sandbox(),
		},
		{
			Provider: EmbedSu,
			Name:     "Embed.su",
			Hosts:    []string{"embed.su"},
			Category: SandboxedEmbed,
			Family:   FamilyPreferred,
			Trusted:  true,
			Params:   parseParams("autoplay=1"),
			Cleanup:  sandbox(),
		},
		{
			Provider: VidLink,
			Name:     "VidLink",
			Hosts:    []string{"vidlink.pro"},
			Category: SandboxedEmbed,
			Family:   FamilyPreferred,
			Trusted:  true,
			Params:   parseParams("autoplay=1"),
			Cleanup:  sandbox(),
		},
		{
			Provider: AutoEmbed,
			Name:     "AutoEmbed",
			Hosts:    []string{"autoembed.cc"},
			Category: SandboxedEmbed,
			Family:   FamilyPreferred,
			Trusted:  true,
			Params:   parseParams("autoplay=1"),
			Cleanup:  sandbox(),
		},
		{
			Provider:    SuperEmbed,
			Name:        "SuperEmbed",
			Hosts:       []string{"superembed.mov"},
			Category:    SandboxedEmbed,
			Params:      playerParams("https://superembed.mov"),
			Fallbacks:   replace("", playerVariants...),
			MaxAttempts: 4,
			Cleanup:     sandbox(),
		},
		{
			Provider:    MultiEmbed,
			Name:        "MultiEmbed",
			Hosts:       []string{"multiembed.mov"},
			Category:    SandboxedEmbed,
			Family:      FamilyAggregator,
			Aggregator:  true,
			Downstream:  []string{"streamingnow.mov"},
			Params:      parseParams("autoplay=1&muted=0&controls=1"),
			IDPatterns:  []*regexp.Regexp{videoIDParam, tmdbID, imdbID},
			LoadTimeout: 15 * time.Second,
			Fallbacks: replace(
				"https://multiembed.mov/directstream.php",
				"video_id={id}&tmdb=1&autoplay=1&muted=0&controls=1",
				"video_id={id}&tmdb=1&autoplay=1&muted=1&controls=1",
				"video_id={id}&tmdb=1&autoplay=0&muted=0&controls=1",
			),
			Cleanup: sandbox(
				"[class*=countdown]", "[id*=countdown]", "[class*=timer]", "[id*=timer]",
				"[class*=blocker]", "[data-countdown]", "[data-ad]", "[data-popup]",
			),
		},
		{
			Provider:   YouTube,
			Name:       "YouTube",
			Hosts:      []string{"youtube.com", "youtu.be", "youtube-nocookie.com"},
			Category:   SandboxedEmbed,
			Family:     FamilyGoogle,
			Params:     playerParams("https://www.youtube.com"),
			Rewrite:    "https://www.youtube.com/embed/{id}",
			IDPatterns: []*regexp.Regexp{youtubeID},
			Fallbacks:  replace("https://www.youtube.com/embed/{id}", playerVariants[:3]...),
			Cleanup: sandbox(
				".ytp-pause-overlay", ".ytp-gradient-top", ".ytp-gradient-bottom",
				".ytp-show-cards-title", ".ytp-watermark",
			),
		},
		{
			Provider:   GoogleDrive,
			Name:       "Google Drive",
			Hosts:      []string{"drive.google.com"},
			Category:   SandboxedEmbed,
			Family:     FamilyGoogle,
			Params:     parseParams("usp=sharing&rm=minimal&ui=2&chrome=false"),
			Rewrite:    "https://drive.google.com/file/d/{id}/preview",
			IDPatterns: []*regexp.Regexp{driveID},
			Fallbacks: []Fallback{
				{Label: "preview", Base: "https://drive.google.com/file/d/{id}/preview", Replace: true},
				{Label: "view", Base: "https://drive.google.com/file/d/{id}/view", Replace: true},
				{Label: "uc", Base: "https://drive.google.com/uc", Params: parseParams("export=view&id={id}"), Replace: true},
			},
			Cleanup: Cleanup{
				Selectors: []string{
					`[data-target="drive.web.downloadDialog"]`,
					`[data-target="drive.web.shareDialog"]`,
					`[data-tooltip*="Download"]`,
					`[data-tooltip*="Share"]`,
					`[aria-label*="Download"]`,
					`[aria-label*="Share"]`,
					`[role="banner"]`,
					`[role="navigation"]`,
				},
				ForceMedia: true,
				Reinject:   slowReinject,
			},
		},
		{
			Provider:   Mega,
			Name:       "Mega",
			Hosts:      []string{"mega.nz", "mega.io"},
			Category:   SandboxedEmbed,
			Family:     FamilyMega,
			Trusted:    true,
			Params:     parseParams("embed=1&autoplay=1&muted=0&controls=1&playsinline=1&hide_ui=1&minimal=1&no_header=1&no_footer=1&no_sidebar=1"),
			IDPatterns: []*regexp.Regexp{megaID},
			Cleanup: Cleanup{
				Selectors: []string{
					`[id*=download]`, `[data-action="download"]`, `[href*="/download"]`,
					`[href*="mega://"]`, `[href*="megaapp://"]`,
					".download-button", ".app-button", ".mobile-app", ".install-app", ".get-app",
					"[class*=banner]", "[class*=notification]", "[class*=popup]", "[class*=modal]", "[class*=overlay]",
					".top-menu", ".header", ".footer", ".sidebar", ".ads", "[id*=ads]",
				},
				ForceMedia: true,
				Reinject:   slowReinject,
			},
		},
		plainEmbed(StreamWish, "StreamWish", "streamwish.to"),
		plainEmbed(DoodStream, "DoodStream", "doodstream.com"),
		plainEmbed(MixDrop, "MixDrop", "mixdrop.co"),
		plainEmbed(StreamTape, "StreamTape", "streamtape.com"),
		plainEmbed(VidCloud, "VidCloud", "vidcloud.co"),
		plainEmbed(UpCloud, "UpCloud", "upcloud.to"),
		plainEmbed(Nova, "Nova", "nova.video"),
		plainEmbed(StreamHub, "StreamHub", "streamhub.to"),
		{Provider: DashManifest, Name: "DASH manifest", Category: DashDrmWebPlayer},
		{Provider: HLSStream, Name: "HLS stream", Category: NativeAdaptive},
		{Provider: DirectFile, Name: "Direct file", Category: NativeDirect},
		{Provider: Unknown, Name: "Unknown", Category: SandboxedEmbed, Cleanup: sandbox()},
	}
}

// plainEmbed is a recognized host with no parameters or fallbacks of its own.
func plainEmbed(p Provider, name, host string) *Profile {
	return &Profile{
		Provider: p,
		Name:     name,
		Hosts:    []string{host},
		Category: SandboxedEmbed,
		Cleanup:  sandbox(),
	}
}
