// Package provider holds the declarative table of streaming platforms: how each one is
// recognized, which playback strategy it needs, which parameters it expects,
// how it is retried and which page cleanup it gets.
package provider

// Provider identifies a hosting platform. It is derived from a URL on demand and never stored.
type Provider string

// Embed platforms.
const (
	VidSrc      Provider = "vidsrc"
	VidSrcXyz   Provider = "vidsrc-xyz"
	VidJoy      Provider = "vidjoy"
	VidBinge    Provider = "vidbinge"
	EmbedSu     Provider = "embedsu"
	VidLink     Provider = "vidlink"
	AutoEmbed   Provider = "autoembed"
	SuperEmbed  Provider = "superembed"
	MultiEmbed  Provider = "multiembed"
	YouTube     Provider = "youtube"
	GoogleDrive Provider = "gdrive"
	Mega        Provider = "mega"
	StreamWish  Provider = "streamwish"
	DoodStream  Provider = "doodstream"
	MixDrop     Provider = "mixdrop"
	StreamTape  Provider = "streamtape"
	VidCloud    Provider = "vidcloud"
	UpCloud     Provider = "upcloud"
	Nova        Provider = "nova"
	StreamHub   Provider = "streamhub"
)

// Media kinds recognized by shape rather than host.
const (
	DashManifest Provider = "dash"
	HLSStream    Provider = "hls"
	DirectFile   Provider = "direct"
	Unknown      Provider = "unknown"
)

func (p Provider) String() string {
	return string(p)
}

// Category is the rendering strategy a resolved URL requires.
type Category string

const (
	NativeDirect     Category = "native-direct"
	NativeAdaptive   Category = "native-adaptive"
	DashDrmWebPlayer Category = "dash-drm-web"
	SandboxedEmbed   Category = "sandboxed-embed"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{NativeDirect, NativeAdaptive, DashDrmWebPlayer, SandboxedEmbed}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case NativeDirect, NativeAdaptive, DashDrmWebPlayer, SandboxedEmbed:
		return true
	default:
		return false
	}
}

// Native reports whether the category is played by the native media pipeline.
func (c Category) Native() bool {
	return c == NativeDirect || c == NativeAdaptive
}

// Container is the media container hint handed to native players.
type Container string

const (
	MP4            Container = "mp4"
	M4V            Container = "m4v"
	MKV            Container = "mkv"
	WebM           Container = "webm"
	AVI            Container = "avi"
	HLS            Container = "hls"
	DASH           Container = "dash"
	RTMP           Container = "rtmp"
	ContainerUnset Container = "unknown"
)

// Family groups providers whose pages legitimately navigate between each other.
type Family string

const (
	FamilyNone       Family = ""
	FamilyPreferred  Family = "preferred-embed"
	FamilyAggregator Family = "aggregator"
	FamilyMega       Family = "mega"
	FamilyGoogle     Family = "google"
)
