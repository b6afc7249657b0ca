// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Server Ranking - these keys control the order in which an item's servers are tried.
const (
	ServersPreferred = "servers.preferred"
)

// Fallback Cascade - these keys bound same-provider retries.
const (
	FallbackDefaultMaxAttempts = "fallback.default_max_attempts"
)

// DRM Resolution - these keys shape the generated DRM configuration.
const (
	DrmFallbackLicenseServer = "drm.fallback_license_server"
	DrmRobustness            = "drm.robustness"
)

// Sandbox Navigation - these keys govern the embedded page guard.
const (
	NavigationLoadTimeout           = "navigation.load_timeout"
	NavigationAggregatorLoadTimeout = "navigation.aggregator_load_timeout"
	NavigationMaxRedirects          = "navigation.max_redirects"
)

// Custom Providers - these keys manage user-defined provider tables.
const (
	ProvidersCustomEnabled = "providers.custom_enabled"
)

// Media Playback - these keys configure the external renderers.
const (
	Player             = "player.default"
	PlayerStartupGrace = "player.startup_grace"
	PlayerBrowser      = "player.browser"
)

// History Tracking - these keys configure the persistence of the last working server.
const (
	HistorySaveOnPlay = "history.save_on_play"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern the command-line output.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
