// Package where resolves the filesystem locations the application reads from and writes to.
package where

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/reelcast/reelcast/constant"
	"github.com/reelcast/reelcast/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
var EnvConfigPath = strings.ToUpper(constant.App) + "_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory.
// It follows os.UserConfigDir unless EnvConfigPath is set.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok && custom != "" {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache resolves the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs resolves the directory holding daily log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Providers resolves the directory holding custom provider definitions.
func Providers() string {
	return ensureDir(filepath.Join(Config(), "providers"))
}

// Catalog resolves the default catalog file.
func Catalog() string {
	return filepath.Join(Config(), "catalog.json")
}

// History resolves the file remembering the last working server per title.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Temp resolves the directory for generated player pages.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.App))
}
