package version

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/reelcast/reelcast/filesystem"
	"github.com/reelcast/reelcast/network"
	"github.com/reelcast/reelcast/util"
	"github.com/reelcast/reelcast/where"
)

// ReleasesURL is the endpoint describing the latest release.
const ReleasesURL = "https://api.github.com/repos/reelcast/reelcast/releases/latest"

var cacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest returns the latest released version, cached for two days.
func Latest(ctx context.Context) (string, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return "", err
	}
	if !expired && cached != "" {
		return cached, nil
	}

	resp, err := network.Get(ctx, network.Client, ReleasesURL)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}
	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	_ = cacher.Set(latest)
	return latest, nil
}
