// Package catalog loads the items a user can play and their servers.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/reelcast/reelcast/filesystem"
	"github.com/reelcast/reelcast/provider"
	"github.com/reelcast/reelcast/source"
	"github.com/reelcast/reelcast/where"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

var (
	ErrNotFound        = errors.New("title not found")
	ErrEpisodeNotFound = errors.New("episode not found")
)

// Server is the on-disk form of a source.Server.
type Server struct {
	Name    string  `json:"name" jsonschema:"description=Display name of the server."`
	URL     string  `json:"url" jsonschema:"description=Content location."`
	License *string `json:"license,omitempty" jsonschema:"description=keyId:key pair, license server URL or auth token."`
	DRM     *bool   `json:"drm,omitempty" jsonschema:"description=Explicit protection flag. Omit to infer it."`
}

// Source converts the record.
func (s Server) Source() source.Server {
	server := source.NewServer(s.Name, s.URL)
	if s.License != nil {
		server = server.WithLicense(*s.License)
	}
	if s.DRM != nil {
		server = server.WithDRM(*s.DRM)
	}
	return server
}

// Episode is one episode of a season.
type Episode struct {
	Number  int      `json:"number" jsonschema:"minimum=1"`
	Title   string   `json:"title,omitempty"`
	Servers []Server `json:"servers,omitempty"`
}

// Season groups episodes.
type Season struct {
	Number   int        `json:"number" jsonschema:"minimum=1"`
	Episodes []*Episode `json:"episodes"`
}

// Entry is one movie or show.
type Entry struct {
	Title string        `json:"title" jsonschema:"description=Unique title."`
	Kind  provider.Kind `json:"kind" jsonschema:"enum=movie,enum=tv"`
	Year  int           `json:"year,omitempty"`
	// TMDB is the id embed providers are built from.
	TMDB string `json:"tmdb,omitempty" jsonschema:"description=TMDB id used to build embed servers."`
	// Providers lists embed providers to build servers for from TMDB.
	Providers []provider.Provider `json:"providers,omitempty" jsonschema:"description=Embed providers to build servers for from the TMDB id."`
	Servers   []Server            `json:"servers,omitempty" jsonschema:"description=Servers of a movie."`
	Seasons   []*Season           `json:"seasons,omitempty"`
}

func (e *Entry) String() string {
	if e.Year > 0 {
		return fmt.Sprintf("%s (%d)", e.Title, e.Year)
	}
	return e.Title
}

// ServersFor lists the servers of the movie, or of one episode for shows:
// the listed ones first, then one per embed provider built from the TMDB id.
func (e *Entry) ServersFor(season, episode int) ([]source.Server, error) {
	listed := e.Servers
	target := provider.Target{Kind: e.Kind, ID: e.TMDB, Season: season, Episode: episode}

	if e.Kind == provider.TV {
		s, ok := lo.Find(e.Seasons, func(s *Season) bool { return s.Number == season })
		var ep *Episode
		if ok {
			ep, ok = lo.Find(s.Episodes, func(ep *Episode) bool { return ep.Number == episode })
		}
		if !ok && len(e.Providers) == 0 {
			return nil, fmt.Errorf("%s S%02dE%02d: %w", e.Title, season, episode, ErrEpisodeNotFound)
		}
		listed = nil
		if ep != nil {
			listed = ep.Servers
		}
	}

	servers := lo.Map(listed, func(s Server, _ int) source.Server { return s.Source() })
	if e.TMDB == "" {
		return servers, nil
	}

	for _, p := range e.Providers {
		u, err := provider.BuildEmbedURL(p, target)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Title, err)
		}
		servers = append(servers, source.NewServer(string(p), u))
	}
	return servers, nil
}

// Catalog is the list of playable items.
type Catalog struct {
	Entries []*Entry `json:"entries"`
}

// Load reads and validates the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

// Configured loads the catalog file in the config directory. A missing file is an empty catalog.
func Configured() (*Catalog, error) {
	c, err := Load(where.Catalog())
	if errors.Is(err, os.ErrNotExist) {
		return &Catalog{}, nil
	}
	return c, err
}

// Save writes the catalog to path.
func (c *Catalog) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return filesystem.WriteAtomic(path, data)
}

// Validate checks titles are present and unique and kinds are known.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Entries))
	for i, e := range c.Entries {
		if strings.TrimSpace(e.Title) == "" {
			return fmt.Errorf("entry %d has no title", i)
		}
		title := normalize(e.Title)
		if seen[title] {
			return fmt.Errorf("duplicate title %q", e.Title)
		}
		seen[title] = true

		if e.Kind != provider.Movie && e.Kind != provider.TV {
			return fmt.Errorf("%s: unknown kind %q", e.Title, e.Kind)
		}
		if len(e.Providers) > 0 && e.TMDB == "" {
			return fmt.Errorf("%s: providers need a tmdb id", e.Title)
		}
	}
	return nil
}

// Titles lists every title in catalog order.
func (c *Catalog) Titles() []string {
	return lo.Map(c.Entries, func(e *Entry, _ int) string { return e.Title })
}

// Find returns the entry with title, ignoring case. A miss suggests the closest title.
func (c *Catalog) Find(title string) (*Entry, error) {
	if e, ok := lo.Find(c.Entries, func(e *Entry) bool { return normalize(e.Title) == normalize(title) }); ok {
		return e, nil
	}

	if len(c.Entries) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, title)
	}

	closest := lo.MinBy(c.Titles(), func(a, b string) bool {
		return levenshtein.Distance(normalize(title), normalize(a)) < levenshtein.Distance(normalize(title), normalize(b))
	})
	return nil, fmt.Errorf("%w: %q, did you mean %q?", ErrNotFound, title, closest)
}

// Search returns the entries fuzzily matching query, best match first.
func (c *Catalog) Search(query string) []*Entry {
	query = normalize(query)
	type match struct {
		entry    *Entry
		distance int
	}

	var matches []match
	for _, e := range c.Entries {
		if distance := fuzzy.RankMatchNormalizedFold(query, e.Title); distance >= 0 {
			matches = append(matches, match{e, distance})
		}
	}

	slices.SortStableFunc(matches, func(a, b match) int {
		return a.distance - b.distance
	})

	return lo.Map(matches, func(m match, _ int) *Entry { return m.entry })
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
