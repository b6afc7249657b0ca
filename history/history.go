// Package history remembers which server last played for each item, so playback can resume there.
package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/reelcast/reelcast/dispatch"
	"github.com/reelcast/reelcast/filesystem"
	"github.com/reelcast/reelcast/provider"
	"github.com/reelcast/reelcast/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

// Record is the server that worked for an item.
type Record struct {
	Title    string            `json:"title"`
	Season   int               `json:"season,omitempty"`
	Episode  int               `json:"episode,omitempty"`
	Server   string            `json:"server"`
	Index    int               `json:"index"`
	Attempt  int               `json:"attempt"`
	Provider provider.Provider `json:"provider"`
	URL      string            `json:"url"`
	PlayedAt time.Time         `json:"played_at"`
}

// NewRecord records plan as the working source of an item.
func NewRecord(title string, season, episode int, plan *dispatch.Plan) *Record {
	return &Record{
		Title:    title,
		Season:   season,
		Episode:  episode,
		Server:   plan.ServerName,
		Index:    plan.ServerIndex,
		Attempt:  plan.AttemptIndex,
		Provider: plan.Provider,
		URL:      plan.URL,
		PlayedAt: time.Now(),
	}
}

// Key identifies the item of a record.
func Key(title string, season, episode int) string {
	title = strings.ToLower(strings.TrimSpace(title))
	if season == 0 && episode == 0 {
		return title
	}
	return fmt.Sprintf("%s S%02dE%02d", title, season, episode)
}

func (r *Record) key() string {
	return Key(r.Title, r.Season, r.Episode)
}

func (r *Record) String() string {
	item := r.Title
	if r.Season > 0 || r.Episode > 0 {
		item = fmt.Sprintf("%s S%02dE%02d", r.Title, r.Season, r.Episode)
	}
	return fmt.Sprintf("%s: %s (%s)", item, r.Server, r.Provider)
}

var cacher = gache.New[map[string]*Record](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every record by item key.
func Get() (map[string]*Record, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Record), nil
	}
	return cached, nil
}

// List returns every record, most recent first.
func List() ([]*Record, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	records := lo.Values(saved)
	slices.SortFunc(records, func(a, b *Record) int {
		return b.PlayedAt.Compare(a.PlayedAt)
	})
	return records, nil
}

// Save stores record, replacing the previous one of the same item.
func Save(record *Record) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	saved[record.key()] = record
	return cacher.Set(saved)
}

// Last returns the record of an item.
func Last(title string, season, episode int) (mo.Option[*Record], error) {
	saved, err := Get()
	if err != nil {
		return mo.None[*Record](), err
	}

	if record, ok := saved[Key(title, season, episode)]; ok {
		return mo.Some(record), nil
	}
	return mo.None[*Record](), nil
}

// Remove forgets the record of an item.
func Remove(record *Record) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, record.key())
	return cacher.Set(saved)
}
