package catalog

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/reelcast/reelcast/dispatch"
	"github.com/reelcast/reelcast/provider"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// Report is the resolution of one listed server.
type Report struct {
	Entry   *Entry
	Season  int
	Episode int
	Server  string
	Plan    *dispatch.Plan
	// Attempts is the number of URLs the server can be tried with.
	Attempts int
	Err      error
}

// Check resolves every server of every entry without playing anything.
// Shows are checked for every listed episode.
func Check(ctx context.Context, d *dispatch.Dispatcher, attempts func(provider.Provider) int, c *Catalog) ([]Report, error) {
	var (
		mu      sync.Mutex
		reports []Report
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, job := range jobs(c) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			servers, err := job.entry.ServersFor(job.season, job.episode)
			if err != nil {
				mu.Lock()
				reports = append(reports, Report{Entry: job.entry, Season: job.season, Episode: job.episode, Err: err})
				mu.Unlock()
				return nil
			}

			local := make([]Report, 0, len(servers))
			for i, server := range servers {
				plan, err := d.Resolve(servers, i, 0)
				r := Report{Entry: job.entry, Season: job.season, Episode: job.episode, Server: server.String(), Plan: plan, Err: err}
				if plan != nil {
					r.Attempts = 1 + attempts(plan.Provider)
				}
				local = append(local, r)
			}

			mu.Lock()
			reports = append(reports, local...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortReports(c, reports)
	return reports, nil
}

type job struct {
	entry           *Entry
	season, episode int
}

func jobs(c *Catalog) []job {
	var jobs []job
	for _, e := range c.Entries {
		if e.Kind != provider.TV {
			jobs = append(jobs, job{entry: e})
			continue
		}
		for _, s := range e.Seasons {
			for _, ep := range s.Episodes {
				jobs = append(jobs, job{entry: e, season: s.Number, episode: ep.Number})
			}
		}
	}
	return jobs
}

// sortReports restores catalog order after the concurrent resolution.
func sortReports(c *Catalog, reports []Report) {
	order := make(map[*Entry]int, len(c.Entries))
	for i, e := range c.Entries {
		order[e] = i
	}

	key := func(r Report) string {
		return fmt.Sprintf("%06d/%04d/%04d", order[r.Entry], r.Season, r.Episode)
	}
	slices.SortStableFunc(reports, func(a, b Report) int {
		return strings.Compare(key(a), key(b))
	})
}
