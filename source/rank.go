package source

import (
	"strings"

	"github.com/reelcast/reelcast/internal/hostname"
	"github.com/reelcast/reelcast/key"
	"github.com/reelcast/reelcast/provider"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// Rank returns a copy of servers ordered by rank, lowest first.
// The sort is stable and equal ranks are ordered by name.
func Rank(servers []Server, rank func(Server) int) []Server {
	ranked := append([]Server{}, servers...)
	slices.SortStableFunc(ranked, func(a, b Server) int {
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra - rb
		}
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return ranked
}

// Preferred ranks a server by the position of its name, or of the provider
// owning its host, in preferred. Servers matching nothing rank last.
func Preferred(preferred []string, registry *provider.Registry) func(Server) int {
	names := lo.Map(preferred, func(p string, _ int) string {
		return strings.ToLower(strings.TrimSpace(p))
	})

	return func(s Server) int {
		if i := slices.Index(names, strings.ToLower(s.Name)); i >= 0 {
			return i
		}
		if p, ok := registry.MatchHost(hostname.FromURL(s.URL)); ok {
			if i := slices.Index(names, string(p.Provider)); i >= 0 {
				return i
			}
		}
		return len(names)
	}
}

// Ranked orders servers by the configured preference list.
func Ranked(servers []Server, registry *provider.Registry) []Server {
	return Rank(servers, Preferred(viper.GetStringSlice(key.ServersPreferred), registry))
}
