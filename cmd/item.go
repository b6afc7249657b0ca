package cmd

import (
	"errors"
	"fmt"

	"github.com/reelcast/reelcast/catalog"
	"github.com/reelcast/reelcast/provider"
	"github.com/reelcast/reelcast/source"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// item is what a command plays or resolves: a catalog entry or bare URLs.
type item struct {
	title   string
	season  int
	episode int
	servers []source.Server
}

func (i *item) String() string {
	if i.season > 0 || i.episode > 0 {
		return fmt.Sprintf("%s S%02dE%02d", i.title, i.season, i.episode)
	}
	return i.title
}

func itemFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("title", "t", "", "Catalog title to take the servers from")
	cmd.Flags().IntP("season", "s", 0, "Season of a show")
	cmd.Flags().IntP("episode", "e", 0, "Episode of a show")
	lo.Must0(cmd.RegisterFlagCompletionFunc("title", completionTitles))
	serverFlags(cmd)
}

func completionTitles(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	c, err := catalog.Configured()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return c.Titles(), cobra.ShellCompDirectiveNoFileComp
}

// itemFromFlags builds the item named by --title or by the URL arguments,
// with servers ranked by preference.
func itemFromFlags(cmd *cobra.Command, args []string, registry *provider.Registry) (*item, error) {
	title := lo.Must(cmd.Flags().GetString("title"))
	season := lo.Must(cmd.Flags().GetInt("season"))
	episode := lo.Must(cmd.Flags().GetInt("episode"))

	if title == "" {
		if len(args) == 0 {
			return nil, errors.New("either urls or --title must be given")
		}
		return &item{title: args[0], servers: source.Ranked(serversFromArgs(cmd, args), registry)}, nil
	}

	c, err := catalog.Configured()
	if err != nil {
		return nil, err
	}
	entry, err := c.Find(title)
	if err != nil {
		return nil, err
	}
	return entryItem(entry, season, episode, registry)
}

func entryItem(entry *catalog.Entry, season, episode int, registry *provider.Registry) (*item, error) {
	if entry.Kind == provider.Movie {
		season, episode = 0, 0
	} else if season < 1 || episode < 1 {
		return nil, fmt.Errorf("%s is a show, --season and --episode are required", entry.Title)
	}

	servers, err := entry.ServersFor(season, episode)
	if err != nil {
		return nil, err
	}
	return &item{
		title:   entry.Title,
		season:  season,
		episode: episode,
		servers: source.Ranked(servers, registry),
	}, nil
}
