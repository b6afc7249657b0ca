package cmd

import (
	"os"

	"github.com/reelcast/reelcast/color"
	"github.com/reelcast/reelcast/style"
	"github.com/reelcast/reelcast/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// location is a path the where and clear commands know about.
type location struct {
	name     string
	path     func() string
	argLong  string
	argShort mo.Option[string]
	hidden   bool
}

var locations = []*location{
	{"Config", where.Config, "config", mo.Some("c"), false},
	{"Catalog", where.Catalog, "catalog", mo.Some("C"), false},
	{"Providers", where.Providers, "providers", mo.Some("p"), false},
	{"Logs", where.Logs, "logs", mo.Some("l"), false},
	{"History", where.History, "history", mo.None[string](), true},
	{"Cache", where.Cache, "cache", mo.None[string](), true},
	{"Temp", where.Temp, "temp", mo.None[string](), true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, l := range locations {
		if short, ok := l.argShort.Get(); ok {
			whereCmd.Flags().BoolP(l.argLong, short, false, l.name+" path")
		} else {
			whereCmd.Flags().Bool(l.argLong, false, l.name+" path")
		}
		if l.hidden {
			lo.Must0(whereCmd.Flags().MarkHidden(l.argLong))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l *location, _ int) string {
		return l.argLong
	})...)
	whereCmd.SetOut(os.Stdout)
}

// whereCmd prints the paths reelcast reads and writes.
var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Display the paths of the config, catalog, providers and logs",
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range locations {
			if lo.Must(cmd.Flags().GetBool(l.argLong)) {
				cmd.Println(l.path())
				return
			}
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		visible := lo.Reject(locations, func(l *location, _ int) bool { return l.hidden })
		for i, l := range visible {
			cmd.Printf("%s %s\n", header(l.name+"?"), style.Fg(color.Yellow)("--"+l.argLong))
			cmd.Println(l.path())
			if i < len(visible)-1 {
				cmd.Println()
			}
		}
	},
}
