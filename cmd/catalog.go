package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/reelcast/reelcast/catalog"
	"github.com/reelcast/reelcast/color"
	"github.com/reelcast/reelcast/dispatch"
	"github.com/reelcast/reelcast/fallback"
	"github.com/reelcast/reelcast/icon"
	"github.com/reelcast/reelcast/style"
	"github.com/reelcast/reelcast/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
}

// catalogCmd provides a parent command for the local title catalog.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse and check the local title catalog",
}

func printEntries(cmd *cobra.Command, entries []*catalog.Entry) {
	for _, e := range entries {
		detail := string(e.Kind)
		if len(e.Seasons) > 0 {
			detail += ", " + util.Quantify(len(e.Seasons), "season", "seasons")
		}
		if len(e.Providers) > 0 {
			detail += ", " + util.Quantify(len(e.Providers), "embed provider", "embed providers")
		}
		cmd.Printf("%s %s\n", style.Bold(e.String()), style.Faint(detail))
	}
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogListCmd.SetOut(os.Stdout)
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Display every catalog title",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := catalog.Configured()
		handleErr(err)
		printEntries(cmd, c.Entries)
	},
}

func init() {
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogSearchCmd.SetOut(os.Stdout)
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Fuzzy search catalog titles",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := catalog.Configured()
		handleErr(err)

		found := c.Search(strings.Join(args, " "))
		if len(found) == 0 {
			handleErr(fmt.Errorf("nothing matches %q", strings.Join(args, " ")))
		}
		printEntries(cmd, found)
	},
}

func init() {
	catalogCmd.AddCommand(catalogCheckCmd)
	catalogCheckCmd.Flags().BoolP("failed", "f", false, "Display only servers that failed to resolve")
	catalogCheckCmd.SetOut(os.Stdout)
}

// catalogCheckCmd resolves every server of the catalog without playing anything.
var catalogCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Resolve every catalog server and report the ones that cannot play",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := catalog.Configured()
		handleErr(err)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		registry := loadRegistry()
		reports, err := catalog.Check(ctx, dispatch.Configured(registry), fallback.Configured(registry).Limit, c)
		handleErr(err)

		failedOnly := lo.Must(cmd.Flags().GetBool("failed"))
		failed := 0
		for _, r := range reports {
			item := r.Entry.Title
			if r.Season > 0 {
				item = fmt.Sprintf("%s S%02dE%02d", item, r.Season, r.Episode)
			}

			if r.Err != nil {
				failed++
				cmd.Printf("%s %s %s %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), item, r.Server, style.Faint(dispatch.UserMessage(r.Err)))
				continue
			}
			if failedOnly {
				continue
			}

			mark := style.Fg(color.Green)(icon.Get(icon.Success))
			if len(r.Plan.Warnings) > 0 {
				mark = style.Fg(color.Yellow)(icon.Get(icon.Warn))
			}
			cmd.Printf("%s %s %s %s %s\n", mark, item, r.Server,
				style.Fg(color.Purple)(string(r.Plan.Category)),
				style.Faint(util.Quantify(r.Attempts, "attempt", "attempts")))
		}

		cmd.Printf("\n%s, %d failed\n", util.Quantify(len(reports), "server", "servers"), failed)
	},
}
