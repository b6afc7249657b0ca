package cmd

import (
	"errors"
	"os"

	"github.com/reelcast/reelcast/dispatch"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
	itemFlags(resolveCmd)
	resolveCmd.Flags().IntP("index", "i", 0, "Server index to resolve")
	resolveCmd.Flags().IntP("attempt", "a", 0, "Attempt index; 0 is the enhanced url, k is fallback k")
	resolveCmd.Flags().Bool("chain", false, "Print every plan in the order playback would try them")
	resolveCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	resolveCmd.MarkFlagsMutuallyExclusive("chain", "attempt")
	resolveCmd.SetOut(os.Stdout)
}

// resolveCmd prints the playback plan of a source without playing it.
var resolveCmd = &cobra.Command{
	Use:   "resolve [url...]",
	Short: "Print the playback plan of a source without playing it",
	Example: `  reelcast resolve https://vidsrc.to/embed/movie/603
  reelcast resolve --title "The Matrix" --chain
  reelcast resolve --license 0123:abcd https://cdn.example.com/stream.mpd`,
	Run: func(cmd *cobra.Command, args []string) {
		registry := loadRegistry()
		it, err := itemFromFlags(cmd, args, registry)
		handleErr(err)

		d := dispatch.Configured(registry)
		asJSON := lo.Must(cmd.Flags().GetBool("json"))

		plan, err := d.Resolve(it.servers, lo.Must(cmd.Flags().GetInt("index")), lo.Must(cmd.Flags().GetInt("attempt")))
		handleErr(err)

		if !lo.Must(cmd.Flags().GetBool("chain")) {
			handleErr(printPlan(cmd.OutOrStdout(), plan, asJSON))
			return
		}

		for {
			handleErr(printPlan(cmd.OutOrStdout(), plan, asJSON))
			plan, err = d.Next(it.servers, plan)
			if errors.Is(err, dispatch.ErrAllSourcesExhausted) {
				return
			}
			handleErr(err)
			if !asJSON {
				cmd.Println()
			}
		}
	},
}
