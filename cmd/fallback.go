package cmd

import (
	"fmt"
	"os"

	"github.com/reelcast/reelcast/classify"
	"github.com/reelcast/reelcast/fallback"
	"github.com/reelcast/reelcast/icon"
	"github.com/reelcast/reelcast/provider"
	"github.com/reelcast/reelcast/source"
	"github.com/reelcast/reelcast/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fallbackCmd)
	fallbackCmd.Flags().StringP("provider", "p", "", "Provider whose fallbacks apply; classified from the URL when empty")
	lo.Must0(fallbackCmd.RegisterFlagCompletionFunc("provider", completionProviders))
	fallbackCmd.SetOut(os.Stdout)
}

// fallbackCmd lists the alternate URLs tried after a source fails.
var fallbackCmd = &cobra.Command{
	Use:   "fallback [url]",
	Short: "List the same-provider alternatives tried after a URL fails",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		registry := loadRegistry()

		p := provider.Provider(lo.Must(cmd.Flags().GetString("provider")))
		if p == "" {
			p = classify.New(registry).Classify(args[0]).Provider
		}

		cascade := fallback.Configured(registry)
		attempts := cascade.Attempts(source.NewServer("", args[0]), p)
		if len(attempts) == 0 {
			cmd.Println(style.Faint(fmt.Sprintf("%s has no fallbacks for this url", p)))
			return
		}

		for _, a := range attempts {
			cmd.Printf("%s %s %s\n", icon.Get(icon.Arrow), style.Faint(fmt.Sprintf("%d/%d", a.Index+1, cascade.Limit(p))), a.URL)
		}
	},
}
