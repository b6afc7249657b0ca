package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/reelcast/reelcast/classify"
	"github.com/reelcast/reelcast/enhance"
	"github.com/reelcast/reelcast/provider"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(enhanceCmd)
	enhanceCmd.Flags().StringP("provider", "p", "", "Provider whose parameters apply; classified from the URL when empty")
	lo.Must0(enhanceCmd.RegisterFlagCompletionFunc("provider", completionProviders))
	enhanceCmd.SetOut(os.Stdout)
}

// enhanceCmd prints the canonical form of a URL.
var enhanceCmd = &cobra.Command{
	Use:   "enhance [url]",
	Short: "Print the canonical, parameter-enhanced form of a URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		registry := loadRegistry()

		p := provider.Provider(lo.Must(cmd.Flags().GetString("provider")))
		if p == "" {
			p = classify.New(registry).Classify(args[0]).Provider
		} else if _, ok := registry.Lookup(p); !ok {
			handleErr(fmt.Errorf("unknown provider %q", p))
		}

		enhanced, err := enhance.New(registry).EnhanceReport(args[0], p)
		if errors.Is(err, enhance.ErrNoop) {
			warn(fmt.Errorf("%s: no content id in url, left unchanged", p))
		}
		cmd.Println(enhanced)
	},
}
