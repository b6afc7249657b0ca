package cmd

import (
	"encoding/json"
	"os"

	"github.com/reelcast/reelcast/drm"
	"github.com/reelcast/reelcast/icon"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(drmCmd)
	serverFlags(drmCmd)
	drmCmd.Flags().BoolP("json", "j", false, "Print the Shaka Player drm configuration as JSON")
	drmCmd.SetOut(os.Stdout)
}

// drmCmd shows the DRM configuration a source resolves to.
var drmCmd = &cobra.Command{
	Use:   "drm [url]",
	Short: "Show the DRM configuration built for a source",
	Long: `Show the DRM configuration built for a source.
The url is only used for the protection heuristic when --drm is not given.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		license := mo.EmptyableToOption(lo.Must(cmd.Flags().GetString("license")))
		explicit := mo.None[bool]()
		if cmd.Flags().Changed("drm") {
			explicit = mo.Some(lo.Must(cmd.Flags().GetBool("drm")))
		}
		heuristic := len(args) > 0 && drm.Heuristic(args[0])

		cfg := drm.Configured().Build(license, explicit, heuristic)
		warn(cfg.Warning)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(cfg.Shaka()))
			return
		}
		if cfg.Protected() {
			cmd.Print(icon.Get(icon.Key), " ")
		}
		cmd.Println(cfg.String())
	},
}
