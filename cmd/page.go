package cmd

import (
	"encoding/json"
	"os"

	"github.com/reelcast/reelcast/dispatch"
	"github.com/reelcast/reelcast/filesystem"
	"github.com/reelcast/reelcast/page"
	"github.com/reelcast/reelcast/provider"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pageCmd)
	itemFlags(pageCmd)
	pageCmd.Flags().IntP("index", "i", 0, "Server index to render")
	pageCmd.Flags().StringP("output", "o", "", "Write the page to a file instead of stdout")
	pageCmd.SetOut(os.Stdout)
}

// pageCmd renders what the web renderer would load for a source.
var pageCmd = &cobra.Command{
	Use:   "page [url...]",
	Short: "Render the web player page or sandbox payload of a source",
	Long: `Render what the web renderer would load for a source.
DASH sources produce a standalone player page, sandboxed embeds produce
the page url with its cleanup script as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		registry := loadRegistry()
		it, err := itemFromFlags(cmd, args, registry)
		handleErr(err)

		plan, err := dispatch.Configured(registry).Resolve(it.servers, lo.Must(cmd.Flags().GetInt("index")), 0)
		handleErr(err)

		var out []byte
		switch plan.Category {
		case provider.DashDrmWebPlayer:
			out, err = page.RenderDash(plan)
		default:
			var payload *page.Payload
			if payload, err = page.Sandbox(plan); err == nil {
				out, err = json.MarshalIndent(payload, "", "  ")
			}
		}
		handleErr(err)

		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			handleErr(filesystem.WriteAtomic(output, out))
			cmd.Println(output)
			return
		}
		_, err = cmd.OutOrStdout().Write(out)
		handleErr(err)
	},
}
