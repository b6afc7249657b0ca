package cmd

import (
	"encoding/json"
	"os"

	"github.com/reelcast/reelcast/classify"
	"github.com/reelcast/reelcast/color"
	"github.com/reelcast/reelcast/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().BoolP("json", "j", false, "Format the output as JSON lines")
	classifyCmd.SetOut(os.Stdout)
}

// classifyCmd shows which provider and player category a URL maps to.
var classifyCmd = &cobra.Command{
	Use:   "classify [url...]",
	Short: "Show the provider and player category of URLs",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		classifier := classify.New(loadRegistry())
		asJSON := lo.Must(cmd.Flags().GetBool("json"))
		encoder := json.NewEncoder(cmd.OutOrStdout())

		for _, arg := range args {
			c := classifier.Classify(arg)
			if asJSON {
				handleErr(encoder.Encode(struct {
					URL string `json:"url"`
					classify.Classification
				}{arg, c}))
				continue
			}

			provider := style.Bold(string(c.Provider))
			if c.Warning() != nil {
				provider = style.Fg(color.Yellow)(string(c.Provider))
			}
			cmd.Printf("%s %s %s %s\n", provider, style.Fg(color.Purple)(string(c.Category)), style.Faint("("+string(c.Rule)+")"), arg)
		}
	},
}
