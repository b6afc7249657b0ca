package cmd

import (
	"os"
	"time"

	"github.com/reelcast/reelcast/history"
	"github.com/reelcast/reelcast/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Number of entries to display")
	historyCmd.SetOut(os.Stdout)
}

// historyCmd lists the servers that played last, newest first.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display the server that played last for each title",
	Run: func(cmd *cobra.Command, args []string) {
		records, err := history.List()
		handleErr(err)

		for _, r := range lo.Slice(records, 0, lo.Must(cmd.Flags().GetInt("limit"))) {
			cmd.Printf("%s %s\n", style.Faint(r.PlayedAt.Local().Format(time.DateTime)), r)
		}
	},
}
