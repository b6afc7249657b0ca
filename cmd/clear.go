package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/reelcast/reelcast/icon"
	"github.com/reelcast/reelcast/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// clearable names the locations clear may remove.
var clearable = []string{"history", "cache", "temp"}

func init() {
	rootCmd.AddCommand(clearCmd)
	for _, name := range clearable {
		l, _ := lo.Find(locations, func(l *location) bool { return l.argLong == name })
		clearCmd.Flags().Bool(name, false, "Remove the "+l.name+" files")
	}
}

// clearCmd removes history, cached and temporary files.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove history, cached release info or rendered player pages",
	Run: func(cmd *cobra.Command, args []string) {
		cleared := false
		for _, l := range locations {
			if !lo.Contains(clearable, l.argLong) || !lo.Must(cmd.Flags().GetBool(l.argLong)) {
				continue
			}

			cleared = true
			if err := util.Delete(l.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
				handleErr(err)
			}
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), l.name)
		}

		if !cleared {
			handleErr(cmd.Help())
		}
	},
}
