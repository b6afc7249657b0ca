// Package cmd implements the command-line interface for reelcast.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/reelcast/reelcast/color"
	"github.com/reelcast/reelcast/constant"
	"github.com/reelcast/reelcast/icon"
	"github.com/reelcast/reelcast/key"
	"github.com/reelcast/reelcast/log"
	"github.com/reelcast/reelcast/player"
	"github.com/reelcast/reelcast/style"
	"github.com/reelcast/reelcast/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("player", "P", "", "Renderer used for playback (mpv, browser, auto)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("player", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return player.Names(), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.Player, rootCmd.PersistentFlags().Lookup("player")))

	rootCmd.PersistentFlags().StringSlice("prefer", []string{}, "Providers or server names to try first")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("prefer", completionProviders))
	lo.Must0(viper.BindPFlag(key.ServersPreferred, rootCmd.PersistentFlags().Lookup("prefer")))

	rootCmd.Flags().BoolP("continue", "c", false, "Play the most recent history entry with the server that worked last")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

// rootCmd defines the entry point for the reelcast application.
var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "Resolve video sources and hand them to the right player",
	Long: constant.Banner + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Resolve video sources and hand them to the right player"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if lo.Must(cmd.Flags().GetBool("continue")) {
			handleErr(continueLast(cmd))
			return
		}

		handleErr(playInteractive(cmd))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

func warn(err error) {
	if err != nil {
		log.Warn(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", style.Fg(color.Yellow)(icon.Get(icon.Warn)), err)
	}
}
