package cmd

import (
	"fmt"
	"os"

	"github.com/reelcast/reelcast/color"
	"github.com/reelcast/reelcast/dispatch"
	"github.com/reelcast/reelcast/icon"
	"github.com/reelcast/reelcast/navigation"
	"github.com/reelcast/reelcast/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(navCmd)
	navCmd.SetOut(os.Stdout)
}

// navCmd replays a sequence of navigations against the sandbox guard.
var navCmd = &cobra.Command{
	Use:   "nav [origin] [target...]",
	Short: "Check which navigations a sandboxed page would be allowed to make",
	Long: `Replay navigation requests of a sandboxed page loaded from origin, in order,
and print the guard's verdict for each.`,
	Example: `  reelcast nav https://multiembed.mov/directstream.php?video_id=603 https://streamingnow.mov/play https://ads.example.com/`,
	Args:    cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		options := navigation.Configured()
		options.OnTerminal = func(err error) {
			cmd.Printf("%s session ended: %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), dispatch.UserMessage(err))
		}

		session := navigation.NewSession(loadRegistry(), args[0], options)
		defer session.Close()

		cmd.Printf("%s %s %s\n", icon.Get(icon.Globe), args[0], style.Faint("timeout "+session.Timeout().String()))
		session.OnLoadStarted()

		for _, target := range args[1:] {
			decision := session.Evaluate(target)
			verdict := style.Fg(color.Green)(icon.Get(icon.Success))
			if !decision.Allowed {
				verdict = style.Fg(color.Red)(icon.Get(icon.Shield))
			}

			hop := ""
			if decision.Hop {
				hop = style.Faint(" hop")
			}
			cmd.Printf("%s %s %s%s\n", verdict, style.Fg(color.Purple)(string(decision.Rule)), target, hop)
		}

		cmd.Println(style.Faint(fmt.Sprintf("%d redirects, %s", session.RedirectCount(), session.State())))
	},
}
