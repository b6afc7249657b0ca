package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/reelcast/reelcast/color"
	"github.com/reelcast/reelcast/filesystem"
	"github.com/reelcast/reelcast/icon"
	"github.com/reelcast/reelcast/key"
	"github.com/reelcast/reelcast/manifest"
	"github.com/reelcast/reelcast/network"
	"github.com/reelcast/reelcast/style"
	"github.com/reelcast/reelcast/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().IntP("height", "H", 0, "Print only the variant picked for this height")
	probeCmd.Flags().StringP("base", "b", "", "Base url for relative variants of a local playlist")
	probeCmd.SetOut(os.Stdout)
}

// probeCmd lists the variants or segments of an HLS playlist.
var probeCmd = &cobra.Command{
	Use:   "probe [url|file]",
	Short: "List the variants of an HLS master playlist or summarize a media playlist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		playlist, err := loadPlaylist(cmd, args[0])
		handleErr(err)

		if height := lo.Must(cmd.Flags().GetInt("height")); height > 0 {
			v, err := playlist.Pick(height)
			handleErr(err)
			cmd.Println(v.URL)
			return
		}

		if !playlist.Master {
			kind := "vod"
			if playlist.Live {
				kind = "live"
			}
			cmd.Printf("%s %s, %s\n", style.Bold(kind), util.Quantify(playlist.Segments, "segment", "segments"), playlist.Duration)
			if playlist.Encryption != "" {
				lock := style.Fg(color.Yellow)(icon.Get(icon.Lock))
				if playlist.Protected() {
					lock = style.Fg(color.Red)(icon.Get(icon.Lock))
				}
				cmd.Printf("%s %s %s\n", lock, playlist.Encryption, style.Faint(playlist.KeyFormat))
			}
			return
		}

		for _, v := range playlist.Variants {
			detail := v.Codecs
			if v.FrameRate > 0 {
				detail = strings.TrimSpace(fmt.Sprintf("%gfps %s", v.FrameRate, detail))
			}
			cmd.Printf("%s %s %s\n", style.Bold(fmt.Sprintf("%-16s", v)), style.Faint(detail), v.URL)
		}
	},
}

func loadPlaylist(cmd *cobra.Command, target string) (*manifest.Playlist, error) {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		ctx, cancel := context.WithTimeout(context.Background(), viper.GetDuration(key.NavigationLoadTimeout))
		defer cancel()
		return manifest.Fetch(ctx, network.Client, target)
	}

	f, err := filesystem.API().Open(target)
	if err != nil {
		return nil, err
	}
	defer util.Ignore(f.Close)
	return manifest.Parse(f, lo.Must(cmd.Flags().GetString("base")))
}
