package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/reelcast/reelcast/catalog"
	"github.com/reelcast/reelcast/color"
	"github.com/reelcast/reelcast/dispatch"
	"github.com/reelcast/reelcast/history"
	"github.com/reelcast/reelcast/icon"
	"github.com/reelcast/reelcast/key"
	"github.com/reelcast/reelcast/player"
	"github.com/reelcast/reelcast/provider"
	"github.com/reelcast/reelcast/session"
	"github.com/reelcast/reelcast/style"
	"github.com/reelcast/reelcast/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)
	itemFlags(playCmd)
	playCmd.Flags().IntP("index", "i", -1, "Server index to start from; defaults to the server that worked last")
}

// playCmd plays a catalog item or URLs, falling back through every server until one plays.
var playCmd = &cobra.Command{
	Use:   "play [url...]",
	Short: "Play a catalog title or URLs, falling back until a source plays",
	Example: `  reelcast play --title "The Matrix"
  reelcast play -t "Breaking Bad" -s 1 -e 2
  reelcast play https://www.youtube.com/watch?v=dQw4w9WgXcQ`,
	Run: func(cmd *cobra.Command, args []string) {
		registry := loadRegistry()
		it, err := itemFromFlags(cmd, args, registry)
		handleErr(err)
		handleErr(play(cmd, it, registry, lo.Must(cmd.Flags().GetInt("index"))))
	},
}

// play runs a playback session for it. A negative start resumes the server
// recorded in history, if any.
func play(cmd *cobra.Command, it *item, registry *provider.Registry, start int) error {
	renderer, err := player.Configured()
	if err != nil {
		return err
	}
	if _, ok := renderer.(*player.MPV); ok {
		CheckDependencies()
	}

	if start < 0 {
		start = resumeIndex(it)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd.Printf("%s %s\n", icon.Get(icon.Play), style.Bold(it.String()))
	plan, err := session.Run(ctx, dispatch.Configured(registry), it.servers, renderer, session.Options{
		Start: start,
		OnFailure: func(plan *dispatch.Plan, err error) {
			cmd.Printf("%s %s %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), plan, style.Faint(dispatch.UserMessage(err)))
		},
	})
	if err != nil {
		return errors.New(dispatch.UserMessage(err))
	}

	for _, w := range plan.Warnings {
		warn(w)
	}
	cmd.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), plan)

	if viper.GetBool(key.HistorySaveOnPlay) {
		if err := history.Save(history.NewRecord(it.title, it.season, it.episode, plan)); err != nil {
			warn(fmt.Errorf("save history: %w", err))
		}
	}
	return nil
}

// resumeIndex is the position of the server recorded for it, or 0.
func resumeIndex(it *item) int {
	last, err := history.Last(it.title, it.season, it.episode)
	if err != nil || last.IsAbsent() {
		return 0
	}

	record := last.MustGet()
	for i, s := range it.servers {
		if s.Name == record.Server && s.URL == record.URL {
			return i
		}
	}
	for i, s := range it.servers {
		if s.Name == record.Server {
			return i
		}
	}
	return 0
}

// continueLast plays the most recent history entry again.
func continueLast(cmd *cobra.Command) error {
	records, err := history.List()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errors.New("history is empty")
	}

	record := records[0]
	registry := loadRegistry()

	c, err := catalog.Configured()
	if err != nil {
		return err
	}
	entry, err := c.Find(record.Title)
	if err != nil {
		return err
	}

	it, err := entryItem(entry, record.Season, record.Episode, registry)
	if err != nil {
		return err
	}
	return play(cmd, it, registry, -1)
}

// playInteractive asks for a catalog title, and season and episode for shows.
func playInteractive(cmd *cobra.Command) error {
	c, err := catalog.Configured()
	if err != nil {
		return err
	}
	if len(c.Entries) == 0 {
		return fmt.Errorf("catalog is empty, add titles to %s", where.Catalog())
	}

	var title string
	if err := survey.AskOne(&survey.Select{
		Message: "Title",
		Options: c.Titles(),
	}, &title); err != nil {
		return err
	}

	entry, err := c.Find(title)
	if err != nil {
		return err
	}

	var season, episode int
	if entry.Kind == provider.TV {
		if season, err = askNumber("Season", lo.Map(entry.Seasons, func(s *catalog.Season, _ int) int { return s.Number })); err != nil {
			return err
		}

		var episodes []int
		if s, ok := lo.Find(entry.Seasons, func(s *catalog.Season) bool { return s.Number == season }); ok {
			episodes = lo.Map(s.Episodes, func(e *catalog.Episode, _ int) int { return e.Number })
		}
		if episode, err = askNumber("Episode", episodes); err != nil {
			return err
		}
	}

	registry := loadRegistry()
	it, err := entryItem(entry, season, episode, registry)
	if err != nil {
		return err
	}
	return play(cmd, it, registry, -1)
}

// askNumber selects from known numbers, or asks for one when none are listed.
func askNumber(message string, known []int) (int, error) {
	var answer string
	if len(known) > 0 {
		err := survey.AskOne(&survey.Select{
			Message: message,
			Options: lo.Map(known, func(n int, _ int) string { return strconv.Itoa(n) }),
		}, &answer)
		if err != nil {
			return 0, err
		}
		return strconv.Atoi(answer)
	}

	err := survey.AskOne(&survey.Input{Message: message}, &answer, survey.WithValidator(func(ans any) error {
		n, err := strconv.Atoi(fmt.Sprint(ans))
		if err != nil || n < 1 {
			return errors.New("enter a positive number")
		}
		return nil
	}))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(answer)
}
