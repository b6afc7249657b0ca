package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reelcast/reelcast/color"
	"github.com/reelcast/reelcast/filesystem"
	"github.com/reelcast/reelcast/icon"
	"github.com/reelcast/reelcast/key"
	"github.com/reelcast/reelcast/provider"
	"github.com/reelcast/reelcast/style"
	"github.com/reelcast/reelcast/util"
	"github.com/reelcast/reelcast/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(providersCmd)
}

// providersCmd provides a parent command for the provider table.
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Inspect built-in providers and manage custom ones",
}

func init() {
	providersCmd.AddCommand(providersListCmd)

	providersListCmd.Flags().BoolP("raw", "r", false, "Suppress headers and print provider ids only")
	providersListCmd.Flags().BoolP("custom", "c", false, "Display only custom providers")
	providersListCmd.Flags().BoolP("builtin", "b", false, "Display only built-in providers")

	providersListCmd.MarkFlagsMutuallyExclusive("custom", "builtin")
	providersListCmd.SetOut(os.Stdout)
}

// providersListCmd displays the provider table in match order.
var providersListCmd = &cobra.Command{
	Use:   "list",
	Short: "Display every provider in host match order",
	Run: func(cmd *cobra.Command, args []string) {
		raw := lo.Must(cmd.Flags().GetBool("raw"))
		onlyCustom := lo.Must(cmd.Flags().GetBool("custom"))
		onlyBuiltin := lo.Must(cmd.Flags().GetBool("builtin"))

		profiles := lo.Filter(loadRegistry().Profiles(), func(p *provider.Profile, _ int) bool {
			return !(onlyCustom && !p.Custom) && !(onlyBuiltin && p.Custom)
		})

		for _, p := range profiles {
			if raw {
				cmd.Println(p.Provider)
				continue
			}

			tag := ""
			if p.Custom {
				tag = style.Fg(color.Yellow)(" custom")
			}
			cmd.Printf("%s %s%s %s\n",
				style.Bold(string(p.Provider)),
				style.Fg(color.Purple)(string(p.Category)),
				tag,
				style.Faint(strings.Join(p.Hosts, ", ")),
			)
		}
	},
}

func init() {
	providersCmd.AddCommand(providersShowCmd)
	providersShowCmd.SetOut(os.Stdout)
}

// providersShowCmd prints one profile in full.
var providersShowCmd = &cobra.Command{
	Use:               "show [provider]",
	Short:             "Display the parameters, fallbacks and navigation rules of a provider",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionProviders,
	Run: func(cmd *cobra.Command, args []string) {
		p, ok := loadRegistry().Lookup(provider.Provider(strings.ToLower(args[0])))
		if !ok {
			handleErr(fmt.Errorf("unknown provider %q", args[0]))
		}

		row := func(name string, value any) {
			cmd.Printf("  %s %v\n", style.Faint(fmt.Sprintf("%-12s", name)), value)
		}

		cmd.Printf("%s %s\n\n", style.Fg(color.Purple)("▇▇▇"), style.Bold(p.String()))
		row("Id", p.Provider)
		row("Category", p.Category)
		if len(p.Hosts) > 0 {
			row("Hosts", strings.Join(p.Hosts, ", "))
		}
		if p.Family != "" {
			row("Family", fmt.Sprintf("%s (trusted %t)", p.Family, p.Trusted))
		}
		if p.Aggregator {
			row("Downstream", strings.Join(p.Downstream, ", "))
		}
		if p.LoadTimeout > 0 {
			row("Timeout", p.LoadTimeout)
		}
		if canonical := p.Canonical(); canonical != "" {
			row("Params", canonical)
		}
		if p.Rewrite != "" {
			row("Rewrite", p.Rewrite)
		}
		if len(p.Fallbacks) > 0 {
			row("Fallbacks", fmt.Sprintf("%d of %d", p.Limit(viper.GetInt(key.FallbackDefaultMaxAttempts)), len(p.Fallbacks)))
			for i, f := range p.Fallbacks {
				label := f.Label
				if label == "" {
					label = f.Base + "?" + provider.EncodeParams(f.Params)
				}
				cmd.Printf("  %s %s\n", style.Faint(fmt.Sprintf("%12d", i+1)), label)
			}
		}
		if len(p.Cleanup.Selectors) > 0 {
			row("Cleanup", util.Quantify(len(p.Cleanup.Selectors), "selector", "selectors"))
		}
	},
}

func init() {
	providersCmd.AddCommand(providersGenCmd)

	providersGenCmd.Flags().StringP("name", "n", "", "Display name of the new provider")
	providersGenCmd.Flags().StringSliceP("host", "H", []string{}, "Domains owned by the provider")

	lo.Must0(providersGenCmd.MarkFlagRequired("name"))
	lo.Must0(providersGenCmd.MarkFlagRequired("host"))
	providersGenCmd.SetOut(os.Stdout)
}

// providersGenCmd scaffolds a custom provider definition.
var providersGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Scaffold a custom provider definition in the providers directory",
	Long: `Write a starter JSON definition for a sandboxed embed provider.
Edit it, then check it with "reelcast providers show".`,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := provider.Scaffold(
			where.Providers(),
			lo.Must(cmd.Flags().GetString("name")),
			lo.Must(cmd.Flags().GetStringSlice("host")),
		)
		handleErr(err)
		cmd.Println(path)
	},
}

func init() {
	providersCmd.AddCommand(providersRemoveCmd)

	providersRemoveCmd.Flags().StringArrayP("name", "n", []string{}, "Id of the custom provider(s) to remove")
	lo.Must0(providersRemoveCmd.RegisterFlagCompletionFunc("name", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		files, err := filesystem.API().ReadDir(where.Providers())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		return lo.FilterMap(files, func(item os.FileInfo, _ int) (string, bool) {
			name := item.Name()
			return strings.TrimSuffix(name, provider.Extension), strings.HasSuffix(name, provider.Extension)
		}), cobra.ShellCompDirectiveNoFileComp
	}))
}

// providersRemoveCmd deletes custom provider definitions.
var providersRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Delete custom provider definitions",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range lo.Must(cmd.Flags().GetStringArray("name")) {
			path := filepath.Join(where.Providers(), name+provider.Extension)
			handleErr(filesystem.API().Remove(path))
			fmt.Printf("%s removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
		}
	},
}
