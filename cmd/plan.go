package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/reelcast/reelcast/color"
	"github.com/reelcast/reelcast/dispatch"
	"github.com/reelcast/reelcast/drm"
	"github.com/reelcast/reelcast/provider"
	"github.com/reelcast/reelcast/source"
	"github.com/reelcast/reelcast/style"
	"github.com/reelcast/reelcast/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func completionProviders(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	registry, err := provider.Configured()
	if err != nil {
		registry = provider.Builtin()
	}
	return lo.Map(registry.Profiles(), func(p *provider.Profile, _ int) string {
		return string(p.Provider)
	}), cobra.ShellCompDirectiveNoFileComp
}

func loadRegistry() *provider.Registry {
	registry, err := provider.Configured()
	handleErr(err)
	return registry
}

// serverFlags registers the license flags shared by commands that take raw URLs.
func serverFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("license", "l", "", "ClearKey pair (keyId:key), license server URL or auth token")
	cmd.Flags().Bool("drm", false, "Mark the source as DRM protected; omit to infer it")
}

// serversFromArgs turns URL arguments into servers named after their position.
func serversFromArgs(cmd *cobra.Command, args []string) []source.Server {
	license := lo.Must(cmd.Flags().GetString("license"))
	servers := make([]source.Server, 0, len(args))

	for i, arg := range args {
		server := source.NewServer(fmt.Sprintf("server %d", i+1), arg).WithLicense(license)
		if cmd.Flags().Changed("drm") {
			server = server.WithDRM(lo.Must(cmd.Flags().GetBool("drm")))
		}
		handleErr(server.Validate())
		servers = append(servers, server)
	}
	return servers
}

type planView struct {
	Server    string             `json:"server"`
	Index     int                `json:"index"`
	Attempt   int                `json:"attempt"`
	Provider  provider.Provider  `json:"provider"`
	Category  provider.Category  `json:"category"`
	Container provider.Container `json:"container,omitempty"`
	URL       string             `json:"url"`
	DRM       drm.Config         `json:"drm"`
	Warnings  []string           `json:"warnings,omitempty"`
}

func viewOf(plan *dispatch.Plan) planView {
	return planView{
		Server:    plan.ServerName,
		Index:     plan.ServerIndex,
		Attempt:   plan.AttemptIndex,
		Provider:  plan.Provider,
		Category:  plan.Category,
		Container: plan.Container,
		URL:       plan.URL,
		DRM:       plan.DRM,
		Warnings:  lo.Map(plan.Warnings, func(err error, _ int) string { return err.Error() }),
	}
}

var planTemplate = lo.Must(template.New("plan").Funcs(template.FuncMap{
	"faint":  style.Faint,
	"bold":   style.Bold,
	"purple": style.Fg(color.Purple),
	"yellow": style.Fg(color.Yellow),
	"wrap":   func(s string) string { return util.Wrap(s, util.TerminalWidth(80)-12) },
	"indent": func(s string) string { return strings.ReplaceAll(s, "\n", "\n            ") },
}).Parse(`{{ purple "▇▇▇" }} {{ bold .Server }} {{ faint (printf "#%d attempt %d" .Index .Attempt) }}

  {{ faint "Provider" }}  {{ bold (print .Provider) }}
  {{ faint "Category" }}  {{ print .Category }}
{{- if .Container }}
  {{ faint "Container" }} {{ print .Container }}
{{- end }}
  {{ faint "DRM" }}       {{ .DRM.String }}
  {{ faint "URL" }}       {{ indent (wrap .URL) }}
{{- range .Warnings }}
  {{ yellow "!" }} {{ . }}
{{- end }}
`))

func printPlan(w io.Writer, plan *dispatch.Plan, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(viewOf(plan))
	}
	return planTemplate.Execute(w, viewOf(plan))
}
