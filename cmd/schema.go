package cmd

import (
	"encoding/json"
	"os"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/reelcast/reelcast/catalog"
	"github.com/reelcast/reelcast/provider"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().BoolP("provider", "p", false, "Generate the JSON Schema of custom provider definitions")
}

// schemaCmd prints the JSON Schema of the files reelcast reads.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON Schema of the catalog file or of custom provider definitions",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			switch t.Name() {
			case "Server", "Entry", "Season", "Episode", "Catalog":
				return "catalog." + t.Name()
			}
			return t.Name()
		}

		var schema *jsonschema.Schema
		switch {
		case lo.Must(cmd.Flags().GetBool("provider")):
			schema = reflector.Reflect(&provider.Definition{})
		default:
			schema = reflector.Reflect(&catalog.Catalog{})
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(schema))
	},
}
