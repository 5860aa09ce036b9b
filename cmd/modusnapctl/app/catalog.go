package app

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/MTheUnexpected-1/ModuSnap-ComfyUI-Manager/pkg/manager"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List content packs from the engine's cached catalog",
	Long: `Query the manager engine's cached catalog view (no forced refresh) and
print the content-pack mapping as JSON.

The search query filters packs by a case-insensitive substring match on
pack id or title. With --updates-only, only packs whose catalog entry
advertises a newer version than the installed one are printed; this
requires the catalog JSON to be within the truncation bound.`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().String("search", "", "Case-insensitive substring filter on pack ids and titles")
	catalogCmd.Flags().Bool("updates-only", false, "Only show packs with an update available")
	catalogCmd.Flags().String("format", "text", "Output format (text, json)")
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	client, endpoint, err := loadSettings()
	if err != nil {
		return err
	}

	search, _ := cmd.Flags().GetString("search")
	updatesOnly, _ := cmd.Flags().GetBool("updates-only")

	report := client.Catalog(cmd.Context(), endpoint, search)

	catalogJSON := report.CatalogJSON
	count := report.PackCount

	if updatesOnly {
		// A truncated catalog can be invalid JSON; in that case the update
		// filter cannot be applied and the raw result is printed instead.
		if !json.Valid([]byte(catalogJSON)) {
			slog.Warn("catalog JSON is truncated or invalid, cannot filter for updates")
		} else {
			catalogJSON, count = filterUpdates(catalogJSON)
		}
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "json" {
		report.CatalogJSON = catalogJSON
		report.PackCount = count
		output, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format catalog report: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	fmt.Println(catalogJSON)
	fmt.Fprintf(cmd.ErrOrStderr(), "%d pack(s)\n", count)
	return nil
}

// filterUpdates keeps catalog entries whose metadata advertises a newer
// version than the installed one.
func filterUpdates(catalogJSON string) (string, int) {
	kept := make(map[string]json.RawMessage)
	gjson.Parse(catalogJSON).ForEach(func(key, value gjson.Result) bool {
		if manager.UpdateAvailable(value) {
			kept[key.String()] = json.RawMessage(value.Raw)
		}
		return true
	})

	out, err := json.Marshal(kept)
	if err != nil {
		return "{}", 0
	}
	return string(out), len(kept)
}
