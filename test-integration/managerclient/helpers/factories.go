package helpers

import (
	"fmt"
	"strings"
)

// CatalogPack describes one entry for BuildCatalog.
type CatalogPack struct {
	ID               string
	Title            string
	InstalledVersion string
	LatestVersion    string
}

// BuildCatalog renders a node_packs document from the given packs,
// preserving their order.
func BuildCatalog(packs []CatalogPack) string {
	var sb strings.Builder
	sb.WriteString(`{"node_packs": {`)
	for i, p := range packs {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `%q: {"title": %q`, p.ID, p.Title)
		if p.InstalledVersion != "" {
			fmt.Fprintf(&sb, `, "installedVersion": %q`, p.InstalledVersion)
		}
		if p.LatestVersion != "" {
			fmt.Fprintf(&sb, `, "latestVersion": %q`, p.LatestVersion)
		}
		sb.WriteString("}")
	}
	sb.WriteString("}}")
	return sb.String()
}

// LargeCatalog builds a catalog with n packs whose entries each carry a
// filler description of the given length. Useful for truncation tests.
func LargeCatalog(n, fillerLen int) string {
	filler := strings.Repeat("x", fillerLen)
	packs := make([]string, 0, n)
	for i := 0; i < n; i++ {
		packs = append(packs, fmt.Sprintf(`"pack-%04d": {"title": "Pack %04d", "description": %q}`, i, i, filler))
	}
	return `{"node_packs": {` + strings.Join(packs, ",") + `}}`
}
