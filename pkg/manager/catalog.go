package manager

import (
	"context"
	"net/http"

	"github.com/tidwall/gjson"
)

// catalogPath requests the engine's cached catalog view, no forced refresh.
const catalogPath = "/api/manager/catalog?mode=cache&skip_update=true"

// MaxCatalogChars bounds the serialized catalog returned by Catalog.
const MaxCatalogChars = 200000

// Catalog queries the engine's cached content-pack catalog, optionally
// filtered by a case-insensitive substring query over pack ids and titles.
//
// On a transport failure the serialized error payload is returned as the
// catalog string with a zero count, so downstream consumers can inspect
// the failure instead of losing it. On success the filtered node_packs
// mapping is serialized and hard-truncated to MaxCatalogChars; PackCount
// reports the pre-truncation number of entries.
func (c *Client) Catalog(ctx context.Context, ep Endpoint, query string) CatalogReport {
	res := c.http.Do(ctx, http.MethodGet, ep.url(catalogPath), nil, ep.APIKey)
	if !res.OK {
		c.logger.Debug("manager catalog request failed", "error", res.Err.Error)
		return CatalogReport{
			CatalogJSON: res.Err.JSON(),
			PackCount:   0,
		}
	}

	packs := gjson.GetBytes(res.Body, "node_packs")
	filtered := c.filter.Apply(packs, query)

	return CatalogReport{
		CatalogJSON: truncateString(filtered.JSON(), MaxCatalogChars),
		PackCount:   filtered.Count(),
	}
}
