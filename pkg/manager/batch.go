package manager

import (
	"context"
	"net/http"
)

const batchPath = "/api/manager/batch"

// MaxBatchDetailChars bounds the details string returned by BatchOperate.
const MaxBatchDetailChars = 2000

// batchRequest is the engine's batch operation payload.
type batchRequest struct {
	Mode       BatchMode   `json:"mode"`
	SourceMode string      `json:"sourceMode"`
	Channel    string      `json:"channel"`
	Items      []BatchItem `json:"items"`
}

// BatchOperate applies one lifecycle mode to a comma-separated list of
// pack ids. An empty id list is a local validation failure and performs no
// network call. The engine's batch response is treated as an opaque blob:
// per-item outcomes are not interpreted here, and idempotence of repeated
// batches is entirely the engine's responsibility.
func (c *Client) BatchOperate(ctx context.Context, ep Endpoint, idsCSV string, mode BatchMode) BatchReport {
	ids := ParsePackIDs(idsCSV)
	if len(ids) == 0 {
		return BatchReport{OK: false, Details: "No pack ids provided."}
	}

	items := make([]BatchItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, BatchItem{ID: id, Title: id, UIKey: id})
	}

	req := batchRequest{
		Mode:       mode,
		SourceMode: "cache",
		Channel:    "default",
		Items:      items,
	}

	res := c.http.Do(ctx, http.MethodPost, ep.url(batchPath), req, ep.APIKey)
	if !res.OK {
		c.logger.Debug("manager batch request failed", "mode", string(mode), "error", res.Err.Error)
		return BatchReport{
			OK:      false,
			Details: truncateString(res.Err.JSON(), MaxBatchDetailChars),
		}
	}

	return BatchReport{
		OK:      true,
		Details: truncateString(string(res.Body), MaxBatchDetailChars),
	}
}
