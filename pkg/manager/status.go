package manager

import (
	"context"
	"net/http"

	"github.com/tidwall/gjson"
)

const statusPath = "/api/manager/status"

const unknownProfile = "unknown"

// Status queries the engine's health. A transport failure is absorbed
// into a down report, never surfaced as an error: status is a read that
// must always produce a usable value.
func (c *Client) Status(ctx context.Context, ep Endpoint) StatusReport {
	res := c.http.Do(ctx, http.MethodGet, ep.url(statusPath), nil, ep.APIKey)
	if !res.OK {
		c.logger.Debug("manager status request failed", "error", res.Err.Error)
		return StatusReport{
			State:           HealthDown,
			HardwareProfile: unknownProfile,
			NodeCount:       0,
		}
	}

	state := HealthDegraded
	if gjson.GetBytes(res.Body, "managerRoutesReachable").Bool() {
		state = HealthActive
	}

	return StatusReport{
		State:           state,
		HardwareProfile: stringField(res.Body, "hardwareProfile", unknownProfile),
		NodeCount:       intField(res.Body, "nodeCount"),
	}
}
