package manager

import (
	"fmt"
	"strings"
)

// HealthState is the coarse health of the manager engine, derived from
// transport outcome and the engine's reachability flag.
type HealthState string

const (
	// HealthActive means the engine replied and its manager routes are reachable
	HealthActive HealthState = "active"

	// HealthDegraded means the engine replied but manager routes are not reachable
	HealthDegraded HealthState = "degraded"

	// HealthDown means the engine could not be reached at all
	HealthDown HealthState = "down"
)

// BatchMode selects the lifecycle operation applied to a batch of packs.
type BatchMode string

const (
	// ModeInstall installs the listed packs
	ModeInstall BatchMode = "install"

	// ModeUninstall removes the listed packs
	ModeUninstall BatchMode = "uninstall"

	// ModeUpdate updates the listed packs
	ModeUpdate BatchMode = "update"
)

// ParseBatchMode validates a mode string from user input.
func ParseBatchMode(s string) (BatchMode, error) {
	switch BatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeInstall:
		return ModeInstall, nil
	case ModeUninstall:
		return ModeUninstall, nil
	case ModeUpdate:
		return ModeUpdate, nil
	default:
		return "", fmt.Errorf("invalid batch mode %q: must be install, uninstall or update", s)
	}
}

// Endpoint identifies a manager engine for a single call. It is supplied
// by the caller on every invocation; no session state is kept.
type Endpoint struct {
	// BaseURL is the engine's base URL, e.g. "http://127.0.0.1:3001"
	BaseURL string

	// APIKey is an optional bearer token. Empty means no auth header.
	APIKey string
}

// url joins the base URL and an API path, tolerating a trailing slash on
// the configured base.
func (e Endpoint) url(path string) string {
	return strings.TrimRight(e.BaseURL, "/") + path
}

// BatchItem is a single pack reference in a batch request. The engine
// resolves full metadata server-side, so title and ui-key default to the
// pack id.
type BatchItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	UIKey string `json:"__uiKey"`
}

// StatusReport is the shaped reply of a status query.
type StatusReport struct {
	State           HealthState `json:"state"`
	HardwareProfile string      `json:"hardwareProfile"`
	NodeCount       int         `json:"nodeCount"`
}

// CatalogReport is the shaped reply of a catalog query. CatalogJSON is
// hard-truncated to a fixed character bound and may therefore be invalid
// JSON; PackCount always reflects the pre-truncation entry count.
type CatalogReport struct {
	CatalogJSON string `json:"catalogJson"`
	PackCount   int    `json:"packCount"`
}

// BatchReport is the outcome of a batch operation. Details carries the
// engine's (truncated) response payload, or a validation or error message.
type BatchReport struct {
	OK      bool   `json:"ok"`
	Details string `json:"details"`
}

// ParsePackIDs splits a comma-separated id list, trimming whitespace and
// discarding empty pieces. Order is preserved.
func ParsePackIDs(csv string) []string {
	var ids []string
	for _, piece := range strings.Split(csv, ",") {
		if id := strings.TrimSpace(piece); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
