package manager

import (
	"github.com/tidwall/gjson"

	"github.com/MTheUnexpected-1/ModuSnap-ComfyUI-Manager/pkg/versions"
)

// UpdateAvailable reports whether a catalog entry advertises a newer
// version than the one installed. It reads the optional installedVersion
// and latestVersion fields leniently: when either is missing, empty or
// not a string, no update is reported.
func UpdateAvailable(entry gjson.Result) bool {
	installed := entry.Get("installedVersion")
	latest := entry.Get("latestVersion")
	if installed.Type != gjson.String || latest.Type != gjson.String {
		return false
	}
	if installed.Str == "" || latest.Str == "" {
		return false
	}
	return versions.IsNewerVersion(latest.Str, installed.Str)
}
