// Package manager is a typed client for the ModuSnap manager engine's
// HTTP API: engine status, the content-pack catalog, and batch
// install/uninstall/update operations.
//
// The engine owns all catalog and install state; this package only builds
// requests, sends them through the transport, and shapes the JSON replies
// into typed reports. Failures never escape as errors from the query
// methods: transport faults are absorbed into the report values, so a
// caller always gets a usable result. Entities are constructed per call
// and dropped after producing output; nothing is cached or shared between
// invocations.
package manager
