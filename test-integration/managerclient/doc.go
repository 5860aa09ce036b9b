// Package integration provides integration tests for the ModuSnap manager
// client. The tests run the real client against an in-process mock engine
// and validate the status, catalog and batch flows end to end.
package integration
