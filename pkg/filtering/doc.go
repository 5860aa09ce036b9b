// Package filtering provides client-side filtering over the manager
// engine's content-pack catalog.
//
// The engine returns the catalog as a JSON mapping from pack id to pack
// entry. Filtering applies a case-insensitive substring query against both
// the pack id and the entry's "title" field, preserving the document order
// of the source and never mutating it. An empty or whitespace-only query
// passes the catalog through unchanged, and applying the same query twice
// yields the same set.
package filtering
