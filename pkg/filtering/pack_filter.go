package filtering

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// PackFilter selects catalog entries matching a search query.
type PackFilter interface {
	// Apply filters the node_packs mapping by a case-insensitive substring
	// query against pack ids and titles. An empty query keeps everything.
	Apply(packs gjson.Result, query string) *FilterResult
}

// Entry is a single catalog entry surviving the filter, keyed by pack id
// with the entry's raw JSON value untouched.
type Entry struct {
	Key string
	Raw string
}

// FilterResult holds the matching entries in the source document's order.
type FilterResult struct {
	Entries []Entry
}

// Count returns the number of matching entries.
func (r *FilterResult) Count() int {
	return len(r.Entries)
}

// JSON serializes the filtered mapping back to a JSON object, keeping the
// original key order and each entry's original serialization.
func (r *FilterResult) JSON() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range r.Entries {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			continue
		}
		b.Write(key)
		b.WriteByte(':')
		b.WriteString(e.Raw)
	}
	b.WriteByte('}')
	return b.String()
}

// DefaultPackFilter implements substring matching on pack ids and titles.
type DefaultPackFilter struct{}

// NewDefaultPackFilter creates a new DefaultPackFilter
func NewDefaultPackFilter() *DefaultPackFilter {
	return &DefaultPackFilter{}
}

// Apply filters the node_packs mapping by the query.
//
// Logic:
//  1. A missing or non-object mapping yields an empty result.
//  2. The query is trimmed and lowercased; an empty query keeps every entry.
//  3. An entry is kept when the lowercase pack id contains the query, or
//     the lowercase "title" field contains it. A missing or non-string
//     title compares as the empty string.
func (*DefaultPackFilter) Apply(packs gjson.Result, query string) *FilterResult {
	result := &FilterResult{}
	if !packs.Exists() || !packs.IsObject() {
		return result
	}

	q := strings.ToLower(strings.TrimSpace(query))
	packs.ForEach(func(key, value gjson.Result) bool {
		if q == "" || matchesQuery(q, key.String(), value) {
			result.Entries = append(result.Entries, Entry{Key: key.String(), Raw: value.Raw})
		}
		return true
	})
	return result
}

// matchesQuery reports whether a single entry matches a normalized,
// non-empty query.
func matchesQuery(q, id string, entry gjson.Result) bool {
	if strings.Contains(strings.ToLower(id), q) {
		return true
	}
	title := entry.Get("title")
	if title.Type != gjson.String {
		return false
	}
	return strings.Contains(strings.ToLower(title.Str), q)
}
