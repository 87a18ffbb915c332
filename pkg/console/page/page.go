// Package page models paginated list queries and normalizes the paged
// documents the platform API returns for them.
package page

import "encoding/json"

const defaultPageSize = 10

// Query carries the search/pagination/filter parameters driving a list fetch.
type Query struct {
	Search   string
	Page     int
	PageSize int
	Filters  map[string]string
}

// Normalized returns a copy of the query with page and page size clamped to
// their minimums.
func (q Query) Normalized() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	return q
}

// Raw mirrors the wire shape of a paged list body
// (docs/totalDocs/limit/page/totalPages). Every field stays loosely typed so
// that malformed or partial server responses degrade into defaults instead of
// failing the fetch.
type Raw struct {
	Docs       json.RawMessage `json:"docs"`
	TotalDocs  json.RawMessage `json:"totalDocs"`
	Limit      json.RawMessage `json:"limit"`
	Page       json.RawMessage `json:"page"`
	TotalPages json.RawMessage `json:"totalPages"`
}

// Result is a well-formed description of one page of server data.
type Result[T any] struct {
	Items      []T
	TotalItems int
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// Empty returns the result shown when a fetch fails: an empty, navigable
// first page.
func Empty[T any]() Result[T] {
	return Result[T]{Items: []T{}, TotalItems: 0, Page: 1, TotalPages: 1}
}

// Normalize coerces a raw paged body into a well-formed Result. It is a pure
// function and never fails: missing or mistyped fields are substituted with
// safe defaults, and the prev/next flags are always recomputed from the page
// counters. The server-reported page wins over the fallback query's, since
// the server is authoritative for clamping out-of-range pages.
func Normalize[T any](raw Raw, fallback Query) Result[T] {
	fallback = fallback.Normalized()

	var items []T
	if len(raw.Docs) > 0 {
		if err := json.Unmarshal(raw.Docs, &items); err != nil {
			items = nil
		}
	}
	if items == nil {
		items = []T{}
	}

	totalItems, ok := intField(raw.TotalDocs)
	if !ok || totalItems < 0 {
		totalItems = 0
	}

	pageSize, ok := intField(raw.Limit)
	if !ok || pageSize < 1 {
		pageSize = fallback.PageSize
	}

	totalPages, ok := intField(raw.TotalPages)
	if !ok || totalPages < 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}
	if totalPages < 1 {
		totalPages = 1
	}

	current, ok := intField(raw.Page)
	if !ok || current < 1 {
		current = fallback.Page
	}

	return Result[T]{
		Items:      items,
		TotalItems: totalItems,
		Page:       current,
		TotalPages: totalPages,
		HasPrev:    current > 1,
		HasNext:    current < totalPages,
	}
}

func intField(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return int(n), true
}
