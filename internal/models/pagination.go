package models

// Page is the paged list document returned by every list endpoint
// (docs/totalDocs/limit/page/totalPages plus navigation hints).
type Page struct {
	Docs          interface{} `json:"docs"`
	TotalDocs     int         `json:"totalDocs"`
	Limit         int         `json:"limit"`
	Page          int         `json:"page"`
	TotalPages    int         `json:"totalPages"`
	PagingCounter int         `json:"pagingCounter"`
	HasPrevPage   bool        `json:"hasPrevPage"`
	HasNextPage   bool        `json:"hasNextPage"`
	PrevPage      *int        `json:"prevPage"`
	NextPage      *int        `json:"nextPage"`
}

// NewPage assembles the paged document for one result set. Page and limit are
// clamped to sane minimums so the navigation hints stay consistent.
func NewPage(docs interface{}, total, page, limit int) *Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if total < 0 {
		total = 0
	}

	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	p := Page{
		Docs:          docs,
		TotalDocs:     total,
		Limit:         limit,
		Page:          page,
		TotalPages:    totalPages,
		PagingCounter: (page-1)*limit + 1,
		HasPrevPage:   page > 1,
		HasNextPage:   page < totalPages,
	}
	if p.HasPrevPage {
		prev := page - 1
		p.PrevPage = &prev
	}
	if p.HasNextPage {
		next := page + 1
		p.NextPage = &next
	}
	return &p
}
