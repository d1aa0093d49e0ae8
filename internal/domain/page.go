package domain

const (
	defaultPageLimit = 20
	// MaxPageLimit caps every listing so one request cannot scan the table.
	MaxPageLimit = 100
	// MaxPage caps the page number so Offset stays well inside int range.
	MaxPage = 1_000_000
)

// PaginationParams carries page/limit values from the HTTP layer to the repo layer.
// Page is 1-indexed.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional query params.
// Nil or non-positive values fall back to page=1, limit=20; page is capped
// at MaxPage and limit at MaxPageLimit.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: defaultPageLimit}
	if page != nil && *page >= 1 {
		p.Page = min(*page, MaxPage)
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Next returns the params for the following page.
func (p PaginationParams) Next() PaginationParams {
	return PaginationParams{Page: p.Page + 1, Limit: p.Limit}
}

// HasMore reports whether rows beyond this page exist given the total count.
func (p PaginationParams) HasMore(total int64) bool {
	return int64(p.Page)*int64(p.Limit) < total
}
