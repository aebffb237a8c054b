package domain

// Event listing page bounds.
const (
	DefaultEventPageSize = 20
	MaxEventPageSize     = 100
)

// PaginationParams selects one page of the event catalogue for GET /events.
type PaginationParams struct {
	Page  int // 1-based
	Limit int
}

// NewPaginationParams resolves the optional page and limit query values.
// Missing or non-positive values mean page 1 with DefaultEventPageSize events;
// a limit above MaxEventPageSize is lowered to it.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultEventPageSize}
	if page != nil && *page > 0 {
		p.Page = *page
	}
	if limit != nil && *limit > 0 {
		p.Limit = min(*limit, MaxEventPageSize)
	}
	return p
}

// Offset is the number of events skipped before this page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
