package record

// PageRequest carries the 1-based page and page size. The HTTP layer keeps
// Page >= 1 and Limit within [1, MaxLimit].
type PageRequest struct {
	Page  int
	Limit int
}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Offset is the index of the first record on the page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Beyond reports whether the page starts after the last of total records.
// It never computes the offset, so huge page numbers cannot overflow.
func (p PageRequest) Beyond(total int) bool {
	if p.Limit <= 0 || p.Page <= 1 {
		return false
	}
	if total <= 0 {
		return true
	}
	return p.Page-1 > (total-1)/p.Limit
}

// NewPagination builds the metadata for a page given the total match count.
func NewPagination(p PageRequest, total int) Pagination {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return Pagination{
		CurrentPage:  p.Page,
		TotalPages:   totalPages,
		TotalRecords: total,
		Limit:        p.Limit,
		HasNext:      p.Page < totalPages,
		HasPrev:      p.Page > 1,
	}
}
