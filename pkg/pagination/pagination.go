// Package pagination computes page metadata for fixed-size listings.
package pagination

// PageSize is the fixed number of items per listing page.
const PageSize = 30

// Data is the pagination metadata returned alongside listings.
type Data struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
	PrevPage   *int `json:"prev_page"`
	NextPage   *int `json:"next_page"`
}

// Paginate computes metadata for a 1-based page over total items.
func Paginate(page int, total int64) Data {
	totalPages := int((total + PageSize - 1) / PageSize)
	d := Data{
		Page:       page,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	if d.HasPrev {
		prev := page - 1
		d.PrevPage = &prev
	}
	if d.HasNext {
		next := page + 1
		d.NextPage = &next
	}
	return d
}

// Skip returns the number of documents to skip for a 1-based page.
func Skip(page int) int64 {
	return int64(page-1) * PageSize
}
