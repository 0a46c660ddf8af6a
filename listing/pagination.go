package listing

import "github.com/collabhub/admin-console/backend"

// PageSize is the page size used when a listing is sliced locally.
const PageSize = 10

// Pagination describes the current page of a listing. It is only known after
// a successful fetch; before that TotalPages is zero and no page move is
// possible.
type Pagination struct {
	Page       int
	TotalPages int
	TotalCount int
	// Server is set when the backend paginates and the stored collection
	// holds only the current page.
	Server bool
}

func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

// Clamp returns page bounded to [1, TotalPages].
func (p Pagination) Clamp(page int) int {
	if page > p.TotalPages {
		page = p.TotalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// serverPagination builds the pagination from the backend metadata. It
// returns ok=false when the response does not carry usable metadata, in
// which case the listing falls back to local slicing.
func serverPagination(info *backend.ListInfo, requested int) (Pagination, bool) {
	if info == nil || info.TotalPages <= 0 {
		return Pagination{}, false
	}
	p := Pagination{
		Page:       info.Page,
		TotalPages: info.TotalPages,
		TotalCount: info.TotalCount,
		Server:     true,
	}
	if p.Page == 0 {
		p.Page = requested
	}
	p.Page = p.Clamp(p.Page)
	return p, true
}

// localPagination paginates a fully fetched list of total items.
func localPagination(total, page int) Pagination {
	p := Pagination{
		TotalPages: (total + PageSize - 1) / PageSize,
		TotalCount: total,
	}
	p.Page = p.Clamp(page)
	return p
}

// pageOf returns the items visible on the current page.
func pageOf[T any](items []T, p Pagination) []T {
	if p.Server {
		return items
	}
	start := (p.Page - 1) * PageSize
	if start < 0 || start >= len(items) {
		return nil
	}
	end := min(start+PageSize, len(items))
	return items[start:end]
}
