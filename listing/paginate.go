package listing

// Page is one slice of a longer list plus the totals needed to render pagers.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// HasPrev reports whether an earlier page exists.
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// Paginate returns items[(page-1)*size : page*size] clamped to the list.
// A page below 1 is read as 1 and a size of 0 or less as DefaultPageSize.
// Pages past the end are empty, not an error; the check runs before any
// offset arithmetic so huge page numbers cannot wrap.
func Paginate[T any](items []T, page, size int) Page[T] {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	out := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: TotalPages(total, size),
	}
	if page > out.TotalPages {
		return out
	}
	start := (page - 1) * size
	end := min(start+size, total)
	out.Items = append(out.Items, items[start:end]...)
	return out
}

// TotalPages is ceil(total/size); zero items give zero pages.
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
