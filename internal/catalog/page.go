// page.go implements the pagination envelope shared by listing operations.

package catalog

// Page wraps one page of results together with pagination metadata.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// newPage builds an envelope. TotalPages is derived at construction so it
// always equals ceil(TotalCount/PageSize). A page beyond the last yields
// empty Items and a normal envelope, never an error.
func newPage[T any](items []T, total int64, page, size int) *Page[T] {
	if items == nil {
		items = []T{} // keep JSON output as [] rather than null
	}
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return &Page[T]{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   size,
		TotalPages: pages,
	}
}
