package model

// Paging describes a page's position within the full matching result set.
//
// TotalPage is computed from the total match count BEFORE the page window is
// applied. That means a request for a page past the end still reports the
// true page count — and CurrentPage echoes whatever page was requested, even
// when it's out of range. Clients rely on this asymmetry: they can detect
// "you paged too far" by seeing an empty data array next to a non-zero
// totalPage.
type Paging struct {
	CurrentPage int `json:"currentPage"`
	TotalPage   int `json:"totalPage"`
	Size        int `json:"size"`
}

// Page bundles one page of results with its paging metadata.
type Page[T any] struct {
	Items  []T
	Paging Paging
}

// NewPage computes paging metadata for a result window.
// totalElements is the size of the full (unpaged) matching set.
// TotalPage = ceil(totalElements / size), and 0 when nothing matches.
func NewPage[T any](items []T, totalElements, page, size int) Page[T] {
	totalPage := 0
	if totalElements > 0 {
		totalPage = (totalElements + size - 1) / size
	}
	return Page[T]{
		Items: items,
		Paging: Paging{
			CurrentPage: page,
			TotalPage:   totalPage,
			Size:        size,
		},
	}
}
