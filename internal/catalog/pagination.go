package catalog

import "errors"

// PageSize matches the list view: 12 cards per page.
const PageSize = 12

const maxVisiblePages = 5

// Ellipsis marks an elided run in a page-number strip.
const Ellipsis = -1

var ErrPageOutOfRange = errors.New("page out of range")

// Page is a resolved slice window over the filtered set.
type Page struct {
	Start, End int // index range [Start, End) into the source slice
	Number     int
	Total      int
	HasPrev    bool
	HasNext    bool
}

// PageCount is ceil(n / PageSize); an empty set still has one (empty) page.
func PageCount(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// Paginate resolves page p over n items. Page numbers are 1-based; 0 or
// anything past the last page is refused.
func Paginate(n, p int) (Page, error) {
	total := PageCount(n)
	if p < 1 || p > total {
		return Page{}, ErrPageOutOfRange
	}
	start := (p - 1) * PageSize
	end := start + PageSize
	if end > n {
		end = n
	}
	return Page{
		Start:   start,
		End:     end,
		Number:  p,
		Total:   total,
		HasPrev: p > 1,
		HasNext: p < total,
	}, nil
}

// PageNumbers builds the elided strip shown under the list (1 … n), with at
// most five visible slots plus ellipses.
func PageNumbers(current, total int) []int {
	if total <= maxVisiblePages {
		pages := make([]int, 0, total)
		for i := 1; i <= total; i++ {
			pages = append(pages, i)
		}
		return pages
	}
	switch {
	case current <= 3:
		return []int{1, 2, 3, 4, Ellipsis, total}
	case current >= total-2:
		return []int{1, Ellipsis, total - 3, total - 2, total - 1, total}
	default:
		return []int{1, Ellipsis, current - 1, current, current + 1, Ellipsis, total}
	}
}
