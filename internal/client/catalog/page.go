package catalog

import "time"

// Page is one slice of a listing. Number is 1-based.
type Page[T any] struct {
	Items      []T
	Number     int
	PerPage    int
	Total      int
	TotalPages int
	// CachedAt is when an offline copy of the listing was fetched. Zero for
	// live data.
	CachedAt time.Time
}

func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// Paginate returns page number of items. number is clamped into the valid
// range and perPage falls back to DefaultPerPage when not positive.
func Paginate[T any](items []T, number, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	total := len(items)
	pages := (total + perPage - 1) / perPage

	if number > pages {
		number = pages
	}
	if number < 1 {
		number = 1
	}

	start := (number - 1) * perPage
	end := min(start+perPage, total)

	out := make([]T, 0, max(end-start, 0))
	if start < total {
		out = append(out, items[start:end]...)
	}

	return Page[T]{
		Items:      out,
		Number:     number,
		PerPage:    perPage,
		Total:      total,
		TotalPages: pages,
	}
}
