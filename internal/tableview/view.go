// Package tableview is the searchable paginated view state shared by every
// entity screen. One View owns the full fetched collection and derives the
// visible page from a live filter query, a page index, and a page size; the
// render side (render.go) draws that derived view without touching the
// derivation rules.
package tableview

import "strings"

// PageSizes are the selectable page sizes, in cycle order.
var PageSizes = []int{5, 10, 15, 20}

// View holds the table state for one entity collection. fields extracts the
// searchable field values of an item; filtering is a case-insensitive
// substring match over them.
type View[T any] struct {
	items    []T
	query    string
	page     int
	pageSize int
	fields   func(T) []string
}

func New[T any](fields func(T) []string, pageSize int) *View[T] {
	if !validPageSize(pageSize) {
		pageSize = PageSizes[0]
	}
	return &View[T]{fields: fields, pageSize: pageSize}
}

// SetItems replaces the collection and resets the page cursor. Callers keep
// the previous items on a failed refresh by simply not calling this.
func (v *View[T]) SetItems(items []T) {
	v.items = items
	v.page = 0
}

func (v *View[T]) Items() []T { return v.items }

// SetQuery updates the filter and resets the page cursor.
func (v *View[T]) SetQuery(q string) {
	v.query = q
	v.page = 0
}

func (v *View[T]) Query() string { return v.query }

// Filtered returns the items matching the current query, original order
// preserved. An empty query matches everything.
func (v *View[T]) Filtered() []T {
	q := strings.ToLower(strings.TrimSpace(v.query))
	if q == "" {
		return v.items
	}
	var out []T
	for _, it := range v.items {
		if v.matches(it, q) {
			out = append(out, it)
		}
	}
	return out
}

func (v *View[T]) matches(it T, lowerQuery string) bool {
	for _, f := range v.fields(it) {
		if strings.Contains(strings.ToLower(f), lowerQuery) {
			return true
		}
	}
	return false
}

// Page returns the visible slice of the filtered view.
func (v *View[T]) Page() []T {
	filtered := v.Filtered()
	start := v.page * v.pageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + v.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// PageIndex is the zero-based current page.
func (v *View[T]) PageIndex() int { return v.page }

// PageCount is ceil(len(filtered)/pageSize), never less than 1.
func (v *View[T]) PageCount() int {
	n := len(v.Filtered())
	if n == 0 {
		return 1
	}
	return (n + v.pageSize - 1) / v.pageSize
}

// SetPage clamps n into [0, PageCount-1].
func (v *View[T]) SetPage(n int) {
	if n < 0 {
		n = 0
	}
	if last := v.PageCount() - 1; n > last {
		n = last
	}
	v.page = n
}

func (v *View[T]) NextPage() { v.SetPage(v.page + 1) }
func (v *View[T]) PrevPage() { v.SetPage(v.page - 1) }

func (v *View[T]) PageSize() int { return v.pageSize }

// SetPageSize switches to a valid page size and resets the page cursor.
// Invalid sizes are ignored.
func (v *View[T]) SetPageSize(n int) {
	if !validPageSize(n) || n == v.pageSize {
		return
	}
	v.pageSize = n
	v.page = 0
}

// CyclePageSize advances to the next size in PageSizes, wrapping around.
func (v *View[T]) CyclePageSize() {
	for i, s := range PageSizes {
		if s == v.pageSize {
			v.SetPageSize(PageSizes[(i+1)%len(PageSizes)])
			return
		}
	}
	v.SetPageSize(PageSizes[0])
}

func validPageSize(n int) bool {
	for _, s := range PageSizes {
		if n == s {
			return true
		}
	}
	return false
}
