package listview

// ViewState holds the mutable state behind a searchable, paginated list.
// It has a single owner; derived values are recomputed on demand and the
// type carries no locks.
type ViewState[T Item] struct {
	source   []T
	loaded   bool
	query    string
	page     int
	pageSize int
}

// NewViewState creates an empty view state. A page size below one is treated as one.
func NewViewState[T Item](pageSize int) *ViewState[T] {
	return &ViewState[T]{
		page:     1,
		pageSize: max(pageSize, 1),
	}
}

// SetSourceItems replaces the source list wholesale and resets the query and page.
func (v *ViewState[T]) SetSourceItems(items []T) {
	v.source = items
	v.loaded = true
	v.query = ""
	v.page = 1
}

// SetQuery changes the search text and returns to the first page.
func (v *ViewState[T]) SetQuery(query string) {
	v.query = query
	v.page = 1
}

// SetPage moves to page n, clamped to the pages of the current filtered list.
func (v *ViewState[T]) SetPage(n int) {
	v.page = ClampPage(n, v.TotalPages())
}

// NextPage advances one page, stopping at the last.
func (v *ViewState[T]) NextPage() {
	v.SetPage(v.page + 1)
}

// PrevPage goes back one page, stopping at the first.
func (v *ViewState[T]) PrevPage() {
	v.SetPage(v.page - 1)
}

// Reset clears the query, keeping the source list.
func (v *ViewState[T]) Reset() {
	v.SetQuery("")
}

// Loaded reports whether a source list has ever been set, which separates
// "still loading" from "loaded with nothing to show".
func (v *ViewState[T]) Loaded() bool { return v.loaded }

func (v *ViewState[T]) Source() []T     { return v.source }
func (v *ViewState[T]) Query() string   { return v.query }
func (v *ViewState[T]) PageSize() int   { return v.pageSize }
func (v *ViewState[T]) Filtered() []T   { return Filter(v.source, v.query) }
func (v *ViewState[T]) TotalPages() int { return TotalPages(len(v.Filtered()), v.pageSize) }

// CurrentPage returns the effective page. The stored page is re-clamped so
// it stays valid however the filtered list has changed since it was set.
func (v *ViewState[T]) CurrentPage() int {
	return ClampPage(v.page, v.TotalPages())
}

// Page returns the items shown on the current page.
func (v *ViewState[T]) Page() Page[T] {
	return Paginate(v.Filtered(), v.pageSize, v.page)
}

// PageNumbers returns the compact page sequence for the current page.
func (v *ViewState[T]) PageNumbers() []PageLink {
	p := v.Page()
	return PageNumbers(p.Number, p.TotalPages)
}
