// Package listview implements the search-and-paginate view model that drives
// the dashboard's post list. Everything here is synchronous and pure: the
// derived values (filtered list, current page, page-number sequence) are
// recomputed from the four state fields on every call.
package listview

import (
	"strconv"
	"strings"
)

// Item is the minimum a row must expose to be searched.
// ItemID must return the canonical decimal text for numeric identifiers.
type Item interface {
	ItemID() string
	ItemTitle() string
}

// Filter returns the items whose title contains query case-insensitively, or
// whose identifier text contains the raw query. A query that is empty after
// trimming returns items unchanged.
func Filter[T Item](items []T, query string) []T {
	if strings.TrimSpace(query) == "" {
		return items
	}

	lower := strings.ToLower(query)
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.ItemTitle()), lower) ||
			strings.Contains(item.ItemID(), query) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Page is one slice of a filtered list.
type Page[T any] struct {
	Items      []T // at most the page size, shorter only on the last page
	Number     int // effective 1-based page number
	TotalPages int // never less than 1
}

// TotalPages returns ceil(count/pageSize), with an empty list counting as one page.
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	total := (count + pageSize - 1) / pageSize
	return max(total, 1)
}

// ClampPage forces requested into [1, totalPages].
func ClampPage(requested, totalPages int) int {
	return min(max(requested, 1), max(totalPages, 1))
}

// Paginate returns the requested page of items. Out-of-range requests are
// clamped. The returned slice aliases items; callers must not append to it.
func Paginate[T any](items []T, pageSize, requested int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	total := TotalPages(len(items), pageSize)
	number := ClampPage(requested, total)

	start := (number - 1) * pageSize
	end := min(start+pageSize, len(items))
	if start > end {
		start = end
	}

	return Page[T]{
		Items:      items[start:end:end],
		Number:     number,
		TotalPages: total,
	}
}

// PageLink is one entry of a compact page-number sequence. An ellipsis link
// carries no page number and is not navigable.
type PageLink struct {
	Number   int
	Ellipsis bool
}

// String renders the link the way the pagination controls show it.
func (l PageLink) String() string {
	if l.Ellipsis {
		return "..."
	}
	return strconv.Itoa(l.Number)
}

func pageLink(n int) PageLink { return PageLink{Number: n} }

var ellipsis = PageLink{Ellipsis: true}

// PageNumbers returns the abbreviated page sequence for pagination controls:
// every page when there are at most five, otherwise the first page, the last
// page and a window around current, with ellipses for the gaps.
func PageNumbers(current, totalPages int) []PageLink {
	switch {
	case totalPages <= 5:
		links := make([]PageLink, 0, max(totalPages, 0))
		for n := 1; n <= totalPages; n++ {
			links = append(links, pageLink(n))
		}
		return links
	case current <= 3:
		return []PageLink{pageLink(1), pageLink(2), pageLink(3), ellipsis, pageLink(totalPages)}
	case current >= totalPages-2:
		return []PageLink{pageLink(1), ellipsis, pageLink(totalPages - 2), pageLink(totalPages - 1), pageLink(totalPages)}
	default:
		return []PageLink{
			pageLink(1), ellipsis,
			pageLink(current - 1), pageLink(current), pageLink(current + 1),
			ellipsis, pageLink(totalPages),
		}
	}
}
