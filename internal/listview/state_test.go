package listview

import (
	"reflect"
	"testing"
)

func TestNewViewState(t *testing.T) {
	v := NewViewState[row](5)

	if v.Loaded() {
		t.Error("Expected a fresh view state to be unloaded")
	}
	if v.Query() != "" {
		t.Errorf("Expected empty query, got %q", v.Query())
	}
	if v.CurrentPage() != 1 {
		t.Errorf("Expected page 1, got %d", v.CurrentPage())
	}
	if v.PageSize() != 5 {
		t.Errorf("Expected page size 5, got %d", v.PageSize())
	}

	if got := NewViewState[row](0).PageSize(); got != 1 {
		t.Errorf("Expected non-positive page size to become 1, got %d", got)
	}
}

func TestViewState_Scenario(t *testing.T) {
	v := NewViewState[row](5)
	v.SetSourceItems(rows(12))

	page := v.Page()
	if page.TotalPages != 3 {
		t.Errorf("Expected 3 total pages, got %d", page.TotalPages)
	}
	if want := []int{1, 2, 3, 4, 5}; !reflect.DeepEqual(ids(page.Items), want) {
		t.Errorf("Expected ids %v, got %v", want, ids(page.Items))
	}
	if want := links(1, 2, 3); !reflect.DeepEqual(v.PageNumbers(), want) {
		t.Errorf("Expected page numbers %v, got %v", want, v.PageNumbers())
	}
}

func TestViewState_SetQueryResetsPage(t *testing.T) {
	v := NewViewState[row](5)
	v.SetSourceItems(rows(30))
	v.SetPage(4)
	if v.CurrentPage() != 4 {
		t.Fatalf("Expected page 4, got %d", v.CurrentPage())
	}

	v.SetQuery("post")
	if v.CurrentPage() != 1 {
		t.Errorf("Expected query change to reset to page 1, got %d", v.CurrentPage())
	}
	if v.Query() != "post" {
		t.Errorf("Expected query %q, got %q", "post", v.Query())
	}
}

func TestViewState_SetSourceItemsResetsQueryAndPage(t *testing.T) {
	v := NewViewState[row](5)
	v.SetSourceItems(rows(30))
	v.SetQuery("1")
	v.SetPage(2)

	v.SetSourceItems(rows(8))
	if v.Query() != "" {
		t.Errorf("Expected reload to clear the query, got %q", v.Query())
	}
	if v.CurrentPage() != 1 {
		t.Errorf("Expected reload to reset to page 1, got %d", v.CurrentPage())
	}
	if len(v.Source()) != 8 {
		t.Errorf("Expected 8 source items, got %d", len(v.Source()))
	}
}

func TestViewState_SetPageClamps(t *testing.T) {
	v := NewViewState[row](5)
	v.SetSourceItems(rows(12))

	tests := []struct {
		requested, want int
	}{
		{0, 1},
		{-3, 1},
		{2, 2},
		{3, 3},
		{99, 3},
	}
	for _, tt := range tests {
		v.SetPage(tt.requested)
		if v.CurrentPage() != tt.want {
			t.Errorf("SetPage(%d) -> %d, want %d", tt.requested, v.CurrentPage(), tt.want)
		}
		if v.Page().Number != tt.want {
			t.Errorf("SetPage(%d): Page().Number = %d, want %d", tt.requested, v.Page().Number, tt.want)
		}
	}
}

func TestViewState_NextPrev(t *testing.T) {
	v := NewViewState[row](5)
	v.SetSourceItems(rows(12))

	v.PrevPage()
	if v.CurrentPage() != 1 {
		t.Errorf("Expected prev on first page to stay at 1, got %d", v.CurrentPage())
	}

	v.NextPage()
	v.NextPage()
	v.NextPage()
	if v.CurrentPage() != 3 {
		t.Errorf("Expected next to stop at last page 3, got %d", v.CurrentPage())
	}

	v.PrevPage()
	if v.CurrentPage() != 2 {
		t.Errorf("Expected page 2, got %d", v.CurrentPage())
	}
}

func TestViewState_NoMatches(t *testing.T) {
	v := NewViewState[row](5)
	v.SetSourceItems(rows(12))
	v.SetQuery("nothing matches this")

	page := v.Page()
	if page.TotalPages != 1 {
		t.Errorf("Expected 1 total page, got %d", page.TotalPages)
	}
	if page.Number != 1 {
		t.Errorf("Expected page 1, got %d", page.Number)
	}
	if len(page.Items) != 0 {
		t.Errorf("Expected no items, got %d", len(page.Items))
	}
	if !v.Loaded() {
		t.Error("Expected an empty result to still count as loaded")
	}
}

func TestViewState_LargeListPageNumbers(t *testing.T) {
	v := NewViewState[row](5)
	v.SetSourceItems(rows(50))

	v.SetPage(5)
	if want := links(1, "...", 4, 5, 6, "...", 10); !reflect.DeepEqual(v.PageNumbers(), want) {
		t.Errorf("Expected %v, got %v", want, v.PageNumbers())
	}

	v.SetPage(9)
	if want := links(1, "...", 8, 9, 10); !reflect.DeepEqual(v.PageNumbers(), want) {
		t.Errorf("Expected %v, got %v", want, v.PageNumbers())
	}
}

func TestViewState_Reset(t *testing.T) {
	v := NewViewState[row](5)
	v.SetSourceItems(rows(12))
	v.SetQuery("7")
	v.Reset()

	if v.Query() != "" {
		t.Errorf("Expected empty query after reset, got %q", v.Query())
	}
	if len(v.Filtered()) != 12 {
		t.Errorf("Expected all 12 items after reset, got %d", len(v.Filtered()))
	}
}
