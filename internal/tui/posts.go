package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/yiblet/dash/internal/feed"
	"github.com/yiblet/dash/internal/listview"
	"github.com/yiblet/dash/internal/post"
	"github.com/yiblet/dash/internal/theme"
)

// GrowthBadge is the fixed trend shown next to the post count.
const GrowthBadge = "+12.5%"

// PostsPaneMsg represents messages that the posts pane handles
type PostsPaneMsg interface {
	isPostsPaneMsg()
}

// Posts pane message implementations
type RowUpMsg struct{}

func (RowUpMsg) isPostsPaneMsg() {}

// RowDownMsg moves the row cursor down within a page of Rows rows
type RowDownMsg struct {
	Rows int
}

func (RowDownMsg) isPostsPaneMsg() {}

// ResetRowMsg returns the cursor to the first row, sent whenever the page changes
type ResetRowMsg struct{}

func (ResetRowMsg) isPostsPaneMsg() {}

type ResizePostsPaneMsg struct {
	Width  int
	Height int
}

func (ResizePostsPaneMsg) isPostsPaneMsg() {}

// PostsPaneModel holds the state for the posts pane
type PostsPaneModel struct {
	Width  int // Pane width
	Height int // Pane height
	Cursor int // Selected row on the current page
}

// NewPostsPaneModel creates a new posts pane model
func NewPostsPaneModel(width, height int) PostsPaneModel {
	return PostsPaneModel{
		Width:  width,
		Height: height,
	}
}

// Update handles posts pane messages
func (p *PostsPaneModel) Update(msg PostsPaneMsg) error {
	switch m := msg.(type) {
	case RowUpMsg:
		if p.Cursor > 0 {
			p.Cursor--
		}
	case RowDownMsg:
		if p.Cursor < m.Rows-1 {
			p.Cursor++
		}
	case ResetRowMsg:
		p.Cursor = 0
	case ResizePostsPaneMsg:
		p.Width = m.Width
		p.Height = m.Height
	}
	return nil
}

// Selected returns the post under the cursor, if the page has one
func (p *PostsPaneModel) Selected(page listview.Page[post.Post]) (post.Post, bool) {
	if len(page.Items) == 0 {
		return post.Post{}, false
	}
	return page.Items[min(max(p.Cursor, 0), len(page.Items)-1)], true
}

// LoadStatus describes the fetch lifecycle the pane renders around the list
type LoadStatus struct {
	Loading bool
	Spinner string // current spinner frame
	Err     error  // last load failure
}

// PostsPaneView renders the overview stats, search box, posts table and
// pagination controls as a pure function.
func PostsPaneView(
	model PostsPaneModel,
	state *listview.ViewState[post.Post],
	search SearchModel,
	status LoadStatus,
	styles theme.Styles,
	focused bool,
	now time.Time,
) string {
	border := styles.Border
	if focused {
		border = styles.FocusBorder
	}
	style := border.
		Padding(0, 1).
		Width(max(model.Width-2, 1)).
		Height(max(model.Height-2, 1))

	inner := max(model.Width-6, 20)

	var b strings.Builder
	b.WriteString(styles.Title.Render("Overview") + "\n")
	b.WriteString(statsLine(len(state.Source()), styles) + "\n\n")
	searchBorder := styles.Border
	if search.IsActive() {
		searchBorder = styles.FocusBorder
	}
	b.WriteString(SearchView(search, searchBorder, inner) + "\n")

	switch {
	case !state.Loaded() && status.Err != nil && !status.Loading:
		b.WriteString("\n" + LoadErrorView(status.Err, styles))
	case !state.Loaded() || status.Loading && len(state.Source()) == 0:
		b.WriteString("\n" + styles.Accent.Render(status.Spinner) + " " + styles.Muted.Render("Loading posts..."))
	default:
		page := state.Page()
		if len(page.Items) == 0 {
			b.WriteString("\n" + EmptyView(styles))
		} else {
			cursor := -1
			if focused {
				cursor = min(model.Cursor, len(page.Items)-1)
			}
			b.WriteString(PostsTable(page.Items, styles, inner, cursor, now))
		}
		b.WriteString("\n" + PaginationView(page, state.PageNumbers(), styles))
		if status.Err != nil {
			b.WriteString("\n" + styles.Error.Render(status.Err.Error()))
		}
	}

	return style.Render(b.String())
}

func statsLine(total int, styles theme.Styles) string {
	return styles.Muted.Render("Total Posts ") +
		styles.Title.Render(strconv.Itoa(total)) + " " +
		styles.Badge.Render(GrowthBadge)
}

// LoadErrorView renders a load failure that left nothing to show
func LoadErrorView(err error, styles theme.Styles) string {
	return styles.Error.Render("Failed to load posts. Please try again later.") + "\n" +
		styles.Muted.Render(err.Error())
}

// EmptyView renders the message shown when a page has no rows
func EmptyView(styles theme.Styles) string {
	return styles.Text.Render("No posts found") + "\n" +
		styles.Muted.Render("Try adjusting your search or filters")
}

// column widths excluding cell padding
func columnWidths(width int) (id, title, content, date int) {
	id, date = 6, len("Jan 02, 2006")
	rest := max(width-id-date-12, 16)
	title = rest * 2 / 5
	content = rest - title
	return id, title, content, date
}

// PostsTable renders rows as a one-line-per-row table. A cursor outside the
// rows highlights nothing.
func PostsTable(rows []post.Post, styles theme.Styles, width, cursor int, now time.Time) string {
	idW, titleW, contentW, _ := columnWidths(width)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.BorderColor)).
		BorderColumn(false).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderBottom(false).
		Wrap(false).
		Headers("ID", "Title", "Content", "Date").
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return styles.TableHeader.Padding(0, 1)
			case row == cursor:
				return styles.SelectedRow.Padding(0, 1)
			case col == 2 || col == 3:
				return styles.Muted.Padding(0, 1)
			}
			return cell.Inherit(styles.Text)
		})

	for _, p := range rows {
		t.Row(
			feed.TruncateTitle("#"+p.ItemID(), idW),
			feed.CellText(p.Title, titleW),
			feed.CellText(p.Body, contentW),
			p.DisplayDate(now),
		)
	}
	return t.String()
}

// PaginationView renders Previous, the page links and Next, followed by the
// page indicator. Ellipses render as plain text since they are not navigable.
func PaginationView(page listview.Page[post.Post], links []listview.PageLink, styles theme.Styles) string {
	prev := styles.PageLink.Render("‹ Previous")
	if page.Number <= 1 {
		prev = styles.Disabled.Padding(0, 1).Render("‹ Previous")
	}
	next := styles.PageLink.Render("Next ›")
	if page.Number >= page.TotalPages {
		next = styles.Disabled.Padding(0, 1).Render("Next ›")
	}

	parts := []string{prev}
	for _, l := range links {
		switch {
		case l.Ellipsis:
			parts = append(parts, styles.Ellipsis.Render(l.String()))
		case l.Number == page.Number:
			parts = append(parts, styles.CurrentPage.Render(l.String()))
		default:
			parts = append(parts, styles.PageLink.Render(l.String()))
		}
	}
	parts = append(parts, next)

	indicator := styles.Muted.Render(fmt.Sprintf("Page %d of %d", page.Number, page.TotalPages))
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...) + "  " + indicator
}
