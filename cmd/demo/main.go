package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yiblet/dash/internal/feed"
	"github.com/yiblet/dash/internal/listview"
	"github.com/yiblet/dash/internal/post"
	"github.com/yiblet/dash/internal/source"
	"github.com/yiblet/dash/internal/store/memstore"
)

func main() {
	fmt.Println("dash Feed Manager Demo")

	// Create in-memory store and a feed over a static source
	store := memstore.NewMemoryStore()
	defer store.Close()

	titles := []string{
		"sunt aut facere repellat provident occaecati",
		"qui est esse",
		"ea molestias quasi exercitationem repellat qui ipsa sit aut",
		"eum et est occaecati",
		"nesciunt quas odio",
		"dolorem eum magni eos aperiam quia",
		"magnam facilis autem",
		"dolorem dolore est ipsam",
		"nesciunt iure omnis dolorem tempora et accusantium",
		"optio molestias id quia eum",
		"et ea vero quia laudantium autem",
		"in quibusdam tempore odit est dolorem",
	}
	posts := make([]post.Post, len(titles))
	for i, title := range titles {
		posts[i] = post.Post{
			ID:     i + 1,
			UserID: i/10 + 1,
			Title:  title,
			Body:   strings.Repeat(title+" ", 3),
		}
	}

	fm := feed.NewManager(source.StaticSource(posts), store.Posts())

	// Show initial state
	stats, err := fm.Stats()
	if err != nil {
		log.Fatalf("Failed to get initial stats: %v", err)
	}
	fmt.Printf("Initial cache size: %d\n\n", stats.Count)

	n, err := fm.Sync(context.Background())
	if err != nil {
		log.Fatalf("Failed to sync: %v", err)
	}
	fmt.Printf("Synced %d posts\n\n", n)

	cached, err := fm.Cached()
	if err != nil {
		log.Fatalf("Failed to read cache: %v", err)
	}

	// Walk every page of a filtered view
	state := listview.NewViewState[post.Post](5)
	state.SetSourceItems(cached)
	state.SetQuery("dolor")
	fmt.Printf("Filter %q matches %d posts\n", state.Query(), len(state.Filtered()))

	now := time.Now()
	for page := 1; page <= state.TotalPages(); page++ {
		state.SetPage(page)
		fmt.Printf("\nPage %d of %d:\n", state.CurrentPage(), state.TotalPages())
		for _, p := range state.Page().Items {
			fmt.Printf("  #%-3d %-14s %s\n", p.ID, p.DisplayDate(now), feed.CellText(p.Title, 40))
		}
	}

	fmt.Printf("\nDemo complete! (Using in-memory store)\n")
}
