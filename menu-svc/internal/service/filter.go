package service

import (
	"strings"

	"cafe-menu/menu-svc/internal/domain"
)

const (
	FilterAll        = "all"
	FilterDiscounted = "discounted"

	DefaultHighlights = 5
)

// Filter returns the categories and items matching query and activeFilter.
// Categories left without items are dropped. The input is not modified.
func Filter(menu domain.Menu, query, activeFilter string) domain.Menu {
	q := strings.ToLower(strings.TrimSpace(query))
	f := strings.TrimSpace(activeFilter)
	if f == "" {
		f = FilterAll
	}

	out := domain.Menu{}
	for _, cat := range menu {
		var items []domain.Item
		for _, it := range cat.Items {
			if matchesQuery(it, q) && matchesFilter(cat, it, f) {
				items = append(items, it)
			}
		}
		if len(items) == 0 {
			continue
		}
		view := cat
		view.Items = items
		out = append(out, view.Clone())
	}
	return out
}

func matchesQuery(it domain.Item, q string) bool {
	if q == "" {
		return true
	}
	text := strings.ToLower(it.Name + " " + it.Ingredients)
	return strings.Contains(text, q)
}

func matchesFilter(cat domain.Category, it domain.Item, f string) bool {
	switch f {
	case FilterAll:
		return true
	case FilterDiscounted:
		return it.Discount > 0
	}
	return cat.Tag == f || it.HasTag(f)
}

// Highlights picks up to n discounted items for the carousel, or the first n
// items overall when nothing is discounted.
func Highlights(menu domain.Menu, n int) []domain.FlatItem {
	if n <= 0 {
		n = DefaultHighlights
	}
	all := domain.FlattenItems(menu)
	var picked []domain.FlatItem
	for _, it := range all {
		if it.Discount > 0 {
			picked = append(picked, it)
		}
	}
	if len(picked) == 0 {
		picked = all
	}
	if len(picked) > n {
		picked = picked[:n]
	}
	if picked == nil {
		picked = []domain.FlatItem{}
	}
	return picked
}

type Shortcut struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Count int    `json:"count"`
}

// Shortcuts lists the categories the public page shows, in display order.
func Shortcuts(menu domain.Menu) []Shortcut {
	out := []Shortcut{}
	for _, cat := range menu {
		if len(cat.Items) == 0 {
			continue
		}
		out = append(out, Shortcut{ID: cat.ID, Title: cat.Title, Icon: cat.Icon, Count: len(cat.Items)})
	}
	return out
}

// FilterChips returns the selectable filter values: the two sentinels, then
// category tags and item tags in first-seen order.
func FilterChips(menu domain.Menu) []string {
	chips := []string{FilterAll, FilterDiscounted}
	seen := map[string]struct{}{FilterAll: {}, FilterDiscounted: {}}
	add := func(v string) {
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		chips = append(chips, v)
	}
	for _, cat := range menu {
		if len(cat.Items) == 0 {
			continue
		}
		add(cat.Tag)
		for _, it := range cat.Items {
			for _, t := range it.Tags {
				add(t)
			}
		}
	}
	return chips
}
