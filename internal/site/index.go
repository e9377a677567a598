package site

import (
	"slices"
	"sort"

	"github.com/makeshared/sitewinder/internal/foundation"
	"github.com/makeshared/sitewinder/internal/markup"
	"github.com/makeshared/sitewinder/internal/metadata"
)

// TagPage collects the pages carrying one tag. Path is the site path of the
// synthesized listing page, empty until (and unless) one is made.
type TagPage struct {
	Path string
	Meta []metadata.Metadata
}

// Index groups pages for prev/next sequencing and collects tags for tag
// clouds and tag pages.
type Index struct {
	groups map[foundation.Option[string]][]*Page
	tags   map[string]*TagPage
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		groups: make(map[foundation.Option[string]][]*Page),
		tags:   make(map[string]*TagPage),
	}
}

// Add files the page under its group and records it for each of its tags.
// A page listing a tag twice counts twice.
func (ix *Index) Add(p *Page) {
	ix.groups[p.meta.Group] = append(ix.groups[p.meta.Group], p)
	for _, tag := range p.meta.TagList() {
		tp, ok := ix.tags[tag]
		if !ok {
			tp = &TagPage{}
			ix.tags[tag] = tp
		}
		tp.Meta = append(tp.Meta, p.Meta())
	}
}

// addUngrouped files a page without neighbors and without indexing its tags.
func (ix *Index) addUngrouped(p *Page) {
	ungrouped := foundation.None[string]()
	ix.groups[ungrouped] = append(ix.groups[ungrouped], p)
}

// GroupKeys returns the ungrouped key first (when present), then group names
// in sorted order.
func (ix *Index) GroupKeys() []foundation.Option[string] {
	keys := make([]foundation.Option[string], 0, len(ix.groups))
	for k := range ix.groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aok := keys[i].Get()
		b, bok := keys[j].Get()
		if aok != bok {
			return !aok
		}
		return a < b
	})
	return keys
}

// Group returns the pages filed under key, in their current order.
func (ix *Index) Group(key foundation.Option[string]) []*Page {
	return ix.groups[key]
}

// Len is the number of pages in the index, tag pages included.
func (ix *Index) Len() int {
	n := 0
	for _, pages := range ix.groups {
		n += len(pages)
	}
	return n
}

// TagNames returns every tag in sorted order.
func (ix *Index) TagNames() []string {
	names := make([]string, 0, len(ix.tags))
	for name := range ix.tags {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Tag returns the entry for one tag.
func (ix *Index) Tag(name string) (*TagPage, bool) {
	tp, ok := ix.tags[name]
	return tp, ok
}

// Snapshot freezes the tag cloud in tag-name order. Rendering only ever sees
// the snapshot, so pages can render concurrently.
func (ix *Index) Snapshot() []markup.TagEntry {
	entries := make([]markup.TagEntry, 0, len(ix.tags))
	for _, name := range ix.TagNames() {
		tp := ix.tags[name]
		entries = append(entries, markup.TagEntry{Name: name, Path: tp.Path, Count: len(tp.Meta)})
	}
	return entries
}

// Placement is a page together with its group neighbors.
type Placement struct {
	Page *Page
	Prev foundation.Option[markup.Neighbor]
	Next foundation.Option[markup.Neighbor]
}

// Neighbors orders a group oldest first and pairs each page with the pages
// before and after it. Pages without a date sort after dated ones; ties keep
// discovery order. Ungrouped pages keep their order and get no neighbors.
func (ix *Index) Neighbors(key foundation.Option[string]) []Placement {
	pages := ix.groups[key]
	placements := make([]Placement, len(pages))
	if key.IsNone() {
		for i, p := range pages {
			placements[i] = Placement{Page: p}
		}
		return placements
	}

	slices.SortStableFunc(pages, func(a, b *Page) int {
		return metadata.CompareDates(a.meta.Date, b.meta.Date)
	})
	for i, p := range pages {
		placements[i].Page = p
		if i > 0 {
			placements[i].Prev = foundation.Some(markup.NeighborOf(pages[i-1].meta))
		}
		if i+1 < len(pages) {
			placements[i].Next = foundation.Some(markup.NeighborOf(pages[i+1].meta))
		}
	}
	return placements
}
