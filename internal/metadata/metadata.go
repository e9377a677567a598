// Package metadata extracts the key/value header block that leads every page
// template and models the resulting page metadata.
//
// A header is delimited by lines made of two or more dashes:
//
//	--
//	title: Trip to Italy
//	group: travel
//	tags: italy, holidays
//	date: 2024-05-01
//	author: Jane
//	--
//	<html>...
//
// Everything from the first non-blank line outside the header onwards is the
// page body.
package metadata

import (
	"slices"
	"time"

	"github.com/makeshared/sitewinder/internal/foundation"
)

// DateLayout is the only accepted date format, both for parsing and output.
const DateLayout = "2006-01-02"

// Metadata describes one page. Path is the site-root-relative output path
// (always with a leading "/") and is fixed when the page is constructed.
type Metadata struct {
	Title  string
	Group  foundation.Option[string]
	Tags   foundation.Option[[]string]
	Date   foundation.Option[time.Time]
	Author string
	Path   string
}

// New returns empty metadata for the page emitted at sitePath.
func New(sitePath string) Metadata {
	return Metadata{Path: sitePath}
}

// Clone returns a copy that shares no mutable state with m.
func (m Metadata) Clone() Metadata {
	c := m
	if tags, ok := m.Tags.Get(); ok {
		c.Tags = foundation.Some(slices.Clone(tags))
	}
	return c
}

// TagList returns the declared tags, or nil when the page has none.
func (m Metadata) TagList() []string {
	return m.Tags.UnwrapOr(nil)
}

// FormatDate renders an optional date as YYYY-MM-DD, or "" when absent.
func FormatDate(d foundation.Option[time.Time]) string {
	if t, ok := d.Get(); ok {
		return t.Format(DateLayout)
	}
	return ""
}

// CompareDates orders optional dates ascending. Absent dates sort after every
// dated value and compare equal to each other, so the order is total and
// stable sorts keep discovery order among undated pages.
func CompareDates(a, b foundation.Option[time.Time]) int {
	at, aok := a.Get()
	bt, bok := b.Get()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	default:
		return at.Compare(bt)
	}
}

// CompareDatesDesc orders optional dates newest first, absent dates still last.
func CompareDatesDesc(a, b foundation.Option[time.Time]) int {
	_, aok := a.Get()
	_, bok := b.Get()
	if aok && bok {
		return CompareDates(b, a)
	}
	return CompareDates(a, b)
}

// SortNewestFirst stably sorts metadata by date descending, undated entries last.
func SortNewestFirst(metas []Metadata) {
	slices.SortStableFunc(metas, func(a, b Metadata) int {
		return CompareDatesDesc(a.Date, b.Date)
	})
}
