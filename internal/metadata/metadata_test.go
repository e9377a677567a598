package metadata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/makeshared/sitewinder/internal/foundation"
)

func TestClone_DoesNotShareTags(t *testing.T) {
	orig := Metadata{Title: "A", Tags: foundation.Some([]string{"x", "y"})}
	c := orig.Clone()
	c.TagList()[0] = "changed"

	assert.Equal(t, []string{"x", "y"}, orig.TagList())
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", FormatDate(foundation.None[time.Time]()))
	assert.Equal(t, "2024-02-01", FormatDate(date(t, "2024-02-01")))
}

func TestCompareDates_AbsentSortsLast(t *testing.T) {
	none := foundation.None[time.Time]()
	early := date(t, "2024-01-01")
	late := date(t, "2024-03-01")

	assert.Equal(t, 0, CompareDates(none, none))
	assert.Equal(t, 1, CompareDates(none, early))
	assert.Equal(t, -1, CompareDates(early, none))
	assert.Negative(t, CompareDates(early, late))

	assert.Positive(t, CompareDatesDesc(early, late))
	assert.Equal(t, 1, CompareDatesDesc(none, late))
	assert.Equal(t, -1, CompareDatesDesc(late, none))
}

func TestSortNewestFirst(t *testing.T) {
	metas := []Metadata{
		{Title: "undated-1"},
		{Title: "old", Date: date(t, "2020-01-01")},
		{Title: "undated-2"},
		{Title: "new", Date: date(t, "2024-01-01")},
	}
	SortNewestFirst(metas)

	var titles []string
	for _, m := range metas {
		titles = append(titles, m.Title)
	}
	assert.Equal(t, []string{"new", "old", "undated-1", "undated-2"}, titles)
}
