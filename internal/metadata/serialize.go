package metadata

import "strings"

// Delimiter is the header delimiter emitted by Header.
const Delimiter = "--"

// Header serializes the recognized keys back into a delimited header block.
// Absent or empty fields are omitted, so Parse(m.Header()) yields m again
// (minus Path, which is not part of the header).
func (m Metadata) Header() string {
	var b strings.Builder
	b.WriteString(Delimiter + "\n")
	if m.Title != "" {
		b.WriteString("title: " + m.Title + "\n")
	}
	if g, ok := m.Group.Get(); ok {
		b.WriteString("group: " + g + "\n")
	}
	if tags, ok := m.Tags.Get(); ok && len(tags) > 0 {
		b.WriteString("tags: " + strings.Join(tags, ", ") + "\n")
	}
	if m.Date.IsSome() {
		b.WriteString("date: " + FormatDate(m.Date) + "\n")
	}
	if m.Author != "" {
		b.WriteString("author: " + m.Author + "\n")
	}
	b.WriteString(Delimiter + "\n")
	return b.String()
}
