package metadata

import (
	"strings"
	"time"

	"github.com/makeshared/sitewinder/internal/foundation"
	"github.com/makeshared/sitewinder/internal/foundation/errors"
)

// Parse reads the header block at the top of raw into meta and returns the
// remaining body verbatim. Path is never touched.
//
// A malformed date is a metadata error. Unknown keys and lines without a colon
// come back as template-category warnings carrying "line" (and "key") context.
func Parse(raw string, meta *Metadata) (string, []*errors.ClassifiedError, error) {
	var warnings []*errors.ClassifiedError
	inHeader := false
	lineNo := 0

	for offset := 0; offset < len(raw); {
		next := len(raw)
		if i := strings.IndexByte(raw[offset:], '\n'); i >= 0 {
			next = offset + i + 1
		}
		line := raw[offset:next]
		lineNo++

		switch {
		case strings.TrimSpace(line) == "":
		case isDelimiter(line):
			inHeader = !inHeader
		case !inHeader:
			return raw[offset:], warnings, nil
		default:
			w, err := meta.apply(line, lineNo)
			if err != nil {
				return "", warnings, err
			}
			if w != nil {
				warnings = append(warnings, w)
			}
		}
		offset = next
	}
	return "", warnings, nil
}

func isDelimiter(line string) bool {
	line = strings.TrimRight(line, " \t\r\n")
	return len(line) >= 2 && strings.Trim(line, "-") == ""
}

func (m *Metadata) apply(line string, lineNo int) (*errors.ClassifiedError, error) {
	key, val, ok := strings.Cut(line, ":")
	if !ok {
		return errors.TemplateWarning("ignoring header line without ':'").
			WithContext("line", lineNo).
			Build(), nil
	}
	key = strings.TrimSpace(key)
	val = strings.TrimSpace(val)

	switch key {
	case "title":
		m.Title = val
	case "group":
		m.Group = foundation.Some(val)
	case "tags":
		m.Tags = splitTags(val)
	case "date":
		d, err := time.Parse(DateLayout, val)
		if err != nil {
			return nil, errors.MetadataError("malformed date").
				WithCause(err).
				WithContext("line", lineNo).
				WithContext("value", val).
				Build()
		}
		m.Date = foundation.Some(d)
	case "author":
		m.Author = val
	default:
		return errors.TemplateWarning("ignoring unknown key").
			WithContext("line", lineNo).
			WithContext("key", key).
			Build(), nil
	}
	return nil, nil
}

// splitTags keeps declaration order and duplicates; empty entries are dropped.
func splitTags(val string) foundation.Option[[]string] {
	var tags []string
	for _, t := range strings.Split(val, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return foundation.None[[]string]()
	}
	return foundation.Some(tags)
}
