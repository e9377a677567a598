package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRoot       = "root"
	KeyPage       = "page"
	KeyTemplate   = "template"
	KeyOutput     = "output"
	KeyGroup      = "group"
	KeyTag        = "tag"
	KeyKey        = "key"
	KeyLine       = "line"
	KeyURL        = "url"
	KeyCount      = "count"
	KeyWorkers    = "workers"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Root(p string) slog.Attr         { return slog.String(KeyRoot, p) }
func Page(sitePath string) slog.Attr  { return slog.String(KeyPage, sitePath) }
func Template(p string) slog.Attr     { return slog.String(KeyTemplate, p) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Group(name string) slog.Attr     { return slog.String(KeyGroup, name) }
func Tag(name string) slog.Attr       { return slog.String(KeyTag, name) }
func Key(k string) slog.Attr          { return slog.String(KeyKey, k) }
func Line(n int) slog.Attr            { return slog.Int(KeyLine, n) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Workers(n int) slog.Attr         { return slog.Int(KeyWorkers, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
