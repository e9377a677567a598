package markup

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/makeshared/sitewinder/internal/foundation/errors"
)

// Reader supplies file contents to the template language.
type Reader interface {
	ReadText(path string) (string, error)
}

// IncludePath resolves an include or group reference against the site root.
// A leading "/" is optional: every reference is root-relative.
func IncludePath(root, ref string) string {
	return filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(ref, "/")))
}

// Expander inlines { include "<path>" } directives.
type Expander struct {
	Root   string
	Reader Reader
}

// Expand replaces every include directive with the referenced file, then
// re-scans the result, until a pass changes nothing. Included files may
// include further files to any depth.
//
// There is no cycle detection: a file that includes itself never converges.
// ctx is checked between passes so a caller can bound such a run.
func (e Expander) Expand(ctx context.Context, body string) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", errors.WrapError(err, errors.CategoryInclude, "include expansion interrupted").Fatal().Build()
		}
		expanded, err := replaceAllFunc(reInclude, body, func(m string) (string, error) {
			return e.read(submatch(reInclude, m, "path"))
		})
		if err != nil {
			return "", err
		}
		if expanded == body {
			return body, nil
		}
		body = expanded
	}
}

func (e Expander) read(ref string) (string, error) {
	path := IncludePath(e.Root, ref)
	text, err := e.Reader.ReadText(path)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryInclude, "include target not found").
			Fatal().
			WithContext("include", ref).
			WithContext("path", path).
			Build()
	}
	return text, nil
}
