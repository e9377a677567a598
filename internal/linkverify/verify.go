package linkverify

import (
	"context"
	stderrors "errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/makeshared/sitewinder/internal/foundation/errors"
)

// BrokenLink is a local link whose target does not exist.
type BrokenLink struct {
	Page      string // HTML file containing the link
	URL       string // link as written
	Target    string // file system path it resolved to
	Tag       string
	Attribute string
}

// Report summarizes a verification run.
type Report struct {
	Files  int
	Links  int // local links checked
	Broken []BrokenLink
}

// Verify checks every local link in the given HTML files. root is the site
// root that "/"-prefixed links resolve against.
func Verify(ctx context.Context, root string, htmlPaths []string) (*Report, error) {
	report := &Report{}
	for _, path := range htmlPaths {
		if err := ctx.Err(); err != nil {
			return report, errors.WrapError(err, errors.CategoryValidation, "link verification interrupted").Build()
		}
		links, broken, err := VerifyFile(root, path)
		if err != nil {
			return report, err
		}
		report.Files++
		report.Links += links
		report.Broken = append(report.Broken, broken...)
	}
	return report, nil
}

// VerifyFile checks the local links of one HTML file and returns how many it
// checked along with those that are broken.
func VerifyFile(root, htmlPath string) (int, []BrokenLink, error) {
	links, err := ExtractLinks(htmlPath)
	if err != nil {
		return 0, nil, err
	}

	checked := 0
	var broken []BrokenLink
	for _, link := range links {
		if !ShouldVerifyLink(link) {
			continue
		}
		target, ok := localTarget(root, htmlPath, link.URL)
		if !ok {
			continue
		}
		checked++
		if _, err := os.Stat(target); stderrors.Is(err, os.ErrNotExist) {
			broken = append(broken, BrokenLink{
				Page:      htmlPath,
				URL:       link.URL,
				Target:    target,
				Tag:       link.Tag,
				Attribute: link.Attribute,
			})
		}
	}
	return checked, broken, nil
}

// localTarget maps a local URL to the file it names. Query and fragment are
// dropped; a URL that is only a query names no file.
func localTarget(root, htmlPath, raw string) (string, bool) {
	p, _, _ := strings.Cut(raw, "#")
	p, _, _ = strings.Cut(p, "?")
	if p == "" {
		return "", false
	}
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	if rest, ok := strings.CutPrefix(p, "/"); ok {
		return filepath.Join(root, filepath.FromSlash(rest)), true
	}
	return filepath.Join(filepath.Dir(htmlPath), filepath.FromSlash(p)), true
}
