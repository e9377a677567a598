package linkverify

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makeshared/sitewinder/internal/foundation/errors"
)

func TestExtractLinksFromReader(t *testing.T) {
	doc := `<html><head><link rel="stylesheet" href="../style.css"><base href="./"></head>
<body>
<a href="next.html">Next <b>page</b></a>
<a href="https://example.com">out</a>
<img alt="cat" src="cat.png" srcset="cat.png 1x, cat-2x.png 2x">
<video src="clip.mp4" poster="clip.jpg"></video>
<object data="doc.pdf"></object>
<form action="search.html"></form>
<iframe src="//cdn.example.com/embed"></iframe>
</body></html>`

	links, err := ExtractLinksFromReader(strings.NewReader(doc))
	require.NoError(t, err)

	type got struct{ tag, attr, url string }
	var all []got
	for _, l := range links {
		all = append(all, got{l.Tag, l.Attribute, l.URL})
	}
	assert.Equal(t, []got{
		{"link", "href", "../style.css"},
		{"base", "href", "./"},
		{"a", "href", "next.html"},
		{"a", "href", "https://example.com"},
		{"img", "src", "cat.png"},
		{"img", "srcset", "cat.png"},
		{"img", "srcset", "cat-2x.png"},
		{"video", "src", "clip.mp4"},
		{"video", "poster", "clip.jpg"},
		{"object", "data", "doc.pdf"},
		{"form", "action", "search.html"},
		{"iframe", "src", "//cdn.example.com/embed"},
	}, all)

	assert.Equal(t, "Nextpage", links[2].Text)
	assert.Equal(t, "cat", links[4].Text)
	assert.Equal(t, "stylesheet", links[0].Text)
	assert.False(t, links[3].IsLocal)
	assert.False(t, links[11].IsLocal)
	assert.True(t, links[2].IsLocal)
}

func TestShouldVerifyLink(t *testing.T) {
	assert.True(t, ShouldVerifyLink(&Link{URL: "a.html", Tag: "a", IsLocal: true}))
	assert.False(t, ShouldVerifyLink(&Link{URL: "https://x.org", Tag: "a"}))
	assert.False(t, ShouldVerifyLink(&Link{URL: "", Tag: "a", IsLocal: true}))
	assert.False(t, ShouldVerifyLink(&Link{URL: "./", Tag: "base", IsLocal: true}))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestVerify(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "about.html"), "about")
	writeFile(t, filepath.Join(root, "img", "my cat.png"), "png")
	post := filepath.Join(root, "blog", "post.html")
	writeFile(t, post, `<a href="../about.html#team">About</a>
<a href="/about.html?x=1">About again</a>
<img src="../img/my%20cat.png">
<a href="../">Home</a>
<a href="#top">Top</a>
<a href="?page=2">More</a>
<a href="missing.html">Gone</a>
<a href="mailto:a@b.com">Mail</a>`)
	index := filepath.Join(root, "index.html")
	writeFile(t, index, `<a href="blog/post.html">Post</a>`)

	report, err := Verify(context.Background(), root, []string{post, index})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Files)
	assert.Equal(t, 6, report.Links)
	require.Len(t, report.Broken, 1)
	assert.Equal(t, BrokenLink{
		Page:      post,
		URL:       "missing.html",
		Target:    filepath.Join(root, "blog", "missing.html"),
		Tag:       "a",
		Attribute: "href",
	}, report.Broken[0])
}

func TestVerifyMissingFile(t *testing.T) {
	_, err := Verify(context.Background(), t.TempDir(), []string{filepath.Join(t.TempDir(), "nope.html")})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestVerifyCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := Verify(ctx, t.TempDir(), []string{"a.html"})
	require.Error(t, err)
	assert.Equal(t, 0, report.Files)
}
