package version

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if BuildTime == "" || GitCommit == "" {
		t.Error("build info should be initialized")
	}
}

func TestAbout(t *testing.T) {
	about := About()
	if !strings.HasPrefix(about, Name+" "+Version) {
		t.Errorf("About() = %q, want prefix %q", about, Name+" "+Version)
	}
	if !strings.Contains(about, "static site generator") {
		t.Errorf("About() = %q", about)
	}
}
