package metrics

import "time"

// PageKind distinguishes template pages from synthesized tag pages.
type PageKind string

const (
	KindPage PageKind = "page"
	KindTag  PageKind = "tag"
)

// BuildOutcome enumerates the final status of a generator run.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning" // built, but with broken links
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// Recorder defines observability hooks for site generation. Implementations
// must be safe for concurrent use: pages may render in parallel.
type Recorder interface {
	ObservePageRender(kind PageKind, d time.Duration)
	IncPages(kind PageKind)
	SetTags(n int)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcome)
	IncBrokenLinks(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePageRender(PageKind, time.Duration) {}
func (NoopRecorder) IncPages(PageKind)                         {}
func (NoopRecorder) SetTags(int)                               {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)        {}
func (NoopRecorder) IncBuildOutcome(BuildOutcome)              {}
func (NoopRecorder) IncBrokenLinks(int)                        {}
