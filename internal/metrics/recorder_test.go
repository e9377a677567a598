package metrics

import (
	"testing"
	"time"
)

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObservePageRender(KindPage, time.Millisecond)
	r.IncPages(KindTag)
	r.SetTags(4)
	r.ObserveBuildDuration(time.Second)
	r.IncBuildOutcome(OutcomeCanceled)
	r.IncBrokenLinks(1)
}

var _ Recorder = (*PrometheusRecorder)(nil)
