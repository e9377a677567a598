package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObservePageRender(KindPage, 2*time.Millisecond)
	pr.ObservePageRender(KindTag, time.Millisecond)
	pr.IncPages(KindPage)
	pr.IncPages(KindPage)
	pr.IncPages(KindTag)
	pr.SetTags(3)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncBuildOutcome(OutcomeSuccess)
	pr.IncBrokenLinks(2)
	pr.IncBrokenLinks(0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)

	assert.InDelta(t, 2, counterValue(t, mfs, "sitewinder_pages_written_total", "page"), 0)
	assert.InDelta(t, 1, counterValue(t, mfs, "sitewinder_pages_written_total", "tag"), 0)
	assert.InDelta(t, 2, counterValue(t, mfs, "sitewinder_broken_links_total", ""), 0)
	assert.InDelta(t, 1, counterValue(t, mfs, "sitewinder_build_outcomes_total", "success"), 0)
}

func TestPrometheusRecorderNilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObservePageRender(KindPage, time.Second)
		pr.IncPages(KindPage)
		pr.SetTags(1)
		pr.ObserveBuildDuration(time.Second)
		pr.IncBuildOutcome(OutcomeFailed)
		pr.IncBrokenLinks(1)
	})
	assert.NoError(t, pr.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncPages(KindPage)
	pr.IncBuildOutcome(OutcomeSuccess)

	path := filepath.Join(t.TempDir(), "sitewinder.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `sitewinder_pages_written_total{kind="page"} 1`), text)
	assert.True(t, strings.Contains(text, `sitewinder_build_outcomes_total{outcome="success"} 1`), text)
}

// counterValue finds a counter by family name and, when label is non-empty,
// by the value of its only label.
func counterValue(t *testing.T, mfs []*dto.MetricFamily, name, label string) float64 {
	t.Helper()
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if label != "" && (len(m.GetLabel()) != 1 || m.GetLabel()[0].GetValue() != label) {
				continue
			}
			return m.GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s{%s} not found", name, label)
	return 0
}
