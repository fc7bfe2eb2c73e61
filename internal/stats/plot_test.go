package stats

import (
	"bytes"
	"strings"
	"testing"

	"castgrid/internal/model"
)

func TestPlotSeriesRendersRows(t *testing.T) {
	var buf bytes.Buffer
	series := []Series{{Name: "All", Values: []float64{1, 4, 2, 8}}}
	if err := PlotSeries(&buf, "Trend", series, 20, 4); err != nil {
		t.Fatalf("plot: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Trend") {
		t.Fatalf("missing title: %s", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Title + range line + 4 plot rows + legend.
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d: %q", len(lines), lines)
	}
}

func TestRenderYearTrendEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderYearTrend(&buf, nil, 40, 4); err != nil {
		t.Fatalf("plot: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty buckets")
	}
}

func TestRenderYearTrend(t *testing.T) {
	years := map[int][]model.Episode{
		2009: {{Number: "1"}, {Number: "BO2009.1"}},
		2010: {{Number: "2"}},
	}
	var buf bytes.Buffer
	if err := RenderYearTrend(&buf, years, 40, 4); err != nil {
		t.Fatalf("plot: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "2009–2010") {
		t.Fatalf("missing year range: %s", out)
	}
	if !strings.Contains(out, "Studio only") {
		t.Fatalf("missing series legend: %s", out)
	}
}
