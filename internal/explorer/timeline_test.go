package explorer

import (
	"testing"
	"time"

	"castgrid/internal/index"
	"castgrid/internal/model"
)

func testEpisodes() []model.Episode {
	day := func(y, m, d int) time.Time {
		return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	}
	return []model.Episode{
		{Title: "Alpha", Number: "1", Date: day(2010, 1, 5), Index: 0, Year: 2010, Guests: []string{"A"}},
		{Title: "Live from Austin", Number: "2", Date: day(2010, 6, 5), Index: 1, Year: 2010, Guests: []string{"B"}},
		{Title: "Tour Stop", Number: "BO2011.2", Date: day(2011, 2, 5), Index: 2, Year: 2011, Guests: []string{"A"}},
	}
}

func TestBuildTimelineRowsIncludesLive(t *testing.T) {
	idx := index.Build(testEpisodes(), nil, nil, nil)

	rows := buildTimelineRows(idx, true)
	if len(rows) != 2 {
		t.Fatalf("expected 2 year rows, got %d", len(rows))
	}
	if rows[0].year != 2010 || len(rows[0].cells) != 2 {
		t.Fatalf("unexpected 2010 row: year=%d cells=%d", rows[0].year, len(rows[0].cells))
	}
	if rows[1].year != 2011 || len(rows[1].cells) != 1 {
		t.Fatalf("unexpected 2011 row: year=%d cells=%d", rows[1].year, len(rows[1].cells))
	}
}

func TestBuildTimelineRowsExcludesLive(t *testing.T) {
	idx := index.Build(testEpisodes(), nil, nil, nil)

	rows := buildTimelineRows(idx, false)
	if len(rows) != 2 {
		t.Fatalf("expected 2 year rows, got %d", len(rows))
	}
	if len(rows[0].cells) != 1 || rows[0].cells[0].Title != "Alpha" {
		t.Fatalf("live episode survived 2010 filter: %+v", rows[0].cells)
	}
	if len(rows[1].cells) != 0 {
		t.Fatalf("tour-numbered episode survived 2011 filter: %+v", rows[1].cells)
	}
}

func TestEpisodeAtBounds(t *testing.T) {
	idx := index.Build(testEpisodes(), nil, nil, nil)
	m := &Model{rows: buildTimelineRows(idx, true)}

	ep, ok := m.episodeAt(0, 1)
	if !ok || ep.Title != "Live from Austin" {
		t.Fatalf("episodeAt(0,1) = %+v, %v", ep, ok)
	}
	if _, ok := m.episodeAt(0, 2); ok {
		t.Fatalf("expected out-of-row cell to miss")
	}
	if _, ok := m.episodeAt(-1, 0); ok {
		t.Fatalf("expected negative row to miss")
	}
	if _, ok := m.episodeAt(2, 0); ok {
		t.Fatalf("expected out-of-range row to miss")
	}
}

func TestRampStyleClamps(t *testing.T) {
	if got := rampStyle(1.0, true); got.GetForeground() != cellRamp[len(cellRamp)-1].GetForeground() {
		t.Fatalf("fraction 1.0 did not clamp to top ramp step")
	}
	if got := rampStyle(0.0, true); got.GetForeground() != cellRamp[0].GetForeground() {
		t.Fatalf("fraction 0.0 did not map to bottom ramp step")
	}
	if got := rampStyle(0.5, false); got.GetForeground() != noDataCellStyle.GetForeground() {
		t.Fatalf("no-data fraction did not map to the no-data style")
	}
}
