package explorer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"castgrid/internal/index"
	"castgrid/internal/model"
	"castgrid/internal/session"
	"castgrid/internal/stats"
)

// timelineRow is one year of the grid, in chronological cell order.
type timelineRow struct {
	year  int
	cells []model.Episode
}

// buildTimelineRows lays the year buckets out as grid rows. With live
// inclusion off, live episodes are omitted from their rows.
func buildTimelineRows(idx *index.Index, includeLive bool) []timelineRow {
	rows := make([]timelineRow, 0, len(idx.YearAxis))
	for _, year := range idx.YearAxis {
		row := timelineRow{year: year}
		for _, ep := range idx.Years[year] {
			if !includeLive && stats.IsLive(ep.Number, ep.Title) {
				continue
			}
			row.cells = append(row.cells, ep)
		}
		rows = append(rows, row)
	}
	return rows
}

var cellRamp = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#2C3E70")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#3C6090")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#4C88B0")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#5CB0C0")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#7CD8D0")),
}

var (
	noDataCellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	entityCellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	pinnedCellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Reverse(true)
	yearLabelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	timelineDimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	timelineGapColumn = " "
)

// rampStyle maps a [0,1] fraction onto the color ramp.
func rampStyle(fraction float64, ok bool) lipgloss.Style {
	if !ok {
		return noDataCellStyle
	}
	idx := int(fraction * float64(len(cellRamp)))
	if idx >= len(cellRamp) {
		idx = len(cellRamp) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return cellRamp[idx]
}

const yearLabelWidth = 4

func (m *Model) renderTimeline(width int) string {
	if len(m.rows) == 0 {
		return "No episodes to display."
	}
	state := m.ctrl.State()
	cellWidth := maxInt(1, int(state.CellSize)/pxPerColumn)

	highlight := m.highlightedEpisodes()

	var b strings.Builder
	for rowIdx, row := range m.rows {
		b.WriteString(yearLabelStyle.Render(fmt.Sprintf("%*d", yearLabelWidth, row.year)))
		b.WriteString(timelineGapColumn)
		for cellIdx, ep := range row.cells {
			style := m.cellStyle(ep, state, highlight)
			cell := strings.Repeat("■", cellWidth)
			if m.focus == focusTimeline && rowIdx == m.cursorRow && cellIdx == m.cursorCell {
				style = style.Underline(true)
			}
			b.WriteString(style.Render(cell))
		}
		if rowIdx < len(m.rows)-1 {
			b.WriteByte('\n')
		}
	}
	return truncateBlock(b.String(), width)
}

func (m *Model) cellStyle(ep model.Episode, state session.State, highlight map[int]struct{}) lipgloss.Style {
	if state.PinnedEpisode == ep.Index {
		return pinnedCellStyle
	}
	if _, ok := highlight[ep.Index]; ok {
		return entityCellStyle
	}
	fraction, ok := stats.Fraction(ep, state.ColorMode, m.stats)
	return rampStyle(fraction, ok)
}

// highlightedEpisodes collects the episode indices of the selected
// entity, or the hovered one when nothing is selected.
func (m *Model) highlightedEpisodes() map[int]struct{} {
	state := m.ctrl.State()
	ref := state.Selected
	if ref.IsZero() {
		ref = state.Hovered
	}
	if ref.IsZero() {
		return nil
	}
	entity, ok := m.idx.ForKind(ref.Kind)[ref.Name]
	if !ok {
		return nil
	}
	out := make(map[int]struct{}, len(entity.EpisodeIndices))
	for _, i := range entity.EpisodeIndices {
		out[i] = struct{}{}
	}
	return out
}

func truncateBlock(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = truncateLine(line, width)
		}
	}
	return strings.Join(lines, "\n")
}

// episodeAt returns the episode under a timeline cursor position.
func (m *Model) episodeAt(row, cell int) (model.Episode, bool) {
	if row < 0 || row >= len(m.rows) {
		return model.Episode{}, false
	}
	cells := m.rows[row].cells
	if cell < 0 || cell >= len(cells) {
		return model.Episode{}, false
	}
	return cells[cell], true
}
