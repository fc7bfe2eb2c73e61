// Package explorer provides the Bubble Tea corpus explorer.
package explorer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"castgrid/internal/grid"
	"castgrid/internal/index"
	"castgrid/internal/links"
	"castgrid/internal/model"
	"castgrid/internal/query"
	"castgrid/internal/session"
	"castgrid/internal/stats"
)

const (
	focusList = iota
	focusTimeline
)

// The sizer works in pixel terms per the layout contract; terminal
// columns are mapped onto it at a nominal glyph width.
const pxPerColumn = 8

const timelineGapPx = 0

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	summaryStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	detailTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	detailLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	linkStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#5CB0C0")).Underline(true)
	liveBadgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
)

// Model implements the Bubble Tea corpus explorer.
type Model struct {
	episodes []model.Episode
	idx      *index.Index
	stats    model.Stats
	cfg      model.ExplorerConfig

	queries *query.Engine
	sizer   grid.Sizer
	sched   *tickScheduler
	ctrl    *session.Controller

	entities []*model.Entity
	rows     []timelineRow

	entityTable table.Model
	searchInput textinput.Model
	searchMode  bool
	detail      viewport.Model

	focus      int
	cursorRow  int
	cursorCell int

	width  int
	height int
}

// New constructs an explorer over a built corpus.
func New(episodes []model.Episode, idx *index.Index, st model.Stats, cfg model.ExplorerConfig) *Model {
	sched := &tickScheduler{}
	m := &Model{
		episodes: episodes,
		idx:      idx,
		stats:    st,
		cfg:      cfg,
		queries:  query.New(idx),
		sched:    sched,
		ctrl:     session.NewController(sched, cfg.Sort, cfg.ColorMode, cfg.IncludeLive),
	}
	m.searchInput = textinput.New()
	m.searchInput.Prompt = "Search: "
	m.entityTable = table.New(table.WithColumns(entityColumns(30)), table.WithFocused(true))
	m.detail = viewport.New(0, 0)
	m.refreshRows()
	m.refreshEntities()
	m.refreshDetail()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.refreshDetail()
		return m, nil
	case debounceMsg:
		if m.sched.fire(msg) {
			m.refreshDetail()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.ctrl.Close()
		return m, tea.Quit
	}
	if m.searchMode {
		return m.updateSearch(msg)
	}
	switch msg.String() {
	case "q":
		m.ctrl.Close()
		return m, tea.Quit
	case "g":
		m.switchKind(model.KindGuest)
		return m, nil
	case "c":
		m.switchKind(model.KindCharacter)
		return m, nil
	case "/":
		m.searchMode = true
		m.searchInput.SetValue(m.ctrl.State().Search)
		return m, m.searchInput.Focus()
	case "s":
		m.ctrl.SetSort(nextSortKey(m.ctrl.State().Sort))
		m.refreshEntities()
		return m, nil
	case "o":
		m.ctrl.SetColorMode(nextColorMode(m.ctrl.State().ColorMode))
		return m, nil
	case "v":
		m.ctrl.SetIncludeLive(!m.ctrl.State().IncludeLive)
		m.refreshRows()
		m.updateLayout()
		m.refreshDetail()
		return m, nil
	case "tab":
		return m, m.toggleFocus()
	case "esc":
		// The background-click analog: only the pin reacts.
		m.ctrl.BackgroundClick()
		m.refreshDetail()
		return m, nil
	case "enter":
		return m, m.activate()
	}
	if m.focus == focusTimeline {
		return m, m.moveTimelineCursor(msg.String())
	}
	var cmd tea.Cmd
	m.entityTable, cmd = m.entityTable.Update(msg)
	m.hoverListEntity()
	return m, cmd
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searchMode = false
		m.searchInput.Blur()
		m.ctrl.SetSearch(strings.TrimSpace(m.searchInput.Value()))
		m.refreshEntities()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) switchKind(kind model.Kind) {
	m.ctrl.SetKind(kind)
	m.searchInput.SetValue("")
	m.refreshEntities()
	m.refreshDetail()
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == focusList {
		m.focus = focusTimeline
		m.ctrl.LeaveEntity()
		m.entityTable.Blur()
		return m.hoverCursor()
	}
	m.focus = focusList
	m.ctrl.LeaveTimeline()
	m.entityTable.Focus()
	m.hoverListEntity()
	m.refreshDetail()
	return nil
}

func (m *Model) activate() tea.Cmd {
	if m.focus == focusTimeline {
		if ep, ok := m.episodeAt(m.cursorRow, m.cursorCell); ok {
			m.ctrl.TogglePin(ep.Index)
			m.refreshDetail()
		}
		return nil
	}
	if entity, ok := m.entityUnderCursor(); ok {
		m.ctrl.SelectEntity(session.EntityRef{Name: entity.Name, Kind: entity.Kind})
		m.refreshEntities()
		m.refreshDetail()
	}
	return nil
}

func (m *Model) moveTimelineCursor(key string) tea.Cmd {
	row, cell := m.cursorRow, m.cursorCell
	switch key {
	case "up", "k":
		row--
	case "down", "j":
		row++
	case "left", "h":
		cell--
	case "right", "l":
		cell++
	default:
		return nil
	}
	if row < 0 || row >= len(m.rows) {
		return nil
	}
	if cell < 0 {
		cell = 0
	}
	if max := len(m.rows[row].cells) - 1; cell > max {
		cell = max
	}
	if cell < 0 {
		// Empty row; keep the cursor where it was.
		return nil
	}
	m.cursorRow, m.cursorCell = row, cell
	return m.hoverCursor()
}

// hoverCursor routes the cell under the cursor through the debounced
// hover transition and returns the tick that resolves it.
func (m *Model) hoverCursor() tea.Cmd {
	ep, ok := m.episodeAt(m.cursorRow, m.cursorCell)
	if !ok {
		return nil
	}
	m.ctrl.HoverEpisode(ep.Index)
	return m.sched.pending()
}

func (m *Model) hoverListEntity() {
	if entity, ok := m.entityUnderCursor(); ok {
		m.ctrl.HoverEntity(session.EntityRef{Name: entity.Name, Kind: entity.Kind})
		return
	}
	m.ctrl.LeaveEntity()
}

func (m *Model) entityUnderCursor() (*model.Entity, bool) {
	idx := m.entityTable.Cursor()
	if idx < 0 || idx >= len(m.entities) {
		return nil, false
	}
	return m.entities[idx], true
}

func (m *Model) refreshEntities() {
	state := m.ctrl.State()
	m.entities = m.queries.Query(state.Kind, state.Search, state.Sort)
	rows := make([]table.Row, 0, len(m.entities))
	for _, entity := range m.entities {
		name := entity.Name
		if state.Selected.Name == entity.Name && state.Selected.Kind == entity.Kind {
			name = "● " + name
		}
		rows = append(rows, table.Row{
			name,
			fmt.Sprintf("%d", entity.Appearances()),
			m.episodeLabel(entity.FirstIndex),
			m.episodeLabel(entity.LastIndex),
		})
	}
	m.entityTable.SetRows(rows)
	if m.entityTable.Cursor() >= len(rows) {
		m.entityTable.SetCursor(maxInt(0, len(rows)-1))
	}
	if m.focus == focusList {
		m.hoverListEntity()
	}
}

func (m *Model) episodeLabel(index int) string {
	if index < 0 || index >= len(m.episodes) {
		return "?"
	}
	return "#" + m.episodes[index].Number
}

func (m *Model) refreshRows() {
	m.rows = buildTimelineRows(m.idx, m.ctrl.State().IncludeLive)
	if m.cursorRow >= len(m.rows) {
		m.cursorRow = maxInt(0, len(m.rows)-1)
	}
	if len(m.rows) > 0 {
		if max := len(m.rows[m.cursorRow].cells) - 1; m.cursorCell > max {
			m.cursorCell = maxInt(0, max)
		}
	}
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	listWidth := m.listWidth()
	m.entityTable.SetColumns(entityColumns(listWidth))
	m.entityTable.SetWidth(listWidth)
	_, bodyHeight, _ := m.layoutHeights()
	m.entityTable.SetHeight(maxInt(1, bodyHeight-1))

	timelineWidth := m.width - listWidth - 1
	state := m.ctrl.State()
	cardinality := m.stats.MaxEpisodesPerYearWithLive
	if !state.IncludeLive {
		cardinality = m.stats.MaxEpisodesPerYearWithoutLive
	}
	overhead := float64((yearLabelWidth + 1) * pxPerColumn)
	if m.sizer.Update(float64(timelineWidth*pxPerColumn), cardinality, overhead, timelineGapPx) {
		m.ctrl.SetCellSize(m.sizer.Size())
	}

	detailHeight := maxInt(3, bodyHeight-len(m.rows)-1)
	m.detail.Width = timelineWidth
	m.detail.Height = detailHeight
	m.searchInput.Width = maxInt(10, m.width-lipgloss.Width(m.searchInput.Prompt)-2)
}

func (m *Model) listWidth() int {
	return minInt(40, maxInt(24, m.width/3))
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeTabStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) renderHeader() string {
	state := m.ctrl.State()
	tabs := []string{}
	for _, kind := range []model.Kind{model.KindGuest, model.KindCharacter} {
		label := "Guests"
		if kind == model.KindCharacter {
			label = "Characters"
		}
		if state.Kind == kind {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	live := "on"
	if !state.IncludeLive {
		live = "off"
	}
	search := state.Search
	if search == "" {
		search = "none"
	}
	summary := fmt.Sprintf("sort=%s  color=%s  live=%s  search=%s",
		state.Sort, state.ColorMode, live, search)
	return padLines(row, m.width) + "\n" + summaryStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderBody(height int) string {
	if m.searchMode {
		return m.searchInput.View()
	}
	listWidth := m.listWidth()
	list := fitLines(m.entityTable.View(), listWidth, height)

	timelineWidth := m.width - listWidth - 1
	timelineHeight := minInt(len(m.rows), height)
	timeline := fitLines(m.renderTimeline(timelineWidth), timelineWidth, timelineHeight)
	m.detail.SetContent(m.renderDetail(timelineWidth))
	right := timeline + "\n" + m.detail.View()

	return lipgloss.JoinHorizontal(lipgloss.Top, list, " ", right)
}

func (m *Model) renderDetail(width int) string {
	epIndex, ok := m.ctrl.DisplayedEpisode()
	if !ok {
		return timelineDimStyle.Render("Move over the timeline to inspect an episode; enter pins it.")
	}
	if epIndex < 0 || epIndex >= len(m.episodes) {
		return ""
	}
	ep := m.episodes[epIndex]
	state := m.ctrl.State()

	title := detailTitleStyle.Render(truncateLine(ep.Title, width))
	if state.PinnedEpisode == ep.Index {
		title += " " + detailLabelStyle.Render("(pinned)")
	}
	meta := fmt.Sprintf("#%s · %s", ep.Number, ep.Date.Format("Jan 2, 2006"))
	if stats.IsLive(ep.Number, ep.Title) {
		meta += " · " + liveBadgeStyle.Render("LIVE")
	}
	lines := []string{
		title,
		summaryStyle.Render(meta),
		detailLabelStyle.Render("Guests: ") + truncateLine(joinOrDash(ep.Guests), width-8),
		detailLabelStyle.Render("Characters: ") + truncateLine(joinOrDash(ep.Characters), width-12),
	}
	if url := links.AudioURL(m.cfg.AudioBase, ep.Title); url != "" {
		lines = append(lines, linkStyle.Render(truncateLine(url, width)))
	}
	ref := state.Selected
	if ref.IsZero() {
		ref = state.Hovered
	}
	if !ref.IsZero() {
		if url := links.WikiURL(m.cfg.WikiBase, ref.Name); url != "" {
			lines = append(lines, linkStyle.Render(truncateLine(url, width)))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) refreshDetail() {
	m.detail.SetContent(m.renderDetail(maxInt(20, m.width-m.listWidth()-1)))
}

func (m *Model) renderFooter() string {
	help := "Tabs: g/c  Focus: tab  Search: /  Sort: s  Color: o  Live: v  Pin: enter  Unpin: esc  Quit: q"
	if m.focus == focusTimeline {
		help = "Move: arrows/hjkl  Pin: enter  Unpin: esc  Focus: tab  Quit: q"
	}
	return helpStyle.Render(truncateLine(help, m.width))
}

func joinOrDash(names []string) string {
	if len(names) == 0 {
		return "—"
	}
	return strings.Join(names, ", ")
}

func entityColumns(listWidth int) []table.Column {
	nameWidth := maxInt(8, listWidth-20)
	return []table.Column{
		{Title: "Name", Width: nameWidth},
		{Title: "Eps", Width: 4},
		{Title: "First", Width: 7},
		{Title: "Last", Width: 7},
	}
}

func nextSortKey(key model.SortKey) model.SortKey {
	switch key {
	case model.SortMostAppearances:
		return model.SortMostRecent
	case model.SortMostRecent:
		return model.SortFirstAppearance
	case model.SortFirstAppearance:
		return model.SortAlphabetical
	default:
		return model.SortMostAppearances
	}
}

func nextColorMode(mode model.ColorMode) model.ColorMode {
	switch mode {
	case model.ColorGuests:
		return model.ColorCharacters
	case model.ColorCharacters:
		return model.ColorCharsPerGuest
	default:
		return model.ColorGuests
	}
}
