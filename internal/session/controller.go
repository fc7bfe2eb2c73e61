// Package session owns the explorer's transient interaction state.
package session

import (
	"time"

	"castgrid/internal/model"
)

// DebounceDelay is the quiet period before a hovered episode becomes
// the hovered-episode state.
const DebounceDelay = 50 * time.Millisecond

// NoEpisode marks the absence of a hovered or pinned episode.
const NoEpisode = -1

// EntityRef names an entity of a given kind. The zero value means none.
type EntityRef struct {
	Name string
	Kind model.Kind
}

// IsZero reports whether the reference names no entity.
func (r EntityRef) IsZero() bool {
	return r.Name == ""
}

// State is the full transient interaction state. It is a plain value:
// reading it never exposes controller internals.
type State struct {
	Selected       EntityRef
	Hovered        EntityRef
	HoveredEpisode int
	PinnedEpisode  int
	Search         string
	Sort           model.SortKey
	Kind           model.Kind
	ColorMode      model.ColorMode
	IncludeLive    bool
	CellSize       float64
}

// Controller applies interaction events to the state. All transitions
// are synchronous except the debounced hover, which resolves through
// the injected Scheduler.
type Controller struct {
	state State
	sched Scheduler
}

// NewController creates a controller with the given initial settings.
func NewController(sched Scheduler, sort model.SortKey, colorMode model.ColorMode, includeLive bool) *Controller {
	if sched == nil {
		sched = NopScheduler{}
	}
	return &Controller{
		sched: sched,
		state: State{
			HoveredEpisode: NoEpisode,
			PinnedEpisode:  NoEpisode,
			Sort:           sort,
			Kind:           model.KindGuest,
			ColorMode:      colorMode,
			IncludeLive:    includeLive,
		},
	}
}

// State returns a copy of the current interaction state.
func (c *Controller) State() State {
	return c.state
}

// SelectEntity selects an entity, forcing the active kind to match.
// Selecting the already-selected entity clears the selection.
func (c *Controller) SelectEntity(ref EntityRef) {
	if c.state.Selected == ref {
		c.state.Selected = EntityRef{}
		return
	}
	c.state.Selected = ref
	c.state.Kind = ref.Kind
}

// SetKind switches the guest/character tab. Switching kinds clears the
// selection and the search text.
func (c *Controller) SetKind(kind model.Kind) {
	if c.state.Kind == kind {
		return
	}
	c.state.Kind = kind
	c.state.Selected = EntityRef{}
	c.state.Search = ""
}

// SetSearch replaces the search text.
func (c *Controller) SetSearch(text string) {
	c.state.Search = text
}

// SetSort replaces the sort key.
func (c *Controller) SetSort(key model.SortKey) {
	c.state.Sort = key
}

// SetColorMode replaces the color-scaling mode.
func (c *Controller) SetColorMode(mode model.ColorMode) {
	c.state.ColorMode = mode
}

// SetIncludeLive sets the live-episode inclusion flag.
func (c *Controller) SetIncludeLive(include bool) {
	c.state.IncludeLive = include
}

// HoverEntity marks an entity as hovered. Purely presentational; never
// touches the selection.
func (c *Controller) HoverEntity(ref EntityRef) {
	c.state.Hovered = ref
}

// LeaveEntity clears the hovered entity.
func (c *Controller) LeaveEntity() {
	c.state.Hovered = EntityRef{}
}

// HoverEpisode schedules a debounced hovered-episode update. A new
// hover before the delay elapses replaces the pending one, so a burst
// of cell crossings yields at most one state update per quiet period.
func (c *Controller) HoverEpisode(index int) {
	c.sched.Schedule(DebounceDelay, func() {
		c.state.HoveredEpisode = index
	})
}

// LeaveTimeline cancels any pending hover and clears the hovered
// episode immediately; no trailing update fires after leaving.
func (c *Controller) LeaveTimeline() {
	c.sched.Cancel()
	c.state.HoveredEpisode = NoEpisode
}

// TogglePin pins the episode, or unpins it if it is already pinned.
// Independent of hover.
func (c *Controller) TogglePin(index int) {
	if c.state.PinnedEpisode == index {
		c.state.PinnedEpisode = NoEpisode
		return
	}
	c.state.PinnedEpisode = index
}

// BackgroundClick clears the pin. This is the only background-level
// transition; clicks inside episode-summary or timeline-cell regions
// must not be routed here.
func (c *Controller) BackgroundClick() {
	c.state.PinnedEpisode = NoEpisode
}

// DisplayedEpisode returns the episode the detail view should show:
// the pin when present, otherwise the debounced hover. Hover keeps
// updating underneath a pin but is visually suppressed by it.
func (c *Controller) DisplayedEpisode() (int, bool) {
	if c.state.PinnedEpisode != NoEpisode {
		return c.state.PinnedEpisode, true
	}
	if c.state.HoveredEpisode != NoEpisode {
		return c.state.HoveredEpisode, true
	}
	return NoEpisode, false
}

// SetCellSize records the grid sizer's current cell edge length.
func (c *Controller) SetCellSize(size float64) {
	c.state.CellSize = size
}

// Close cancels any pending debounce so no callback can mutate state
// after teardown.
func (c *Controller) Close() {
	c.sched.Cancel()
}
