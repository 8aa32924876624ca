package carousel

// Geometry reports the current layout of the rendered strip. It is
// queried on every transition, so it may change between calls.
type Geometry interface {
	// CardWidth is the rendered width of one card, without the gap.
	CardWidth() int
	// ScrollableWidth is the total strip width minus the visible width.
	ScrollableWidth() int
}

// ScrollFunc receives the strip offset after each transition.
type ScrollFunc func(offset int, smooth bool)

type Indicator struct {
	Index  int
	Active bool
}

// Navigator is the slide position state machine. Positions are bounded
// by [0, MaxIndex()]. Every transition scrolls the strip, refreshes the
// indicators and re-arms the auto-advance timer.
//
// The timer is a generation counter: re-arming bumps the generation and
// the caller schedules a single tick carrying it. Ticks with an older
// generation are stale and ignored, so at most one timer is live.
type Navigator struct {
	geom       Geometry
	gap        int
	position   int
	indicators []Indicator
	gen        uint64
	armed      bool
	onScroll   ScrollFunc
}

func NewNavigator(geom Geometry, gap int) *Navigator {
	if gap < 0 {
		gap = 0
	}
	return &Navigator{geom: geom, gap: gap}
}

func (n *Navigator) SetScrollFunc(fn ScrollFunc) {
	n.onScroll = fn
}

// CardStep is one card width plus the gap.
func (n *Navigator) CardStep() int {
	if n.geom == nil {
		return 0
	}
	return n.geom.CardWidth() + n.gap
}

// MaxIndex is floor(scrollable / cardStep), never negative.
func (n *Navigator) MaxIndex() int {
	step := n.CardStep()
	if step <= 0 {
		return 0
	}
	scrollable := n.geom.ScrollableWidth()
	if scrollable <= 0 {
		return 0
	}
	return scrollable / step
}

func (n *Navigator) Position() int { return n.position }

// Offset is the strip scroll offset for the current position.
func (n *Navigator) Offset() int { return n.position * n.CardStep() }

func (n *Navigator) Indicators() []Indicator {
	out := make([]Indicator, len(n.indicators))
	copy(out, n.indicators)
	return out
}

// Generation is the id of the live timer.
func (n *Navigator) Generation() uint64 { return n.gen }

// Pending reports whether a timer is armed.
func (n *Navigator) Pending() bool { return n.armed }

// Reset is called after every render: the indicators are rebuilt, the
// position returns to 0 and the timer restarts. It returns the new
// timer generation.
func (n *Navigator) Reset() uint64 {
	n.position = 0
	n.scroll(false)
	n.refreshIndicators()
	return n.rearm()
}

func (n *Navigator) Prev() uint64 {
	return n.moveTo(n.position - 1)
}

func (n *Navigator) Next() uint64 {
	return n.moveTo(n.position + 1)
}

// Jump moves to an indicator index. Out-of-range indices are clamped.
func (n *Navigator) Jump(i int) uint64 {
	return n.moveTo(i)
}

// Tick handles a timer firing. Stale generations are ignored and report
// false; a live tick advances like Next (without wrapping) and re-arms.
func (n *Navigator) Tick(gen uint64) (uint64, bool) {
	if !n.armed || gen != n.gen {
		return n.gen, false
	}
	return n.Next(), true
}

// Stop disarms the timer and clears the indicators.
func (n *Navigator) Stop() {
	n.armed = false
	n.gen++
	n.position = 0
	n.indicators = nil
}

// Relayout re-applies the bounds after the geometry changed, without
// touching the timer.
func (n *Navigator) Relayout() {
	if !n.armed {
		return
	}
	n.position = n.clamp(n.position)
	n.scroll(false)
	n.refreshIndicators()
}

func (n *Navigator) moveTo(target int) uint64 {
	n.position = n.clamp(target)
	n.scroll(true)
	n.refreshIndicators()
	return n.rearm()
}

func (n *Navigator) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if last := n.MaxIndex(); i > last {
		return last
	}
	return i
}

func (n *Navigator) scroll(smooth bool) {
	if n.onScroll != nil {
		n.onScroll(n.Offset(), smooth)
	}
}

func (n *Navigator) refreshIndicators() {
	count := n.MaxIndex() + 1
	if cap(n.indicators) >= count {
		n.indicators = n.indicators[:count]
	} else {
		n.indicators = make([]Indicator, count)
	}
	for i := range n.indicators {
		n.indicators[i] = Indicator{Index: i, Active: i == n.position}
	}
}

func (n *Navigator) rearm() uint64 {
	n.gen++
	n.armed = true
	return n.gen
}
