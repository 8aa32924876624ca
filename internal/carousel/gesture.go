package carousel

// DefaultSwipeThreshold is the minimum horizontal travel, in logical
// pixels, for a drag to count as a swipe.
const DefaultSwipeThreshold = 50

type Direction int

const (
	DirectionNone Direction = iota
	DirectionNext
	DirectionPrev
)

func (d Direction) String() string {
	switch d {
	case DirectionNext:
		return "next"
	case DirectionPrev:
		return "prev"
	default:
		return "none"
	}
}

// ClassifySwipe maps a drag from startX to endX onto a transition.
// Moving left advances, moving right goes back; travel of threshold or
// less is a tap.
func ClassifySwipe(startX, endX, threshold int) Direction {
	diff := startX - endX
	if diff > threshold {
		return DirectionNext
	}
	if -diff > threshold {
		return DirectionPrev
	}
	return DirectionNone
}

// SwipeTracker pairs a press with its release.
type SwipeTracker struct {
	Threshold int
	startX    int
	active    bool
}

func NewSwipeTracker(threshold int) *SwipeTracker {
	return &SwipeTracker{Threshold: threshold}
}

func (s *SwipeTracker) Start(x int) {
	s.startX = x
	s.active = true
}

// End finishes the gesture. A release without a press is ignored.
func (s *SwipeTracker) End(x int) Direction {
	if !s.active {
		return DirectionNone
	}
	s.active = false
	return ClassifySwipe(s.startX, x, s.Threshold)
}

func (s *SwipeTracker) Active() bool { return s.active }
