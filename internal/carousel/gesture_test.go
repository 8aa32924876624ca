package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySwipe(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       Direction
	}{
		{name: "swipe left advances", start: 300, end: 200, want: DirectionNext},
		{name: "swipe right goes back", start: 100, end: 220, want: DirectionPrev},
		{name: "tap", start: 100, end: 100, want: DirectionNone},
		{name: "sub-threshold left", start: 100, end: 60, want: DirectionNone},
		{name: "exactly threshold is not a swipe", start: 100, end: 50, want: DirectionNone},
		{name: "just past threshold", start: 100, end: 49, want: DirectionNext},
		{name: "sub-threshold right", start: 100, end: 150, want: DirectionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySwipe(tt.start, tt.end, DefaultSwipeThreshold))
		})
	}
}

func TestSwipeTracker(t *testing.T) {
	s := NewSwipeTracker(DefaultSwipeThreshold)

	assert.Equal(t, DirectionNone, s.End(0), "release without press is ignored")

	s.Start(400)
	assert.True(t, s.Active())
	assert.Equal(t, DirectionNext, s.End(300))
	assert.False(t, s.Active())

	// The tracker resets after each release.
	assert.Equal(t, DirectionNone, s.End(0))

	s.Start(0)
	assert.Equal(t, DirectionPrev, s.End(80))
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "next", DirectionNext.String())
	assert.Equal(t, "prev", DirectionPrev.String())
	assert.Equal(t, "none", DirectionNone.String())
}
