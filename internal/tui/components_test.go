package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/pders01/featured/internal/carousel"
	"github.com/pders01/featured/internal/catalog"
)

func TestTerminalGeometry(t *testing.T) {
	tests := []struct {
		name       string
		cards      int
		viewport   int
		scrollable int
		maxIndex   int
	}{
		{name: "no cards", cards: 0, viewport: 80, scrollable: 0, maxIndex: 0},
		{name: "fits", cards: 2, viewport: 80, scrollable: 0, maxIndex: 0},
		{name: "five in eighty", cards: 5, viewport: 80, scrollable: 98, maxIndex: 2},
		{name: "five in forty", cards: 5, viewport: 40, scrollable: 138, maxIndex: 3},
		{name: "unknown width", cards: 5, viewport: 0, scrollable: 178, maxIndex: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTerminalGeometry(34, 2)
			g.cards = tt.cards
			g.viewport = tt.viewport

			assert.Equal(t, 34, g.CardWidth())
			assert.Equal(t, tt.scrollable, g.ScrollableWidth())
			assert.Equal(t, tt.maxIndex, carousel.NewNavigator(g, 2).MaxIndex())
		})
	}
}

func TestTerminalGeometry_Floors(t *testing.T) {
	g := newTerminalGeometry(4, -1)
	assert.Equal(t, minCardWidth, g.CardWidth())
	assert.Equal(t, 0, g.gap)
}

func TestRenderCard(t *testing.T) {
	card := catalog.Card{
		Badge:    catalog.FeaturedBadge,
		Name:     "A very long application name that will not fit",
		Summary:  "Short summary",
		Category: "Games",
		Date:     "05/03/2024",
		Image:    "https://cdn.appstore.dev/logo.png",
	}

	out := renderCard(card, 34, false)

	assert.Equal(t, 34, lipgloss.Width(out))
	assert.Equal(t, cardHeight, lipgloss.Height(out))
	assert.Contains(t, out, "FEATURED")
	assert.Contains(t, out, "Games · 05/03/2024")
	assert.Contains(t, out, "…")
}

func TestRenderCard_ImageFallback(t *testing.T) {
	out := renderCard(catalog.Card{Badge: catalog.FeaturedBadge, ImageFallback: true}, 34, true)
	assert.Contains(t, out, "no image")
}

func TestRenderStrip(t *testing.T) {
	cards := []string{"AAAA", "BBBB", "CCCC"}

	assert.Equal(t, "AAAA  BBBB  CCCC", renderStrip(cards, 0, 2, 0))
	assert.Equal(t, "BBBB  CCCC", renderStrip(cards, 1, 2, 0))
	assert.Equal(t, "AAAA  BB", renderStrip(cards, 0, 2, 8))
	assert.Empty(t, renderStrip(cards, 3, 2, 80))
}

func TestRenderIndicators(t *testing.T) {
	out := renderIndicators([]carousel.Indicator{{Index: 0}, {Index: 1, Active: true}, {Index: 2}})

	assert.Equal(t, 1, strings.Count(out, activeGlyph))
	assert.Equal(t, 2, strings.Count(out, inactiveGlyph))
	assert.Equal(t, 5, lipgloss.Width(out))
}

func TestIndicatorAt(t *testing.T) {
	tests := []struct {
		x     int
		index int
		ok    bool
	}{
		{x: 0, index: 0, ok: true},
		{x: 1, index: 0, ok: true},
		{x: 2, index: 1, ok: true},
		{x: 5, index: 2, ok: true},
		{x: 6, ok: false},
		{x: -1, ok: false},
	}

	for _, tt := range tests {
		i, ok := indicatorAt(tt.x, 3)
		assert.Equal(t, tt.ok, ok, "x=%d", tt.x)
		if tt.ok {
			assert.Equal(t, tt.index, i, "x=%d", tt.x)
		}
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncateEnd("hello", 5))
	assert.Equal(t, "hel…", truncateEnd("hello", 4))
	assert.Equal(t, "", truncateEnd("hello", 0))
	assert.Equal(t, "ab…yz", truncateMiddle("abcdefxyz", 5))
	assert.Equal(t, "short", truncateMiddle("short", 10))
}
