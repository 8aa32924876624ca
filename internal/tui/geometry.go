package tui

// minCardWidth fits the badge and a few characters of name.
const minCardWidth = 16

// terminalGeometry measures the card strip in terminal columns. The
// strip is every card laid out side by side with a fixed gap; the
// viewport is the terminal width.
type terminalGeometry struct {
	cardWidth int
	gap       int
	cards     int
	viewport  int
}

func newTerminalGeometry(cardWidth, gap int) *terminalGeometry {
	if cardWidth < minCardWidth {
		cardWidth = minCardWidth
	}
	if gap < 0 {
		gap = 0
	}
	return &terminalGeometry{cardWidth: cardWidth, gap: gap}
}

func (g *terminalGeometry) CardWidth() int { return g.cardWidth }

func (g *terminalGeometry) ScrollableWidth() int {
	scrollable := g.stripWidth() - g.viewport
	if scrollable < 0 {
		return 0
	}
	return scrollable
}

func (g *terminalGeometry) stripWidth() int {
	if g.cards <= 0 {
		return 0
	}
	return g.cards*g.cardWidth + (g.cards-1)*g.gap
}
