package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/featured/internal/carousel"
	"github.com/pders01/featured/internal/catalog"
)

// cardLines is the number of content rows in a card, borders excluded.
const cardLines = 6

// cardHeight is the rendered height of a card including its border.
const cardHeight = cardLines + 2

// renderHeader returns a consistently styled header with an optional muted subtitle.
// Width is used to guide truncation via helpers.
func renderHeader(title, subtitle string, width int) string {
	title = truncateEnd(title, width-2)
	line := HeaderStyle.Render(title)
	if subtitle != "" {
		room := width - lipgloss.Width(line) - 3
		if room > 0 {
			line += "  " + renderMuted(truncateEnd(subtitle, room))
		}
	}
	return line
}

// renderCard draws one featured card at the given outer width.
func renderCard(card catalog.Card, width int, active bool) string {
	inner := width - 4

	image := "▣ " + truncateMiddle(card.Image, inner-2)
	if card.ImageFallback {
		image = "▢ no image"
	}

	meta := card.Category
	if card.Date != "" {
		meta += " · " + card.Date
	}

	lines := []string{
		BadgeStyle.Render(truncateEnd("★ "+card.Badge, inner-2)),
		CardNameStyle.Render(truncateEnd(card.Name, inner)),
		renderMuted(truncateEnd(card.Summary, inner)),
		"",
		CategoryStyle.Render(truncateEnd(meta, inner)),
		TimeStyle.Render(truncateEnd(image, inner)),
	}

	style := CardStyle
	if active {
		style = ActiveCardStyle
	}
	return style.
		Width(width - 2).
		Height(cardLines).
		Render(strings.Join(lines, "\n"))
}

// renderSkeleton draws a placeholder card shown while loading.
func renderSkeleton(width int) string {
	inner := width - 4
	bar := func(n int) string {
		if n > inner {
			n = inner
		}
		if n < 0 {
			n = 0
		}
		return strings.Repeat("░", n)
	}
	lines := []string{bar(10), bar(inner), bar(inner * 2 / 3), "", bar(inner / 2), bar(inner / 3)}
	return SkeletonCardStyle.
		Width(width - 2).
		Height(cardLines).
		Render(strings.Join(lines, "\n"))
}

// renderStrip lays the rendered cards out side by side starting at
// first and crops the strip to width.
func renderStrip(cards []string, first, gap, width int) string {
	if first < 0 {
		first = 0
	}
	if first >= len(cards) {
		return ""
	}

	spacer := strings.Repeat(" ", gap)
	blocks := make([]string, 0, 2*(len(cards)-first))
	for i, c := range cards[first:] {
		if i > 0 && gap > 0 {
			blocks = append(blocks, spacer)
		}
		blocks = append(blocks, c)
	}

	strip := lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	if width > 0 {
		strip = lipgloss.NewStyle().MaxWidth(width).Render(strip)
	}
	return strip
}

// indicatorGlyphs are the active and inactive position markers. Each
// indicator takes two columns, so indicator i starts at column 2*i.
const (
	activeGlyph   = "●"
	inactiveGlyph = "○"
)

func renderIndicators(inds []carousel.Indicator) string {
	parts := make([]string, len(inds))
	for i, ind := range inds {
		if ind.Active {
			parts[i] = ActiveIndicatorStyle.Render(activeGlyph)
		} else {
			parts[i] = IndicatorStyle.Render(inactiveGlyph)
		}
	}
	return strings.Join(parts, " ")
}

// indicatorAt maps a column on the indicator row to an indicator index.
func indicatorAt(x, count int) (int, bool) {
	if x < 0 {
		return 0, false
	}
	i := x / 2
	if i >= count {
		return 0, false
	}
	return i, true
}

// renderCentered centers the provided content within the given width/height box.
func renderCentered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// renderMuted renders text in muted color (utility wrapper).
func renderMuted(text string) string {
	return lipgloss.NewStyle().Foreground(MutedColor).Render(text)
}

// renderHelp renders help/instructional text consistently.
func renderHelp(text string) string {
	return HelpStyle.Render(text)
}
