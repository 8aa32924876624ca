package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/featured/internal/config"
)

const AppName = "featured"

// ASCII art logo lines - canonical definition
var LogoLines = []string{
	"┏━╸┏━╸┏━┓╺┳╸╻ ╻┏━┓┏━╸╺┳┓",
	"┣╸ ┣╸ ┣━┫ ┃ ┃ ┃┣┳┛┣╸  ┃┃",
	"╹  ┗━╸╹ ╹ ╹ ┗━┛╹┗╸┗━╸╺┻┛",
}

const CompactLogo = `featured ›`

// Banner gradient colors
var BannerColors = []lipgloss.Color{
	lipgloss.Color("#FF6B6B"),
	lipgloss.Color("#FFA86B"),
	lipgloss.Color("#95E1D3"),
	lipgloss.Color("#4ECDC4"),
}

var (
	PrimaryColor   = lipgloss.Color("#FF6B6B")
	SecondaryColor = lipgloss.Color("#4ECDC4")
	AccentColor    = lipgloss.Color("#95E1D3")

	// UI colors
	BackgroundColor = lipgloss.Color("#1A1A2E")
	SurfaceColor    = lipgloss.Color("#16213E")
	TextColor       = lipgloss.Color("#EAEAEA")
	MutedColor      = lipgloss.Color("#94A3B8")

	// Status colors
	BadgeColor   = lipgloss.Color("#FFE66D")
	ErrorColor   = lipgloss.Color("#F87171")
	SuccessColor = lipgloss.Color("#4ADE80")
)

// Styled components. Rebuilt by ApplyTheme.
var (
	LogoStyle            lipgloss.Style
	TitleStyle           lipgloss.Style
	HeaderStyle          lipgloss.Style
	StatusBarStyle       lipgloss.Style
	HelpStyle            lipgloss.Style
	BadgeStyle           lipgloss.Style
	CardStyle            lipgloss.Style
	ActiveCardStyle      lipgloss.Style
	SkeletonCardStyle    lipgloss.Style
	CardNameStyle        lipgloss.Style
	CategoryStyle        lipgloss.Style
	TimeStyle            lipgloss.Style
	IndicatorStyle       lipgloss.Style
	ActiveIndicatorStyle lipgloss.Style
	ErrorMessageStyle    lipgloss.Style
	SeparatorStyle       lipgloss.Style
	StatusInfoStyle      lipgloss.Style
	StatusSuccessStyle   lipgloss.Style
	StatusWarnStyle      lipgloss.Style
	StatusErrorStyle     lipgloss.Style
	EmptyStyle           = lipgloss.NewStyle()
)

func init() {
	buildStyles()
}

func buildStyles() {
	LogoStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true)

	TitleStyle = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(SurfaceColor).
		Bold(true).
		Padding(0, 2)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor).
		Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	BadgeStyle = lipgloss.NewStyle().
		Foreground(BackgroundColor).
		Background(BadgeColor).
		Bold(true).
		Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Padding(0, 1)

	ActiveCardStyle = CardStyle.
		BorderForeground(AccentColor)

	SkeletonCardStyle = CardStyle.
		BorderForeground(SurfaceColor).
		Foreground(SurfaceColor)

	CardNameStyle = lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true)

	CategoryStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor)

	TimeStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Faint(true)

	IndicatorStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	ActiveIndicatorStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true)

	ErrorMessageStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)

	SeparatorStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusInfoStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusSuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessColor)

	StatusWarnStyle = lipgloss.NewStyle().
		Foreground(BadgeColor)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)
}

// ApplyTheme overrides the palette with the configured colors. Empty
// entries keep the built-in color.
func ApplyTheme(c config.UIColors) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&PrimaryColor, c.Primary)
	set(&SecondaryColor, c.Secondary)
	set(&AccentColor, c.Accent)
	set(&TextColor, c.Text)
	set(&MutedColor, c.Muted)
	set(&ErrorColor, c.Error)
	set(&SuccessColor, c.Success)
	buildStyles()
}

// ContentWrapper returns a style for wrapping content with width and height constraints
func ContentWrapper(width, height int) lipgloss.Style {
	return EmptyStyle.Width(width).Height(height).MaxHeight(height)
}

func GetCompactBanner(message string) string {
	var coloredLines []string
	for _, line := range LogoLines {
		coloredLines = append(coloredLines, LogoStyle.Render(line))
	}

	logo := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		HelpStyle.Render(message),
	)
}

// Banner renders the startup banner.
func Banner(version string) string {
	lines := make([]string, len(LogoLines)+1)
	copy(lines, LogoLines)
	lines[len(LogoLines)] = ""

	versionTag := version
	if versionTag != "" && versionTag != "dev" {
		if versionTag[0] != 'v' && versionTag[0] != 'V' {
			versionTag = "v" + versionTag
		}
		lines = append(lines, fmt.Sprintf("Featured Apps %s", versionTag))
	} else {
		lines = append(lines, "Featured Apps")
	}

	var coloredLines []string
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}

		colorIdx := i % len(BannerColors)
		style := lipgloss.NewStyle().
			Foreground(BannerColors[colorIdx]).
			Bold(i < len(LogoLines))

		coloredLines = append(coloredLines, style.Render(line))
	}

	borderChars := lipgloss.Border{
		Top:         "═",
		Bottom:      "═",
		Left:        "║",
		Right:       "║",
		TopLeft:     "╔",
		TopRight:    "╗",
		BottomLeft:  "╚",
		BottomRight: "╝",
	}

	borderStyle := lipgloss.NewStyle().
		Border(borderChars).
		BorderForeground(SecondaryColor).
		Padding(1, 3).
		MarginTop(1)

	banner := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)
	output := lipgloss.NewStyle().
		Width(60).
		Align(lipgloss.Center).
		Render(borderStyle.Render(banner))

	separator := lipgloss.NewStyle().
		Width(60).
		Align(lipgloss.Center).
		MarginBottom(1).
		Render(lipgloss.NewStyle().Foreground(AccentColor).Render("★ ☆ ★ ☆ ★"))

	return lipgloss.JoinVertical(lipgloss.Left, output, separator)
}

func ShowBanner(version string) {
	fmt.Println(Banner(version))
}
