package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/featured/internal/apps"
	"github.com/pders01/featured/internal/carousel"
	"github.com/pders01/featured/internal/catalog"
	"github.com/pders01/featured/internal/config"
	"github.com/pders01/featured/internal/debuglog"
)

// Source fetches the full app list from the network.
type Source interface {
	FetchApps(ctx context.Context) ([]apps.App, error)
}

// Cache persists the last fetched app list.
type Cache interface {
	LoadApps() ([]apps.App, error)
	SaveApps(list []apps.App) error
	CachedAt() (time.Time, error)
}

type LinkOpener interface {
	Open(link string) error
	Command() string
}

// Screen rows of the carousel layout, counted from the top.
const (
	stripTop     = 2
	indicatorRow = stripTop + cardHeight + 1
)

type App struct {
	config     *config.Config
	source     Source
	cache      Cache
	opener     LinkOpener
	selector   *carousel.Selector
	builder    *catalog.CardBuilder
	nav        *carousel.Navigator
	geom       *terminalGeometry
	swipe      *carousel.SwipeTracker
	keyHandler *KeyHandler
	help       help.Model
	spinner    spinner.Model
	viewport   viewport.Model
	view       View

	all        []apps.App
	featured   []apps.App
	cards      []catalog.Card
	detailCard catalog.Card
	offset     int
	cachedAt   time.Time

	width  int
	height int

	err        error
	loadErr    error
	status     string
	statusKind StatusKind

	fetching        bool
	refreshDisabled bool
	rotating        bool

	now             func() time.Time
	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
}

func NewApp(cfg *config.Config, source Source, cache Cache, opener LinkOpener) *App {
	labels, err := catalog.NewLabels(cfg.Carousel.CategoryLabels)
	if err != nil {
		debuglog.Errorf("loading category labels: %v", err)
	}

	geom := newTerminalGeometry(cfg.Carousel.CardWidth, cfg.Carousel.CardGap)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(AccentColor)

	app := &App{
		config:   cfg,
		source:   source,
		cache:    cache,
		opener:   opener,
		selector: carousel.NewSelector(cfg.Carousel.PoolSize, cfg.Carousel.FeaturedCount, nil),
		builder:  catalog.NewCardBuilder(labels, cfg.Source.DetailBase),
		nav:      carousel.NewNavigator(geom, geom.gap),
		geom:     geom,
		swipe:    carousel.NewSwipeTracker(cfg.Carousel.SwipeThreshold),
		help:     help.New(),
		spinner:  s,
		viewport: viewport.New(0, 0),
		view:     ViewLoading,
		now:      time.Now,
	}

	app.nav.SetScrollFunc(func(offset int, _ bool) {
		app.offset = offset
	})
	app.keyHandler = NewKeyHandler(app)

	return app
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := (a.width * 9) / 10
	if wordWrapWidth > 120 {
		wordWrapWidth = 120 // maximum for readability
	}
	if wordWrapWidth < 40 {
		wordWrapWidth = 40 // minimum for readability
	}
	if a.width < 50 {
		wordWrapWidth = max(a.width-4, 20)
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}

	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadCache())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.geom.viewport = msg.Width
		a.viewport.Width = msg.Width
		a.viewport.Height = max(msg.Height-3, 1)
		a.help.Width = msg.Width
		a.nav.Relayout()

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case spinner.TickMsg:
		if !a.spinnerActive() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case cacheLoadedMsg:
		if msg.err != nil {
			debuglog.Warnf("%v", msg.err)
		}
		if len(msg.apps) > 0 {
			debuglog.Infof("cache hit: %d apps", len(msg.apps))
			a.all = apps.Normalize(msg.apps)
			a.cachedAt = msg.cachedAt
			return a, tea.Batch(a.renderFeatured(), a.startFetch(fetchBackground))
		}
		debuglog.Infof("cache miss, fetching from network")
		a.view = ViewLoading
		return a, tea.Batch(a.spinner.Tick, a.startFetch(fetchInitial))

	case fetchResultMsg:
		return a, a.handleFetchResult(msg)

	case autoSlideMsg:
		// Paused while the detail pane is open: the live tick re-arms
		// without advancing.
		if a.view == ViewDetail {
			if msg.gen == a.nav.Generation() && a.nav.Pending() {
				return a, a.scheduleAutoSlide(msg.gen)
			}
			return a, nil
		}
		if next, ok := a.nav.Tick(msg.gen); ok {
			return a, a.scheduleAutoSlide(next)
		}

	case refreshDoneMsg:
		a.refreshDisabled = false
		a.clearStatus()
		return a, a.rotate()

	case rotateDoneMsg:
		a.rotating = false

	case detailRenderedMsg:
		if a.view == ViewDetail {
			a.viewport.SetContent(msg.content)
			a.viewport.GotoTop()
		}

	case statusMsg:
		a.setStatus(msg.text, msg.kind)

	case errorMsg:
		debuglog.Errorf("%v", msg.err)
		a.err = msg.err
		a.clearStatus()
	}

	return a, nil
}

func (a *App) handleFetchResult(msg fetchResultMsg) tea.Cmd {
	a.fetching = false
	logger := debuglog.WithFields(map[string]interface{}{"origin": msg.origin.String()})

	if msg.err != nil {
		logger.Errorf("fetch failed: %v", msg.err)
		switch msg.origin {
		case fetchInitial:
			if len(a.cards) == 0 {
				a.loadErr = msg.err
				a.view = ViewError
				a.nav.Stop()
			}
		case fetchManual:
			a.err = msg.err
			a.clearStatus()
		}
		return nil
	}

	logger.Infof("fetched %d apps", len(msg.apps))
	a.all = apps.Normalize(msg.apps)
	a.cachedAt = a.now()
	a.err = nil
	if msg.origin == fetchManual {
		a.setStatus("Refreshed: "+MsgAppCount(len(a.all)), StatusSuccess)
	}
	return a.renderFeatured()
}

// renderFeatured reselects the featured set and rebuilds the strip. The
// navigator is reset and a fresh auto-slide tick is returned.
func (a *App) renderFeatured() tea.Cmd {
	a.featured = a.selector.Select(a.all)
	a.cards = a.builder.BuildAll(a.featured)
	a.geom.cards = len(a.cards)
	debuglog.Debugf("selected %d of %d apps", len(a.featured), len(a.all))

	if len(a.cards) == 0 {
		a.view = ViewEmpty
		a.nav.Stop()
		return nil
	}

	// An open detail pane keeps its card; the strip behind it is rebuilt.
	if a.view != ViewDetail {
		a.view = ViewCarousel
	}
	return a.scheduleAutoSlide(a.nav.Reset())
}

func (a *App) currentCard() (catalog.Card, bool) {
	pos := a.nav.Position()
	if pos < 0 || pos >= len(a.cards) {
		return catalog.Card{}, false
	}
	return a.cards[pos], true
}

func (a *App) spinnerActive() bool {
	return a.view == ViewLoading || a.refreshDisabled || a.fetching
}

func (a *App) cellPx() int {
	if a.config.Carousel.CellPx <= 0 {
		return 1
	}
	return a.config.Carousel.CellPx
}

func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.view == ViewDetail {
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}
	if a.view != ViewCarousel {
		return a, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
			return a, a.scheduleAutoSlide(a.nav.Prev())
		case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
			return a, a.scheduleAutoSlide(a.nav.Next())
		case tea.MouseButtonLeft:
			if msg.Y == indicatorRow {
				if i, ok := indicatorAt(msg.X, len(a.nav.Indicators())); ok {
					return a, a.scheduleAutoSlide(a.nav.Jump(i))
				}
				return a, nil
			}
			if msg.Y >= stripTop && msg.Y < stripTop+cardHeight {
				a.swipe.Start(msg.X * a.cellPx())
			}
		}

	case tea.MouseActionRelease:
		switch a.swipe.End(msg.X * a.cellPx()) {
		case carousel.DirectionNext:
			return a, a.scheduleAutoSlide(a.nav.Next())
		case carousel.DirectionPrev:
			return a, a.scheduleAutoSlide(a.nav.Prev())
		}
	}
	return a, nil
}

func (a *App) setStatus(text string, kind StatusKind) {
	a.status = text
	a.statusKind = kind
}

func (a *App) clearStatus() {
	a.status = ""
	a.statusKind = StatusInfo
}

func (a *App) View() string {
	var content string

	switch a.view {
	case ViewLoading:
		content = a.loadingView()
	case ViewCarousel:
		content = a.carouselView()
	case ViewEmpty:
		content = renderCentered(a.width, a.contentHeight(),
			lipgloss.JoinVertical(
				lipgloss.Center,
				GetCompactBanner(MsgNoApps),
				"",
				renderHelp("r: shuffle • R: refresh"),
			))
	case ViewError:
		detail := ""
		if a.loadErr != nil {
			detail = a.loadErr.Error()
		}
		content = renderCentered(a.width, a.contentHeight(),
			lipgloss.JoinVertical(
				lipgloss.Center,
				ErrorMessageStyle.Render("✗ "+MsgLoadFailed),
				"",
				renderMuted(truncateEnd(detail, max(a.width-4, 20))),
				"",
				renderHelp("enter: retry"),
			))
	case ViewDetail:
		content = a.viewport.View()
	}

	if a.height > 3 {
		content = ContentWrapper(a.width, a.contentHeight()).Render(content)
	}

	customStatus := a.getCustomStatusBar()
	if customStatus == "" {
		return content
	}

	separator := SeparatorStyle.Render("─" + strings.Repeat("─", max(a.width-2, 0)))
	return lipgloss.JoinVertical(lipgloss.Top, content, separator, customStatus)
}

func (a *App) contentHeight() int {
	return max(a.height-3, 0)
}

func (a *App) cardWidth() int {
	return a.geom.CardWidth()
}

func (a *App) loadingView() string {
	count := max(a.config.Carousel.FeaturedCount, 1)
	skeletons := make([]string, count)
	for i := range skeletons {
		skeletons[i] = renderSkeleton(a.cardWidth())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		renderHeader("› featured apps", "", a.width),
		"",
		renderStrip(skeletons, 0, a.geom.gap, a.width),
		"",
		a.spinner.View()+" "+renderMuted(MsgLoading),
	)
}

func (a *App) carouselView() string {
	rendered := make([]string, len(a.cards))
	pos := a.nav.Position()
	for i, card := range a.cards {
		rendered[i] = renderCard(card, a.cardWidth(), i == pos)
	}

	first := 0
	if step := a.nav.CardStep(); step > 0 {
		first = a.offset / step
	}

	indicators := a.nav.Indicators()
	subtitle := fmt.Sprintf("%d/%d", pos+1, len(indicators))
	switch {
	case a.refreshDisabled:
		subtitle += "  " + a.spinner.View() + " shuffling"
	case a.rotating:
		subtitle += "  ⟳"
	default:
		subtitle += "  ↻"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		renderHeader("› featured apps", subtitle, a.width),
		"",
		renderStrip(rendered, first, a.geom.gap, a.width),
		"",
		renderIndicators(indicators),
	)
}

func (a *App) getCustomStatusBar() string {
	if a.help.ShowAll {
		return StatusBarStyle.Width(a.width).Render(a.help.View(a.keyHandler.keys))
	}

	commands := a.keyHandler.GetHelpForCurrentView()
	if len(commands) == 0 {
		return ""
	}

	if a.err != nil {
		return StatusBarStyle.
			Width(a.width).
			Render(StatusErrorStyle.Render(fmt.Sprintf("✗ %v", a.err)))
	}

	text := strings.Join(commands, " • ")
	if a.status != "" {
		text = a.statusStyle().Render(a.status) + " • " + text
	}
	if a.view == ViewCarousel && len(a.all) > 0 {
		text += " • " + MsgCacheSummary(len(a.all), a.cachedAt, a.now())
	}

	if a.width > 0 {
		text = truncateEnd(text, max(a.width-2, 1))
	}
	return StatusBarStyle.
		Width(a.width).
		Render(text)
}

func (a *App) statusStyle() lipgloss.Style {
	switch a.statusKind {
	case StatusSuccess:
		return StatusSuccessStyle
	case StatusWarn:
		return StatusWarnStyle
	case StatusError:
		return StatusErrorStyle
	default:
		return StatusInfoStyle
	}
}
