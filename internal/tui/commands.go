package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/featured/internal/catalog"
	"github.com/pders01/featured/internal/debuglog"
)

func (a *App) loadCache() tea.Cmd {
	return func() tea.Msg {
		list, err := a.cache.LoadApps()
		if err != nil {
			return cacheLoadedMsg{err: wrapErr("reading cache", err)}
		}
		cachedAt, err := a.cache.CachedAt()
		if err != nil {
			debuglog.Warnf("reading cache timestamp: %v", err)
		}
		return cacheLoadedMsg{apps: list, cachedAt: cachedAt}
	}
}

// startFetch issues a network fetch unless one is already in flight.
func (a *App) startFetch(origin fetchOrigin) tea.Cmd {
	if a.fetching {
		debuglog.Debugf("fetch already in flight, ignoring")
		return nil
	}
	a.fetching = true
	if origin == fetchManual {
		a.setStatus(MsgRefreshing, StatusInfo)
		return tea.Batch(a.spinner.Tick, a.fetchApps(origin))
	}
	return a.fetchApps(origin)
}

func (a *App) fetchApps(origin fetchOrigin) tea.Cmd {
	timeout := a.config.Source.HTTPTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		list, err := a.source.FetchApps(ctx)
		if err != nil {
			return fetchResultMsg{origin: origin, err: err}
		}

		if err := a.cache.SaveApps(list); err != nil {
			debuglog.Warnf("writing cache: %v", err)
		}
		return fetchResultMsg{apps: list, origin: origin}
	}
}

func (a *App) scheduleAutoSlide(gen uint64) tea.Cmd {
	interval := a.config.Carousel.AutoSlideInterval
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return autoSlideMsg{gen: gen}
	})
}

// shuffle reselects from the in-memory list. The control stays disabled
// for the refresh cooldown; presses in between are dropped.
func (a *App) shuffle() tea.Cmd {
	if a.refreshDisabled {
		return nil
	}
	a.refreshDisabled = true
	a.setStatus(MsgShuffling, StatusInfo)

	cooldown := a.config.Carousel.RefreshCooldown
	return tea.Batch(
		a.spinner.Tick,
		a.renderFeatured(),
		tea.Tick(cooldown, func(time.Time) tea.Msg { return refreshDoneMsg{} }),
	)
}

func (a *App) rotate() tea.Cmd {
	a.rotating = true
	d := a.config.Carousel.RotateDuration
	return tea.Tick(d, func(time.Time) tea.Msg { return rotateDoneMsg{} })
}

// reload repeats the whole initial load, cache first.
func (a *App) reload() tea.Cmd {
	a.view = ViewLoading
	a.loadErr = nil
	a.err = nil
	return tea.Batch(a.spinner.Tick, a.loadCache())
}

func (a *App) openLink(link string) tea.Cmd {
	return func() tea.Msg {
		if err := a.opener.Open(link); err != nil {
			return errorMsg{err: fmt.Errorf("failed to open %s: %w", link, err)}
		}
		return statusMsg{text: MsgOpened(a.opener.Command()), kind: StatusSuccess}
	}
}

// detailMarkdown is the document shown in the detail pane.
func detailMarkdown(card catalog.Card) string {
	var content strings.Builder
	content.WriteString(fmt.Sprintf("# %s\n\n", card.Name))

	meta := []string{card.Category}
	if card.Date != "" {
		updated := "Updated " + card.Date
		if card.Age != "" {
			updated += " (" + card.Age + ")"
		}
		meta = append(meta, updated)
	}
	content.WriteString(fmt.Sprintf("*%s*\n\n", strings.Join(meta, " · ")))

	if !card.ImageFallback {
		content.WriteString(fmt.Sprintf("Image: %s\n\n", card.Image))
	}
	content.WriteString("---\n\n")

	if strings.TrimSpace(card.Description) != "" {
		content.WriteString(card.Description)
	} else {
		content.WriteString(card.Summary)
	}
	content.WriteString("\n\n")

	if card.Link != "" {
		content.WriteString(fmt.Sprintf("[App details](%s)\n", card.Link))
	}
	return content.String()
}

// renderDetail resolves the renderer on the caller's goroutine; only the
// markdown rendering runs inside the command.
func (a *App) renderDetail(card catalog.Card) tea.Cmd {
	r, err := a.getRenderer()
	if err != nil {
		content := "Error initializing renderer: " + err.Error()
		return func() tea.Msg { return detailRenderedMsg{content: content} }
	}

	return func() tea.Msg {
		rendered, err := r.Render(detailMarkdown(card))
		if err != nil {
			return detailRenderedMsg{content: fmt.Sprintf("Failed to render details: %s\n\nPress Escape to go back.", err.Error())}
		}
		return detailRenderedMsg{content: rendered}
	}
}
