package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Jump    key.Binding
	Shuffle key.Binding
	Refresh key.Binding
	Open    key.Binding
	Detail  key.Binding
	Back    key.Binding
	Retry   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump"),
		),
		Shuffle: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "shuffle"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("enter/o", "open"),
		),
		Detail: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "d"),
			key.WithHelp("esc", "back"),
		),
		Retry: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("enter", "retry"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp and FullHelp satisfy help.KeyMap for the carousel view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Shuffle, k.Open, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Jump},
		{k.Shuffle, k.Refresh},
		{k.Open, k.Detail},
		{k.Help, k.Quit},
	}
}

type KeyHandler struct {
	app  *App
	keys keyMap
}

func NewKeyHandler(app *App) *KeyHandler {
	return &KeyHandler{app: app, keys: defaultKeyMap()}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch {
	case msg.String() == "ctrl+c":
		return kh.app, tea.Quit
	case key.Matches(msg, kh.keys.Quit) && kh.app.view != ViewDetail:
		return kh.app, tea.Quit
	case key.Matches(msg, kh.keys.Help):
		kh.app.help.ShowAll = !kh.app.help.ShowAll
		return kh.app, nil
	}

	switch kh.app.view {
	case ViewCarousel:
		return kh.handleCarouselKeys(msg)
	case ViewEmpty:
		return kh.handleEmptyKeys(msg)
	case ViewError:
		return kh.handleErrorKeys(msg)
	case ViewDetail:
		return kh.handleDetailKeys(msg)
	default:
		return kh.app, nil
	}
}

func (kh *KeyHandler) handleCarouselKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	switch {
	case key.Matches(msg, kh.keys.Prev):
		return a, a.scheduleAutoSlide(a.nav.Prev())
	case key.Matches(msg, kh.keys.Next):
		return a, a.scheduleAutoSlide(a.nav.Next())
	case key.Matches(msg, kh.keys.Jump):
		// Digits are 1-based on screen.
		i := int(msg.String()[0] - '1')
		return a, a.scheduleAutoSlide(a.nav.Jump(i))
	case key.Matches(msg, kh.keys.Shuffle):
		return a, a.shuffle()
	case key.Matches(msg, kh.keys.Refresh):
		return a, a.startFetch(fetchManual)
	case key.Matches(msg, kh.keys.Open):
		card, ok := a.currentCard()
		if !ok {
			return a, nil
		}
		a.setStatus(MsgOpening, StatusInfo)
		return a, a.openLink(card.Link)
	case key.Matches(msg, kh.keys.Detail):
		card, ok := a.currentCard()
		if !ok {
			return a, nil
		}
		a.view = ViewDetail
		a.detailCard = card
		a.viewport.SetContent(MsgLoading)
		return a, a.renderDetail(card)
	}
	return a, nil
}

func (kh *KeyHandler) handleEmptyKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	switch {
	case key.Matches(msg, kh.keys.Shuffle):
		return a, a.shuffle()
	case key.Matches(msg, kh.keys.Refresh):
		return a, a.startFetch(fetchManual)
	}
	return a, nil
}

func (kh *KeyHandler) handleErrorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, kh.keys.Retry) {
		return kh.app, kh.app.reload()
	}
	return kh.app, nil
}

func (kh *KeyHandler) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	switch {
	case key.Matches(msg, kh.keys.Back), msg.String() == "q":
		a.view = ViewCarousel
		return a, nil
	case key.Matches(msg, kh.keys.Open):
		a.setStatus(MsgOpening, StatusInfo)
		return a, a.openLink(a.detailCard.Link)
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

// GetHelpForCurrentView returns the short help entries for the status bar.
func (kh *KeyHandler) GetHelpForCurrentView() []string {
	var bindings []key.Binding

	switch kh.app.view {
	case ViewCarousel:
		bindings = kh.keys.ShortHelp()
	case ViewEmpty:
		bindings = []key.Binding{kh.keys.Shuffle, kh.keys.Refresh, kh.keys.Quit}
	case ViewError:
		bindings = []key.Binding{kh.keys.Retry, kh.keys.Quit}
	case ViewDetail:
		bindings = []key.Binding{kh.keys.Open, kh.keys.Back}
	case ViewLoading:
		bindings = []key.Binding{kh.keys.Quit}
	}

	help := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		help = append(help, h.Key+": "+h.Desc)
	}
	return help
}
