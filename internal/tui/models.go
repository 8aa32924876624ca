package tui

import (
	"time"

	"github.com/pders01/featured/internal/apps"
)

type View int

const (
	ViewLoading View = iota
	ViewCarousel
	ViewEmpty
	ViewError
	ViewDetail
)

func (v View) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewCarousel:
		return "carousel"
	case ViewEmpty:
		return "empty"
	case ViewError:
		return "error"
	case ViewDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// fetchOrigin tells a fetch result how loudly to fail.
type fetchOrigin int

const (
	// fetchInitial runs when the cache was empty; failure shows the error view.
	fetchInitial fetchOrigin = iota
	// fetchBackground follows a cache hit; failure is only logged.
	fetchBackground
	// fetchManual is a user-requested refresh; failure goes to the status bar.
	fetchManual
)

func (o fetchOrigin) String() string {
	switch o {
	case fetchInitial:
		return "initial"
	case fetchBackground:
		return "background"
	case fetchManual:
		return "manual"
	default:
		return "unknown"
	}
}

type cacheLoadedMsg struct {
	apps     []apps.App
	cachedAt time.Time
	err      error
}

type fetchResultMsg struct {
	apps   []apps.App
	origin fetchOrigin
	err    error
}

type autoSlideMsg struct {
	gen uint64
}

type refreshDoneMsg struct{}

type rotateDoneMsg struct{}

type detailRenderedMsg struct {
	content string
}

type errorMsg struct {
	err error
}

type statusMsg struct {
	text string
	kind StatusKind
}
