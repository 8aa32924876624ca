package tui

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Canonical short status messages used across the app.
const (
	MsgLoading    = "Loading featured apps…"
	MsgRefreshing = "Refreshing…"
	MsgShuffling  = "Shuffling…"
	MsgOpening    = "Opening…"
	MsgNoApps     = "No featured apps yet"
	MsgLoadFailed = "Couldn't load apps"
)

// MsgCacheSummary describes the local cache, e.g. "12 apps · updated 3 minutes ago".
func MsgCacheSummary(count int, cachedAt, now time.Time) string {
	base := MsgAppCount(count)
	if cachedAt.IsZero() {
		return base
	}
	return fmt.Sprintf("%s · updated %s", base, humanize.RelTime(cachedAt, now, "ago", "from now"))
}

func MsgAppCount(n int) string {
	if n == 1 {
		return "1 app"
	}
	return fmt.Sprintf("%d apps", n)
}

func MsgOpened(target string) string {
	return fmt.Sprintf("Opened in %s", target)
}
