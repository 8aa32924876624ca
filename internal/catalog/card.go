package catalog

import (
	"net/url"
	"strings"
	"time"

	"github.com/pders01/featured/internal/apps"
	"github.com/pders01/featured/internal/validation"
)

const (
	FeaturedBadge      = "FEATURED"
	PlaceholderImage   = "https://via.placeholder.com/80/2563eb/FFFFFF?text=App"
	DefaultDescription = "High quality app"
	detailPage         = "app-detail.html"
)

// Card is everything a featured card shows for one record.
type Card struct {
	ID            apps.AppID
	Badge         string
	Image         string
	ImageFallback bool
	Name          string
	Summary       string
	Description   string
	Date          string
	Age           string
	CategoryKey   string
	Category      string
	Link          string
}

type CardBuilder struct {
	labels     *Labels
	detailBase string
	images     *validation.URLValidator
	now        func() time.Time
}

func NewCardBuilder(labels *Labels, detailBase string) *CardBuilder {
	return &CardBuilder{
		labels:     labels,
		detailBase: detailBase,
		images:     validation.NewImageURLValidator(),
		now:        time.Now,
	}
}

// SetClock overrides the clock used for relative ages.
func (b *CardBuilder) SetClock(now func() time.Time) {
	b.now = now
}

func (b *CardBuilder) Build(app apps.App) Card {
	image := strings.TrimSpace(app.Image)
	fallback := false
	if image == "" || !b.images.Valid(image) {
		image = PlaceholderImage
		fallback = true
	}

	summary := app.FirstLine()
	if summary == "" {
		summary = DefaultDescription
	}

	key := app.Categories.Primary()

	return Card{
		ID:            app.ID,
		Badge:         FeaturedBadge,
		Image:         image,
		ImageFallback: fallback,
		Name:          app.Name,
		Summary:       summary,
		Description:   app.Description,
		Date:          FormatDate(app.UpdateDate),
		Age:           RelativeDate(app.UpdateDate, b.now()),
		CategoryKey:   key,
		Category:      b.labels.Label(key),
		Link:          DetailLink(b.detailBase, app.ID),
	}
}

func (b *CardBuilder) BuildAll(list []apps.App) []Card {
	cards := make([]Card, len(list))
	for i, app := range list {
		cards[i] = b.Build(app)
	}
	return cards
}

// DetailLink returns the detail page link for id, relative to base.
func DetailLink(base string, id apps.AppID) string {
	link := detailPage + "?id=" + url.QueryEscape(id.String())
	if base == "" {
		return link
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + link
}
