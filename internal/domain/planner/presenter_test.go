package planner

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/loci-travel-bot/internal/localization"
	"github.com/FACorreiaa/loci-travel-bot/internal/types"
)

func newTestPresenter() *Presenter {
	return NewPresenter(localization.New(slog.Default()))
}

func TestRenderItem_FullItem(t *testing.T) {
	p := newTestPresenter()
	rating := 4.7
	item := types.RecommendationItem{
		ID:             "rec_1",
		Type:           types.RecommendationMuseum,
		Name:           "Louvre",
		Address:        "Rue de Rivoli",
		Description:    "The big one.",
		DistanceOrTime: "15 min walk",
		PriceEstimate:  "€17",
		Rating:         &rating,
		OpeningHours:   "9-18",
		BookingLink:    "https://example.com/tickets",
		Coordinates:    []float64{48.86, 2.33},
		Images:         []string{"https://example.com/louvre.jpg"},
	}

	out := p.RenderItem(7, "en", item)

	assert.Equal(t, int64(7), out.UserID)
	assert.Contains(t, out.Text, "Louvre")
	assert.Contains(t, out.Text, "[museum]")
	assert.Contains(t, out.Text, "Rue de Rivoli")
	assert.Contains(t, out.Text, "4.7/5")
	assert.Equal(t, "https://example.com/louvre.jpg", out.ImageURL)

	require.Len(t, out.Buttons, 2)
	// link row: booking + map
	require.Len(t, out.Buttons[0], 2)
	assert.Equal(t, "https://example.com/tickets", out.Buttons[0][0].URL)
	assert.Contains(t, out.Buttons[0][1].URL, "48.86")
	// feedback row
	require.Len(t, out.Buttons[1], 2)
	assert.Equal(t, "fb_like_rec_1", out.Buttons[1][0].Payload)
	assert.Equal(t, "fb_dislike_rec_1", out.Buttons[1][1].Payload)
}

func TestRenderItem_SparseItem(t *testing.T) {
	p := newTestPresenter()
	item := types.RecommendationItem{ID: "rec_2"}

	out := p.RenderItem(7, "en", item)

	// nameless items fall back to the localized placeholder
	loc := localization.New(slog.Default())
	assert.Contains(t, out.Text, loc.Text("text_no_name", "en", nil))
	assert.Empty(t, out.ImageURL)

	// only the feedback row remains
	require.Len(t, out.Buttons, 1)
	assert.Equal(t, "fb_like_rec_2", out.Buttons[0][0].Payload)
}

func TestRenderItem_NoBookingButtonForEmptyLink(t *testing.T) {
	p := newTestPresenter()
	item := types.RecommendationItem{ID: "rec_3", Name: "Walk", BookingLink: ""}

	out := p.RenderItem(7, "en", item)

	for _, row := range out.Buttons {
		for _, b := range row {
			assert.Empty(t, b.URL)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	p := newTestPresenter()

	out := p.RenderSummary(7, "en", "Have a nice trip.")

	assert.Equal(t, "Have a nice trip.", out.Text)
	require.Len(t, out.Buttons, 1)
	assert.Equal(t, "more_options", out.Buttons[0][0].Payload)
}

func TestBudgetKeyboardPayloads(t *testing.T) {
	p := newTestPresenter()

	rows := p.budgetKeyboard("en")

	require.Len(t, rows, 3)
	assert.Equal(t, "budget_low", rows[0][0].Payload)
	assert.Equal(t, "budget_mid", rows[1][0].Payload)
	assert.Equal(t, "budget_premium", rows[2][0].Payload)
}

func TestLanguageKeyboardCoversSupportedLanguages(t *testing.T) {
	p := newTestPresenter()

	rows := p.languageKeyboard()

	require.Len(t, rows, len(localization.SupportedLanguages))
	assert.Equal(t, "lang_ru", rows[0][0].Payload)
	assert.Equal(t, "lang_en", rows[1][0].Payload)
	assert.Equal(t, "lang_fr", rows[2][0].Payload)
}
