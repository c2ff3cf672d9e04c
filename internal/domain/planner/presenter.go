package planner

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/loci-travel-bot/internal/localization"
	"github.com/FACorreiaa/loci-travel-bot/internal/transport"
	"github.com/FACorreiaa/loci-travel-bot/internal/types"
)

// Button payload prefixes for the feedback sub-protocol and the more-options
// trigger. They round-trip opaquely through the chat platform.
const (
	payloadLikePrefix    = "fb_like_"
	payloadDislikePrefix = "fb_dislike_"
	payloadMoreOptions   = "more_options"
	payloadBudgetPrefix  = "budget_"
	payloadLangPrefix    = "lang_"
)

// Presenter renders reconciled recommendation items into outbound messages.
// Every field is optional; missing values simply drop their line.
type Presenter struct {
	loc *localization.Localizer
}

func NewPresenter(loc *localization.Localizer) *Presenter {
	return &Presenter{loc: loc}
}

// RenderItem turns one recommendation into a message with feedback controls.
func (p *Presenter) RenderItem(userID int64, lang string, item types.RecommendationItem) transport.Outbound {
	var sb strings.Builder

	name := item.Name
	if name == "" {
		name = p.loc.Text("text_no_name", lang, nil)
	}
	typeTag := ""
	if item.Type != "" {
		typeTag = fmt.Sprintf(" [%s]", item.Type)
	}
	fmt.Fprintf(&sb, "%s%s\n", name, typeTag)

	if item.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", item.Description)
	}
	if item.Address != "" {
		fmt.Fprintf(&sb, "\n%s: %s", p.loc.Text("text_address", lang, nil), item.Address)
	}
	if item.DistanceOrTime != "" {
		fmt.Fprintf(&sb, "\n%s: %s", p.loc.Text("text_distance_time", lang, nil), item.DistanceOrTime)
	}
	if item.PriceEstimate != "" {
		fmt.Fprintf(&sb, "\n%s: %s", p.loc.Text("text_price", lang, nil), item.PriceEstimate)
	}
	if item.Rating != nil {
		fmt.Fprintf(&sb, "\n%s: %.1f/5", p.loc.Text("text_rating", lang, nil), *item.Rating)
	}
	if item.OpeningHours != "" {
		fmt.Fprintf(&sb, "\n%s: %s", p.loc.Text("text_opening_hours", lang, nil), item.OpeningHours)
	}

	out := transport.Outbound{
		UserID: userID,
		Text:   sb.String(),
	}
	if len(item.Images) > 0 {
		out.ImageURL = item.Images[0]
	}

	var linkRow []transport.Button
	if item.BookingLink != "" {
		linkRow = append(linkRow, transport.Button{
			Label: p.loc.Text("button_book_tickets", lang, nil),
			URL:   item.BookingLink,
		})
	}
	if len(item.Coordinates) == 2 {
		linkRow = append(linkRow, transport.Button{
			Label: p.loc.Text("button_on_map", lang, nil),
			URL:   fmt.Sprintf("https://maps.google.com/?q=%v,%v", item.Coordinates[0], item.Coordinates[1]),
		})
	}
	if len(linkRow) > 0 {
		out.Buttons = append(out.Buttons, linkRow)
	}

	out.Buttons = append(out.Buttons, []transport.Button{
		{Label: p.loc.Text("button_like", lang, nil), Payload: payloadLikePrefix + item.ID},
		{Label: p.loc.Text("button_dislike", lang, nil), Payload: payloadDislikePrefix + item.ID},
	})

	return out
}

// RenderSummary sends the model's accompanying text with the "show more"
// control attached.
func (p *Presenter) RenderSummary(userID int64, lang, summary string) transport.Outbound {
	return transport.Outbound{
		UserID: userID,
		Text:   summary,
		Buttons: [][]transport.Button{{
			{Label: p.loc.Text("button_more_options", lang, nil), Payload: payloadMoreOptions},
		}},
	}
}

// budgetKeyboard offers the three spending levels as one button per row, the
// payload carrying the level code.
func (p *Presenter) budgetKeyboard(lang string) [][]transport.Button {
	return [][]transport.Button{
		{{Label: p.loc.Text("budget_option_low", lang, nil), Payload: payloadBudgetPrefix + string(types.BudgetLow)}},
		{{Label: p.loc.Text("budget_option_mid", lang, nil), Payload: payloadBudgetPrefix + string(types.BudgetMid)}},
		{{Label: p.loc.Text("budget_option_premium", lang, nil), Payload: payloadBudgetPrefix + string(types.BudgetPremium)}},
	}
}

// languageKeyboard offers the supported catalogs.
func (p *Presenter) languageKeyboard() [][]transport.Button {
	labels := map[string]string{
		"ru": "🇷🇺 Русский",
		"en": "🇬🇧 English",
		"fr": "🇫🇷 Français",
	}
	rows := make([][]transport.Button, 0, len(localization.SupportedLanguages))
	for _, code := range localization.SupportedLanguages {
		rows = append(rows, []transport.Button{{Label: labels[code], Payload: payloadLangPrefix + code}})
	}
	return rows
}
