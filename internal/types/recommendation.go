package types

import (
	"encoding/json"
	"strings"
)

// RequestType distinguishes the first recommendation round of a planning
// cycle from "show more" follow-ups.
type RequestType string

const (
	RequestInitial     RequestType = "initial"
	RequestMoreOptions RequestType = "more_options"
)

// FeedbackKind is the polarity of a like/dislike event.
type FeedbackKind string

const (
	FeedbackLike    FeedbackKind = "like"
	FeedbackDislike FeedbackKind = "dislike"
)

// HistoryEntry carries one polarity of accumulated feedback into the AI
// request. Entries with empty ID lists are omitted from the contract
// entirely.
type HistoryEntry struct {
	Type    string   `json:"type"` // "positive" or "negative"
	ItemIDs []string `json:"item_ids"`
}

// TripPreferences groups the preference block of the request contract. Pace,
// dietary and accessibility are placeholders until the dialogue collects
// them.
type TripPreferences struct {
	Interests           []string `json:"interests"`
	Budget              string   `json:"budget"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	AccessibilityNeeds  []string `json:"accessibility_needs"`
	PreferredPace       string   `json:"preferred_pace"`
}

// AIRequest is the normalized contract handed to the AI gateway. It is built
// fresh per request and never persisted.
type AIRequest struct {
	Location             string          `json:"user_location"`
	Preferences          TripPreferences `json:"user_preferences"`
	TripDurationText     string          `json:"trip_duration_text"`
	TransportPreferences []string        `json:"transport_preferences"`
	Language             string          `json:"user_language"`
	History              []HistoryEntry  `json:"history"`
	RequestType          RequestType     `json:"request_type"`
	// PreviouslyShownIDs mirrors the session's shown ledger for more_options
	// requests and is forced empty for initial ones. It governs dedup of the
	// NEXT response, not this one.
	PreviouslyShownIDs []string `json:"previously_shown_ids"`
}

// RecommendationType is the closed set of item categories the model may emit.
type RecommendationType string

const (
	RecommendationRoute      RecommendationType = "route"
	RecommendationHotel      RecommendationType = "hotel"
	RecommendationMuseum     RecommendationType = "museum"
	RecommendationRestaurant RecommendationType = "restaurant"
	RecommendationEvent      RecommendationType = "event"
	RecommendationActivity   RecommendationType = "activity"
)

// RecommendationItem is one entry of an AI response. Every presentation field
// is optional; raw values pass through NormalizeNullable before use because
// the model represents "no value" inconsistently.
type RecommendationItem struct {
	ID             string             `json:"id"`
	Type           RecommendationType `json:"type"`
	Name           string             `json:"name"`
	Address        string             `json:"address"`
	Coordinates    []float64          `json:"coordinates"`
	Description    string             `json:"description"`
	Details        map[string]any     `json:"details"`
	DistanceOrTime string             `json:"distance_or_time"`
	PriceEstimate  string             `json:"price_estimate"`
	Rating         *float64           `json:"rating"`
	OpeningHours   string             `json:"opening_hours"`
	BookingLink    string             `json:"booking_link"`
	Images         []string           `json:"images"`
}

// QuerySummary is the model's own reading of the request, informational only.
type QuerySummary struct {
	LocationInterpreted string   `json:"location_interpreted"`
	TripDays            string   `json:"trip_days"`
	MainInterests       []string `json:"main_interests"`
}

// AIResponse is the validated response contract. An empty Recommendations
// slice is a valid "no matches" outcome, not an error.
type AIResponse struct {
	QuerySummary    QuerySummary
	Recommendations []RecommendationItem
	TextualSummary  string
}

// NormalizeNullable collapses the model's inconsistent spellings of "absent"
// into the empty string: JSON null decodes to nil, and the literal strings
// "null" (any case) and "" are treated the same as a missing key. Non-string
// scalars are rendered through their JSON encoding.
func NormalizeNullable(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		trimmed := strings.TrimSpace(val)
		if strings.EqualFold(trimmed, "null") {
			return ""
		}
		return trimmed
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
