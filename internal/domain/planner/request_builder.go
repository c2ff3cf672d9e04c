package planner

import (
	"fmt"
	"sort"

	"github.com/FACorreiaa/loci-travel-bot/internal/types"
)

// unspecifiedLocation is the placeholder sent when the session somehow holds
// no destination at request time.
const unspecifiedLocation = "unspecified"

// BuildRequest normalizes the session's collected answers and ledgers into
// the AI request contract. Pure function: no I/O, no session mutation.
//
// Normalization rules:
//   - geo coordinates win over free text if both are present;
//   - history entries appear only when their ID list is non-empty, positive
//     before negative;
//   - PreviouslyShownIDs is forced empty for initial requests regardless of
//     what the shown ledger holds.
func BuildRequest(sess *types.Session, reqType types.RequestType) types.AIRequest {
	q := sess.Collected

	location := unspecifiedLocation
	switch {
	case q.LocationGeo != nil:
		location = fmt.Sprintf("coordinates: %v,%v", q.LocationGeo.Latitude, q.LocationGeo.Longitude)
	case q.LocationText != "":
		location = q.LocationText
	}

	budget := string(q.Budget)
	if budget == "" {
		budget = string(types.BudgetMid)
	}

	tripDates := q.TripDates
	if tripDates == "" {
		tripDates = unspecifiedLocation
	}

	req := types.AIRequest{
		Location: location,
		Preferences: types.TripPreferences{
			Interests:           append([]string(nil), q.Interests...),
			Budget:              budget,
			DietaryRestrictions: []string{},
			AccessibilityNeeds:  []string{},
			PreferredPace:       "moderate",
		},
		TripDurationText:     tripDates,
		TransportPreferences: append([]string(nil), q.Transport...),
		Language:             sess.Language,
		RequestType:          reqType,
		PreviouslyShownIDs:   []string{},
	}

	if liked := sortedIDs(sess.LikedIDs); len(liked) > 0 {
		req.History = append(req.History, types.HistoryEntry{Type: "positive", ItemIDs: liked})
	}
	if disliked := sortedIDs(sess.DislikedIDs); len(disliked) > 0 {
		req.History = append(req.History, types.HistoryEntry{Type: "negative", ItemIDs: disliked})
	}

	if reqType == types.RequestMoreOptions {
		req.PreviouslyShownIDs = sortedIDs(sess.ShownIDs)
	}

	return req
}

// sortedIDs copies a set into a sorted slice so request payloads are
// deterministic.
func sortedIDs(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
