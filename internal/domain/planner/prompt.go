package planner

import (
	"encoding/json"
	"fmt"

	"github.com/FACorreiaa/loci-travel-bot/internal/types"
)

// buildRecommendationPrompt renders the AI request contract into the Gemini
// prompt. The model must answer with a single JSON object carrying
// structured_recommendations and textual_summary; everything else the gateway
// rejects.
func buildRecommendationPrompt(req types.AIRequest) string {
	prefsJSON, _ := json.Marshal(req.Preferences)
	transportJSON, _ := json.Marshal(req.TransportPreferences)
	historyJSON, _ := json.Marshal(req.History)
	shownJSON, _ := json.Marshal(req.PreviouslyShownIDs)
	if req.History == nil {
		historyJSON = []byte("[]")
	}

	prompt := fmt.Sprintf(`<task>
You are "Travel Bot", an AI assistant for travellers. Generate personalized travel recommendations.
</task>

## GENERAL INSTRUCTIONS:
1. **RESPONSE FORMAT**: Return ONLY one JSON object. No text before or after it, no Markdown fences.
2. **RESPONSE LANGUAGE**: ALL text in your answer (every string value and the textual_summary) MUST be strictly in the language given by user_language.
3. **JSON STRUCTURE**: Two top-level keys:
   * "structured_recommendations": object containing "query_summary" and the "recommendations" list.
   * "textual_summary": a friendly accompanying text for the user (2-4 paragraphs) in user_language.
4. **QUALITY**: Offer varied and current options. If good options are scarce for some criterion, offer fewer but better ones and say so in textual_summary.

### User input (use it for generation)
user_location: %q
user_preferences: %s
trip_duration_text: %q
transport_preferences: %s
history: %s
user_language: %q
request_type: %q
previously_shown_ids: %s

### Specification for "structured_recommendations"

#### 1. "query_summary" (object):
- "location_interpreted": string, the city/region you understood from user_location (in user_language).
- "trip_days": string, the approximate trip length (e.g. "3 days") or JSON null if unclear.
- "main_interests": list of strings, the main interests you identified (in user_language).

#### 2. "recommendations" (list of objects), each with:
- "id": string, unique ID (latin letters, digits, underscores, e.g. "hotel_le_grand_paris_01").
- "type": one of: "route", "hotel", "museum", "restaurant", "event", "activity".
- "name": string (in user_language).
- "address": string or JSON null.
- "coordinates": list of TWO NUMBERS [lat, lon] or JSON null. Do NOT use strings like "null".
- "description": string, 2-4 attractive sentences (in user_language).
- "details": object with type-specific extras, or an empty object {}.
- "distance_or_time": string or JSON null.
- "price_estimate": string or JSON null.
- "rating": number from 1.0 to 5.0 or JSON null.
- "opening_hours": string or JSON null.
- "booking_link": a REAL booking/ticket URL string or JSON null. Do NOT use the string "null".
- "images": list of real image URL strings, or an EMPTY LIST []. Never strings like "null".
`,
		req.Location, prefsJSON, req.TripDurationText, transportJSON, historyJSON, req.Language, req.RequestType, shownJSON)

	if req.RequestType == types.RequestMoreOptions {
		prompt += `
### ADDITIONAL REQUIREMENT
The user asked for MORE options. Do not repeat any recommendation whose id appears in previously_shown_ids; suggest new places that differ from those already shown.
`
	}

	return prompt
}
