package types

import "time"

// PlanningState is the position of a user inside the trip planning dialogue.
// Transitions are strictly ordered; each state is entered only from the
// previous one via the matching input kind.
type PlanningState int

const (
	StateIdle PlanningState = iota
	StateAwaitingLanguageChoice
	StateAwaitingLocation
	StateAwaitingInterests
	StateAwaitingBudget
	StateAwaitingTripDates
	StateAwaitingTransportPrefs
	StateCompleted
)

func (s PlanningState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingLanguageChoice:
		return "awaiting_language_choice"
	case StateAwaitingLocation:
		return "awaiting_location"
	case StateAwaitingInterests:
		return "awaiting_interests"
	case StateAwaitingBudget:
		return "awaiting_budget"
	case StateAwaitingTripDates:
		return "awaiting_trip_dates"
	case StateAwaitingTransportPrefs:
		return "awaiting_transport_prefs"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

// BudgetLevel is the constrained spending choice offered in step 3.
type BudgetLevel string

const (
	BudgetLow     BudgetLevel = "low"
	BudgetMid     BudgetLevel = "mid"
	BudgetPremium BudgetLevel = "premium"
)

// ValidBudget reports whether the given callback payload value is one of the
// three offered levels. Anything else must leave the session untouched.
func ValidBudget(v string) bool {
	switch BudgetLevel(v) {
	case BudgetLow, BudgetMid, BudgetPremium:
		return true
	}
	return false
}

// GeoPoint is a latitude/longitude pair sent by the user instead of a
// free-text destination.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TripQuery holds the answers collected during one planning cycle. Fields are
// explicit per step so "has the user completed step N" is a type-level
// question rather than a key-presence check.
type TripQuery struct {
	// LocationText and LocationGeo are mutually exclusive; use SetLocationText
	// or SetLocationGeo so setting one clears the other.
	LocationText string
	LocationGeo  *GeoPoint

	Interests []string // ordered, duplicates preserved as entered
	Budget    BudgetLevel
	TripDates string // verbatim user text, unvalidated
	Transport []string
}

// SetLocationText stores a free-text destination and clears any geo point.
func (q *TripQuery) SetLocationText(text string) {
	q.LocationText = text
	q.LocationGeo = nil
}

// SetLocationGeo stores a coordinate destination and clears any free text.
func (q *TripQuery) SetLocationGeo(lat, lon float64) {
	q.LocationGeo = &GeoPoint{Latitude: lat, Longitude: lon}
	q.LocationText = ""
}

// HasLocation reports whether either location representation is present.
func (q *TripQuery) HasLocation() bool {
	return q.LocationText != "" || q.LocationGeo != nil
}

// Session is the per-user dialogue state bag, keyed by the chat user ID.
// Language survives planning resets; the ledgers are cleared when a new
// planning cycle starts.
type Session struct {
	UserID   int64
	Language string
	State    PlanningState

	Collected TripQuery

	// LikedIDs and DislikedIDs are mutually exclusive per ID: recording one
	// kind removes the other. They persist across planning cycles within the
	// live session and are seeded from the feedback history on first load.
	LikedIDs    map[string]struct{}
	DislikedIDs map[string]struct{}

	// ShownIDs is the dedup ledger for the current planning cycle only.
	ShownIDs map[string]struct{}

	// MoreRounds counts completed request rounds in the current cycle and
	// scopes the deterministic fallback IDs the reconciler synthesizes.
	MoreRounds int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSession returns an empty session for the given user.
func NewSession(userID int64, language string) *Session {
	now := time.Now()
	return &Session{
		UserID:      userID,
		Language:    language,
		State:       StateIdle,
		LikedIDs:    make(map[string]struct{}),
		DislikedIDs: make(map[string]struct{}),
		ShownIDs:    make(map[string]struct{}),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// StartPlanning resets everything except the language and moves the session
// to the first collection step.
func (s *Session) StartPlanning() {
	s.Collected = TripQuery{}
	s.LikedIDs = make(map[string]struct{})
	s.DislikedIDs = make(map[string]struct{})
	s.ShownIDs = make(map[string]struct{})
	s.MoreRounds = 0
	s.State = StateAwaitingLocation
	s.UpdatedAt = time.Now()
}

// Like records positive feedback for a recommendation ID, displacing any
// earlier dislike. Repeated likes are no-ops.
func (s *Session) Like(id string) {
	s.LikedIDs[id] = struct{}{}
	delete(s.DislikedIDs, id)
	s.UpdatedAt = time.Now()
}

// Dislike is symmetric to Like.
func (s *Session) Dislike(id string) {
	s.DislikedIDs[id] = struct{}{}
	delete(s.LikedIDs, id)
	s.UpdatedAt = time.Now()
}

// MarkShown merges newly accepted recommendation IDs into the dedup ledger.
func (s *Session) MarkShown(ids []string) {
	for _, id := range ids {
		s.ShownIDs[id] = struct{}{}
	}
	s.UpdatedAt = time.Now()
}
