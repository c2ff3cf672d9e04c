// Package planner drives the trip-planning dialogue: the ordered collection
// steps, the feedback sub-protocol, and the request/response/reconciliation
// pipeline against the AI gateway.
package planner

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/loci-travel-bot/internal/domain/feedback"
	"github.com/FACorreiaa/loci-travel-bot/internal/domain/session"
	"github.com/FACorreiaa/loci-travel-bot/internal/domain/user"
	"github.com/FACorreiaa/loci-travel-bot/internal/localization"
	"github.com/FACorreiaa/loci-travel-bot/internal/transport"
	"github.com/FACorreiaa/loci-travel-bot/internal/types"
)

// Text commands understood outside the transition table.
const (
	commandStart    = "/start"
	commandPlanTrip = "/plan_trip"
	commandLanguage = "/language"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the entry point the transport integration calls for every
// inbound event. Events for one user are assumed serialized by the caller.
type Service interface {
	HandleInbound(ctx context.Context, in transport.Inbound)
}

// handlerFunc processes one inbound event for a session already checked out
// of the store.
type handlerFunc func(ctx context.Context, sess *types.Session, in transport.Inbound)

// ServiceImpl wires the session store, the persistence repositories, the AI
// gateway and the presenter behind a transition table built once at
// construction: (state, input kind) -> handler. Unmatched combinations are
// logged and ignored, leaving the state unchanged.
type ServiceImpl struct {
	logger       *slog.Logger
	store        session.Store
	userRepo     user.Repository
	feedbackRepo feedback.Repository
	gateway      *Gateway
	presenter    *Presenter
	loc          *localization.Localizer
	sender       transport.Sender

	transitions map[types.PlanningState]map[transport.InboundKind]handlerFunc
}

func NewService(
	store session.Store,
	userRepo user.Repository,
	feedbackRepo feedback.Repository,
	gateway *Gateway,
	loc *localization.Localizer,
	sender transport.Sender,
	logger *slog.Logger,
) *ServiceImpl {
	s := &ServiceImpl{
		logger:       logger,
		store:        store,
		userRepo:     userRepo,
		feedbackRepo: feedbackRepo,
		gateway:      gateway,
		presenter:    NewPresenter(loc),
		loc:          loc,
		sender:       sender,
	}

	// The budget step deliberately has no text handler and the text steps no
	// button handler: unexpected input kinds never advance a state.
	s.transitions = map[types.PlanningState]map[transport.InboundKind]handlerFunc{
		types.StateAwaitingLocation: {
			transport.InboundText: s.handleLocationText,
			transport.InboundGeo:  s.handleLocationGeo,
		},
		types.StateAwaitingInterests: {
			transport.InboundText: s.handleInterests,
		},
		types.StateAwaitingTripDates: {
			transport.InboundText: s.handleTripDates,
		},
		types.StateAwaitingTransportPrefs: {
			transport.InboundText: s.handleTransportPrefs,
		},
	}

	return s
}

// HandleInbound is the single dispatch point. Commands and button payloads
// are recognized in any state; everything else goes through the transition
// table keyed by the session's current state.
func (s *ServiceImpl) HandleInbound(ctx context.Context, in transport.Inbound) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "HandleInbound", trace.WithAttributes(
		attribute.Int64("user.id", in.UserID),
		attribute.Int("inbound.kind", int(in.Kind)),
	))
	defer span.End()

	sess, err := s.store.Get(ctx, in.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load session")
		s.logger.ErrorContext(ctx, "failed to load session", slog.Int64("user_id", in.UserID), slog.Any("error", err))
		return
	}
	span.SetAttributes(attribute.String("session.state", sess.State.String()))

	switch in.Kind {
	case transport.InboundButton:
		s.handleButton(ctx, sess, in)
		return
	case transport.InboundText:
		if cmd := strings.TrimSpace(in.Text); strings.HasPrefix(cmd, "/") {
			s.handleCommand(ctx, sess, cmd)
			return
		}
	}

	if handlers, ok := s.transitions[sess.State]; ok {
		if h, ok := handlers[in.Kind]; ok {
			h(ctx, sess, in)
			return
		}
	}

	// Tolerated no-op: the user stays in the current state until matching
	// input arrives.
	s.logger.InfoContext(ctx, "ignoring input for current state",
		slog.Int64("user_id", in.UserID),
		slog.String("state", sess.State.String()),
		slog.Int("kind", int(in.Kind)))
}

func (s *ServiceImpl) handleCommand(ctx context.Context, sess *types.Session, cmd string) {
	switch cmd {
	case commandStart:
		if _, err := s.userRepo.GetLanguage(ctx, sess.UserID); errors.Is(err, types.ErrNotFound) {
			s.promptLanguageChoice(ctx, sess)
			return
		}
		s.send(ctx, transport.Outbound{
			UserID: sess.UserID,
			Text:   s.loc.Text("welcome_language_selected", sess.Language, nil),
		})
	case commandPlanTrip:
		s.startPlanning(ctx, sess)
	case commandLanguage:
		s.promptLanguageChoice(ctx, sess)
	default:
		s.logger.InfoContext(ctx, "unknown command ignored",
			slog.Int64("user_id", sess.UserID), slog.String("command", cmd))
	}
}

func (s *ServiceImpl) handleButton(ctx context.Context, sess *types.Session, in transport.Inbound) {
	payload := in.Payload
	switch {
	case strings.HasPrefix(payload, payloadLangPrefix):
		s.handleLanguageChoice(ctx, sess, strings.TrimPrefix(payload, payloadLangPrefix))
	case strings.HasPrefix(payload, payloadBudgetPrefix):
		s.handleBudget(ctx, sess, strings.TrimPrefix(payload, payloadBudgetPrefix))
	case strings.HasPrefix(payload, payloadLikePrefix):
		s.handleFeedback(ctx, sess, strings.TrimPrefix(payload, payloadLikePrefix), types.FeedbackLike)
	case strings.HasPrefix(payload, payloadDislikePrefix):
		s.handleFeedback(ctx, sess, strings.TrimPrefix(payload, payloadDislikePrefix), types.FeedbackDislike)
	case payload == payloadMoreOptions:
		s.handleMoreOptions(ctx, sess)
	default:
		s.logger.InfoContext(ctx, "unknown button payload ignored",
			slog.Int64("user_id", sess.UserID), slog.String("payload", payload))
	}
}

// --- language sub-machine ---

// promptLanguageChoice enters the language selection sub-machine. It is
// independent of the planning states and re-enterable at any time; trip data
// is untouched.
func (s *ServiceImpl) promptLanguageChoice(ctx context.Context, sess *types.Session) {
	sess.State = types.StateAwaitingLanguageChoice
	s.store.Save(ctx, sess)
	s.send(ctx, transport.Outbound{
		UserID:  sess.UserID,
		Text:    s.loc.Text("language_selection_prompt", sess.Language, nil),
		Buttons: s.presenter.languageKeyboard(),
	})
}

func (s *ServiceImpl) handleLanguageChoice(ctx context.Context, sess *types.Session, lang string) {
	if !localization.IsSupported(lang) {
		s.logger.InfoContext(ctx, "unsupported language choice ignored",
			slog.Int64("user_id", sess.UserID), slog.String("lang", lang))
		return
	}

	sess.Language = lang
	if sess.State == types.StateAwaitingLanguageChoice {
		sess.State = types.StateIdle
	}
	s.store.Save(ctx, sess)

	// Fire-and-forget: the session holds the authoritative copy, persistence
	// is the durable fallback across restarts.
	if err := s.userRepo.SetLanguage(ctx, sess.UserID, lang); err != nil {
		s.logger.WarnContext(ctx, "failed to persist language choice",
			slog.Int64("user_id", sess.UserID), slog.Any("error", err))
	}

	s.send(ctx, transport.Outbound{
		UserID: sess.UserID,
		Text:   s.loc.Text("welcome_language_selected", lang, nil),
	})
}

// --- collection steps ---

func (s *ServiceImpl) startPlanning(ctx context.Context, sess *types.Session) {
	sess.StartPlanning()
	s.store.Save(ctx, sess)
	s.send(ctx, transport.Outbound{
		UserID: sess.UserID,
		Text: s.loc.Text("start_planning_prompt", sess.Language, nil) + "\n\n" +
			s.loc.Text("step1_location_prompt", sess.Language, nil),
	})
}

func (s *ServiceImpl) handleLocationText(ctx context.Context, sess *types.Session, in transport.Inbound) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		s.logger.InfoContext(ctx, "empty location text ignored", slog.Int64("user_id", sess.UserID))
		return
	}
	sess.Collected.SetLocationText(text)
	sess.State = types.StateAwaitingInterests
	s.store.Save(ctx, sess)

	s.send(ctx, transport.Outbound{
		UserID: sess.UserID,
		Text: s.loc.Text("location_received_text", sess.Language, map[string]any{"location_text": text}) + "\n\n" +
			s.loc.Text("step2_interests_prompt", sess.Language, nil),
	})
}

func (s *ServiceImpl) handleLocationGeo(ctx context.Context, sess *types.Session, in transport.Inbound) {
	sess.Collected.SetLocationGeo(in.Latitude, in.Longitude)
	sess.State = types.StateAwaitingInterests
	s.store.Save(ctx, sess)

	s.send(ctx, transport.Outbound{
		UserID: sess.UserID,
		Text: s.loc.Text("location_geo_received_text", sess.Language, map[string]any{
			"latitude":  in.Latitude,
			"longitude": in.Longitude,
		}) + "\n\n" + s.loc.Text("step2_interests_prompt", sess.Language, nil),
	})
}

func (s *ServiceImpl) handleInterests(ctx context.Context, sess *types.Session, in transport.Inbound) {
	sess.Collected.Interests = splitCommaList(in.Text)
	sess.State = types.StateAwaitingBudget
	s.store.Save(ctx, sess)

	s.send(ctx, transport.Outbound{
		UserID: sess.UserID,
		Text: s.loc.Text("interests_received_text", sess.Language, map[string]any{"interests_text": strings.TrimSpace(in.Text)}) + "\n\n" +
			s.loc.Text("step3_budget_prompt", sess.Language, nil),
		Buttons: s.presenter.budgetKeyboard(sess.Language),
	})
}

func (s *ServiceImpl) handleBudget(ctx context.Context, sess *types.Session, choice string) {
	// Only the three offered levels exist as payloads; anything else is a
	// forged or stale callback and leaves the state untouched.
	if sess.State != types.StateAwaitingBudget || !types.ValidBudget(choice) {
		s.logger.InfoContext(ctx, "budget callback ignored",
			slog.Int64("user_id", sess.UserID),
			slog.String("state", sess.State.String()),
			slog.String("choice", choice))
		return
	}

	sess.Collected.Budget = types.BudgetLevel(choice)
	sess.State = types.StateAwaitingTripDates
	s.store.Save(ctx, sess)

	s.send(ctx, transport.Outbound{
		UserID: sess.UserID,
		Text: s.loc.Text("budget_selected_text", sess.Language, map[string]any{"selected_budget": choice}) + "\n\n" +
			s.loc.Text("step4_dates_prompt", sess.Language, nil),
	})
}

func (s *ServiceImpl) handleTripDates(ctx context.Context, sess *types.Session, in transport.Inbound) {
	sess.Collected.TripDates = strings.TrimSpace(in.Text)
	sess.State = types.StateAwaitingTransportPrefs
	s.store.Save(ctx, sess)

	s.send(ctx, transport.Outbound{
		UserID: sess.UserID,
		Text: s.loc.Text("dates_received_text", sess.Language, map[string]any{"dates_text": strings.TrimSpace(in.Text)}) + "\n\n" +
			s.loc.Text("step5_transport_prompt", sess.Language, nil),
	})
}

// handleTransportPrefs closes the collection phase. This is the one
// transition with a side effect beyond bookkeeping: it synchronously runs the
// initial recommendation pipeline on the finalized snapshot.
func (s *ServiceImpl) handleTransportPrefs(ctx context.Context, sess *types.Session, in transport.Inbound) {
	sess.Collected.Transport = splitCommaList(in.Text)
	sess.State = types.StateCompleted
	s.store.Save(ctx, sess)

	s.send(ctx, transport.Outbound{
		UserID: sess.UserID,
		Text: s.loc.Text("transport_received_text", sess.Language, map[string]any{"transport_text": strings.TrimSpace(in.Text)}) + "\n\n" +
			s.loc.Text("all_data_collected_prompt", sess.Language, nil),
	})

	s.runPipeline(ctx, sess, types.RequestInitial)
}

// --- feedback sub-protocol ---

func (s *ServiceImpl) handleFeedback(ctx context.Context, sess *types.Session, recID string, kind types.FeedbackKind) {
	if recID == "" {
		return
	}

	switch kind {
	case types.FeedbackLike:
		sess.Like(recID)
	case types.FeedbackDislike:
		sess.Dislike(recID)
	}
	s.store.Save(ctx, sess)

	if err := s.feedbackRepo.RecordFeedback(ctx, sess.UserID, recID, kind); err != nil {
		s.logger.WarnContext(ctx, "failed to persist feedback",
			slog.Int64("user_id", sess.UserID),
			slog.String("recommendation_id", recID),
			slog.Any("error", err))
	}

	// Ask the platform to strip the like/dislike controls for this item and
	// acknowledge.
	s.send(ctx, transport.Outbound{UserID: sess.UserID, RemoveButtonsFor: recID})
	s.send(ctx, transport.Outbound{
		UserID: sess.UserID,
		Text:   s.loc.Text("feedback_saved_text", sess.Language, nil),
	})
}

// --- more-options protocol ---

func (s *ServiceImpl) handleMoreOptions(ctx context.Context, sess *types.Session) {
	// Guard against session loss (e.g. a restart wiped the in-memory store):
	// without the collected basics a follow-up request would be meaningless.
	if !sess.Collected.HasLocation() || len(sess.Collected.Interests) == 0 {
		s.logger.WarnContext(ctx, "more options requested but session data is gone",
			slog.Int64("user_id", sess.UserID),
			slog.Any("error", types.ErrStateLost))
		s.send(ctx, transport.Outbound{
			UserID: sess.UserID,
			Text:   s.loc.Text("state_lost_error_text", sess.Language, nil),
		})
		return
	}

	s.runPipeline(ctx, sess, types.RequestMoreOptions)
}

// --- pipeline ---

// runPipeline builds the request contract, calls the gateway once, reconciles
// the response against the shown ledger and renders the survivors. All AI
// errors are absorbed here and mapped to one localized message each; the
// ledger is only touched on success.
func (s *ServiceImpl) runPipeline(ctx context.Context, sess *types.Session, reqType types.RequestType) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "runPipeline", trace.WithAttributes(
		attribute.Int64("user.id", sess.UserID),
		attribute.String("request.type", string(reqType)),
	))
	defer span.End()

	req := BuildRequest(sess, reqType)

	resp, err := s.gateway.Generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Pipeline failed")
		s.sendAIError(ctx, sess, err)
		return
	}

	if len(resp.Recommendations) == 0 {
		s.logger.InfoContext(ctx, "ai returned zero recommendations",
			slog.Int64("user_id", sess.UserID), slog.String("request_type", string(reqType)))
		s.send(ctx, transport.Outbound{
			UserID: sess.UserID,
			Text:   s.loc.Text("no_recommendations_found_text", sess.Language, nil),
		})
		return
	}

	result := Reconcile(resp.Recommendations, sess.ShownIDs, sess.UserID, sess.MoreRounds, s.logger)
	if result.AllDuplicates {
		// Distinct from the zero-items outcome above: the model produced
		// items, but the ledger had already seen every one of them.
		s.logger.InfoContext(ctx, "all recommendations were already shown",
			slog.Int64("user_id", sess.UserID),
			slog.Int("incoming", len(resp.Recommendations)))
		s.send(ctx, transport.Outbound{
			UserID: sess.UserID,
			Text:   s.loc.Text("no_new_recommendations_text", sess.Language, nil),
		})
		return
	}

	sess.MarkShown(result.AcceptedIDs)
	sess.MoreRounds++
	s.store.Save(ctx, sess)
	planningCyclesTotal.WithLabelValues(string(reqType)).Inc()

	for _, item := range result.Accepted {
		s.send(ctx, s.presenter.RenderItem(sess.UserID, sess.Language, item))
	}
	s.send(ctx, s.presenter.RenderSummary(sess.UserID, sess.Language, resp.TextualSummary))
}

// sendAIError converts a classified gateway error into its localized user
// message. Nothing propagates further; the session stays usable.
func (s *ServiceImpl) sendAIError(ctx context.Context, sess *types.Session, err error) {
	lang := sess.Language
	var text string
	switch {
	case errors.Is(err, types.ErrAIMalformedJSON):
		text = s.loc.Text("ai_json_decode_error_text", lang, map[string]any{
			"error_details": truncate(err.Error(), 120),
		})
	case errors.Is(err, types.ErrAIUnexpectedFormat):
		text = s.loc.Text("ai_unexpected_format_text", lang, nil)
	default:
		// Configuration, transport, timeout and empty-response failures all
		// read the same to the user.
		text = s.loc.Text("ai_response_error_text", lang, nil)
	}
	s.send(ctx, transport.Outbound{UserID: sess.UserID, Text: text})
}

func (s *ServiceImpl) send(ctx context.Context, out transport.Outbound) {
	if err := s.sender.Send(ctx, out); err != nil {
		s.logger.ErrorContext(ctx, "failed to send outbound message",
			slog.Int64("user_id", out.UserID), slog.Any("error", err))
	}
}

// truncate caps diagnostic detail that is echoed back into chat.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// splitCommaList trims around commas and drops empty tokens; order and
// repetition are preserved as entered.
func splitCommaList(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
