package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/FACorreiaa/loci-travel-bot/internal/llm"
	"github.com/FACorreiaa/loci-travel-bot/internal/types"
)

const defaultTemperature = 0.5

// Gateway performs the single blocking generation call of a planning round
// and turns the model's raw text into a validated AIResponse. It never
// retries: every failure is classified and handed back to the planner once.
type Gateway struct {
	logger  *slog.Logger
	client  llm.ChatClient
	limiter *rate.Limiter
	timeout time.Duration
}

// NewGateway builds a gateway around the given chat client. A nil client
// means no credential was configured; every Generate call then fails with
// types.ErrAIConfiguration without touching the network. A zero timeout
// disables the deadline; limiter may be nil.
func NewGateway(client llm.ChatClient, limiter *rate.Limiter, timeout time.Duration, logger *slog.Logger) *Gateway {
	return &Gateway{
		logger:  logger,
		client:  client,
		limiter: limiter,
		timeout: timeout,
	}
}

// Generate sends the request contract to the model and validates the reply.
// Returned errors wrap exactly one sentinel from the types.ErrAI* taxonomy.
func (g *Gateway) Generate(ctx context.Context, req types.AIRequest) (*types.AIResponse, error) {
	requestID := uuid.NewString()
	ctx, span := otel.Tracer("PlannerGateway").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("request.id", requestID),
		attribute.String("request.type", string(req.RequestType)),
		attribute.String("request.language", req.Language),
		attribute.Int("request.previously_shown", len(req.PreviouslyShownIDs)),
	))
	defer span.End()

	logger := g.logger.With(slog.String("request_id", requestID))

	if g.client == nil {
		span.SetStatus(codes.Error, "AI client not configured")
		aiRequestsTotal.WithLabelValues(outcomeConfigError).Inc()
		return nil, fmt.Errorf("gemini client unavailable: %w", types.ErrAIConfiguration)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Rate limiter wait aborted")
			aiRequestsTotal.WithLabelValues(outcomeTransportError).Inc()
			return nil, fmt.Errorf("rate limiter wait aborted: %w", types.ErrAITransport)
		}
	}

	prompt := buildRecommendationPrompt(req)
	span.SetAttributes(attribute.Int("prompt.length", len(prompt)))

	start := time.Now()
	response, err := g.client.GenerateResponse(ctx, prompt, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](defaultTemperature),
	})
	latency := time.Since(start)
	span.SetAttributes(attribute.Int64("ai.latency_ms", latency.Milliseconds()))

	if err != nil {
		span.RecordError(err)
		if errors.Is(err, context.DeadlineExceeded) {
			span.SetStatus(codes.Error, "AI call timed out")
			aiRequestsTotal.WithLabelValues(outcomeTimeout).Inc()
			return nil, fmt.Errorf("generation exceeded %s: %w", g.timeout, types.ErrAITimeout)
		}
		span.SetStatus(codes.Error, "AI call failed")
		aiRequestsTotal.WithLabelValues(outcomeTransportError).Inc()
		return nil, fmt.Errorf("generation call failed: %v: %w", err, types.ErrAITransport)
	}

	raw := extractText(response)
	if raw == "" {
		span.SetStatus(codes.Error, "Empty response from AI")
		aiRequestsTotal.WithLabelValues(outcomeEmpty).Inc()
		logger.ErrorContext(ctx, "AI response contained no extractable text",
			slog.String("model", g.client.Model()))
		return nil, fmt.Errorf("no candidate text in provider envelope: %w", types.ErrAIEmptyResponse)
	}
	span.SetAttributes(attribute.Int("response.length", len(raw)))

	parsed, err := g.parseResponse(ctx, raw, logger)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Response validation failed")
		if errors.Is(err, types.ErrAIMalformedJSON) {
			aiRequestsTotal.WithLabelValues(outcomeMalformed).Inc()
		} else {
			aiRequestsTotal.WithLabelValues(outcomeBadFormat).Inc()
		}
		return nil, err
	}

	aiRequestsTotal.WithLabelValues(outcomeOK).Inc()
	span.SetAttributes(attribute.Int("response.recommendations", len(parsed.Recommendations)))
	return parsed, nil
}

// extractText pulls the first non-empty candidate text out of the provider
// envelope, concatenating parts when a candidate carries several.
func extractText(response *genai.GenerateContentResponse) string {
	if response == nil {
		return ""
	}
	for _, candidate := range response.Candidates {
		if candidate.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, part := range candidate.Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
		if txt := strings.TrimSpace(sb.String()); txt != "" {
			return txt
		}
	}
	return ""
}

// stripCodeFence removes the leading/trailing ```json markers the model wraps
// its output in despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseResponse enforces the response contract. The JSON-level failure and
// the shape-level failure are distinct errors: the first means the text was
// not JSON at all, the second means valid JSON violated the contract.
func (g *Gateway) parseResponse(ctx context.Context, raw string, logger *slog.Logger) (*types.AIResponse, error) {
	cleaned := stripCodeFence(raw)

	var top map[string]any
	if err := json.Unmarshal([]byte(cleaned), &top); err != nil {
		logger.ErrorContext(ctx, "AI returned invalid JSON",
			slog.String("parse_error", err.Error()),
			slog.String("raw_response", raw))
		return nil, fmt.Errorf("%v: %w", err, types.ErrAIMalformedJSON)
	}

	structured, ok := top["structured_recommendations"].(map[string]any)
	if !ok {
		logger.ErrorContext(ctx, "structured_recommendations missing or not an object")
		return nil, fmt.Errorf("structured_recommendations is not an object: %w", types.ErrAIUnexpectedFormat)
	}
	summary, ok := top["textual_summary"].(string)
	if !ok {
		logger.ErrorContext(ctx, "textual_summary missing or not a string")
		return nil, fmt.Errorf("textual_summary is not a string: %w", types.ErrAIUnexpectedFormat)
	}

	querySummaryRaw, ok := structured["query_summary"].(map[string]any)
	if !ok {
		logger.ErrorContext(ctx, "query_summary missing or not an object")
		return nil, fmt.Errorf("query_summary is not an object: %w", types.ErrAIUnexpectedFormat)
	}
	recsRaw, ok := structured["recommendations"].([]any)
	if !ok {
		logger.ErrorContext(ctx, "recommendations missing or not a list")
		return nil, fmt.Errorf("recommendations is not a list: %w", types.ErrAIUnexpectedFormat)
	}

	// An empty recommendations list is a valid "no matches" answer, but a
	// populated one needs accompanying text.
	if len(recsRaw) > 0 && strings.TrimSpace(summary) == "" {
		return nil, fmt.Errorf("textual_summary empty alongside recommendations: %w", types.ErrAIUnexpectedFormat)
	}

	resp := &types.AIResponse{
		QuerySummary:   querySummaryFromRaw(querySummaryRaw),
		TextualSummary: summary,
	}

	for i, entry := range recsRaw {
		m, ok := entry.(map[string]any)
		if !ok {
			logger.WarnContext(ctx, "skipping non-object recommendation entry", slog.Int("index", i))
			continue
		}
		item := itemFromRaw(m)
		// Soundness issues are logged but never fatal; the presenter copes
		// with partial items.
		if item.ID == "" || item.Type == "" || item.Name == "" {
			logger.WarnContext(ctx, "recommendation entry missing id, type or name",
				slog.Int("index", i),
				slog.String("id", item.ID),
				slog.String("type", string(item.Type)),
				slog.String("name", item.Name))
		}
		resp.Recommendations = append(resp.Recommendations, item)
	}

	return resp, nil
}

func querySummaryFromRaw(m map[string]any) types.QuerySummary {
	return types.QuerySummary{
		LocationInterpreted: types.NormalizeNullable(m["location_interpreted"]),
		TripDays:            types.NormalizeNullable(m["trip_days"]),
		MainInterests:       stringListFromRaw(m["main_interests"]),
	}
}

// itemFromRaw builds a recommendation item from the decoded JSON object,
// normalizing every nullable field. Decoding goes through maps instead of
// struct tags on purpose: a string "null" in a numeric slot must degrade to
// absent, not abort the whole response.
func itemFromRaw(m map[string]any) types.RecommendationItem {
	item := types.RecommendationItem{
		ID:             types.NormalizeNullable(m["id"]),
		Name:           types.NormalizeNullable(m["name"]),
		Address:        types.NormalizeNullable(m["address"]),
		Description:    types.NormalizeNullable(m["description"]),
		DistanceOrTime: types.NormalizeNullable(m["distance_or_time"]),
		PriceEstimate:  types.NormalizeNullable(m["price_estimate"]),
		OpeningHours:   types.NormalizeNullable(m["opening_hours"]),
		BookingLink:    types.NormalizeNullable(m["booking_link"]),
		Images:         stringListFromRaw(m["images"]),
	}

	if t := types.NormalizeNullable(m["type"]); t != "" {
		item.Type = types.RecommendationType(strings.ToLower(t))
	}

	if coords, ok := m["coordinates"].([]any); ok && len(coords) == 2 {
		lat, okLat := coords[0].(float64)
		lon, okLon := coords[1].(float64)
		if okLat && okLon {
			item.Coordinates = []float64{lat, lon}
		}
	}

	if rating, ok := m["rating"].(float64); ok {
		item.Rating = &rating
	}

	if details, ok := m["details"].(map[string]any); ok {
		item.Details = details
	} else {
		item.Details = map[string]any{}
	}

	return item
}

// stringListFromRaw converts a decoded JSON list into clean strings, dropping
// entries that normalize to absent.
func stringListFromRaw(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, entry := range list {
		if s := types.NormalizeNullable(entry); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
