package planner

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/FACorreiaa/loci-travel-bot/internal/types"
)

// MockChatClient is a mock implementation of llm.ChatClient
type MockChatClient struct {
	mock.Mock
}

func (m *MockChatClient) GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	args := m.Called(ctx, prompt, config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genai.GenerateContentResponse), args.Error(1)
}

func (m *MockChatClient) Model() string {
	return "gemini-test"
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

const validBody = `{
	"structured_recommendations": {
		"query_summary": {"location_interpreted": "Paris", "trip_days": "3", "main_interests": ["food"]},
		"recommendations": [
			{"id": "rec_1", "type": "museum", "name": "Louvre", "address": "Rue de Rivoli",
			 "coordinates": [48.86, 2.33], "rating": 4.7, "booking_link": "https://example.com"}
		]
	},
	"textual_summary": "A fine day in Paris."
}`

func newTestGateway(client *MockChatClient) *Gateway {
	return NewGateway(client, nil, 0, slog.Default())
}

func sampleRequest() types.AIRequest {
	return types.AIRequest{
		Location:           "Paris",
		Language:           "en",
		RequestType:        types.RequestInitial,
		PreviouslyShownIDs: []string{},
	}
}

func TestGateway_NilClientIsConfigurationError(t *testing.T) {
	g := NewGateway(nil, nil, time.Second, slog.Default())

	_, err := g.Generate(context.Background(), sampleRequest())

	assert.ErrorIs(t, err, types.ErrAIConfiguration)
}

func TestGateway_ValidResponse(t *testing.T) {
	client := new(MockChatClient)
	client.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse(validBody), nil)

	resp, err := newTestGateway(client).Generate(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, "A fine day in Paris.", resp.TextualSummary)
	assert.Equal(t, "Paris", resp.QuerySummary.LocationInterpreted)
	require.Len(t, resp.Recommendations, 1)

	item := resp.Recommendations[0]
	assert.Equal(t, "rec_1", item.ID)
	assert.Equal(t, types.RecommendationMuseum, item.Type)
	assert.Equal(t, "Louvre", item.Name)
	assert.Equal(t, []float64{48.86, 2.33}, item.Coordinates)
	require.NotNil(t, item.Rating)
	assert.Equal(t, 4.7, *item.Rating)
	assert.Equal(t, "https://example.com", item.BookingLink)
}

func TestGateway_StripsCodeFence(t *testing.T) {
	client := new(MockChatClient)
	client.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse("```json\n"+validBody+"\n```"), nil)

	resp, err := newTestGateway(client).Generate(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Len(t, resp.Recommendations, 1)
}

func TestGateway_TransportError(t *testing.T) {
	client := new(MockChatClient)
	client.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset"))

	_, err := newTestGateway(client).Generate(context.Background(), sampleRequest())

	assert.ErrorIs(t, err, types.ErrAITransport)
}

func TestGateway_DeadlineMapsToTimeout(t *testing.T) {
	client := new(MockChatClient)
	client.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, context.DeadlineExceeded)

	_, err := newTestGateway(client).Generate(context.Background(), sampleRequest())

	assert.ErrorIs(t, err, types.ErrAITimeout)
}

func TestGateway_EmptyEnvelope(t *testing.T) {
	client := new(MockChatClient)
	client.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(&genai.GenerateContentResponse{}, nil)

	_, err := newTestGateway(client).Generate(context.Background(), sampleRequest())

	assert.ErrorIs(t, err, types.ErrAIEmptyResponse)
}

func TestGateway_MalformedJSON(t *testing.T) {
	client := new(MockChatClient)
	client.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse("I think you should visit the Louvre!"), nil)

	_, err := newTestGateway(client).Generate(context.Background(), sampleRequest())

	assert.ErrorIs(t, err, types.ErrAIMalformedJSON)
}

func TestGateway_UnexpectedFormat(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing structured_recommendations", `{"textual_summary": "hi"}`},
		{"structured not an object", `{"structured_recommendations": [], "textual_summary": "hi"}`},
		{"missing textual_summary", `{"structured_recommendations": {"query_summary": {}, "recommendations": []}}`},
		{"summary not a string", `{"structured_recommendations": {"query_summary": {}, "recommendations": []}, "textual_summary": 5}`},
		{"missing query_summary", `{"structured_recommendations": {"recommendations": []}, "textual_summary": "hi"}`},
		{"recommendations not a list", `{"structured_recommendations": {"query_summary": {}, "recommendations": {}}, "textual_summary": "hi"}`},
		{"empty summary with items", `{"structured_recommendations": {"query_summary": {}, "recommendations": [{"id": "rec_1"}]}, "textual_summary": "  "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockChatClient)
			client.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
				Return(textResponse(tt.body), nil)

			_, err := newTestGateway(client).Generate(context.Background(), sampleRequest())

			assert.ErrorIs(t, err, types.ErrAIUnexpectedFormat)
		})
	}
}

func TestGateway_EmptyRecommendationListIsValid(t *testing.T) {
	body := `{"structured_recommendations": {"query_summary": {}, "recommendations": []}, "textual_summary": ""}`
	client := new(MockChatClient)
	client.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse(body), nil)

	resp, err := newTestGateway(client).Generate(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Empty(t, resp.Recommendations)
}

func TestGateway_NullableFieldTolerance(t *testing.T) {
	tests := []struct {
		name        string
		bookingLink string // raw JSON for the booking_link slot, empty = omit
	}{
		{"json null", `"booking_link": null,`},
		{"string null", `"booking_link": "null",`},
		{"empty string", `"booking_link": "",`},
		{"absent", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{
				"structured_recommendations": {
					"query_summary": {},
					"recommendations": [{"id": "rec_1", "type": "museum", "name": "Louvre", ` + tt.bookingLink + ` "rating": "null"}]
				},
				"textual_summary": "ok"
			}`
			client := new(MockChatClient)
			client.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
				Return(textResponse(body), nil)

			resp, err := newTestGateway(client).Generate(context.Background(), sampleRequest())

			require.NoError(t, err)
			require.Len(t, resp.Recommendations, 1)
			assert.Empty(t, resp.Recommendations[0].BookingLink)
			assert.Nil(t, resp.Recommendations[0].Rating)
		})
	}
}

func TestGateway_ItemMissingIDStillPassesThrough(t *testing.T) {
	body := `{
		"structured_recommendations": {
			"query_summary": {},
			"recommendations": [{"type": "activity", "name": "Walk"}]
		},
		"textual_summary": "ok"
	}`
	client := new(MockChatClient)
	client.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse(body), nil)

	resp, err := newTestGateway(client).Generate(context.Background(), sampleRequest())

	require.NoError(t, err)
	require.Len(t, resp.Recommendations, 1)
	assert.Empty(t, resp.Recommendations[0].ID)
}
