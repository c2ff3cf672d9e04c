package transport

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_ParsesInputKinds(t *testing.T) {
	in := strings.NewReader("Paris\n/geo 48.85 2.35\n/btn budget_mid\n\n/geo broken\n")
	console := NewConsole(in, &strings.Builder{}, 9)

	var events []Inbound
	err := console.Listen(context.Background(), func(_ context.Context, ev Inbound) {
		events = append(events, ev)
	})
	require.NoError(t, err)

	require.Len(t, events, 3)

	assert.Equal(t, InboundText, events[0].Kind)
	assert.Equal(t, "Paris", events[0].Text)
	assert.Equal(t, int64(9), events[0].UserID)

	assert.Equal(t, InboundGeo, events[1].Kind)
	assert.Equal(t, 48.85, events[1].Latitude)
	assert.Equal(t, 2.35, events[1].Longitude)

	assert.Equal(t, InboundButton, events[2].Kind)
	assert.Equal(t, "budget_mid", events[2].Payload)
}

func TestConsole_SendRendersButtonsAndImages(t *testing.T) {
	var out strings.Builder
	console := NewConsole(strings.NewReader(""), &out, 9)

	err := console.Send(context.Background(), Outbound{
		UserID:   9,
		Text:     "hello",
		ImageURL: "https://example.com/x.jpg",
		Buttons: [][]Button{
			{{Label: "Like", Payload: "fb_like_rec_1"}, {Label: "Map", URL: "https://maps.example.com"}},
		},
	})
	require.NoError(t, err)

	rendered := out.String()
	assert.Contains(t, rendered, "hello")
	assert.Contains(t, rendered, "[image] https://example.com/x.jpg")
	assert.Contains(t, rendered, "/btn fb_like_rec_1")
	assert.Contains(t, rendered, "https://maps.example.com")
}

func TestConsole_SendButtonRemoval(t *testing.T) {
	var out strings.Builder
	console := NewConsole(strings.NewReader(""), &out, 9)

	err := console.Send(context.Background(), Outbound{UserID: 9, RemoveButtonsFor: "rec_1"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "rec_1")
}
