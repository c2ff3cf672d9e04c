// Package transport defines the messaging boundary. The planner consumes
// inbound events tagged with a user ID and emits renderable content through a
// Sender; the concrete chat platform lives behind these interfaces and is
// assumed to serialize delivery per user.
package transport

import "context"

// InboundKind tags the payload variant of an inbound event.
type InboundKind int

const (
	InboundText InboundKind = iota
	InboundGeo
	InboundButton
)

// Inbound is one user event delivered by the chat platform.
type Inbound struct {
	UserID int64
	Kind   InboundKind

	// Text is set for InboundText.
	Text string
	// Latitude/Longitude are set for InboundGeo.
	Latitude  float64
	Longitude float64
	// Payload is the opaque callback string for InboundButton.
	Payload string
}

// Button is one pressable control attached to an outbound message. Payload
// round-trips back as an InboundButton event; URL buttons open a link instead.
type Button struct {
	Label   string
	Payload string
	URL     string
}

// Outbound is one renderable message. Button rows are rendered in order.
type Outbound struct {
	UserID  int64
	Text    string
	Buttons [][]Button
	// ImageURL, when non-empty, asks the platform to attach the image above
	// the text.
	ImageURL string
	// RemoveButtonsFor, when non-empty, asks the platform to strip the
	// like/dislike controls previously attached for this recommendation ID
	// instead of sending new content.
	RemoveButtonsFor string
}

// Sender delivers outbound content to the chat platform.
type Sender interface {
	Send(ctx context.Context, out Outbound) error
}

// Listener blocks delivering inbound events to the handler until the context
// is canceled. Implementations must not deliver two events for the same
// user ID concurrently.
type Listener interface {
	Listen(ctx context.Context, handle func(ctx context.Context, in Inbound)) error
}
