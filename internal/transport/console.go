package transport

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Console is a line-oriented Sender/Listener over an io.Reader/io.Writer
// pair, used for local development and smoke testing without a chat platform.
//
// Input lines:
//
//	<text>                 plain text for the default user
//	/geo <lat> <lon>       a location share
//	/btn <payload>         a button press
type Console struct {
	in     io.Reader
	out    io.Writer
	userID int64

	mu sync.Mutex
}

var _ Sender = (*Console)(nil)
var _ Listener = (*Console)(nil)

func NewConsole(in io.Reader, out io.Writer, userID int64) *Console {
	return &Console{in: in, out: out, userID: userID}
}

func (c *Console) Send(_ context.Context, out Outbound) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if out.RemoveButtonsFor != "" {
		_, err := fmt.Fprintf(c.out, "[buttons removed for %s]\n", out.RemoveButtonsFor)
		return err
	}

	if out.ImageURL != "" {
		if _, err := fmt.Fprintf(c.out, "[image] %s\n", out.ImageURL); err != nil {
			return err
		}
	}
	if out.Text != "" {
		if _, err := fmt.Fprintln(c.out, out.Text); err != nil {
			return err
		}
	}
	for _, row := range out.Buttons {
		labels := make([]string, 0, len(row))
		for _, b := range row {
			if b.URL != "" {
				labels = append(labels, fmt.Sprintf("[%s -> %s]", b.Label, b.URL))
				continue
			}
			labels = append(labels, fmt.Sprintf("[%s /btn %s]", b.Label, b.Payload))
		}
		if _, err := fmt.Fprintln(c.out, strings.Join(labels, " ")); err != nil {
			return err
		}
	}
	return nil
}

// Listen reads input lines until EOF or context cancellation. Events are
// delivered one at a time, which satisfies the per-user serialization
// contract trivially.
func (c *Console) Listen(ctx context.Context, handle func(ctx context.Context, in Inbound)) error {
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		in, ok := c.parse(line)
		if !ok {
			continue
		}
		handle(ctx, in)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("console input failed: %w", err)
	}
	return nil
}

func (c *Console) parse(line string) (Inbound, bool) {
	switch {
	case strings.HasPrefix(line, "/geo "):
		fields := strings.Fields(strings.TrimPrefix(line, "/geo "))
		if len(fields) != 2 {
			return Inbound{}, false
		}
		lat, errLat := strconv.ParseFloat(fields[0], 64)
		lon, errLon := strconv.ParseFloat(fields[1], 64)
		if errLat != nil || errLon != nil {
			return Inbound{}, false
		}
		return Inbound{UserID: c.userID, Kind: InboundGeo, Latitude: lat, Longitude: lon}, true
	case strings.HasPrefix(line, "/btn "):
		payload := strings.TrimSpace(strings.TrimPrefix(line, "/btn "))
		if payload == "" {
			return Inbound{}, false
		}
		return Inbound{UserID: c.userID, Kind: InboundButton, Payload: payload}, true
	default:
		return Inbound{UserID: c.userID, Kind: InboundText, Text: line}, true
	}
}
