package gateway

import (
	"context"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/hardcoreai/shell/errors"
)

// Frame types pushed by the backend's chat websocket.
const (
	FrameAck      = "ack"
	FrameProgress = "progress"
	FrameComplete = "complete"
	FrameError    = "error"
)

// StreamFrame is one message from the /ws/chat/{session} endpoint.
type StreamFrame struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// StreamRequest is the client-to-backend message on the chat socket.
type StreamRequest struct {
	Message   string `json:"message"`
	BoardType string `json:"board_type"`
}

// ChatStream is a live connection to the backend's streaming chat
// endpoint. Frames arrive on Frames until the stream errors or the
// connection closes; there is no mid-flight cancellation beyond
// closing the stream.
type ChatStream struct {
	conn   *websocket.Conn
	frames chan StreamFrame
}

// OpenChatStream dials the websocket chat endpoint for a session.
func (c *Client) OpenChatStream(ctx context.Context, sessionID string) (*ChatStream, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "invalid backend URL")
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws/chat/" + sessionID

	header := make(map[string][]string)
	header[DesktopKeyHeader] = []string{desktopKey}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil {
			return nil, errors.BackendStatus("/ws/chat", resp.StatusCode)
		}
		return nil, errors.BackendUnreachable("/ws/chat", err)
	}

	s := &ChatStream{
		conn:   conn,
		frames: make(chan StreamFrame, 16),
	}
	go s.readLoop()
	return s, nil
}

// Send submits a chat message over the stream.
func (s *ChatStream) Send(req StreamRequest) error {
	if err := s.conn.WriteJSON(req); err != nil {
		return errors.BackendUnreachable("/ws/chat", err)
	}
	return nil
}

// Frames returns the channel of incoming frames. It is closed when the
// connection drops.
func (s *ChatStream) Frames() <-chan StreamFrame {
	return s.frames
}

// Close shuts the stream down.
func (s *ChatStream) Close() error {
	return s.conn.Close()
}

func (s *ChatStream) readLoop() {
	defer close(s.frames)
	for {
		var frame StreamFrame
		if err := s.conn.ReadJSON(&frame); err != nil {
			return
		}
		s.frames <- frame
	}
}
