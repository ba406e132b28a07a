package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatStream(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/ws/chat/"))
		assert.Equal(t, desktopKey, r.Header.Get(DesktopKeyHeader))

		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		var req StreamRequest
		require.NoError(t, conn.ReadJSON(&req))
		assert.Equal(t, "blink", req.Message)

		conn.WriteJSON(StreamFrame{Type: FrameAck, Message: "Processing your request..."})
		conn.WriteJSON(StreamFrame{Type: FrameProgress, Message: "Generating code..."})
		conn.WriteJSON(StreamFrame{Type: FrameComplete, Code: "void setup(){}"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	stream, err := c.OpenChatStream(context.Background(), "session-1")
	require.NoError(t, err)
	defer stream.Close()

	require.NoError(t, stream.Send(StreamRequest{Message: "blink", BoardType: "esp32dev"}))

	var types []string
	var code string
	timeout := time.After(3 * time.Second)
	for len(types) < 3 {
		select {
		case frame, ok := <-stream.Frames():
			if !ok {
				t.Fatal("stream closed early")
			}
			types = append(types, frame.Type)
			if frame.Type == FrameComplete {
				code = frame.Code
			}
		case <-timeout:
			t.Fatal("timed out waiting for frames")
		}
	}

	assert.Equal(t, []string{FrameAck, FrameProgress, FrameComplete}, types)
	assert.Equal(t, "void setup(){}", code)
}

func TestOpenChatStreamUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL)
	_, err := c.OpenChatStream(context.Background(), "session-1")
	assert.Error(t, err)
}
