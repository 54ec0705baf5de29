package http

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nodaire/dashhub/backend"
	"github.com/nodaire/dashhub/config"
	"github.com/nodaire/dashhub/events"
	"github.com/nodaire/dashhub/state"
)

func TestWebsocketReceivesPublishedEvents(t *testing.T) {
	e, _, _, eventPublisher := createTestHttpService(t, &config.AppConfig{})

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// registration happens right after the handshake; give it a moment
	time.Sleep(100 * time.Millisecond)

	eventPublisher.PublishSync(&events.Event{
		Event: "test_event",
		Properties: map[string]interface{}{
			"slice": "config",
		},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var received events.Event
	require.NoError(t, conn.ReadJSON(&received))
	assert.Equal(t, "test_event", received.Event)
}

func TestWebsocketReceivesStateUpdates(t *testing.T) {
	e, mockClient, stateManager, _ := createTestHttpService(t, &config.AppConfig{})

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	time.Sleep(100 * time.Millisecond)

	mockClient.On("FetchConfig", mock.Anything).Return(&backend.ConfigResponse{Version: 1}, nil).Once()
	stateManager.LoadConfig(false)

	// a full load cycle emits loading on, data stored, loading off
	seen := 0
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for seen < 3 {
		var received events.Event
		require.NoError(t, conn.ReadJSON(&received))
		if received.Event == state.StateUpdatedEvent {
			seen++
		}
	}
}
