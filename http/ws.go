package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/nodaire/dashhub/constants"
	"github.com/nodaire/dashhub/events"
	"github.com/nodaire/dashhub/logger"
)

var upgrader = websocket.Upgrader{
	// the dashboard frontend is served from the same origin
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// websocketSubscriber forwards published events to one websocket client.
// It implements events.EventSubscriber; the write loop is driven by a
// buffered channel so a slow client cannot block the event publisher.
type websocketSubscriber struct {
	conn      *websocket.Conn
	send      chan *events.Event
	closeOnce sync.Once
	done      chan struct{}
}

func newWebsocketSubscriber(conn *websocket.Conn) *websocketSubscriber {
	return &websocketSubscriber{
		conn: conn,
		send: make(chan *events.Event, constants.WEBSOCKET_SEND_BUFFER),
		done: make(chan struct{}),
	}
}

func (s *websocketSubscriber) ConsumeEvent(ctx context.Context, event *events.Event, globalProperties map[string]interface{}) {
	select {
	case s.send <- event:
	case <-s.done:
	default:
		// buffer full: drop rather than stall other subscribers; the
		// client recovers state from GET /api/store
		logger.Logger.Warn().Str("event", event.Event).Msg("Dropping event for slow websocket client")
	}
}

func (s *websocketSubscriber) close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

func (s *websocketSubscriber) writeLoop() {
	for {
		select {
		case event := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(constants.WEBSOCKET_WRITE_TIMEOUT))
			if err := s.conn.WriteJSON(event); err != nil {
				logger.Logger.Debug().Err(err).Msg("Failed to write event to websocket")
				s.close()
				return
			}
		case <-s.done:
			return
		}
	}
}

// readLoop discards client messages; its purpose is noticing the close.
func (s *websocketSubscriber) readLoop() {
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			s.close()
			return
		}
	}
}

func (httpSvc *HttpService) websocketHandler(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return err
	}

	subscriber := newWebsocketSubscriber(conn)
	httpSvc.eventPublisher.RegisterSubscriber(subscriber)
	logger.Logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("Websocket client connected")

	go subscriber.writeLoop()
	subscriber.readLoop()

	httpSvc.eventPublisher.RemoveSubscriber(subscriber)
	logger.Logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("Websocket client disconnected")
	return nil
}
