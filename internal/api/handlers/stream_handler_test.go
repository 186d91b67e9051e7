package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/star-burger/backend/internal/api/handlers"
	"github.com/star-burger/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

type stubEventBus struct {
	events       chan *entities.OrderEvent
	unsubscribes int
}

func (s *stubEventBus) Publish(ctx context.Context, channel string, event *entities.OrderEvent) error {
	s.events <- event
	return nil
}

func (s *stubEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.OrderEvent, error) {
	return s.events, nil
}

func (s *stubEventBus) Unsubscribe(ctx context.Context, channel string) error {
	s.unsubscribes++
	return nil
}

func (s *stubEventBus) Close() error {
	return nil
}

func TestStreamHandler_StreamOrderUpdates(t *testing.T) {
	t.Run("streams published events", func(t *testing.T) {
		bus := &stubEventBus{events: make(chan *entities.OrderEvent, 1)}
		bus.events <- entities.NewOrderEvent("order-1", entities.OrderEventTypeUpdated, map[string]interface{}{
			"status": "prepared",
		})

		handler := handlers.NewStreamHandler(bus)

		ctx, cancel := context.WithCancel(context.Background())
		req := httptest.NewRequest("GET", "/api/manager/orders/stream", nil).WithContext(ctx)
		w := httptest.NewRecorder()

		go func() {
			// Give the handler time to drain the buffered event.
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()

		handler.StreamOrderUpdates(w, req)

		assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
		body := w.Body.String()
		assert.True(t, strings.Contains(body, "event: connected"))
		assert.True(t, strings.Contains(body, "event: order_updated"))
		assert.True(t, strings.Contains(body, "order-1"))
	})

	t.Run("disconnect leaves the shared channel to context cleanup", func(t *testing.T) {
		// The event bus closes a departing client's channel when its
		// context is cancelled. A channel-wide Unsubscribe from the
		// handler would also close every other manager's stream.
		bus := &stubEventBus{events: make(chan *entities.OrderEvent, 1)}
		handler := handlers.NewStreamHandler(bus)

		ctx, cancel := context.WithCancel(context.Background())
		req := httptest.NewRequest("GET", "/api/manager/orders/stream", nil).WithContext(ctx)
		w := httptest.NewRecorder()

		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		handler.StreamOrderUpdates(w, req)

		assert.Equal(t, 0, bus.unsubscribes)
	})

	t.Run("responds 503 without an event bus", func(t *testing.T) {
		handler := handlers.NewStreamHandler(nil)

		req := httptest.NewRequest("GET", "/api/manager/orders/stream", nil)
		w := httptest.NewRecorder()

		handler.StreamOrderUpdates(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
