package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// OrderEventType represents the type of order event
type OrderEventType string

const (
	OrderEventTypeCreated OrderEventType = "order_created"
	OrderEventTypeUpdated OrderEventType = "order_updated"
)

// OrderEvent represents a real-time update event for an order
type OrderEvent struct {
	ID            string                 `json:"id"`
	OrderID       string                 `json:"order_id"`
	EventType     OrderEventType         `json:"event_type"`
	Timestamp     time.Time              `json:"timestamp"`
	ChangedFields map[string]interface{} `json:"changed_fields"`
}

// NewOrderEvent creates a new order event
func NewOrderEvent(orderID string, eventType OrderEventType, changedFields map[string]interface{}) *OrderEvent {
	return &OrderEvent{
		ID:            generateEventID(),
		OrderID:       orderID,
		EventType:     eventType,
		Timestamp:     time.Now(),
		ChangedFields: changedFields,
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

// randomString generates a random string of specified length
func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}
