package amqp

import (
	"encoding/json"
	"time"
)

// Activity event types.
const (
	EventPropertyCreated   = "property_unit.created"
	EventPropertyDeleted   = "property_unit.deleted"
	EventTenantCreated     = "tenant.created"
	EventTenantUpdated     = "tenant.updated"
	EventTenantDeleted     = "tenant.deleted"
	EventPaymentRegistered = "payment.registered"
)

// ActivityEvent records that a change was accepted by the backend.
// It carries identifiers only; consumers fetch details from the backend.
type ActivityEvent struct {
	Type      string    `json:"type"`
	EntityID  int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewActivityEvent creates an event stamped with the current time
func NewActivityEvent(eventType string, entityID int64) *ActivityEvent {
	return &ActivityEvent{
		Type:      eventType,
		EntityID:  entityID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ActivityEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ActivityEventFromJSON creates a message from JSON bytes
func ActivityEventFromJSON(data []byte) (*ActivityEvent, error) {
	var msg ActivityEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
