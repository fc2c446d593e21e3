package models

import "time"

// Event types recorded by the device.
const (
	EventLEDToggle     = "LED_TOGGLE"
	EventSpeedChange   = "SPEED_CHANGE"
	EventSpeedRejected = "SPEED_REJECTED"
	EventModeChange    = "MODE_CHANGE"
)

// DeviceEvent is a single log entry.
type DeviceEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
