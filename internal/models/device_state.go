package models

import "time"

// DeviceState is the persisted snapshot of the controller.
type DeviceState struct {
	ID            int       `json:"id"`
	LEDOn         bool      `json:"led_on"`
	Automatic     bool      `json:"automatic"`      // speed follows the tachometer when true
	ManualSpeed   int       `json:"manual_speed"`   // percent, last accepted set_speed
	MeasuredSpeed int       `json:"measured_speed"` // percent, simulated tachometer reading
	UpdatedAt     time.Time `json:"updated_at"`
}

// Speed returns the percent reported by /get_speed.
func (s DeviceState) Speed() int {
	if s.Automatic {
		return s.MeasuredSpeed
	}
	return s.ManualSpeed
}

// LEDText is the rendered LED state served to the panel.
func (s DeviceState) LEDText() string {
	if s.LEDOn {
		return "ON"
	}
	return "OFF"
}
