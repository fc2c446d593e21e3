package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"enet_panel/internal/models"
	"enet_panel/internal/repository"

	"github.com/google/uuid"
)

// MaxSpeed is the highest accepted speed percent.
const MaxSpeed = 100

type DeviceService struct {
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	mu        *sync.Mutex
	baseline  baselineFunc
	now       func() time.Time
}

func NewDeviceService(stateRepo repository.StateRepo, eventRepo repository.EventRepo, mu *sync.Mutex, baseline baselineFunc) *DeviceService {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	if baseline == nil {
		baseline = newBaseline(false)
	}
	return &DeviceService{
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		mu:        mu,
		baseline:  baseline,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ParseSpeed reads the leading run of decimal digits in raw. Anything after
// the digits is ignored, and no digits at all parse as 0. The value is valid
// only when it is at most MaxSpeed.
func ParseSpeed(raw string) (int, bool) {
	speed := 0
	for i := 0; i < len(raw) && raw[i] >= '0' && raw[i] <= '9'; i++ {
		speed = speed*10 + int(raw[i]-'0')
		if speed > MaxSpeed {
			return speed, false
		}
	}
	return speed, true
}

// mutate runs fn on the current state under the state lock and persists it.
func (s *DeviceService) mutate(ctx context.Context, fn func(st *models.DeviceState) models.DeviceEvent) (models.DeviceState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.DeviceState{}, err
	}
	if st.ID == 0 {
		st = s.baseline(now)
	}

	ev := fn(&st)
	st.UpdatedAt = now

	if err := s.stateRepo.Save(ctx, st); err != nil {
		return models.DeviceState{}, err
	}

	ev.EventID = uuid.NewString()
	ev.OccurredAt = now
	if err := s.eventRepo.Append(ctx, ev); err != nil {
		return st, fmt.Errorf("record %s: %w", ev.Type, err)
	}
	return st, nil
}

// ToggleLED flips the status LED.
func (s *DeviceService) ToggleLED(ctx context.Context) (models.DeviceState, error) {
	return s.mutate(ctx, func(st *models.DeviceState) models.DeviceEvent {
		from := st.LEDText()
		st.LEDOn = !st.LEDOn
		return models.DeviceEvent{
			Type:        models.EventLEDToggle,
			Description: "LED switched " + st.LEDText(),
			Metadata:    map[string]any{"from": from, "to": st.LEDText()},
		}
	})
}

// SetSpeed applies a set_speed request. Out-of-range values leave the
// speed unchanged and are recorded as rejected.
func (s *DeviceService) SetSpeed(ctx context.Context, raw string) (models.DeviceState, error) {
	return s.mutate(ctx, func(st *models.DeviceState) models.DeviceEvent {
		speed, ok := ParseSpeed(raw)
		if !ok {
			return models.DeviceEvent{
				Type:        models.EventSpeedRejected,
				Description: fmt.Sprintf("speed %q rejected", raw),
				Metadata:    map[string]any{"raw": raw, "kept": st.ManualSpeed},
			}
		}
		from := st.ManualSpeed
		st.ManualSpeed = speed
		return models.DeviceEvent{
			Type:        models.EventSpeedChange,
			Description: fmt.Sprintf("speed set to %d%%", speed),
			Metadata:    map[string]any{"from": from, "to": speed, "automatic": st.Automatic},
		}
	})
}

// SetMode switches between manual and automatic (tachometer) speed.
func (s *DeviceService) SetMode(ctx context.Context, automatic bool) (models.DeviceState, error) {
	return s.mutate(ctx, func(st *models.DeviceState) models.DeviceEvent {
		st.Automatic = automatic
		if automatic && st.MeasuredSpeed == 0 {
			st.MeasuredSpeed = st.ManualSpeed
		}
		mode := "manual"
		if automatic {
			mode = "automatic"
		}
		return models.DeviceEvent{
			Type:        models.EventModeChange,
			Description: "speed mode set to " + mode,
			Metadata:    map[string]any{"automatic": automatic},
		}
	})
}
