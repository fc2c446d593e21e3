package service

import (
	"context"
	"time"

	"enet_panel/internal/models"
	"enet_panel/internal/repository"
)

// defaultSpeed is the speed a freshly booted controller reports.
const defaultSpeed = 10

// baselineFunc returns the state used when nothing is persisted yet.
type baselineFunc func(now time.Time) models.DeviceState

func newBaseline(automatic bool) baselineFunc {
	return func(now time.Time) models.DeviceState {
		return models.DeviceState{
			ID:          1,
			Automatic:   automatic,
			ManualSpeed: defaultSpeed,
			UpdatedAt:   now.UTC(),
		}
	}
}

type MonitoringService struct {
	stateRepo repository.StateRepo
	baseline  baselineFunc
}

func NewMonitoringService(stateRepo repository.StateRepo, baseline baselineFunc) *MonitoringService {
	if baseline == nil {
		baseline = newBaseline(false)
	}
	return &MonitoringService{stateRepo: stateRepo, baseline: baseline}
}

// GetState returns the persisted state, or the baseline before first save.
func (s *MonitoringService) GetState(ctx context.Context) (models.DeviceState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.DeviceState{}, err
	}
	if state.ID == 0 {
		return s.baseline(time.Now()), nil
	}
	if !state.UpdatedAt.IsZero() {
		state.UpdatedAt = state.UpdatedAt.UTC()
	}
	return state, nil
}
