package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"enet_panel/internal/repository"
)

// maxStep bounds how far the simulated tachometer moves per tick, in percent.
const maxStep = 3

const defaultSimTick = time.Second

// SimulatorService stands in for the tachometer: in automatic mode the
// measured speed random-walks within [0, MaxSpeed].
type SimulatorService struct {
	stateRepo repository.StateRepo
	mu        *sync.Mutex
	baseline  baselineFunc
	rng       *rand.Rand
}

// NewSimulatorService builds a simulator. A nil rng uses a time-seeded PCG.
func NewSimulatorService(stateRepo repository.StateRepo, mu *sync.Mutex, baseline baselineFunc, rng *rand.Rand) *SimulatorService {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	if baseline == nil {
		baseline = newBaseline(false)
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &SimulatorService{stateRepo: stateRepo, mu: mu, baseline: baseline, rng: rng}
}

// Run ticks at the given interval until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	if tick <= 0 {
		tick = defaultSimTick
	}
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			_ = s.step(ctx, now)
		}
	}
}

// step advances the simulation once. Returns true if state was saved.
func (s *SimulatorService) step(ctx context.Context, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return false
	}
	if st.ID == 0 {
		st = s.baseline(now)
		return s.stateRepo.Save(ctx, st) == nil
	}
	if !st.Automatic {
		return false
	}

	next := clampSpeed(st.MeasuredSpeed + s.rng.IntN(2*maxStep+1) - maxStep)
	if next == st.MeasuredSpeed {
		return false
	}
	st.MeasuredSpeed = next
	st.UpdatedAt = now.UTC()
	return s.stateRepo.Save(ctx, st) == nil
}

func clampSpeed(v int) int {
	switch {
	case v < 0:
		return 0
	case v > MaxSpeed:
		return MaxSpeed
	default:
		return v
	}
}

var _ Simulator = (*SimulatorService)(nil)
