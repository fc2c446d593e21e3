package service

import (
	"context"
	"sync"
	"time"

	"enet_panel/internal/models"
	"enet_panel/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Device exposes the mutations behind the CGI endpoints.
type Device interface {
	ToggleLED(ctx context.Context) (models.DeviceState, error)
	SetSpeed(ctx context.Context, raw string) (models.DeviceState, error)
	SetMode(ctx context.Context, automatic bool) (models.DeviceState, error)
}

// Monitoring exposes read-only state.
type Monitoring interface {
	GetState(ctx context.Context) (models.DeviceState, error)
}

type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.DeviceEvent, error)
}

// Simulator drives the tachometer reading until ctx is cancelled.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

// Options carries the settings services need from config.
type Options struct {
	SigningKey string
	TokenTTL   time.Duration
	Automatic  bool // initial speed mode when no state is persisted
}

type Service struct {
	Device
	Monitoring
	EventLog
	Simulator
	Authorization
}

// NewService wires repositories into concrete services. Device and
// Simulator share one lock because both read-modify-write the state row.
func NewService(repos *repository.Repository, opts Options) *Service {
	mu := &sync.Mutex{}
	baseline := newBaseline(opts.Automatic)
	return &Service{
		Device:        NewDeviceService(repos.StateRepo, repos.EventRepo, mu, baseline),
		Monitoring:    NewMonitoringService(repos.StateRepo, baseline),
		EventLog:      NewEventLogService(repos.EventRepo),
		Simulator:     NewSimulatorService(repos.StateRepo, mu, baseline, nil),
		Authorization: NewAuthService(repos.Auth, opts.SigningKey, opts.TokenTTL),
	}
}
