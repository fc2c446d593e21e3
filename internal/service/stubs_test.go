package service

import (
	"context"
	"errors"
	"time"

	"enet_panel/internal/models"
)

type stateRepoStub struct {
	state   models.DeviceState
	loadErr error
	saveErr error
	saves   []models.DeviceState
}

func (s *stateRepoStub) Load(ctx context.Context) (models.DeviceState, error) {
	return s.state, s.loadErr
}

func (s *stateRepoStub) Save(ctx context.Context, st models.DeviceState) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	st.ID = 1
	s.saves = append(s.saves, st)
	s.state = st
	return nil
}

type eventRepoStub struct {
	appends   []models.DeviceEvent
	appendErr error

	listResp []models.DeviceEvent
	listErr  error
	gotFrom  time.Time
	gotTo    time.Time
	gotType  string
	calls    int
}

func (e *eventRepoStub) Append(ctx context.Context, ev models.DeviceEvent) error {
	if e.appendErr != nil {
		return e.appendErr
	}
	e.appends = append(e.appends, ev)
	return nil
}

func (e *eventRepoStub) List(ctx context.Context, from, to time.Time, typ string) ([]models.DeviceEvent, error) {
	e.calls++
	e.gotFrom, e.gotTo, e.gotType = from, to, typ
	return e.listResp, e.listErr
}

var errDB = errors.New("db down")
