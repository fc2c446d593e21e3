package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"enet_panel/internal/models"
	"enet_panel/internal/service"
)

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockDevice struct {
	state models.DeviceState
	err   error

	toggleCalls   int
	lastSpeedRaw  string
	speedCalls    int
	lastAutomatic bool
	modeCalls     int
}

func (m *mockDevice) ToggleLED(ctx context.Context) (models.DeviceState, error) {
	m.toggleCalls++
	m.state.LEDOn = !m.state.LEDOn
	return m.state, m.err
}

func (m *mockDevice) SetSpeed(ctx context.Context, raw string) (models.DeviceState, error) {
	m.speedCalls++
	m.lastSpeedRaw = raw
	if v, ok := service.ParseSpeed(raw); ok {
		m.state.ManualSpeed = v
	}
	return m.state, m.err
}

func (m *mockDevice) SetMode(ctx context.Context, automatic bool) (models.DeviceState, error) {
	m.modeCalls++
	m.lastAutomatic = automatic
	m.state.Automatic = automatic
	return m.state, m.err
}

type mockMonitoring struct {
	state models.DeviceState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.DeviceState, error) {
	return m.state, m.err
}

type mockEventLog struct {
	resp     []models.DeviceEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.DeviceEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func withHeader(req *http.Request, hdr http.Header) *http.Request {
	for k, vv := range hdr {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
