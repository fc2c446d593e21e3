package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"enet_panel/internal/models"
	"enet_panel/internal/service"
)

func serve(r http.Handler, method, target string, body string, hdr http.Header) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, withHeader(req, hdr))
	return w
}

func assertPlainNoStore(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
		t.Fatalf("Cache-Control = %q", cc)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("Content-Type = %q", ct)
	}
}

func TestCGI_ToggleAndReadLED(t *testing.T) {
	dev := &mockDevice{}
	mon := &mockMonitoring{state: models.DeviceState{LEDOn: true}}
	r := newTestRouter(&service.Service{Device: dev, Monitoring: mon})

	w := serve(r, http.MethodGet, "/cgi-bin/toggle_led", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != "ON" {
		t.Fatalf("toggle: %d %q", w.Code, w.Body.String())
	}
	assertPlainNoStore(t, w)

	w = serve(r, http.MethodGet, "/cgi-bin/toggle_led", "", nil)
	if w.Body.String() != "OFF" || dev.toggleCalls != 2 {
		t.Fatalf("second toggle: %q calls=%d", w.Body.String(), dev.toggleCalls)
	}

	w = serve(r, http.MethodGet, "/ledstate?id=512", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != "ON" {
		t.Fatalf("ledstate: %d %q", w.Code, w.Body.String())
	}
	assertPlainNoStore(t, w)
}

func TestCGI_SetSpeed(t *testing.T) {
	cases := []struct {
		name     string
		query    string
		wantCode int
		wantBody string
	}{
		{"accepted", "?percent=45&id=3", http.StatusOK, "45"},
		{"max", "?percent=100", http.StatusOK, "100"},
		{"trailing junk ignored", "?percent=7abc", http.StatusOK, "7"},
		{"empty is zero", "?percent=", http.StatusOK, "0"},
		{"too large keeps speed", "?percent=250", http.StatusOK, "10"},
		{"missing percent", "?id=3", http.StatusBadRequest, errMissingPercent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dev := &mockDevice{state: models.DeviceState{ManualSpeed: 10}}
			r := newTestRouter(&service.Service{Device: dev})

			w := serve(r, http.MethodGet, "/cgi-bin/set_speed"+tc.query, "", nil)
			if w.Code != tc.wantCode || w.Body.String() != tc.wantBody {
				t.Fatalf("got %d %q, want %d %q", w.Code, w.Body.String(), tc.wantCode, tc.wantBody)
			}
			if tc.wantCode == http.StatusBadRequest && dev.speedCalls != 0 {
				t.Fatalf("service called for a bad request")
			}
		})
	}
}

func TestCGI_GetSpeedFollowsMode(t *testing.T) {
	mon := &mockMonitoring{state: models.DeviceState{ManualSpeed: 20, MeasuredSpeed: 63}}
	r := newTestRouter(&service.Service{Monitoring: mon})

	w := serve(r, http.MethodGet, "/get_speed?id=1", "", nil)
	if w.Body.String() != "20" {
		t.Fatalf("manual speed = %q", w.Body.String())
	}
	assertPlainNoStore(t, w)

	mon.state.Automatic = true
	w = serve(r, http.MethodGet, "/get_speed?id=2", "", nil)
	if w.Body.String() != "63" {
		t.Fatalf("automatic speed = %q", w.Body.String())
	}
}

func TestCGI_Errors(t *testing.T) {
	boom := errors.New("boom")
	r := newTestRouter(&service.Service{
		Device:     &mockDevice{err: boom},
		Monitoring: &mockMonitoring{err: boom},
	})
	for _, path := range []string{"/cgi-bin/toggle_led", "/cgi-bin/set_speed?percent=5", "/ledstate", "/get_speed"} {
		w := serve(r, http.MethodGet, path, "", nil)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("%s: status %d", path, w.Code)
		}
	}
}

func TestDeviceAPI_StateAndMode(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	mon := &mockMonitoring{state: models.DeviceState{ID: 1, LEDOn: true, ManualSpeed: 30}}
	dev := &mockDevice{state: models.DeviceState{ID: 1, ManualSpeed: 30}}
	r := newTestRouter(&service.Service{Authorization: auth, Monitoring: mon, Device: dev})

	w := serve(r, http.MethodGet, "/api/v1/device/state", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", w.Code)
	}

	w = serve(r, http.MethodGet, "/api/v1/device/state", "", authHeader("valid"))
	if w.Code != http.StatusOK {
		t.Fatalf("state status=%d, body=%s", w.Code, w.Body.String())
	}
	var st models.DeviceState
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if !st.LEDOn || st.ManualSpeed != 30 {
		t.Fatalf("unexpected state: %+v", st)
	}

	w = serve(r, http.MethodPost, "/api/v1/device/mode", `{"automatic":true}`, authHeader("valid"))
	if w.Code != http.StatusOK {
		t.Fatalf("mode status=%d, body=%s", w.Code, w.Body.String())
	}
	if dev.modeCalls != 1 || !dev.lastAutomatic {
		t.Fatalf("SetMode calls=%d automatic=%v", dev.modeCalls, dev.lastAutomatic)
	}
	var resp struct {
		Status string             `json:"status"`
		State  models.DeviceState `json:"state"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != statusModeSet || !resp.State.Automatic {
		t.Fatalf("bad mode response: %+v", resp)
	}
}

func TestDeviceAPI_ModeValidation(t *testing.T) {
	dev := &mockDevice{}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, Device: dev})

	for _, body := range []string{`{}`, `{"automatic":"yes"}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/device/mode", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, withHeader(req, authHeader("valid")))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d", body, w.Code)
		}
	}
	if dev.modeCalls != 0 {
		t.Fatalf("SetMode called %d times for invalid bodies", dev.modeCalls)
	}

	// explicit false is a valid request
	w := serve(r, http.MethodPost, "/api/v1/device/mode", `{"automatic":false}`, authHeader("valid"))
	if w.Code != http.StatusOK || dev.lastAutomatic {
		t.Fatalf("manual mode: %d automatic=%v", w.Code, dev.lastAutomatic)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := serve(r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
}
