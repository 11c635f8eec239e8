package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"machine_maintenance/internal/models"
	"machine_maintenance/internal/scoring"
	"machine_maintenance/internal/service"
)

func doAuthed(r http.Handler, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func TestPredictHandler_Success(t *testing.T) {
	auth := &mockAuth{parseID: 7, parseRole: models.RoleOperator}
	pred := &mockPrediction{outcome: &service.PredictOutcome{
		Prediction: models.Prediction{
			ID:             "p-1",
			MachineType:    scoring.MachineCNC,
			RiskScore:      21.15,
			ConditionLevel: "Good",
			Explanation:    "all fine",
			Alerts:         []string{"All metrics within safe bands"},
			PredictionDate: time.Date(2025, 8, 27, 12, 0, 0, 0, time.UTC),
		},
		SensorMode: scoring.SensorModeShopfloorHighTemp,
		Thresholds: scoring.ResolvedSet{
			Temperature: scoring.Band{Green: 70, Yellow: 95},
			Vibration:   scoring.Band{Green: 60, Yellow: 80},
		},
	}}
	s := &service.Service{Authorization: auth, Prediction: pred}
	r := newTestRouter(s)

	// requires auth → 401 without header
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", w.Code)
	}

	body := bytes.NewBufferString(`{"machine_type":"CNC","running_hours":5000,"feeding_rate":1000,"temperature":60,"vibration":50,"maintenance_date":"2024-01-01"}`)
	w = doAuthed(r, http.MethodPost, "/api/v1/predict", body)
	if w.Code != http.StatusOK {
		t.Fatalf("predict status=%d, body=%s", w.Code, w.Body.String())
	}
	if pred.calls != 1 {
		t.Fatalf("expected Predict to be called once, got %d", pred.calls)
	}
	if pred.lastParams.MachineType != scoring.MachineCNC || pred.lastParams.Temperature == nil || *pred.lastParams.Temperature != 60 {
		t.Fatalf("wrong Predict params: %+v", pred.lastParams)
	}

	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["id"] != "p-1" || m["risk_score"] != 21.15 || m["condition_level"] != "Good" {
		t.Fatalf("unexpected response: %v", m)
	}
	tu, _ := m["thresholds_used"].(map[string]any)
	if tu == nil || tu["sensor_mode"] != scoring.SensorModeShopfloorHighTemp {
		t.Fatalf("thresholds_used missing/invalid: %v", m["thresholds_used"])
	}
}

func TestPredictHandler_OmittedTemperatureStaysNil(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	pred := &mockPrediction{outcome: &service.PredictOutcome{}}
	s := &service.Service{Authorization: auth, Prediction: pred}
	r := newTestRouter(s)

	body := bytes.NewBufferString(`{"machine_type":"CNC","running_hours":1,"feeding_rate":1,"vibration":1}`)
	w := doAuthed(r, http.MethodPost, "/api/v1/predict", body)
	if w.Code != http.StatusOK {
		t.Fatalf("predict status=%d, body=%s", w.Code, w.Body.String())
	}
	if pred.lastParams.Temperature != nil {
		t.Fatalf("expected nil temperature, got %v", *pred.lastParams.Temperature)
	}
}

func TestPredictHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"unknown machine type", fmt.Errorf("%w: %q", scoring.ErrUnknownMachineType, "Press"), http.StatusBadRequest},
		{"missing temperature", fmt.Errorf("%w for CNC", scoring.ErrMissingTemperature), http.StatusBadRequest},
		{"incomplete config", fmt.Errorf("%w: no vibration band", scoring.ErrConfigIncomplete), http.StatusUnprocessableEntity},
		{"internal", fmt.Errorf("db gone"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{parseID: 7}
			pred := &mockPrediction{err: tc.err}
			s := &service.Service{Authorization: auth, Prediction: pred}
			r := newTestRouter(s)

			body := bytes.NewBufferString(`{"machine_type":"CNC","vibration":1}`)
			w := doAuthed(r, http.MethodPost, "/api/v1/predict", body)
			if w.Code != tc.code {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.code, w.Body.String())
			}
		})
	}
}

func TestHistoryHandler_ListAndValidation(t *testing.T) {
	auth := &mockAuth{parseID: 99}
	now := time.Now().UTC().Truncate(time.Second)
	preds := []models.Prediction{
		{ID: "p2", MachineType: scoring.MachineEDM, PredictionDate: now.Add(time.Second)},
		{ID: "p1", MachineType: scoring.MachineEDM, PredictionDate: now},
	}
	hist := &mockHistory{resp: preds}
	s := &service.Service{Authorization: auth, History: hist}
	r := newTestRouter(s)

	// Invalid 'from' → 400
	w := doAuthed(r, http.MethodGet, "/api/v1/history?from=notatime", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}

	// from > to → 400
	w = doAuthed(r, http.MethodGet, "/api/v1/history?from=2025-08-20&to=2025-08-10", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", w.Code)
	}

	// Valid range + filters
	q := "/api/v1/history?machine_type=EDM&from=2025-08-01&to=2025-08-27&limit=10&offset=5"
	w = doAuthed(r, http.MethodGet, q, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("history status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count       int                 `json:"count"`
		Predictions []models.Prediction `json:"predictions"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Predictions) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if hist.lastFilter.MachineType != scoring.MachineEDM || hist.lastFilter.Limit != 10 || hist.lastFilter.Offset != 5 {
		t.Fatalf("wrong filter: %+v", hist.lastFilter)
	}
	// Date-only 'to' becomes end-of-day inclusive.
	wantFrom := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	if !hist.lastFilter.From.Equal(wantFrom) {
		t.Fatalf("from: got %v, want %v", hist.lastFilter.From, wantFrom)
	}
	if hist.lastFilter.To.Before(time.Date(2025, 8, 27, 23, 59, 59, 0, time.UTC)) {
		t.Fatalf("to not extended to end of day: %v", hist.lastFilter.To)
	}
}

func TestHistoryHandler_UnknownMachineType(t *testing.T) {
	auth := &mockAuth{parseID: 99}
	hist := &mockHistory{err: fmt.Errorf("%w: %q", scoring.ErrUnknownMachineType, "Press")}
	s := &service.Service{Authorization: auth, History: hist}
	r := newTestRouter(s)

	w := doAuthed(r, http.MethodGet, "/api/v1/history?machine_type=Press", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown machine type, got %d", w.Code)
	}
}
