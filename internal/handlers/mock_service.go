package handlers

import (
	"context"
	"net/http"

	"machine_maintenance/internal/models"
	"machine_maintenance/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseRole     string
	parseErr      error
	user          *models.User
	userErr       error

	lastSignUp     service.SignUpParams
	lastGenEmail   string
	lastGenPass    string
	lastParseToken string
	lastGetUserID  int
}

func (m *mockAuth) SignUp(p service.SignUpParams) (int, error) {
	m.lastSignUp = p
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(email, password string) (string, error) {
	m.lastGenEmail = email
	m.lastGenPass = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, string, error) {
	m.lastParseToken = token
	return m.parseID, m.parseRole, m.parseErr
}
func (m *mockAuth) GetUser(id int) (*models.User, error) {
	m.lastGetUserID = id
	return m.user, m.userErr
}

type mockPrediction struct {
	outcome *service.PredictOutcome
	err     error

	lastParams service.PredictParams
	calls      int
}

func (m *mockPrediction) Predict(ctx context.Context, p service.PredictParams) (*service.PredictOutcome, error) {
	m.calls++
	m.lastParams = p
	return m.outcome, m.err
}

type mockHistory struct {
	resp []models.Prediction
	err  error

	lastFilter service.HistoryFilter
}

func (m *mockHistory) List(ctx context.Context, f service.HistoryFilter) ([]models.Prediction, error) {
	m.lastFilter = f
	return m.resp, m.err
}

type mockTemperature struct {
	reading   *models.LatestTemperature
	ingestErr error
	latestErr error

	lastAPIKey      string
	lastMachineType string
	lastTemperature float64
}

func (m *mockTemperature) Ingest(ctx context.Context, apiKey, machineType string, temperature float64) (*models.LatestTemperature, error) {
	m.lastAPIKey = apiKey
	m.lastMachineType = machineType
	m.lastTemperature = temperature
	if m.ingestErr != nil {
		return nil, m.ingestErr
	}
	return m.reading, nil
}
func (m *mockTemperature) Latest(ctx context.Context, machineType string) (*models.LatestTemperature, error) {
	m.lastMachineType = machineType
	if m.latestErr != nil {
		return nil, m.latestErr
	}
	return m.reading, nil
}

type mockSettings struct {
	cfg       models.Settings
	getErr    error
	updateErr error

	lastUpdate  models.Settings
	updateCalls int
}

func (m *mockSettings) Get(ctx context.Context) (models.Settings, error) {
	return m.cfg, m.getErr
}
func (m *mockSettings) Update(ctx context.Context, s models.Settings) error {
	m.updateCalls++
	m.lastUpdate = s
	return m.updateErr
}

// ---- Shared Test Helpers ----

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
