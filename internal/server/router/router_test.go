package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greencalc/internal/config"
	"greencalc/internal/domain/models"
	"greencalc/internal/server/handlers"
	"greencalc/internal/server/router"
	"greencalc/internal/service/calculator"
	"greencalc/internal/service/countries"
)

type memoryHistory struct {
	mu      sync.Mutex
	records []models.HistoryRecord
	failing bool
}

func (m *memoryHistory) Append(_ context.Context, record models.HistoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("store unavailable")
	}
	record.ID = int64(len(m.records) + 1)
	m.records = append(m.records, record)
	return nil
}

func (m *memoryHistory) List(_ context.Context, limit int) ([]models.HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return nil, errors.New("store unavailable")
	}
	out := make([]models.HistoryRecord, 0, len(m.records))
	for i := len(m.records) - 1; i >= 0; i-- {
		out = append(out, m.records[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

type staticFetcher struct{ countries []models.Country }

func (s *staticFetcher) FetchAll(context.Context) ([]models.Country, error) {
	return s.countries, nil
}

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:          "0",
			TemplatesGlob: "../../../web/templates/*.html",
		},
		Admin:   config.AdminConfig{Key: "secret-key"},
		Session: config.SessionConfig{Secret: "test-secret"},
	}
}

func newTestRouter(t *testing.T, history *memoryHistory) *gin.Engine {
	t.Helper()

	engine := calculator.NewEngine(calculator.DefaultTables(), calculator.NeutralProfile{}, nil)
	directory := countries.NewDirectory(&staticFetcher{countries: []models.Country{
		models.DefaultCountry,
		{Code: "FR", Name: "France", CurrencyCode: "EUR", CurrencySymbol: "€"},
	}}, nil)
	require.NoError(t, directory.Refresh(context.Background()))

	calcHandler := handlers.NewCalculatorHandler(engine, directory, history, nil)
	adminHandler := handlers.NewAdminHandler(history, "secret-key", nil)

	return router.New(calcHandler, adminHandler, testConfig(), nil)
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t, &memoryHistory{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestShowForm(t *testing.T) {
	r := newTestRouter(t, &memoryHistory{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Greenhouse Economics Calculator")
	assert.Contains(t, w.Body.String(), "United States")
	assert.Contains(t, w.Body.String(), "tomato")
}

func TestCalculateFormFlow(t *testing.T) {
	history := &memoryHistory{}
	r := newTestRouter(t, history)

	form := url.Values{}
	form.Set("area_m2", "2000")
	form.Set("crop", "tomato")
	form.Set("system_type", "soil")
	form.Set("setup_level", "standard")
	form.Set("country", "US")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/results", w.Header().Get("Location"))
	require.Len(t, history.records, 1)
	assert.Equal(t, 2000.0, history.records[0].AreaM2)
	assert.Equal(t, "tomato", history.records[0].Crop)

	// Follow the redirect with the session cookie.
	resultsReq := httptest.NewRequest(http.MethodGet, "/results", nil)
	for _, cookie := range w.Result().Cookies() {
		resultsReq.AddCookie(cookie)
	}
	resultsW := httptest.NewRecorder()
	r.ServeHTTP(resultsW, resultsReq)

	assert.Equal(t, http.StatusOK, resultsW.Code)
	assert.Contains(t, resultsW.Body.String(), "Projection Results")
	assert.Contains(t, resultsW.Body.String(), "52000.00")
}

func TestCalculateFormRejectsInvalidArea(t *testing.T) {
	history := &memoryHistory{}
	r := newTestRouter(t, history)

	form := url.Values{}
	form.Set("area_m2", "0")
	form.Set("crop", "tomato")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "greater than zero")
	assert.Empty(t, history.records)
}

func TestResultsWithoutSessionRedirects(t *testing.T) {
	r := newTestRouter(t, &memoryHistory{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/results", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestCalculateJSON(t *testing.T) {
	history := &memoryHistory{}
	r := newTestRouter(t, history)

	body := `{"area_m2": 2000, "crop": "tomato", "system_type": "soil", "setup_level": "standard", "country": "US"}`
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result models.CalculationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 5000.0, result.Plants)
	assert.InDelta(t, 52000.0, result.AnnualYieldKg, 0.01)
	assert.Equal(t, "USD", result.CurrencyCode)
	require.NotNil(t, result.PaybackYears)

	require.Len(t, history.records, 1)
}

func TestCalculateJSONValidationError(t *testing.T) {
	r := newTestRouter(t, &memoryHistory{})

	body := `{"area_m2": -10, "crop": "tomato"}`
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var payload struct {
		Error struct {
			Kind  string `json:"kind"`
			Field string `json:"field"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "validation", payload.Error.Kind)
	assert.Equal(t, "area_m2", payload.Error.Field)
}

func TestCalculateJSONBadBody(t *testing.T) {
	r := newTestRouter(t, &memoryHistory{})

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculateSurvivesHistoryOutage(t *testing.T) {
	history := &memoryHistory{failing: true}
	r := newTestRouter(t, history)

	body := `{"area_m2": 1000, "crop": "tomato", "system_type": "soil", "country": "US"}`
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// A failed history write must not block the projection.
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminHistoryRequiresKey(t *testing.T) {
	history := &memoryHistory{}
	require.NoError(t, history.Append(context.Background(), models.HistoryRecord{
		AreaM2: 2000, SystemType: "soil", Crop: "tomato", CountryCode: "US", CurrencyCode: "USD",
	}))
	r := newTestRouter(t, history)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/history", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/history?key=wrong", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/history?key=secret-key", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tomato")
}
