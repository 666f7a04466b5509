package api

import (
	"net/http"
	"testing"
	"time"

	"healthwallet/api/model"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestVital(t *testing.T, a *API, owner *model.User, vitalType string, value float64, recordedAt time.Time) *model.Vital {
	t.Helper()

	id, err := gonanoid.Generate(charset, 16)
	require.NoError(t, err)

	vital := model.Vital{
		ID:         id,
		UserID:     owner.ID,
		Type:       vitalType,
		Value:      value,
		Unit:       model.VitalTypes[vitalType].Unit,
		RecordedAt: recordedAt,
		CreatedAt:  time.Now().Unix(),
	}
	require.NoError(t, a.DB.Create(&vital).Error)

	return &vital
}

func TestVitalCreateDerivesUnit(t *testing.T) {
	a, _ := newTestAPI(t)
	_, token := createTestUser(t, a, "anna@example.com", "Anna")

	w := doJSON(t, a, http.MethodPost, "/api/vitals", token, map[string]any{
		"type":        "heart_rate",
		"value":       72,
		"recorded_at": "2026-01-10T09:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	vital := decodeBody(t, w)["vital"].(map[string]any)
	assert.Equal(t, "bpm", vital["unit"], "unit comes from the type table")

	w = doJSON(t, a, http.MethodPost, "/api/vitals", token, map[string]any{
		"type":        "shoe_size",
		"value":       44,
		"recorded_at": "2026-01-10T09:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, a, http.MethodPost, "/api/vitals", token, map[string]any{
		"type": "heart_rate", "recorded_at": "2026-01-10T09:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "value is required")
}

func TestVitalReportReferenceMustBeOwn(t *testing.T) {
	a, _ := newTestAPI(t)
	owner, _ := createTestUser(t, a, "owner@example.com", "Owner")
	_, otherToken := createTestUser(t, a, "other@example.com", "Other")
	report := createTestReport(t, a, owner, "Blood work", "2026-01-10")

	w := doJSON(t, a, http.MethodPost, "/api/vitals", otherToken, map[string]any{
		"type":        "heart_rate",
		"value":       70,
		"recorded_at": "2026-01-10T09:00:00Z",
		"report_id":   report.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVitalScopeIsStrictlyOwn(t *testing.T) {
	a, _ := newTestAPI(t)
	owner, _ := createTestUser(t, a, "owner@example.com", "Owner")
	_, otherToken := createTestUser(t, a, "other@example.com", "Other")

	vital := createTestVital(t, a, owner, "weight", 80, time.Now())

	w := doJSON(t, a, http.MethodGet, "/api/vitals/"+vital.ID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, a, http.MethodPut, "/api/vitals/"+vital.ID, otherToken, map[string]any{"value": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, a, http.MethodDelete, "/api/vitals/"+vital.ID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	require.NoError(t, a.DB.Model(model.Vital{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestVitalPartialUpdate(t *testing.T) {
	a, _ := newTestAPI(t)
	owner, token := createTestUser(t, a, "anna@example.com", "Anna")

	recorded := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	vital := createTestVital(t, a, owner, "weight", 80, recorded)

	w := doJSON(t, a, http.MethodPut, "/api/vitals/"+vital.ID, token, map[string]any{
		"value": 78.5,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got model.Vital
	require.NoError(t, a.DB.First(&got, "id = ?", vital.ID).Error)
	assert.Equal(t, 78.5, got.Value)
	assert.True(t, got.RecordedAt.Equal(recorded), "unspecified fields keep their value")
	assert.Equal(t, "kg", got.Unit)
}

func TestVitalListFilters(t *testing.T) {
	a, _ := newTestAPI(t)
	owner, token := createTestUser(t, a, "anna@example.com", "Anna")

	now := time.Now()
	createTestVital(t, a, owner, "heart_rate", 60, now.Add(-2*time.Hour))
	createTestVital(t, a, owner, "heart_rate", 70, now.Add(-1*time.Hour))
	createTestVital(t, a, owner, "weight", 80, now)

	w := doJSON(t, a, http.MethodGet, "/api/vitals", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	vitals := decodeBody(t, w)["vitals"].([]any)
	require.Len(t, vitals, 3)

	// Newest first
	assert.Equal(t, "weight", vitals[0].(map[string]any)["type"])

	w = doJSON(t, a, http.MethodGet, "/api/vitals?type=heart_rate", token, nil)
	vitals = decodeBody(t, w)["vitals"].([]any)
	require.Len(t, vitals, 2)
}

func TestVitalTrendsWindow(t *testing.T) {
	a, _ := newTestAPI(t)
	owner, token := createTestUser(t, a, "anna@example.com", "Anna")

	now := time.Now()
	createTestVital(t, a, owner, "heart_rate", 60, now.Add(-72*time.Hour))
	createTestVital(t, a, owner, "heart_rate", 70, now.Add(-48*time.Hour))
	createTestVital(t, a, owner, "heart_rate", 80, now.Add(-24*time.Hour))

	// Outside the 30 day window, must not count
	createTestVital(t, a, owner, "heart_rate", 200, now.AddDate(0, 0, -31))

	// A second type must come back as its own row with its own unit
	createTestVital(t, a, owner, "weight", 82, now.Add(-12*time.Hour))

	w := doJSON(t, a, http.MethodGet, "/api/vitals/trends?days=30", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	out := decodeBody(t, w)
	trends := trendsByType(t, out)
	require.Len(t, trends, 2)

	hr := trends["heart_rate"]
	assert.Equal(t, 70.0, hr["avg_value"])
	assert.Equal(t, 60.0, hr["min_value"])
	assert.Equal(t, 80.0, hr["max_value"])
	assert.Equal(t, 3.0, hr["count"])
	assert.Equal(t, "bpm", hr["unit"])

	assert.Equal(t, "kg", trends["weight"]["unit"])
	assert.Equal(t, 1.0, trends["weight"]["count"])

	// Chart series is ascending in time
	series := out["chartData"].(map[string]any)["heart_rate"].([]any)
	require.Len(t, series, 3)
	assert.Equal(t, 60.0, series[0].(map[string]any)["value"])
	assert.Equal(t, 80.0, series[2].(map[string]any)["value"])
}

// trendsByType indexes the trends list by vital type, aggregate row
// order is not guaranteed
func trendsByType(t *testing.T, out map[string]any) map[string]map[string]any {
	t.Helper()

	byType := make(map[string]map[string]any)
	for _, raw := range out["trends"].([]any) {
		row := raw.(map[string]any)
		byType[row["type"].(string)] = row
	}

	return byType
}

func TestVitalTrendsClampsWindow(t *testing.T) {
	a, _ := newTestAPI(t)
	owner, token := createTestUser(t, a, "anna@example.com", "Anna")

	now := time.Now()
	createTestVital(t, a, owner, "heart_rate", 70, now.Add(-2*time.Hour))
	createTestVital(t, a, owner, "heart_rate", 200, now.AddDate(0, 0, -31))
	createTestVital(t, a, owner, "heart_rate", 300, now.AddDate(0, 0, -400))

	// days=0 clamps to a one day window
	w := doJSON(t, a, http.MethodGet, "/api/vitals/trends?days=0", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	hr := trendsByType(t, decodeBody(t, w))["heart_rate"]
	require.NotNil(t, hr)
	assert.Equal(t, 1.0, hr["count"])
	assert.Equal(t, 70.0, hr["avg_value"])

	// days=9999 clamps to a year, the 400 day old reading stays out
	w = doJSON(t, a, http.MethodGet, "/api/vitals/trends?days=9999", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	hr = trendsByType(t, decodeBody(t, w))["heart_rate"]
	require.NotNil(t, hr)
	assert.Equal(t, 2.0, hr["count"])
	assert.Equal(t, 200.0, hr["max_value"])
}

func TestVitalTypesEndpoint(t *testing.T) {
	a, _ := newTestAPI(t)
	_, token := createTestUser(t, a, "anna@example.com", "Anna")

	w := doJSON(t, a, http.MethodGet, "/api/vitals/types", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	types := decodeBody(t, w)["vitalTypes"].(map[string]any)
	require.Len(t, types, len(model.VitalTypes))
	assert.Equal(t, "bpm", types["heart_rate"].(map[string]any)["unit"])
}
