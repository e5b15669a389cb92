package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"terrarium-api/internal/controller"
	"terrarium-api/internal/models"
	"terrarium-api/internal/repository"
	"terrarium-api/internal/routes"
	"terrarium-api/internal/service"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "terarium_test.db")
	store, err := repository.Open("sqlite://" + dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return routes.SetupRouter(controller.NewDataController(service.NewDataService(store)))
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestIngestAndLatest(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/data",
		map[string]any{"device_id": "t1", "temperature": 24.5, "humidity": 60})
	require.Equal(t, http.StatusOK, rec.Code)

	var ack models.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	require.Equal(t, "Data received successfully", ack.Message)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/latest_data/t1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var reading models.ReadingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reading))
	require.Equal(t, "t1", reading.DeviceID)
	require.Equal(t, 24.5, reading.Temperature)
	require.Equal(t, 60.0, reading.Humidity)
	require.True(t, strings.HasSuffix(reading.Timestamp, "Z"), "timestamp must be UTC with trailing Z")
}

func TestIngestZeroIsNotMissing(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/data",
		map[string]any{"device_id": "t1", "temperature": 0, "humidity": 0})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestIngestMissingField(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/data",
		map[string]any{"device_id": "t1", "temperature": 24.5})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, models.ErrorCodeMissingParameter, apiErr.Code)
}

func TestIngestRejectsNonJSON(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/data", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, models.ErrorCodeBadRequest, apiErr.Code)
	require.Equal(t, "Request must be JSON", apiErr.Message)
}

func TestCommandRelayFlow(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/control",
		map[string]any{"device_id": "t1", "command": "fan_on"})
	require.Equal(t, http.StatusOK, rec.Code)

	var ack models.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	require.Equal(t, "Command set successfully", ack.Message)

	// Polling twice returns the same command both times.
	for i := 0; i < 2; i++ {
		rec = doJSON(t, router, http.MethodGet, "/api/v1/commands?device_id=t1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.CommandResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Command)
		require.Equal(t, "fan_on", *resp.Command)
	}
}

func TestCommandUnknownDeviceIsNull(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/commands?device_id=unknown", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.CommandResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Nil(t, resp.Command)
}

func TestCommandMissingDeviceID(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/commands", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, models.ErrorCodeMissingParameter, apiErr.Code)
}

func TestControlMissingCommand(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/control",
		map[string]any{"device_id": "t1"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLatestDataNotFound(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/latest_data/ghost", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, models.ErrorCodeNotFound, apiErr.Code)
	require.Equal(t, "No data found for this device", apiErr.Message)
}

func TestHistoricalDataEmptyArray(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/historical_data/ghost", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestHistoricalDataNewestFirst(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	for _, temp := range []float64{20, 21, 22} {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/data",
			map[string]any{"device_id": "t1", "temperature": temp, "humidity": 55})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/historical_data/t1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var readings []models.ReadingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &readings))
	require.Len(t, readings, 3)
	require.Equal(t, 22.0, readings[0].Temperature)
	require.Equal(t, 20.0, readings[2].Temperature)
}

func TestRootLiveness(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Body.String())
}
