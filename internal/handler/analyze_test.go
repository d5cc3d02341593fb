package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seantp00/RealGoodEstate/internal/model"
	"github.com/seantp00/RealGoodEstate/internal/service"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newAnalyzeRouter() *mux.Router {
	logger := testLogger()
	h := NewAnalyzeHandler(service.NewAffordabilityService(logger), logger)
	router := mux.NewRouter()
	h.RegisterRoutes(router.PathPrefix("/api/analyze").Subrouter())
	return router
}

func TestAnalyzeEndpoint_OK(t *testing.T) {
	router := newAnalyzeRouter()

	body := `{"income":3000,"equity":50000,"savings":500,"target":300000,"years":10,"marital":"married","kids":2,"riskProfile":"balanced"}`
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result model.AffordabilityResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 230000.0, result.CurrPower)
	assert.Equal(t, 58, result.Readiness)
}

func TestAnalyzeEndpoint_MalformedJSON(t *testing.T) {
	router := newAnalyzeRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{income:`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeEndpoint_ValidationErrorBody(t *testing.T) {
	router := newAnalyzeRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"income":3000,"target":0}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error  string             `json:"error"`
		Fields []model.FieldError `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "target", resp.Fields[0].Field)
}

func TestAnalyzeEndpoint_MethodNotAllowed(t *testing.T) {
	router := newAnalyzeRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
