package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seantp00/RealGoodEstate/internal/model"
	"github.com/seantp00/RealGoodEstate/internal/service"
)

func newAdviceRouter(geminiURL string, enabled bool) *mux.Router {
	logger := testLogger()
	advisor := service.NewAdvisorService(geminiURL, "test-model", "test-key", enabled, logger)
	h := NewAdviceHandler(advisor, service.NewAffordabilityService(logger), logger)
	router := mux.NewRouter()
	h.RegisterRoutes(router.PathPrefix("/api/advice").Subrouter())
	return router
}

func geminiReplyServer(reply string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": reply}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

const adviceProfileBody = `{"income":3000,"equity":50000,"savings":500,"target":300000,"years":10}`

func TestInitialAdviceEndpoint_OK(t *testing.T) {
	server := geminiReplyServer("1. Cut spending.")
	defer server.Close()
	router := newAdviceRouter(server.URL, true)

	body := `{"profile":` + adviceProfileBody + `}`
	req := httptest.NewRequest(http.MethodPost, "/api/advice/initial", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.AdviceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "1. Cut spending.", resp.Reply)
	assert.False(t, resp.Fallback)
}

func TestInitialAdviceEndpoint_FallbackWhenDisabled(t *testing.T) {
	router := newAdviceRouter("http://unused", false)

	body := `{"profile":` + adviceProfileBody + `}`
	req := httptest.NewRequest(http.MethodPost, "/api/advice/initial", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Отказ советника не роняет эндпоинт, отдается запасной текст
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.AdviceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Fallback)
	assert.Equal(t, "Sorry, connection issue. Please try again later.", resp.Reply)
}

func TestInitialAdviceEndpoint_InvalidProfile(t *testing.T) {
	router := newAdviceRouter("http://unused", false)

	req := httptest.NewRequest(http.MethodPost, "/api/advice/initial", strings.NewReader(`{"profile":{"income":3000}}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatEndpoint_OK(t *testing.T) {
	server := geminiReplyServer("Focus on equity first.")
	defer server.Close()
	router := newAdviceRouter(server.URL, true)

	body := `{"profile":` + adviceProfileBody + `,"message":"What first?"}`
	req := httptest.NewRequest(http.MethodPost, "/api/advice/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.AdviceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Focus on equity first.", resp.Reply)
}

func TestChatEndpoint_EmptyMessage(t *testing.T) {
	router := newAdviceRouter("http://unused", false)

	body := `{"profile":` + adviceProfileBody + `,"message":""}`
	req := httptest.NewRequest(http.MethodPost, "/api/advice/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Fields []model.FieldError `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "message", resp.Fields[0].Field)
}
