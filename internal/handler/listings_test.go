package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seantp00/RealGoodEstate/internal/model"
	"github.com/seantp00/RealGoodEstate/internal/repository"
	"github.com/seantp00/RealGoodEstate/internal/service"
)

type fakeFetcher struct {
	listings []model.Listing
	err      error
}

func (f *fakeFetcher) FetchListings(ctx context.Context, location string, propertyType model.PropertyType) ([]model.Listing, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.listings, nil
}

func newListingsRouter(fetcher *fakeFetcher) *mux.Router {
	logger := testLogger()
	repo := repository.NewSnapshotRepository(nil, time.Minute, logger)
	h := NewListingsHandler(service.NewListingService(fetcher, repo, logger), logger)
	router := mux.NewRouter()
	h.RegisterRoutes(router.PathPrefix("/api/listings").Subrouter())
	return router
}

func TestSearchEndpoint_OK(t *testing.T) {
	router := newListingsRouter(&fakeFetcher{listings: []model.Listing{
		{"id": "fit", "buyingPrice": 190000.0, "squareMeter": 100.0},
		{"id": "beyond", "buyingPrice": 500000.0},
	}})

	body := `{"location":"Berlin","currPower":230000,"desired":{"sqm":100},"filters":{"sortKey":"recommendation","sortOrder":"desc"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/listings/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.SearchListingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalFetched)
	assert.Equal(t, 1, resp.TotalFiltered)
	require.Len(t, resp.Listings, 1)
	assert.Equal(t, 50, resp.Listings[0].Recommendation)
}

func TestSearchEndpoint_ValidationError(t *testing.T) {
	router := newListingsRouter(&fakeFetcher{})

	req := httptest.NewRequest(http.MethodPost, "/api/listings/search", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Fields []model.FieldError `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "location", resp.Fields[0].Field)
}

func TestSearchEndpoint_UpstreamFailureIsBadGateway(t *testing.T) {
	router := newListingsRouter(&fakeFetcher{err: errors.New("connection refused")})

	body := `{"location":"Berlin"}`
	req := httptest.NewRequest(http.MethodPost, "/api/listings/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
