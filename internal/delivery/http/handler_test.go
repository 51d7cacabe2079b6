package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricescope/backend/config"
	"github.com/pricescope/backend/internal/domain"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubSearchService returns canned offers or an error.
type stubSearchService struct {
	offers    []domain.Offer
	err       error
	countries []string

	gotRequest *domain.SearchRequest
}

func (s *stubSearchService) Search(_ context.Context, request *domain.SearchRequest) ([]domain.Offer, error) {
	s.gotRequest = request
	return s.offers, s.err
}

func (s *stubSearchService) SupportedCountries() []string {
	return s.countries
}

func testRouter(service SearchService) *gin.Engine {
	cfg := &config.Config{}
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	return SetupRouter(cfg, NewHandler(service))
}

func postSearch(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router := testRouter(&stubSearchService{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "pricescope-backend", body["service"])
}

func TestSearchEndpoint(t *testing.T) {
	t.Run("returns ranked offers", func(t *testing.T) {
		rating := 4.4
		service := &stubSearchService{
			offers: []domain.Offer{
				{
					Link:         "https://www.amazon.in/dp/B0XYZ",
					Price:        "1299",
					Currency:     "INR",
					ProductName:  "boAt Airdopes 141 Bluetooth Earbuds",
					Website:      "Amazon",
					Availability: "In Stock",
					Rating:       &rating,
				},
			},
		}
		router := testRouter(service)

		w := postSearch(router, `{"country":"IN","query":"boAt Airdopes 141"}`)
		assert.Equal(t, http.StatusOK, w.Code)

		require.NotNil(t, service.gotRequest)
		assert.Equal(t, "IN", service.gotRequest.Country)
		assert.Equal(t, "boAt Airdopes 141", service.gotRequest.Query)

		var offers []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &offers))
		require.Len(t, offers, 1)
		assert.Equal(t, "boAt Airdopes 141 Bluetooth Earbuds", offers[0]["productName"])
		assert.Equal(t, "1299", offers[0]["price"])
		assert.Equal(t, 4.4, offers[0]["rating"])
		// Internal ranking score never leaks into the response.
		assert.NotContains(t, offers[0], "score")
	})

	t.Run("empty result serializes as an array", func(t *testing.T) {
		router := testRouter(&stubSearchService{})

		w := postSearch(router, `{"country":"US","query":"obscure widget"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("missing fields are a 400", func(t *testing.T) {
		router := testRouter(&stubSearchService{})

		for _, body := range []string{`{}`, `{"country":"US"}`, `{"query":"tv"}`, `not-json`} {
			w := postSearch(router, body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
		}
	})

	t.Run("invalid request from the service is a 400", func(t *testing.T) {
		router := testRouter(&stubSearchService{err: domain.ErrInvalidRequest})

		w := postSearch(router, `{"country":"US","query":"tv"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unexpected service failure is a 500", func(t *testing.T) {
		router := testRouter(&stubSearchService{err: errors.New("boom")})

		w := postSearch(router, `{"country":"US","query":"tv"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "search failed")
	})

	t.Run("nil service is a 501", func(t *testing.T) {
		router := testRouter(nil)

		w := postSearch(router, `{"country":"US","query":"tv"}`)
		assert.Equal(t, http.StatusNotImplemented, w.Code)
	})
}

func TestCountriesEndpoint(t *testing.T) {
	t.Run("lists supported countries", func(t *testing.T) {
		router := testRouter(&stubSearchService{countries: []string{"IN", "US"}})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/countries", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string][]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []string{"IN", "US"}, body["countries"])
	})

	t.Run("nil service is a 501", func(t *testing.T) {
		router := testRouter(nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/countries", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotImplemented, w.Code)
	})
}
