package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/reciters/internal/cache"
	"github.com/deppfellow/reciters/internal/config"
	"github.com/deppfellow/reciters/internal/model"
	"github.com/deppfellow/reciters/internal/server"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
		Cache:  cache.New(),
	}
}

func checkHealth(t *testing.T, h *HealthHandler) (int, HealthResponse) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)

	require.NoError(t, h.CheckHealth(c))

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestCheckHealth(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		database   Pinger
		redis      Pinger
		wantStatus int
		wantChecks []string
	}{
		{
			name:       "database up",
			database:   ok,
			wantStatus: http.StatusOK,
			wantChecks: []string{"database", "cache"},
		},
		{
			name:       "database down",
			database:   down,
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: []string{"database", "cache"},
		},
		{
			name:       "database missing",
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: []string{"database", "cache"},
		},
		{
			name:       "redis down is reported only",
			database:   ok,
			redis:      down,
			wantStatus: http.StatusOK,
			wantChecks: []string{"database", "redis", "cache"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(newTestServer())
			h.database = tt.database
			h.redis = tt.redis

			status, body := checkHealth(t, h)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, "test", body.Environment)

			var names []string
			for name := range body.Checks {
				names = append(names, name)
			}
			assert.ElementsMatch(t, tt.wantChecks, names)
		})
	}
}

func TestCheckHealth_ReportsCacheEntries(t *testing.T) {
	s := newTestServer()
	s.Cache.Set("search_a", []model.Reciter{})
	s.Cache.Set("registration_stats", model.EmptyRegistrationStats())

	h := NewHealthHandler(s)
	h.database = pingFunc(func(context.Context) error { return nil })

	_, body := checkHealth(t, h)
	require.NotNil(t, body.Checks["cache"].Entries)
	assert.Equal(t, 2, *body.Checks["cache"].Entries)
}

func TestCheckHealth_DisabledChecks(t *testing.T) {
	s := newTestServer()
	s.Config.Observability.HealthChecks.Checks = []string{"cache"}

	_, body := checkHealth(t, NewHealthHandler(s))
	assert.Equal(t, statusHealthy, body.Status)
	assert.NotContains(t, body.Checks, "database")
}

func TestNewRequestIsFresh(t *testing.T) {
	template := &ListRecitersRequest{Page: 4, Limit: 50}

	got := newRequest(template)
	require.NotSame(t, template, got)
	assert.Zero(t, got.Page)
	assert.Zero(t, got.Limit)
}

func TestListRecitersRequest_Validate(t *testing.T) {
	req := &ListRecitersRequest{}
	require.NoError(t, req.Validate())
	assert.Equal(t, DefaultPage, req.Page)
	assert.Equal(t, DefaultLimit, req.Limit)

	req = &ListRecitersRequest{Page: 2, Limit: MaxLimit}
	require.NoError(t, req.Validate())
	assert.Equal(t, 2, req.Page)

	assert.Error(t, (&ListRecitersRequest{Limit: MaxLimit + 1}).Validate())
	assert.Error(t, (&ListRecitersRequest{Page: -1}).Validate())
	assert.Error(t, (&ListRecitersRequest{Page: MaxPage + 1}).Validate())
	assert.NoError(t, (&ListRecitersRequest{Page: MaxPage}).Validate())
}

func TestResultSize(t *testing.T) {
	n, ok := resultSize([]model.Reciter{{}, {}})
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = resultSize(model.EmptyResultsStats())
	assert.False(t, ok)

	_, ok = resultSize(nil)
	assert.False(t, ok)
}
