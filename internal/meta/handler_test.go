package meta_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/fpt-software/website-api/internal/meta"
	"github.com/fpt-software/website-api/internal/shared/cache"
	"github.com/fpt-software/website-api/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type healthBody struct {
	Status string `json:"status"`
	Checks map[string]struct {
		Status string `json:"status"`
		Error  string `json:"error"`
		Driver string `json:"driver"`
	} `json:"checks"`
}

type downCache struct {
	*cache.Memory
}

func (downCache) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealth(t *testing.T) {
	ok := meta.PingFunc(func(context.Context) error { return nil })
	down := meta.PingFunc(func(context.Context) error { return errors.New("dial tcp: refused") })
	memory := cache.NewMemory(time.Minute)

	testCases := []struct {
		name       string
		db         meta.Pinger
		cache      cache.Cache
		wantCode   int
		wantStatus string
	}{
		{name: "all up", db: ok, cache: memory, wantCode: http.StatusOK, wantStatus: "healthy"},
		{name: "database down", db: down, cache: memory, wantCode: http.StatusServiceUnavailable, wantStatus: "unhealthy"},
		{name: "cache down", db: ok, cache: downCache{memory}, wantCode: http.StatusOK, wantStatus: "degraded"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Given
			h := meta.NewHandler(testutil.NewTestConfig(), tc.db, tc.cache)
			router := testutil.SetupTestRouter()
			router.GET("/health", h.Health)

			// When
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/health"})

			// Then
			require.Equal(t, tc.wantCode, recorder.Code)
			var body healthBody
			testutil.ParseResponse(t, recorder, &body)
			assert.Equal(t, tc.wantStatus, body.Status)
			assert.Equal(t, "memory", body.Checks["cache"].Driver)
		})
	}
}

func TestHealth_WithSQLite(t *testing.T) {
	db := testutil.SetupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	h := meta.NewHandler(testutil.NewTestConfig(), meta.PingFunc(sqlDB.PingContext), cache.NewMemory(time.Minute))
	router := testutil.SetupTestRouter()
	router.GET("/health", h.Health)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/health"})

	assert.Equal(t, http.StatusOK, recorder.Code)
}
