package subscription_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/fpt-software/website-api/internal/config"
	"github.com/fpt-software/website-api/internal/shared/middleware"
	"github.com/fpt-software/website-api/internal/shared/testutil"
	"github.com/fpt-software/website-api/internal/subscription"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(limit config.RateLimitConfig) *gin.Engine {
	h := subscription.NewSubscriptionHandler(subscription.NewSubscriptionService())

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/subscriptions", middleware.RateLimit(middleware.NewIPRateLimiter(limit)), h.Create)
	return router
}

func TestCreate_Success(t *testing.T) {
	// Given
	router := setupRouter(config.RateLimitConfig{RequestsPerSecond: 100, Burst: 100})
	before := time.Now().Add(-time.Second)

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/subscriptions",
		Body:   subscription.CreateSubscriptionRequest{Email: "reader@example.com", FullName: "Avid Reader"},
	})

	// Then
	require.Equal(t, http.StatusCreated, recorder.Code)
	var response subscription.SubscriptionResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, "Subscription received successfully", response.Message)
	assert.True(t, response.Timestamp.After(before))
}

func TestCreate_ValidationError(t *testing.T) {
	router := setupRouter(config.RateLimitConfig{RequestsPerSecond: 100, Burst: 100})

	testCases := []struct {
		name string
		body map[string]string
	}{
		{name: "missing email", body: map[string]string{"fullName": "Avid Reader"}},
		{name: "invalid email", body: map[string]string{"email": "nope", "fullName": "Avid Reader"}},
		{name: "blank name", body: map[string]string{"email": "reader@example.com", "fullName": "   "}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost, URL: "/api/v1/subscriptions", Body: tc.body,
			})
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestCreate_RateLimited(t *testing.T) {
	// Given: a budget of two requests
	router := setupRouter(config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2})
	request := testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/subscriptions",
		Body:   subscription.CreateSubscriptionRequest{Email: "reader@example.com", FullName: "Avid Reader"},
	}

	// When / Then
	assert.Equal(t, http.StatusCreated, testutil.ExecuteRequest(t, router, request).Code)
	assert.Equal(t, http.StatusCreated, testutil.ExecuteRequest(t, router, request).Code)

	recorder := testutil.ExecuteRequest(t, router, request)
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "1", recorder.Header().Get("Retry-After"))
}
