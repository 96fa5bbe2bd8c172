package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/serviceconnect/api/pkg/util"
)

func TestLocalLimiterPerKey(t *testing.T) {
	l := NewLocalLimiter(2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "a")
	assert.False(t, ok, "third call inside the window is rejected")

	ok, _ = l.Allow(ctx, "b")
	assert.True(t, ok, "keys are independent")
}

func TestLocalLimiterEvictsLeastRecentKey(t *testing.T) {
	l := NewLocalLimiter(1, time.Minute)
	l.maxKeys = 2
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := t0
	l.now = func() time.Time { return now }
	ctx := context.Background()

	ok, _ := l.Allow(ctx, "b")
	assert.True(t, ok)

	now = t0.Add(10 * time.Second)
	ok, _ = l.Allow(ctx, "a")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "a")
	assert.False(t, ok)

	now = t0.Add(20 * time.Second)
	ok, _ = l.Allow(ctx, "c")
	assert.True(t, ok)

	assert.Len(t, l.entries, 2)
	assert.NotContains(t, l.entries, "b")
	ok, _ = l.Allow(ctx, "a")
	assert.False(t, ok, "an active key keeps its bucket when another key is evicted")
}

func TestLocalLimiterDropsIdleKeys(t *testing.T) {
	l := NewLocalLimiter(1, time.Minute)
	l.maxKeys = 2
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := t0
	l.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = l.Allow(ctx, "a")
	_, _ = l.Allow(ctx, "b")

	now = t0.Add(2 * time.Minute)
	ok, _ := l.Allow(ctx, "c")
	assert.True(t, ok)
	assert.Len(t, l.entries, 1)
	assert.Contains(t, l.entries, "c")
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func newApp(l Limiter) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		de := apperrors.ToDomainError(err)
		return c.Status(de.HTTPStatus).SendString(de.Message)
	}})
	app.Post("/api/auth/login", Middleware(l, nil, nil), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func TestMiddlewareReturns429(t *testing.T) {
	app := newApp(NewLocalLimiter(1, time.Minute))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestMiddlewareSharesBucketAcrossPathVariants(t *testing.T) {
	app := newApp(NewLocalLimiter(1, time.Minute))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, path := range []string{"/api/auth/login/", "/api/auth/LOGIN", "/Api/Auth/Login/"} {
		resp, err = app.Test(httptest.NewRequest(http.MethodPost, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode, path)
	}
}

func TestMiddlewareFailsOpen(t *testing.T) {
	app := newApp(failingLimiter{})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
