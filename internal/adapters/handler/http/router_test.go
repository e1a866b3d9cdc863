package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/mishabitos-api/internal/adapters/handler/http"
	"github.com/comitanigiacomo/mishabitos-api/internal/adapters/repository"
	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
	"github.com/comitanigiacomo/mishabitos-api/internal/core/services"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

type routerFixture struct {
	router *gin.Engine
	tokens *services.TokenService
	users  *repository.InMemoryUserRepository
	mr     *miniredis.Miniredis
}

func newRouterFixture(t *testing.T, db adapterHTTP.Pinger, rateLimit int) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	completions := repository.NewInMemoryCompletionRepository()
	habits := repository.NewInMemoryHabitRepository(completions)
	users := repository.NewInMemoryUserRepository()
	tokens := services.NewTokenService("router-test-secret", "mishabitos-test", time.Hour, users)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:       adapterHTTP.NewAuthHandler(services.NewAuthService(users, tokens)),
		HabitHandler:      adapterHTTP.NewHabitHandler(services.NewHabitService(habits, completions, nil)),
		CompletionHandler: adapterHTTP.NewCompletionHandler(services.NewCompletionService(completions, habits, nil, nil)),
		StatsHandler:      adapterHTTP.NewStatsHandler(services.NewStatsService(habits, completions, nil)),
		RateHandler: adapterHTTP.NewRateHandler(services.NewRateService(
			&fakeRateProvider{rate: &domain.DollarRate{CompraBillete: 1, VentaBillete: 2}}, time.Hour)),
		TokenValidator: tokens,
		DB:             db,
		Redis:          rdb,
		RateLimit:      rateLimit,
		StartTime:      time.Now(),
	})

	return &routerFixture{router: router, tokens: tokens, users: users, mr: mr}
}

func (f *routerFixture) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRouterHealth(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		f := newRouterFixture(t, pingerFunc(func(context.Context) error { return nil }), 0)

		w := f.get("/health", "")

		require.Equal(t, http.StatusOK, w.Code)
		body := decode[map[string]any](t, w)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "connected", body["database"])
		assert.Equal(t, "connected", body["redis"])
	})

	t.Run("Database disabled", func(t *testing.T) {
		f := newRouterFixture(t, nil, 0)

		w := f.get("/health", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "disabled", decode[map[string]any](t, w)["database"])
	})

	t.Run("Degraded when a dependency is down", func(t *testing.T) {
		f := newRouterFixture(t, pingerFunc(func(context.Context) error { return errors.New("down") }), 0)
		f.mr.Close()

		w := f.get("/health", "")

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := decode[map[string]any](t, w)
		assert.Equal(t, "degraded", body["status"])
		assert.Equal(t, "unreachable", body["database"])
		assert.Equal(t, "unreachable", body["redis"])
	})
}

func TestRouterProtectedRoutes(t *testing.T) {
	f := newRouterFixture(t, nil, 0)

	user, err := domain.NewUser("user-1", "ana@example.com")
	require.NoError(t, err)
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, f.users.Create(context.Background(), user))

	token, err := f.tokens.GenerateToken(user.ID)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, f.get("/api/v1/habits", "").Code)
	assert.Equal(t, http.StatusUnauthorized, f.get("/api/v1/habits", "garbage").Code)
	assert.Equal(t, http.StatusOK, f.get("/api/v1/habits", token).Code)
	assert.Equal(t, http.StatusOK, f.get("/api/v1/rates/bna", "").Code, "rates are public")
}

func TestRouterRateLimit(t *testing.T) {
	f := newRouterFixture(t, nil, 2)

	assert.Equal(t, http.StatusOK, f.get("/api/v1/rates/bna", "").Code)
	assert.Equal(t, http.StatusOK, f.get("/api/v1/rates/bna", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, f.get("/api/v1/rates/bna", "").Code)
	assert.Equal(t, http.StatusOK, f.get("/health", "").Code, "health is not limited")
}

func TestRouterMetricsAndCORS(t *testing.T) {
	f := newRouterFixture(t, nil, 0)
	f.get("/api/v1/rates/bna", "")

	w := f.get("/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mishabitos_http_requests_total")

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/habits", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	pre := httptest.NewRecorder()
	f.router.ServeHTTP(pre, req)

	assert.Equal(t, http.StatusNoContent, pre.Code)
	assert.Equal(t, "*", pre.Header().Get("Access-Control-Allow-Origin"))
}
