package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/mishabitos-api/internal/adapters/handler/http"
	"github.com/comitanigiacomo/mishabitos-api/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/mishabitos-api/internal/adapters/repository"
	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
	"github.com/comitanigiacomo/mishabitos-api/internal/core/services"
)

const testUserHeader = "X-Test-User"

type testAPI struct {
	router      *gin.Engine
	habits      *repository.InMemoryHabitRepository
	completions *repository.InMemoryCompletionRepository
	users       *repository.InMemoryUserRepository
	rates       *fakeRateProvider
}

type fakeRateProvider struct {
	rate *domain.DollarRate
	err  error
}

func (f *fakeRateProvider) FetchDollar(ctx context.Context) (*domain.DollarRate, error) {
	if f.err != nil {
		return nil, f.err
	}
	r := *f.rate
	return &r, nil
}

type fixedIssuer struct{}

func (fixedIssuer) GenerateToken(userID string) (string, error) {
	return "token-for-" + userID, nil
}

// fakeAuth trusts a test header instead of a bearer token.
func fakeAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader(testUserHeader); id != "" {
			c.Set(middleware.ContextUserIDKey, id)
		}
		c.Next()
	}
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	completions := repository.NewInMemoryCompletionRepository()
	habits := repository.NewInMemoryHabitRepository(completions)
	users := repository.NewInMemoryUserRepository()
	rates := &fakeRateProvider{rate: &domain.DollarRate{CompraBillete: 1415, VentaBillete: 1465}}

	habitSvc := services.NewHabitService(habits, completions, nil)
	completionSvc := services.NewCompletionService(completions, habits, nil, nil)
	statsSvc := services.NewStatsService(habits, completions, nil)
	authSvc := services.NewAuthService(users, fixedIssuer{})
	rateSvc := services.NewRateService(rates, time.Hour)

	r := gin.New()
	api := r.Group("/api/v1")
	adapterHTTP.NewAuthHandler(authSvc).RegisterRoutes(api)
	adapterHTTP.NewRateHandler(rateSvc).RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(fakeAuth())
	adapterHTTP.NewHabitHandler(habitSvc).RegisterRoutes(protected)
	adapterHTTP.NewCompletionHandler(completionSvc).RegisterRoutes(protected)
	adapterHTTP.NewStatsHandler(statsSvc).RegisterRoutes(protected)

	return &testAPI{router: r, habits: habits, completions: completions, users: users, rates: rates}
}

func (a *testAPI) do(t *testing.T, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(testUserHeader, userID)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) seedHabit(t *testing.T, userID, title, hType, unit string, goal float64) *domain.Habit {
	t.Helper()
	h, err := domain.NewHabit(userID, title, "", hType, unit, "", goal)
	require.NoError(t, err)
	require.NoError(t, a.habits.Create(context.Background(), h))
	return h
}

func (a *testAPI) seedCompletion(t *testing.T, h *domain.Habit, date string, value float64) {
	t.Helper()
	d, err := domain.ParseDate(date)
	require.NoError(t, err)
	require.NoError(t, a.completions.Upsert(context.Background(), domain.NewCompletion(h.ID, h.UserID, d, "", value)))
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
