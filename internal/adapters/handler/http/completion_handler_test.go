package http_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
	"github.com/comitanigiacomo/mishabitos-api/internal/core/services"
)

func TestToggleCompletion(t *testing.T) {
	t.Run("Toggle twice creates then removes the day", func(t *testing.T) {
		api := newTestAPI(t)
		h := api.seedHabit(t, "user-1", "Read", domain.HabitTypeBoolean, "", 0)
		path := "/api/v1/habits/" + h.ID + "/toggle"

		w := api.do(t, http.MethodPost, path, "user-1", `{"date": "2026-10-16"}`)
		require.Equal(t, http.StatusOK, w.Code)
		first := decode[services.ToggleResult](t, w)
		assert.Equal(t, domain.CompletionStateCompleted, first.Status)

		w = api.do(t, http.MethodPost, path, "user-1", `{"date": "2026-10-16"}`)
		require.Equal(t, http.StatusOK, w.Code)
		second := decode[services.ToggleResult](t, w)
		assert.Equal(t, domain.CompletionStateNone, second.Status)

		list, err := api.completions.ListByHabitID(context.Background(), h.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Value updates keep one row per day", func(t *testing.T) {
		api := newTestAPI(t)
		h := api.seedHabit(t, "user-1", "Walk", domain.HabitTypeCounter, "steps", 8000)
		path := "/api/v1/habits/" + h.ID + "/toggle"

		require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, path, "user-1", `{"date": "2026-10-16", "value": 4000}`).Code)
		w := api.do(t, http.MethodPost, path, "user-1", `{"date": "2026-10-16", "value": 9000}`)
		require.Equal(t, http.StatusOK, w.Code)

		res := decode[services.ToggleResult](t, w)
		require.NotNil(t, res.Value)
		assert.Equal(t, 9000.0, *res.Value)

		list, err := api.completions.ListByHabitID(context.Background(), h.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, 9000.0, list[0].Value)
	})

	t.Run("Explicit missed state is stored", func(t *testing.T) {
		api := newTestAPI(t)
		h := api.seedHabit(t, "user-1", "Read", domain.HabitTypeBoolean, "", 0)

		w := api.do(t, http.MethodPost, "/api/v1/habits/"+h.ID+"/toggle", "user-1", `{"date": "2026-10-16", "state": "missed"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.CompletionStateMissed, decode[services.ToggleResult](t, w).Status)
	})

	tests := []struct {
		name string
		body string
		user string
		code int
	}{
		{"Missing date", `{}`, "user-1", http.StatusBadRequest},
		{"Malformed date", `{"date": "16/10/2026"}`, "user-1", http.StatusBadRequest},
		{"Unknown state", `{"date": "2026-10-16", "state": "skipped"}`, "user-1", http.StatusBadRequest},
		{"Negative value", `{"date": "2026-10-16", "value": -1}`, "user-1", http.StatusBadRequest},
		{"Not the owner", `{"date": "2026-10-16"}`, "user-2", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run("Fail: "+tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			h := api.seedHabit(t, "user-1", "Read", domain.HabitTypeBoolean, "", 0)

			w := api.do(t, http.MethodPost, "/api/v1/habits/"+h.ID+"/toggle", tt.user, tt.body)

			assert.Equal(t, tt.code, w.Code)
		})
	}

	t.Run("Fail: 404 for unknown habit", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do(t, http.MethodPost, "/api/v1/habits/nope/toggle", "user-1", `{"date": "2026-10-16"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListCompletions(t *testing.T) {
	api := newTestAPI(t)
	h := api.seedHabit(t, "user-1", "Read", domain.HabitTypeBoolean, "", 0)
	api.seedCompletion(t, h, "2026-10-01", 0)
	api.seedCompletion(t, h, "2026-10-10", 0)
	api.seedCompletion(t, h, "2026-10-16", 0)
	base := "/api/v1/habits/" + h.ID + "/completions"

	t.Run("Range is inclusive", func(t *testing.T) {
		w := api.do(t, http.MethodGet, base+"?from=2026-10-10&to=2026-10-16", "user-1", "")

		require.Equal(t, http.StatusOK, w.Code)
		list := decode[[]domain.Completion](t, w)
		require.Len(t, list, 2)
	})

	t.Run("Fail: from after to", func(t *testing.T) {
		w := api.do(t, http.MethodGet, base+"?from=2026-10-16&to=2026-10-01", "user-1", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: bad date", func(t *testing.T) {
		w := api.do(t, http.MethodGet, base+"?from=yesterday", "user-1", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: other users are forbidden", func(t *testing.T) {
		w := api.do(t, http.MethodGet, base+"?from=2026-10-01&to=2026-10-16", "user-2", "")

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
