package http_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
)

func TestGetBNARate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do(t, http.MethodGet, "/api/v1/rates/bna", "", "")

		require.Equal(t, http.StatusOK, w.Code)
		rate := decode[domain.DollarRate](t, w)
		assert.Equal(t, 1415.0, rate.CompraBillete)
		assert.Equal(t, 1465.0, rate.VentaBillete)
		assert.False(t, rate.Stale)
	})

	t.Run("Fail: 503 when the source is down and nothing is cached", func(t *testing.T) {
		api := newTestAPI(t)
		api.rates.err = errors.New("connection refused")

		w := api.do(t, http.MethodGet, "/api/v1/rates/bna", "", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
