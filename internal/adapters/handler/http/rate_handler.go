package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/services"
)

type RateHandler struct {
	svc *services.RateService
}

func NewRateHandler(svc *services.RateService) *RateHandler {
	return &RateHandler{svc: svc}
}

func (h *RateHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/rates/bna", h.GetBNA)
}

// GetBNA godoc
// @Summary  BNA banknote dollar quote
// @Description Served from a short-lived cache. "stale" is set when the bank could not be reached and the last known quote is returned.
// @Tags     rates
// @Produce  json
// @Success  200 {object} domain.DollarRate
// @Failure  503 {object} map[string]string
// @Router   /rates/bna [get]
func (h *RateHandler) GetBNA(c *gin.Context) {
	rate, err := h.svc.GetDollarRate(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, rate)
}
