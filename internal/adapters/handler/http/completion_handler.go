package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
	"github.com/comitanigiacomo/mishabitos-api/internal/core/services"
)

const defaultHistoryDays = 365

type CompletionHandler struct {
	svc *services.CompletionService
}

func NewCompletionHandler(svc *services.CompletionService) *CompletionHandler {
	return &CompletionHandler{
		svc: svc,
	}
}

type toggleRequest struct {
	Date  string   `json:"date" binding:"required"`
	State string   `json:"state"`
	Value *float64 `json:"value"`
}

func (h *CompletionHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("/:id/toggle", h.Toggle)
		habits.GET("/:id/completions", h.List)
	}
}

// Toggle godoc
// @Summary  Toggle or set a habit's completion for one day
// @Description Without "value" the day flips between done and not done. With "value" the day is set to that value.
// @Tags     completions
// @Accept   json
// @Produce  json
// @Param    id   path string        true "Habit ID"
// @Param    body body toggleRequest true "Day and optional state/value"
// @Success  200 {object} services.ToggleResult
// @Failure  400 {object} map[string]string
// @Failure  403 {object} map[string]string
// @Security BearerAuth
// @Router   /habits/{id}/toggle [post]
func (h *CompletionHandler) Toggle(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		badRequest(c, "invalid date, use YYYY-MM-DD")
		return
	}

	res, err := h.svc.Toggle(c.Request.Context(), services.ToggleInput{
		HabitID: c.Param("id"),
		UserID:  userID,
		Date:    date,
		State:   req.State,
		Value:   req.Value,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// List godoc
// @Summary  Completions of a habit in a date range, newest first
// @Tags     completions
// @Produce  json
// @Param    id   path  string true  "Habit ID"
// @Param    from query string false "YYYY-MM-DD, defaults to a year before to"
// @Param    to   query string false "YYYY-MM-DD, defaults to today (UTC)"
// @Success  200 {array} domain.Completion
// @Security BearerAuth
// @Router   /habits/{id}/completions [get]
func (h *CompletionHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	to := domain.DateOnly(time.Now().UTC())
	if s := c.Query("to"); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			badRequest(c, "invalid 'to' date, use YYYY-MM-DD")
			return
		}
		to = d
	}

	from := to.AddDate(0, 0, -(defaultHistoryDays - 1))
	if s := c.Query("from"); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			badRequest(c, "invalid 'from' date, use YYYY-MM-DD")
			return
		}
		from = d
	}

	if from.After(to) {
		badRequest(c, "'from' must not be after 'to'")
		return
	}

	list, err := h.svc.ListByHabitID(c.Request.Context(), c.Param("id"), userID, from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}
