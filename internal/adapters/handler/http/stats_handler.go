package http

import (
	"net/http"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
	"github.com/comitanigiacomo/mishabitos-api/internal/core/services"
)

const maxHeightCm = 300

type StatsHandler struct {
	svc *services.StatsService
	now func() time.Time
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc, now: time.Now}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/habits/:id/stats", h.GetHabitStats)
}

// GetHabitStats godoc
// @Summary  Statistics of one habit
// @Description "today" is the caller's calendar date. When absent it is derived from "tz" (IANA name, default UTC).
// @Tags     stats
// @Produce  json
// @Param    id        path  string true  "Habit ID"
// @Param    today     query string false "YYYY-MM-DD"
// @Param    tz        query string false "IANA time zone, e.g. America/Argentina/Buenos_Aires"
// @Param    height_cm query number false "Walker height for step habits"
// @Success  200 {object} domain.HabitStats
// @Failure  400 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /habits/{id}/stats [get]
func (h *StatsHandler) GetHabitStats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	today, err := h.resolveToday(c.Query("today"), c.Query("tz"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	var height float64
	if s := c.Query("height_cm"); s != "" {
		height, err = strconv.ParseFloat(s, 64)
		if err != nil || height < 0 || height > maxHeightCm {
			badRequest(c, "invalid height_cm")
			return
		}
	}

	stats, err := h.svc.GetHabitStats(c.Request.Context(), domain.StatsInput{
		UserID:   userID,
		HabitID:  c.Param("id"),
		Today:    today,
		HeightCm: height,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

type queryError string

func (e queryError) Error() string { return string(e) }

func (h *StatsHandler) resolveToday(todayParam, tzParam string) (time.Time, error) {
	if todayParam != "" {
		d, err := domain.ParseDate(todayParam)
		if err != nil {
			return time.Time{}, queryError("invalid today, use YYYY-MM-DD")
		}
		return d, nil
	}

	loc := time.UTC
	if tzParam != "" {
		l, err := time.LoadLocation(tzParam)
		if err != nil {
			return time.Time{}, queryError("unknown time zone")
		}
		loc = l
	}

	return domain.DateOnly(h.now().In(loc)), nil
}
