package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type createHabitRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Goal        float64 `json:"goal"`
	Unit        string  `json:"unit"`
	Category    string  `json:"category"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/:id", h.Get)
		habits.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @Summary  Create a habit
// @Tags     habits
// @Accept   json
// @Produce  json
// @Param    habit body createHabitRequest true "Habit definition"
// @Success  201 {object} domain.Habit
// @Failure  400 {object} map[string]string
// @Security BearerAuth
// @Router   /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Goal:        req.Goal,
		Unit:        req.Unit,
		Category:    req.Category,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// List godoc
// @Summary  List the caller's habits, newest first
// @Tags     habits
// @Produce  json
// @Success  200 {array} domain.Habit
// @Security BearerAuth
// @Router   /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary  Habit detail with its completion history
// @Tags     habits
// @Produce  json
// @Param    id path string true "Habit ID"
// @Success  200 {object} domain.HabitWithCompletions
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /habits/{id} [get]
func (h *HabitHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	detail, err := h.svc.GetWithCompletions(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Delete godoc
// @Summary  Delete a habit and its history
// @Tags     habits
// @Param    id path string true "Habit ID"
// @Success  204
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /habits/{id} [delete]
func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
