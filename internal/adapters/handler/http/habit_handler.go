package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
	"github.com/comitanigiacomo/habit-garden/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type habitRequest struct {
	Label string `json:"label" binding:"required"`
	Emoji string `json:"emoji"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.GET("", h.List)
		habits.POST("", h.Create)
		habits.PUT("/:key", h.Update)
		habits.DELETE("/:key", h.Delete)
	}
}

// List godoc
// @Summary   List the habits of the profile
// @Tags      habits
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}  domain.HabitDescriptor
// @Router    /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	habits, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, habits)
}

// Create godoc
// @Summary   Add a custom habit
// @Tags      habits
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      habitRequest  true  "Habit"
// @Success   201   {object}  domain.HabitDescriptor
// @Router    /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req habitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		ProfileID: userID,
		Label:     req.Label,
		Emoji:     req.Emoji,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, habit)
}

// Update godoc
// @Summary   Rename a habit or change its emoji
// @Tags      habits
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     key   path      string        true  "Habit key"
// @Param     body  body      habitRequest  true  "Habit"
// @Success   200   {object}  domain.HabitDescriptor
// @Router    /habits/{key} [put]
func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req habitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Update(c.Request.Context(), services.UpdateHabitInput{
		ProfileID: userID,
		Key:       domain.HabitKey(c.Param("key")),
		Label:     req.Label,
		Emoji:     req.Emoji,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

// Delete godoc
// @Summary   Remove a habit with its history
// @Tags      habits
// @Security  BearerAuth
// @Param     key  path  string  true  "Habit key"
// @Success   204
// @Router    /habits/{key} [delete]
func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, domain.HabitKey(c.Param("key"))); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
