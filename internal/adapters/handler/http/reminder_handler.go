package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
	"github.com/comitanigiacomo/habit-garden/internal/core/services"
)

type ReminderHandler struct {
	svc *services.ReminderService
}

func NewReminderHandler(svc *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{svc: svc}
}

type reminderRequest struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time"`
}

func (h *ReminderHandler) RegisterRoutes(router *gin.RouterGroup) {
	reminders := router.Group("/reminders")
	{
		reminders.GET("", h.List)
		reminders.PUT("/:key", h.Set)
		reminders.DELETE("/:key", h.Delete)
	}
}

// List godoc
// @Summary   Stored reminder settings and pending reminders
// @Tags      reminders
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  services.ReminderView
// @Router    /reminders [get]
func (h *ReminderHandler) List(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	view, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Set godoc
// @Summary   Enable, disable or move the daily reminder of a habit
// @Tags      reminders
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     key   path      string           true  "Habit key"
// @Param     body  body      reminderRequest  true  "Reminder"
// @Success   200   {object}  domain.ReminderSetting
// @Router    /reminders/{key} [put]
func (h *ReminderHandler) Set(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setting, err := h.svc.Set(c.Request.Context(), services.SetReminderInput{
		ProfileID: userID,
		HabitKey:  domain.HabitKey(c.Param("key")),
		Enabled:   req.Enabled,
		Time:      req.Time,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}

// Delete godoc
// @Summary   Remove the reminder of a habit
// @Tags      reminders
// @Security  BearerAuth
// @Param     key  path  string  true  "Habit key"
// @Success   204
// @Router    /reminders/{key} [delete]
func (h *ReminderHandler) Delete(c *gin.Context) {
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
