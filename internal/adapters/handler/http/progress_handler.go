package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
	"github.com/comitanigiacomo/habit-garden/internal/core/growth"
	"github.com/comitanigiacomo/habit-garden/internal/core/services"
)

type ProgressHandler struct {
	svc *services.ProgressService
}

func NewProgressHandler(svc *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

type journeyResponse struct {
	Streak  int                  `json:"streak"`
	Current domain.StageInfo     `json:"current"`
	Steps   []domain.JourneyStep `json:"steps"`
}

func (h *ProgressHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/progress", h.Get)
	router.GET("/progress/habits/:key", h.Habit)
	router.GET("/growth/journey", h.Journey)
}

// Get godoc
// @Summary   Garden streak, growth stage, points, level and achievements
// @Tags      progress
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  domain.Progress
// @Router    /progress [get]
func (h *ProgressHandler) Get(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	progress, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// Habit godoc
// @Summary   Streak and success rate of one habit
// @Tags      progress
// @Produce   json
// @Security  BearerAuth
// @Param     key  path      string  true  "Habit key"
// @Success   200  {object}  domain.HabitProgress
// @Router    /progress/habits/{key} [get]
func (h *ProgressHandler) Habit(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	hp, err := h.svc.Habit(c.Request.Context(), userID, domain.HabitKey(c.Param("key")))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, hp)
}

// Journey godoc
// @Summary   Every growth stage with unlocked and current flags for a streak
// @Tags      progress
// @Produce   json
// @Security  BearerAuth
// @Param     streak  query     int  false  "Streak length, defaults to the garden streak"
// @Success   200     {object}  journeyResponse
// @Router    /growth/journey [get]
func (h *ProgressHandler) Journey(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var streakLen int
	if raw := c.Query("streak"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "streak must be a non-negative integer"})
			return
		}
		streakLen = n
	} else {
		progress, err := h.svc.Get(c.Request.Context(), userID)
		if err != nil {
			handleError(c, err)
			return
		}
		streakLen = progress.Garden.CurrentStreak
	}

	c.JSON(http.StatusOK, journeyResponse{
		Streak:  streakLen,
		Current: growth.Describe(growth.Classify(streakLen)),
		Steps:   growth.Journey(streakLen),
	})
}
