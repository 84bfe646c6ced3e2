package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
	"github.com/comitanigiacomo/habit-garden/internal/core/services"
)

type CompletionHandler struct {
	svc *services.CompletionService
}

func NewCompletionHandler(svc *services.CompletionService) *CompletionHandler {
	return &CompletionHandler{svc: svc}
}

type toggleRequest struct {
	HabitKey string `json:"habit_key" binding:"required"`
	Date     string `json:"date"`
}

type noteRequest struct {
	HabitKey string `json:"habit_key" binding:"required"`
	Date     string `json:"date"`
	Note     string `json:"note"`
}

type completionsResponse struct {
	Completions domain.CompletionStore `json:"completions"`
	Notes       domain.NoteStore       `json:"notes"`
}

func (h *CompletionHandler) RegisterRoutes(router *gin.RouterGroup) {
	completions := router.Group("/completions")
	{
		completions.GET("", h.Get)
		completions.POST("/toggle", h.Toggle)
		completions.PUT("/note", h.SetNote)
		completions.DELETE("", h.Reset)
	}
}

// Get godoc
// @Summary   Raw completion store and notes of the profile
// @Tags      completions
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  completionsResponse
// @Router    /completions [get]
func (h *CompletionHandler) Get(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	store, err := h.svc.Get(ctx, userID)
	if err != nil {
		handleError(c, err)
		return
	}
	notes, err := h.svc.Notes(ctx, userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, completionsResponse{Completions: store, Notes: notes})
}

// Toggle godoc
// @Summary   Flip the completion of a habit on a day (today by default)
// @Tags      completions
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      toggleRequest  true  "Toggle"
// @Success   200   {object}  services.ToggleResult
// @Router    /completions/toggle [post]
func (h *CompletionHandler) Toggle(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.Toggle(c.Request.Context(), services.ToggleInput{
		ProfileID: userID,
		HabitKey:  domain.HabitKey(req.HabitKey),
		Date:      domain.DateKey(req.Date),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SetNote godoc
// @Summary   Attach a note to a day, an empty note removes it
// @Tags      completions
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      noteRequest  true  "Note"
// @Success   200   {object}  domain.NoteStore
// @Router    /completions/note [put]
func (h *CompletionHandler) SetNote(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notes, err := h.svc.SetNote(c.Request.Context(), services.SetNoteInput{
		ProfileID: userID,
		HabitKey:  domain.HabitKey(req.HabitKey),
		Date:      domain.DateKey(req.Date),
		Note:      req.Note,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// Reset godoc
// @Summary   Clear every completion, note and reminder of the profile
// @Tags      completions
// @Security  BearerAuth
// @Success   204
// @Router    /completions [delete]
func (h *CompletionHandler) Reset(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Reset(c.Request.Context(), userID); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
