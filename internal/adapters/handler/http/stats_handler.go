package http

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
	"github.com/comitanigiacomo/habit-garden/internal/core/report"
	"github.com/comitanigiacomo/habit-garden/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats/weekly", h.GetWeeklyStats)
	r.GET("/stats/monthly", h.GetMonthlySummary)
	r.GET("/stats/export", h.Export)
}

// GetWeeklyStats godoc
// @Summary   Completion report over a date range, the current week by default
// @Tags      stats
// @Produce   json
// @Security  BearerAuth
// @Param     start_date  query     string  false  "YYYY-MM-DD"
// @Param     end_date    query     string  false  "YYYY-MM-DD"
// @Success   200         {object}  domain.RangeStats
// @Router    /stats/weekly [get]
func (h *StatsHandler) GetWeeklyStats(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	input := domain.StatsInput{
		ProfileID: userID,
		StartDate: domain.DateKey(c.Query("start_date")),
		EndDate:   domain.DateKey(c.Query("end_date")),
	}
	for name, d := range map[string]domain.DateKey{"start_date": input.StartDate, "end_date": input.EndDate} {
		if d != "" && !d.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " format, expected YYYY-MM-DD"})
			return
		}
	}

	stats, err := h.svc.GetWeeklyStats(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetMonthlySummary godoc
// @Summary   Calendar month summary, the current month by default
// @Tags      stats
// @Produce   json
// @Security  BearerAuth
// @Param     month  query     string  false  "YYYY-MM"
// @Success   200    {object}  domain.MonthlySummary
// @Router    /stats/monthly [get]
func (h *StatsHandler) GetMonthlySummary(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var (
		year  int
		month time.Month
	)
	if raw := c.Query("month"); raw != "" {
		var err error
		if year, month, err = report.ParseMonth(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month format, expected YYYY-MM"})
			return
		}
	}

	summary, err := h.svc.GetMonthlySummary(c.Request.Context(), userID, year, month)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Export godoc
// @Summary   Per-habit completion history as JSON or CSV
// @Tags      stats
// @Produce   json
// @Produce   text/csv
// @Security  BearerAuth
// @Param     format  query    string  false  "json or csv"
// @Success   200     {array}  domain.ExportRow
// @Router    /stats/export [get]
func (h *StatsHandler) Export(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "csv" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json or csv"})
		return
	}

	rows, err := h.svc.Export(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	if format == "json" {
		c.JSON(http.StatusOK, rows)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, rows); err != nil {
		handleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="habit-garden-export.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
