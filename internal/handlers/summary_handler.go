package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/services"
)

// SummaryHandler serves monthly budget-vs-actual reports.
type SummaryHandler struct {
	summaryService services.SummaryServicer
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService services.SummaryServicer) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// MonthSummaryQuery identifies the month to summarize.
type MonthSummaryQuery struct {
	Year  *int `form:"year" binding:"required"`
	Month *int `form:"month" binding:"required"`
}

// GetMonthSummary handles the monthly summary
// @Summary     Monthly summary
// @Description Income, expenses, net and per-category spent vs budget for one month. Amounts are decimal strings.
// @Tags        summaries
// @Produce     json
// @Param       year  query int true "Year"
// @Param       month query int true "Month (1-12)"
// @Success     200 {object} services.MonthSummary "Monthly summary"
// @Failure     400 {object} ErrorResponse "Missing or invalid year/month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summaries/month [get]
func (h *SummaryHandler) GetMonthSummary(c *gin.Context) {
	var query MonthSummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	summary, err := h.summaryService.GetMonthSummary(*query.Year, *query.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
