package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tesorapp/tesoreria_backend/internal/core/ports/services"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
)

// reportingHandler handles HTTP requests for the dashboard aggregates.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getFinancialSummary)
	}
}

// getFinancialSummary godoc
// @Summary Get the dashboard summary
// @Description Computes the financial summary for a calendar month. Defaults to the current month.
// @Tags reports
// @Produce json
// @Param month query string false "Month to summarize (YYYY-MM)"
// @Success 200 {object} dto.FinancialSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getFinancialSummary(c *gin.Context) {
	month := time.Now()
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid month, expected YYYY-MM"})
			return
		}
		month = parsed
	}

	summary, err := h.reportingService.GetFinancialSummary(c.Request.Context(), month)
	if err != nil {
		respondServiceError(c, err, "Failed to compute summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialSummaryResponse(summary))
}
