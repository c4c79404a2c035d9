package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	portssvc "github.com/tesorapp/tesoreria_backend/internal/core/ports/services"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
	"github.com/tesorapp/tesoreria_backend/internal/middleware"
)

// incomeHandler handles HTTP requests for the deposit ledger.
type incomeHandler struct {
	incomeService portssvc.IncomeSvcFacade
}

func newIncomeHandler(is portssvc.IncomeSvcFacade) *incomeHandler {
	return &incomeHandler{incomeService: is}
}

// registerIncomeRoutes registers routes related to income records.
func registerIncomeRoutes(rg *gin.RouterGroup, incomeService portssvc.IncomeSvcFacade) {
	h := newIncomeHandler(incomeService)

	incomes := rg.Group("/incomes")
	{
		incomes.POST("", h.recordIncome)
		incomes.GET("", h.listIncomes)
		incomes.GET("/:id", h.getIncome)
		incomes.PUT("/:id", h.updateIncome)
		incomes.DELETE("/:id", h.deleteIncome)
	}
}

// recordIncome godoc
// @Summary Record a deposit
// @Description Creates a new income record, optionally with a receipt attachment.
// @Tags incomes
// @Accept json
// @Produce json
// @Param income body dto.CreateIncomeRequest true "Income details"
// @Success 201 {object} dto.IncomeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Role cannot record income"
// @Security BearerAuth
// @Router /incomes [post]
func (h *incomeHandler) recordIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordIncome", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	income, err := h.incomeService.RecordIncome(c.Request.Context(), actorID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to record income")
		return
	}

	c.JSON(http.StatusCreated, dto.ToIncomeResponse(income))
}

// listIncomes godoc
// @Summary List deposits
// @Description Retrieves income records ordered by deposit date, newest first, plus their total.
// @Tags incomes
// @Produce json
// @Param categoryID query string false "Filter by category"
// @Param accountID query string false "Filter by account"
// @Param from query string false "Deposit date lower bound (YYYY-MM-DD, inclusive)"
// @Param to query string false "Deposit date upper bound (YYYY-MM-DD, inclusive)"
// @Success 200 {object} dto.ListIncomesResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes [get]
func (h *incomeHandler) listIncomes(c *gin.Context) {
	var params dto.ListIncomesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	incomes, err := h.incomeService.ListIncomes(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list incomes")
		return
	}

	c.JSON(http.StatusOK, dto.ListIncomesResponse{
		Incomes: dto.ToIncomeResponses(incomes),
		Total:   domain.IncomeTotal(incomes),
	})
}

// getIncome godoc
// @Summary Get a deposit
// @Description Retrieves one income record by ID.
// @Tags incomes
// @Produce json
// @Param id path string true "Income ID"
// @Success 200 {object} dto.IncomeResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes/{id} [get]
func (h *incomeHandler) getIncome(c *gin.Context) {
	income, err := h.incomeService.GetIncomeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve income")
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeResponse(income))
}

// updateIncome godoc
// @Summary Update a deposit
// @Description Patches an income record. Omitted fields keep their previous values.
// @Tags incomes
// @Accept json
// @Produce json
// @Param id path string true "Income ID"
// @Param changes body dto.UpdateIncomeRequest true "Fields to change"
// @Success 200 {object} dto.IncomeResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes/{id} [put]
func (h *incomeHandler) updateIncome(c *gin.Context) {
	var req dto.UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	income, err := h.incomeService.UpdateIncome(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update income")
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeResponse(income))
}

// deleteIncome godoc
// @Summary Delete a deposit
// @Description Removes an income record.
// @Tags incomes
// @Produce json
// @Param id path string true "Income ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes/{id} [delete]
func (h *incomeHandler) deleteIncome(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.incomeService.DeleteIncome(c.Request.Context(), actorID, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete income")
		return
	}

	c.Status(http.StatusNoContent)
}
