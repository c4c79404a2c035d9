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

// purchaseHandler handles HTTP requests for the purchase workflow.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

func newPurchaseHandler(ps portssvc.PurchaseSvcFacade) *purchaseHandler {
	return &purchaseHandler{purchaseService: ps}
}

// registerPurchaseRoutes registers routes related to purchases.
func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade) {
	h := newPurchaseHandler(purchaseService)

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.submitPurchase)
		purchases.GET("", h.listPurchases)
		purchases.GET("/:id", h.getPurchase)
		purchases.POST("/:id/approve", h.approvePurchase)
		purchases.POST("/:id/reject", h.rejectPurchase)
		purchases.PUT("/:id", h.editRejectedPurchase)
		purchases.POST("/:id/resubmit", h.resubmitPurchase)
		purchases.DELETE("/:id", h.deletePurchase)
	}
}

// submitPurchase godoc
// @Summary Submit a purchase
// @Description Creates a new purchase in the pending state, optionally with a receipt attachment.
// @Tags purchases
// @Accept json
// @Produce json
// @Param purchase body dto.CreatePurchaseRequest true "Purchase details"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchases [post]
func (h *purchaseHandler) submitPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitPurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	purchase, err := h.purchaseService.SubmitPurchase(c.Request.Context(), actorID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to submit purchase")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPurchaseResponse(purchase))
}

// listPurchases godoc
// @Summary List purchases
// @Description Retrieves purchases newest first with optional filters, plus the pending count, approved total and the caller's rejected count over the returned set.
// @Tags purchases
// @Produce json
// @Param status query string false "Filter by workflow state" Enums(pending, approved, rejected)
// @Param categoryID query string false "Filter by category"
// @Param accountID query string false "Filter by account"
// @Param from query string false "Purchase date lower bound (YYYY-MM-DD, inclusive)"
// @Param to query string false "Purchase date upper bound (YYYY-MM-DD, inclusive)"
// @Param onlyMine query bool false "Only the caller's own purchases"
// @Success 200 {object} dto.ListPurchasesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchases [get]
func (h *purchaseHandler) listPurchases(c *gin.Context) {
	var params dto.ListPurchasesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	purchases, err := h.purchaseService.ListPurchases(c.Request.Context(), actorID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list purchases")
		return
	}

	c.JSON(http.StatusOK, dto.ListPurchasesResponse{
		Purchases:       dto.ToPurchaseResponses(purchases),
		PendingCount:    len(domain.PurchasesByStatus(purchases, domain.PurchasePending)),
		ApprovedTotal:   domain.ApprovedPurchaseTotal(purchases),
		MyRejectedCount: len(domain.RejectedPurchasesFor(purchases, actorID)),
	})
}

// getPurchase godoc
// @Summary Get a purchase
// @Description Retrieves one purchase by ID.
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchases/{id} [get]
func (h *purchaseHandler) getPurchase(c *gin.Context) {
	purchase, err := h.purchaseService.GetPurchaseByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve purchase")
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// approvePurchase godoc
// @Summary Approve a purchase
// @Description Moves a pending purchase to approved. The reviewer must assign the paying account.
// @Tags purchases
// @Accept json
// @Produce json
// @Param id path string true "Purchase ID"
// @Param approval body dto.ApprovePurchaseRequest true "Approval details"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 400 {object} ErrorResponse "Missing account"
// @Failure 403 {object} ErrorResponse "Role cannot review"
// @Failure 409 {object} ErrorResponse "Not pending"
// @Security BearerAuth
// @Router /purchases/{id}/approve [post]
func (h *purchaseHandler) approvePurchase(c *gin.Context) {
	var req dto.ApprovePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	purchase, err := h.purchaseService.ApprovePurchase(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to approve purchase")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// rejectPurchase godoc
// @Summary Reject a purchase
// @Description Moves a pending purchase to rejected. A reason is mandatory.
// @Tags purchases
// @Accept json
// @Produce json
// @Param id path string true "Purchase ID"
// @Param rejection body dto.RejectPurchaseRequest true "Rejection details"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 400 {object} ErrorResponse "Missing reason"
// @Failure 403 {object} ErrorResponse "Role cannot review"
// @Failure 409 {object} ErrorResponse "Not pending"
// @Security BearerAuth
// @Router /purchases/{id}/reject [post]
func (h *purchaseHandler) rejectPurchase(c *gin.Context) {
	var req dto.RejectPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	purchase, err := h.purchaseService.RejectPurchase(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to reject purchase")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// editRejectedPurchase godoc
// @Summary Edit a rejected purchase
// @Description Lets the submitter correct fields on their rejected purchase. The purchase stays rejected until it is resubmitted.
// @Tags purchases
// @Accept json
// @Produce json
// @Param id path string true "Purchase ID"
// @Param changes body dto.UpdateRejectedPurchaseRequest true "Fields to change"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 403 {object} ErrorResponse "Not the submitter"
// @Failure 409 {object} ErrorResponse "Not rejected"
// @Security BearerAuth
// @Router /purchases/{id} [put]
func (h *purchaseHandler) editRejectedPurchase(c *gin.Context) {
	var req dto.UpdateRejectedPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	purchase, err := h.purchaseService.EditRejectedPurchase(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to edit purchase")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// resubmitPurchase godoc
// @Summary Resubmit a rejected purchase
// @Description Lets the submitter fix and resend their rejected purchase. Omitted fields keep their previous values.
// @Tags purchases
// @Accept json
// @Produce json
// @Param id path string true "Purchase ID"
// @Param changes body dto.UpdateRejectedPurchaseRequest true "Fields to change"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 403 {object} ErrorResponse "Not the submitter"
// @Failure 409 {object} ErrorResponse "Not rejected"
// @Security BearerAuth
// @Router /purchases/{id}/resubmit [post]
func (h *purchaseHandler) resubmitPurchase(c *gin.Context) {
	var req dto.UpdateRejectedPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	purchase, err := h.purchaseService.ResubmitPurchase(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to resubmit purchase")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// deletePurchase godoc
// @Summary Delete a purchase
// @Description Removes a pending or rejected purchase. Approved purchases are immutable.
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already approved"
// @Security BearerAuth
// @Router /purchases/{id} [delete]
func (h *purchaseHandler) deletePurchase(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.purchaseService.DeletePurchase(c.Request.Context(), actorID, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete purchase")
		return
	}

	c.Status(http.StatusNoContent)
}
