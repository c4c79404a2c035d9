package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tesorapp/tesoreria_backend/internal/core/ports/services"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
	"github.com/tesorapp/tesoreria_backend/internal/middleware"
)

// invitationHandler handles HTTP requests for the invite-only onboarding.
type invitationHandler struct {
	invitationService portssvc.InvitationSvcFacade
}

func newInvitationHandler(is portssvc.InvitationSvcFacade) *invitationHandler {
	return &invitationHandler{invitationService: is}
}

// registerInvitationRoutes registers routes related to invitations.
func registerInvitationRoutes(rg *gin.RouterGroup, invitationService portssvc.InvitationSvcFacade) {
	h := newInvitationHandler(invitationService)

	invitations := rg.Group("/invitations")
	{
		invitations.POST("", h.createInvitation)
		invitations.GET("", h.listInvitations)
		invitations.DELETE("/:id", h.revokeInvitation)
	}
}

// createInvitation godoc
// @Summary Invite a new member
// @Description Mints a single-use invitation token for an email and role. Administrator only.
// @Tags invitations
// @Accept json
// @Produce json
// @Param invitation body dto.CreateInvitationRequest true "Invitation details"
// @Success 201 {object} dto.InvitationResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Security BearerAuth
// @Router /invitations [post]
func (h *invitationHandler) createInvitation(c *gin.Context) {
	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	invitation, err := h.invitationService.CreateInvitation(c.Request.Context(), actorID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create invitation")
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvitationResponse(invitation))
}

// listInvitations godoc
// @Summary List invitations
// @Description Retrieves every invitation, newest first. Administrator only.
// @Tags invitations
// @Produce json
// @Success 200 {object} dto.ListInvitationsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /invitations [get]
func (h *invitationHandler) listInvitations(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	invitations, err := h.invitationService.ListInvitations(c.Request.Context(), actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to list invitations")
		return
	}

	c.JSON(http.StatusOK, dto.ListInvitationsResponse{Invitations: dto.ToInvitationResponses(invitations)})
}

// revokeInvitation godoc
// @Summary Revoke an invitation
// @Description Deletes an unredeemed invitation so its token stops working. Administrator only.
// @Tags invitations
// @Produce json
// @Param id path string true "Invitation ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invitations/{id} [delete]
func (h *invitationHandler) revokeInvitation(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.invitationService.RevokeInvitation(c.Request.Context(), actorID, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to revoke invitation")
		return
	}

	c.Status(http.StatusNoContent)
}
