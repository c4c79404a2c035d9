package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tesorapp/tesoreria_backend/internal/core/ports/services"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
	"github.com/tesorapp/tesoreria_backend/internal/middleware"
)

// userHandler handles HTTP requests for member administration.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers routes related to users.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("/me", h.getCurrentUser)
		users.GET("", h.listUsers)
		users.PATCH("/:id/role", h.updateUserRole)
		users.PATCH("/:id/active", h.setUserActive)
	}
}

// getCurrentUser godoc
// @Summary Get the authenticated member
// @Description Retrieves the profile of the caller.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getCurrentUser(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List members
// @Description Retrieves every member. Administrator only.
// @Tags users
// @Produce json
// @Success 200 {object} dto.ListUsersResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, dto.ListUsersResponse{Users: dto.ToUserResponses(users)})
}

// updateUserRole godoc
// @Summary Change a member's role
// @Description Assigns a new role to a member. Administrator only.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param role body dto.UpdateUserRoleRequest true "New role"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "Self-demotion"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/role [patch]
func (h *userHandler) updateUserRole(c *gin.Context) {
	var req dto.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.userService.UpdateUserRole(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update role")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// setUserActive godoc
// @Summary Activate or deactivate a member
// @Description Enables or disables a member's access. Administrator only.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param toggle body setActiveRequest true "Desired state"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "Self-deactivation"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/active [patch]
func (h *userHandler) setUserActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.userService.SetUserActive(c.Request.Context(), actorID, c.Param("id"), *req.Active)
	if err != nil {
		respondServiceError(c, err, "Failed to toggle user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
