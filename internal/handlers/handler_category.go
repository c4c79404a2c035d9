package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tesorapp/tesoreria_backend/internal/apperrors"
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	portssvc "github.com/tesorapp/tesoreria_backend/internal/core/ports/services"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
	"github.com/tesorapp/tesoreria_backend/internal/middleware"
)

// categoryHandler handles HTTP requests for purchase and income categories.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

func newCategoryHandler(cs portssvc.CategorySvcFacade) *categoryHandler {
	return &categoryHandler{categoryService: cs}
}

// registerCategoryRoutes registers routes related to categories. The kind is
// part of the path so purchase and income category sets stay separate.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := newCategoryHandler(categoryService)

	categories := rg.Group("/categories/:kind")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
		categories.PUT("/:id", h.updateCategory)
		categories.PATCH("/:id/active", h.setCategoryActive)
	}
}

func categoryKind(c *gin.Context) (domain.CategoryKind, error) {
	kind := domain.CategoryKind(c.Param("kind"))
	switch kind {
	case domain.CategoryPurchase, domain.CategoryIncome:
		return kind, nil
	}
	return "", fmt.Errorf("%w: unknown category kind %q", apperrors.ErrValidation, c.Param("kind"))
}

// createCategory godoc
// @Summary Create a category
// @Description Creates a new active category of the given kind.
// @Tags categories
// @Accept json
// @Produce json
// @Param kind path string true "Category kind" Enums(purchase, income)
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{kind} [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	kind, err := categoryKind(c)
	if err != nil {
		respondServiceError(c, err, "Invalid category kind")
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), actorID, kind, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// listCategories godoc
// @Summary List categories
// @Description Retrieves categories of one kind, active only by default.
// @Tags categories
// @Produce json
// @Param kind path string true "Category kind" Enums(purchase, income)
// @Param includeInactive query bool false "Include deactivated categories"
// @Success 200 {object} dto.ListCategoriesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{kind} [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	kind, err := categoryKind(c)
	if err != nil {
		respondServiceError(c, err, "Invalid category kind")
		return
	}
	includeInactive, _ := strconv.ParseBool(c.DefaultQuery("includeInactive", "false"))

	categories, err := h.categoryService.ListCategories(c.Request.Context(), kind, includeInactive)
	if err != nil {
		respondServiceError(c, err, "Failed to list categories")
		return
	}

	c.JSON(http.StatusOK, dto.ListCategoriesResponse{Categories: dto.ToCategoryResponses(categories)})
}

// updateCategory godoc
// @Summary Update a category
// @Description Patches a category. Omitted fields keep their previous values; the kind is immutable.
// @Tags categories
// @Accept json
// @Produce json
// @Param kind path string true "Category kind" Enums(purchase, income)
// @Param id path string true "Category ID"
// @Param changes body dto.UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} dto.CategoryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{kind}/{id} [put]
func (h *categoryHandler) updateCategory(c *gin.Context) {
	if _, err := categoryKind(c); err != nil {
		respondServiceError(c, err, "Invalid category kind")
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// setCategoryActive godoc
// @Summary Activate or deactivate a category
// @Description Toggles whether the category is offered for new records. Existing records keep it.
// @Tags categories
// @Accept json
// @Produce json
// @Param kind path string true "Category kind" Enums(purchase, income)
// @Param id path string true "Category ID"
// @Param toggle body setActiveRequest true "Desired state"
// @Success 200 {object} dto.CategoryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{kind}/{id}/active [patch]
func (h *categoryHandler) setCategoryActive(c *gin.Context) {
	if _, err := categoryKind(c); err != nil {
		respondServiceError(c, err, "Invalid category kind")
		return
	}

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

	category, err := h.categoryService.SetCategoryActive(c.Request.Context(), actorID, c.Param("id"), *req.Active)
	if err != nil {
		respondServiceError(c, err, "Failed to toggle category")
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}
