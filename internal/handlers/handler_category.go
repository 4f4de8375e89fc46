package handlers

import (
	"net/http"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := &categoryHandler{categoryService: categoryService}

	categories := rg.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.POST("", h.createCategory)
		categories.GET("/:categoryID", h.getCategory)
		categories.PUT("/:categoryID", h.updateCategory)
		categories.DELETE("/:categoryID", h.deleteCategory)
	}
}

// listCategories godoc
// @Summary List categories
// @Description Lists income and expense categories in display order.
// @Tags categories
// @Produce json
// @Param flow query string false "INCOME or EXPENSE"
// @Success 200 {object} dto.ListCategoriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var params dto.ListCategoriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	var flow *domain.Flow
	if params.Flow != "" {
		flow = &params.Flow
	}
	categories, err := h.categoryService.ListCategories(c.Request.Context(), session, flow)
	if err != nil {
		respondError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, dto.ListCategoriesResponse{Categories: dto.ToListCategoryResponse(categories)})
}

// createCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	category, err := h.categoryService.CreateCategory(c.Request.Context(), session, req)
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// getCategory godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param categoryID path string true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{categoryID} [get]
func (h *categoryHandler) getCategory(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	category, err := h.categoryService.GetCategory(c.Request.Context(), session, c.Param("categoryID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve category")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// updateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param categoryID path string true "Category ID"
// @Param category body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{categoryID} [put]
func (h *categoryHandler) updateCategory(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	category, err := h.categoryService.UpdateCategory(c.Request.Context(), session, c.Param("categoryID"), req)
	if err != nil {
		respondError(c, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// deleteCategory godoc
// @Summary Delete a category
// @Description Transactions keep their category ID and are reported under "Other".
// @Tags categories
// @Param categoryID path string true "Category ID"
// @Param version query int false "Expected version"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{categoryID} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var params dto.VersionParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	if err := h.categoryService.DeleteCategory(c.Request.Context(), session, c.Param("categoryID"), params.Version); err != nil {
		respondError(c, err, "Failed to delete category")
		return
	}
	c.Status(http.StatusNoContent)
}
