package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type customFieldHandler struct {
	customFieldService portssvc.CustomFieldSvcFacade
}

func registerCustomFieldRoutes(rg *gin.RouterGroup, customFieldService portssvc.CustomFieldSvcFacade) {
	h := &customFieldHandler{customFieldService: customFieldService}

	fields := rg.Group("/custom-fields")
	{
		fields.GET("", h.listCustomFields)
		fields.POST("", h.createCustomField)
		fields.GET("/:fieldID", h.getCustomField)
		fields.PUT("/:fieldID", h.updateCustomField)
		fields.DELETE("/:fieldID", h.deleteCustomField)
	}
}

// listCustomFields godoc
// @Summary List custom fields
// @Tags custom-fields
// @Produce json
// @Success 200 {object} dto.ListCustomFieldsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /custom-fields [get]
func (h *customFieldHandler) listCustomFields(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	fields, err := h.customFieldService.ListCustomFields(c.Request.Context(), session)
	if err != nil {
		respondError(c, err, "Failed to list custom fields")
		return
	}
	c.JSON(http.StatusOK, dto.ListCustomFieldsResponse{CustomFields: dto.ToListCustomFieldResponse(fields)})
}

// createCustomField godoc
// @Summary Define a custom field
// @Description Adds an attribute to income and expense transactions. Select types need options.
// @Tags custom-fields
// @Accept json
// @Produce json
// @Param field body dto.CreateCustomFieldRequest true "Field definition"
// @Success 201 {object} dto.CustomFieldResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Field key already used"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /custom-fields [post]
func (h *customFieldHandler) createCustomField(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.CreateCustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	field, err := h.customFieldService.CreateCustomField(c.Request.Context(), session, req)
	if err != nil {
		respondError(c, err, "Failed to create custom field")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCustomFieldResponse(field))
}

// getCustomField godoc
// @Summary Get a custom field
// @Tags custom-fields
// @Produce json
// @Param fieldID path string true "Field ID"
// @Success 200 {object} dto.CustomFieldResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /custom-fields/{fieldID} [get]
func (h *customFieldHandler) getCustomField(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	field, err := h.customFieldService.GetCustomField(c.Request.Context(), session, c.Param("fieldID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve custom field")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomFieldResponse(field))
}

// updateCustomField godoc
// @Summary Update a custom field
// @Description The key and type of a field never change.
// @Tags custom-fields
// @Accept json
// @Produce json
// @Param fieldID path string true "Field ID"
// @Param field body dto.UpdateCustomFieldRequest true "Fields to update"
// @Success 200 {object} dto.CustomFieldResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /custom-fields/{fieldID} [put]
func (h *customFieldHandler) updateCustomField(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.UpdateCustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	field, err := h.customFieldService.UpdateCustomField(c.Request.Context(), session, c.Param("fieldID"), req)
	if err != nil {
		respondError(c, err, "Failed to update custom field")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomFieldResponse(field))
}

// deleteCustomField godoc
// @Summary Delete a custom field
// @Tags custom-fields
// @Param fieldID path string true "Field ID"
// @Param version query int false "Expected version"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /custom-fields/{fieldID} [delete]
func (h *customFieldHandler) deleteCustomField(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var params dto.VersionParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	if err := h.customFieldService.DeleteCustomField(c.Request.Context(), session, c.Param("fieldID"), params.Version); err != nil {
		respondError(c, err, "Failed to delete custom field")
		return
	}
	c.Status(http.StatusNoContent)
}
