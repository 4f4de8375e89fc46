package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type userHandler struct {
	userService portssvc.UserSvcFacade
}

func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := &userHandler{userService: userService}

	rg.GET("/me", h.me)
	viewers := rg.Group("/viewers")
	{
		viewers.GET("", h.listViewers)
		viewers.POST("", h.createViewer)
	}
}

// me godoc
// @Summary Current user
// @Description Returns the logged-in user and the owner whose data it sees.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *userHandler) me(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listViewers godoc
// @Summary List viewers
// @Description Lists the read-only users bound to the caller's data.
// @Tags users
// @Produce json
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /viewers [get]
func (h *userHandler) listViewers(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	users, err := h.userService.ListViewers(c.Request.Context(), session)
	if err != nil {
		respondError(c, err, "Failed to list viewers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// createViewer godoc
// @Summary Create a viewer
// @Description Creates a read-only login that sees the caller's data. Editors only.
// @Tags users
// @Accept json
// @Produce json
// @Param viewer body dto.CreateViewerRequest true "Viewer details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /viewers [post]
func (h *userHandler) createViewer(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.CreateViewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, err := h.userService.CreateViewer(c.Request.Context(), session, req)
	if err != nil {
		respondError(c, err, "Failed to create viewer")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}
