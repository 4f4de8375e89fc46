package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type feedJournalHandler struct {
	feedJournalService portssvc.FeedJournalSvcFacade
}

func registerFeedJournalRoutes(rg *gin.RouterGroup, feedJournalService portssvc.FeedJournalSvcFacade) {
	h := &feedJournalHandler{feedJournalService: feedJournalService}

	journals := rg.Group("/feed-journals")
	{
		journals.GET("", h.listFeedJournals)
		journals.POST("", h.createFeedJournal)
		journals.GET("/:journalID", h.getFeedJournal)
		journals.DELETE("/:journalID", h.deleteFeedJournal)
	}
}

// listFeedJournals godoc
// @Summary List feed journal entries
// @Tags feed-journals
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Param tag query string false "Only entries carrying this tag"
// @Param limit query int false "Page size" default(30)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListFeedJournalsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /feed-journals [get]
func (h *feedJournalHandler) listFeedJournals(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var params dto.ListFeedJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	entries, nextToken, err := h.feedJournalService.ListFeedJournals(c.Request.Context(), session, params)
	if err != nil {
		respondError(c, err, "Failed to list feed journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToListFeedJournalsResponse(entries, nextToken))
}

// createFeedJournal godoc
// @Summary Add a feed journal entry
// @Tags feed-journals
// @Accept json
// @Produce json
// @Param entry body dto.CreateFeedJournalRequest true "Journal entry"
// @Success 201 {object} dto.FeedJournalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /feed-journals [post]
func (h *feedJournalHandler) createFeedJournal(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.CreateFeedJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	entry, err := h.feedJournalService.CreateFeedJournal(c.Request.Context(), session, req)
	if err != nil {
		respondError(c, err, "Failed to create feed journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFeedJournalResponse(entry))
}

// getFeedJournal godoc
// @Summary Get a feed journal entry
// @Tags feed-journals
// @Produce json
// @Param journalID path string true "Journal entry ID"
// @Success 200 {object} dto.FeedJournalResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /feed-journals/{journalID} [get]
func (h *feedJournalHandler) getFeedJournal(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	entry, err := h.feedJournalService.GetFeedJournal(c.Request.Context(), session, c.Param("journalID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve feed journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToFeedJournalResponse(entry))
}

// deleteFeedJournal godoc
// @Summary Delete a feed journal entry
// @Tags feed-journals
// @Param journalID path string true "Journal entry ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /feed-journals/{journalID} [delete]
func (h *feedJournalHandler) deleteFeedJournal(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	if err := h.feedJournalService.DeleteFeedJournal(c.Request.Context(), session, c.Param("journalID")); err != nil {
		respondError(c, err, "Failed to delete feed journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}
