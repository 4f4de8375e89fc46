package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type auditHandler struct {
	auditService portssvc.AuditReaderSvc
}

func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditReaderSvc) {
	h := &auditHandler{auditService: auditService}
	rg.GET("/audit-logs", h.listAuditLogs)
}

// listAuditLogs godoc
// @Summary List audit entries
// @Description Newest first. Entries are never edited or removed.
// @Tags audit
// @Produce json
// @Param action query string false "CREATE, UPDATE, DELETE, UNDO or EXPORT"
// @Param entity query string false "Entity kind, e.g. TRANSACTION"
// @Param limit query int false "Page size; defaults to the configured audit limit"
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListAuditLogsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /audit-logs [get]
func (h *auditHandler) listAuditLogs(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var params dto.ListAuditLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	logs, nextToken, err := h.auditService.ListAuditLogs(c.Request.Context(), session, params)
	if err != nil {
		respondError(c, err, "Failed to list audit logs")
		return
	}
	c.JSON(http.StatusOK, dto.ListAuditLogsResponse{AuditLogs: logs, NextToken: nextToken})
}
