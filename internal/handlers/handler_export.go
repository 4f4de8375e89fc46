package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/SscSPs/farm_ledger_app/internal/middleware"
	"github.com/SscSPs/farm_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// exportHandler handles spreadsheet exports.
type exportHandler struct {
	exportService portssvc.ExportSvcFacade
	posthogClient *utils.PosthogClientWrapper
}

func registerExportRoutes(rg *gin.RouterGroup, exportService portssvc.ExportSvcFacade, rate string, posthogClient *utils.PosthogClientWrapper) {
	h := &exportHandler{exportService: exportService, posthogClient: posthogClient}

	limit, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		slog.Warn("Invalid export rate limit, using 10-H", slog.String("rate", rate))
		limit, _ = limiter.NewRateFromFormatted("10-H")
	}

	exports := rg.Group("/exports", middleware.RateLimit(limiter.New(memory.NewStore(), limit)))
	{
		exports.POST("/finance", h.exportFinance)
		exports.POST("/journal", h.exportJournal)
	}
}

// exportFinance godoc
// @Summary Export the ledger to a spreadsheet
// @Description Writes README, GIAO_DICH, THEO_DANH_MUC and optionally NHAT_KY sheets for an inclusive date range.
// @Tags exports
// @Accept json
// @Produce json
// @Param export body dto.FinanceExportRequest true "Export range and filter"
// @Success 201 {object} dto.ExportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown wallet"
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exports/finance [post]
func (h *exportHandler) exportFinance(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.FinanceExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.exportService.ExportFinance(c.Request.Context(), session, req)
	if err != nil {
		respondError(c, err, "Failed to export ledger")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "export_finance", map[string]any{
		"rows":         result.RowCount,
		"with_journal": req.IncludeAuditLog,
	})
	c.JSON(http.StatusCreated, dto.ToExportResponse(result))
}

// exportJournal godoc
// @Summary Export the feed journal to a spreadsheet
// @Tags exports
// @Accept json
// @Produce json
// @Param export body dto.JournalExportRequest true "Export range"
// @Success 201 {object} dto.ExportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exports/journal [post]
func (h *exportHandler) exportJournal(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.JournalExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.exportService.ExportJournal(c.Request.Context(), session, req)
	if err != nil {
		respondError(c, err, "Failed to export feed journal")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "export_journal", map[string]any{"rows": result.RowCount})
	c.JSON(http.StatusCreated, dto.ToExportResponse(result))
}
