package handlers

import (
	"net/http"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/core/ledger"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the read-only reports computed by the ledger engines.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/balances", h.getBalances)
		reports.GET("/range-balances", h.getRangeBalances)
		reports.GET("/summary", h.getSummary)
		reports.GET("/cashflow", h.getCashflow)
		reports.GET("/overview", h.getOverview)
	}
}

// getBalances godoc
// @Summary Current wallet balances
// @Description Opening balance plus every visible transaction touching each wallet.
// @Tags reports
// @Produce json
// @Param includeInactive query bool false "Include inactive wallets"
// @Success 200 {object} dto.BalancesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/balances [get]
func (h *reportingHandler) getBalances(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var params dto.BalancesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	balances, err := h.reportingService.Balances(c.Request.Context(), session, params.IncludeInactive)
	if err != nil {
		respondError(c, err, "Failed to compute balances")
		return
	}
	c.JSON(http.StatusOK, dto.BalancesResponse{Wallets: balances, Total: ledger.TotalBalance(balances)})
}

// getRangeBalances godoc
// @Summary Wallet balances over a range
// @Description Opening, inflow, outflow and closing per wallet for an inclusive date range.
// @Tags reports
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} dto.RangeBalancesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/range-balances [get]
func (h *reportingHandler) getRangeBalances(c *gin.Context) {
	session, params, ok := h.bindRange(c)
	if !ok {
		return
	}
	rows, err := h.reportingService.RangeBalances(c.Request.Context(), session, params.From, params.To)
	if err != nil {
		respondError(c, err, "Failed to compute range balances")
		return
	}
	c.JSON(http.StatusOK, dto.RangeBalancesResponse{From: params.From, To: params.To, Wallets: rows})
}

// getSummary godoc
// @Summary Income and expense summary
// @Description Totals, profit and the per-category breakdown. Transfers are excluded.
// @Tags reports
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	session, params, ok := h.bindRange(c)
	if !ok {
		return
	}
	summary, err := h.reportingService.Summary(c.Request.Context(), session, params.From, params.To)
	if err != nil {
		respondError(c, err, "Failed to compute summary")
		return
	}
	c.JSON(http.StatusOK, dto.SummaryResponse{From: params.From, To: params.To, Summary: *summary})
}

// getCashflow godoc
// @Summary Daily cashflow
// @Tags reports
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} dto.CashflowResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/cashflow [get]
func (h *reportingHandler) getCashflow(c *gin.Context) {
	session, params, ok := h.bindRange(c)
	if !ok {
		return
	}
	days, err := h.reportingService.Cashflow(c.Request.Context(), session, params.From, params.To)
	if err != nil {
		respondError(c, err, "Failed to compute cashflow")
		return
	}
	c.JSON(http.StatusOK, dto.CashflowResponse{From: params.From, To: params.To, Days: days})
}

// getOverview godoc
// @Summary Dashboard overview
// @Description Summary, top expense categories, total balance and transaction count of the last 30 days.
// @Tags reports
// @Produce json
// @Success 200 {object} domain.Overview
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/overview [get]
func (h *reportingHandler) getOverview(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	overview, err := h.reportingService.Overview(c.Request.Context(), session)
	if err != nil {
		respondError(c, err, "Failed to compute overview")
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *reportingHandler) bindRange(c *gin.Context) (session domain.Session, params dto.DateRangeParams, ok bool) {
	session, ok = sessionFrom(c)
	if !ok {
		return session, params, false
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return session, params, false
	}
	return session, params, true
}
