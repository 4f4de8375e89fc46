package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/SscSPs/farm_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to ledger transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	txns := rg.Group("/transactions")
	{
		txns.GET("", h.listTransactions)
		txns.POST("", h.createTransaction)
		txns.GET("/:transactionID", h.getTransaction)
		txns.PUT("/:transactionID", h.updateTransaction)
		txns.DELETE("/:transactionID", h.deleteTransaction)
		txns.POST("/:transactionID/restore", h.restoreTransaction)
	}
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists transactions newest first (txn_date, then creation time).
// @Tags transactions
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Param walletID query string false "Source or destination wallet"
// @Param flow query string false "INCOME, EXPENSE or TRANSFER"
// @Param includeDeleted query bool false "Include soft-deleted rows"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	txns, nextToken, err := h.transactionService.ListTransactions(c.Request.Context(), session, params)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, nextToken))
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records income, expense or a transfer between two wallets. Amounts are whole đồng.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), session, req)
	if err != nil {
		respondError(c, err, "Failed to create transaction")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID), slog.String("flow", string(txn.Flow)))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	txn, err := h.transactionService.GetTransaction(c.Request.Context(), session, c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Replace a transaction
// @Description Replaces the editable fields. Deleted transactions must be restored first.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Transaction"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), session, c.Param("transactionID"), req)
	if err != nil {
		respondError(c, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Soft-deletes the transaction; it no longer counts in any balance or report.
// @Tags transactions
// @Param transactionID path string true "Transaction ID"
// @Param version query int false "Expected version"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var params dto.VersionParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), session, c.Param("transactionID"), params.Version); err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// restoreTransaction godoc
// @Summary Restore a deleted transaction
// @Description Undoes a soft delete and records an UNDO audit entry.
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param version query int false "Expected version"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Not deleted, or version mismatch"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID}/restore [post]
func (h *transactionHandler) restoreTransaction(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var params dto.VersionParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	txn, err := h.transactionService.RestoreTransaction(c.Request.Context(), session, c.Param("transactionID"), params.Version)
	if err != nil {
		respondError(c, err, "Failed to restore transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
