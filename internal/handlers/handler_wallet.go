package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/SscSPs/farm_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// walletHandler handles HTTP requests related to wallets.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := &walletHandler{walletService: walletService}

	wallets := rg.Group("/wallets")
	{
		wallets.GET("", h.listWallets)
		wallets.POST("", h.createWallet)
		wallets.GET("/:walletID", h.getWallet)
		wallets.PUT("/:walletID", h.updateWallet)
		wallets.DELETE("/:walletID", h.deleteWallet)
	}
}

// listWallets godoc
// @Summary List wallets
// @Tags wallets
// @Produce json
// @Success 200 {object} dto.ListWalletsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallets [get]
func (h *walletHandler) listWallets(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	wallets, err := h.walletService.ListWallets(c.Request.Context(), session)
	if err != nil {
		respondError(c, err, "Failed to list wallets")
		return
	}
	c.JSON(http.StatusOK, dto.ListWalletsResponse{Wallets: dto.ToListWalletResponse(wallets)})
}

// createWallet godoc
// @Summary Create a wallet
// @Description Creates a cash or bank wallet with an opening balance in whole đồng.
// @Tags wallets
// @Accept json
// @Produce json
// @Param wallet body dto.CreateWalletRequest true "Wallet details"
// @Success 201 {object} dto.WalletResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallets [post]
func (h *walletHandler) createWallet(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	wallet, err := h.walletService.CreateWallet(c.Request.Context(), session, req)
	if err != nil {
		respondError(c, err, "Failed to create wallet")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Wallet created", slog.String("wallet_id", wallet.WalletID))
	c.JSON(http.StatusCreated, dto.ToWalletResponse(wallet))
}

// getWallet godoc
// @Summary Get a wallet
// @Tags wallets
// @Produce json
// @Param walletID path string true "Wallet ID"
// @Success 200 {object} dto.WalletResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallets/{walletID} [get]
func (h *walletHandler) getWallet(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	wallet, err := h.walletService.GetWallet(c.Request.Context(), session, c.Param("walletID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve wallet")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// updateWallet godoc
// @Summary Update a wallet
// @Description Applies the provided fields. A version that no longer matches returns 409.
// @Tags wallets
// @Accept json
// @Produce json
// @Param walletID path string true "Wallet ID"
// @Param wallet body dto.UpdateWalletRequest true "Fields to update"
// @Success 200 {object} dto.WalletResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallets/{walletID} [put]
func (h *walletHandler) updateWallet(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	wallet, err := h.walletService.UpdateWallet(c.Request.Context(), session, c.Param("walletID"), req)
	if err != nil {
		respondError(c, err, "Failed to update wallet")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// deleteWallet godoc
// @Summary Delete a wallet
// @Description Transactions that reference the wallet are kept.
// @Tags wallets
// @Param walletID path string true "Wallet ID"
// @Param version query int false "Expected version"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallets/{walletID} [delete]
func (h *walletHandler) deleteWallet(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var params dto.VersionParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	if err := h.walletService.DeleteWallet(c.Request.Context(), session, c.Param("walletID"), params.Version); err != nil {
		respondError(c, err, "Failed to delete wallet")
		return
	}
	c.Status(http.StatusNoContent)
}
