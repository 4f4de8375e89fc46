package dto

import (
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWalletRequest defines the data needed to create a new wallet.
type CreateWalletRequest struct {
	Name           string            `json:"name" binding:"required,max=100"`
	WalletType     domain.WalletType `json:"type" binding:"required,oneof=CASH BANK"`
	OpeningBalance decimal.Decimal   `json:"openingBalance"` // May be negative
}

// UpdateWalletRequest defines the data allowed for updating a wallet.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateWalletRequest struct {
	Name           *string            `json:"name" binding:"omitempty,max=100"`
	WalletType     *domain.WalletType `json:"type" binding:"omitempty,oneof=CASH BANK"`
	OpeningBalance *decimal.Decimal   `json:"openingBalance"`
	IsActive       *bool              `json:"isActive"`
	Version        *int64             `json:"version"` // Expected version; omit for last-write-wins
}

// WalletResponse defines the data returned for a wallet.
type WalletResponse struct {
	WalletID       string            `json:"walletID"`
	Name           string            `json:"name"`
	WalletType     domain.WalletType `json:"type"`
	OpeningBalance decimal.Decimal   `json:"openingBalance"`
	IsActive       bool              `json:"isActive"`
	Version        int64             `json:"version"`
	CreatedAt      time.Time         `json:"createdAt"`
	LastUpdatedAt  time.Time         `json:"lastUpdatedAt"`
}

// ToWalletResponse converts a domain.Wallet to WalletResponse DTO
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID:       w.WalletID,
		Name:           w.Name,
		WalletType:     w.WalletType,
		OpeningBalance: w.OpeningBalance,
		IsActive:       w.IsActive,
		Version:        w.Version,
		CreatedAt:      w.CreatedAt,
		LastUpdatedAt:  w.LastUpdatedAt,
	}
}

// ToListWalletResponse converts a slice of domain.Wallet to a slice of WalletResponse DTOs
func ToListWalletResponse(wallets []domain.Wallet) []WalletResponse {
	res := make([]WalletResponse, len(wallets))
	for i := range wallets {
		res[i] = ToWalletResponse(&wallets[i])
	}
	return res
}

// ListWalletsResponse wraps the list of wallets.
type ListWalletsResponse struct {
	Wallets []WalletResponse `json:"wallets"`
}
