package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletDetails is the wallet state fetched on demand. The balance is
// used only as a pre-submit guard; it is never cached.
type WalletDetails struct {
	Address string          `json:"address"`
	Balance decimal.Decimal `json:"balance"`
}

// TokenBalance is an opaque balance of a named token.
type TokenBalance struct {
	Token   string          `json:"token"`
	Balance decimal.Decimal `json:"balance"`
}

// WalletTransaction is one raw transfer as reported by the wallet
// endpoint.
type WalletTransaction struct {
	ID          string          `json:"transactionId"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	FromAddress string          `json:"fromAddress"`
	ToAddress   string          `json:"toAddress"`
	Hash        string          `json:"transactionHash"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ReceiveInfo is what the user needs to receive tokens.
type ReceiveInfo struct {
	Address string `json:"address"`
	Network string `json:"network,omitempty"`
}

// TransferReceipt is returned after a direct wallet send.
type TransferReceipt struct {
	TransactionHash string          `json:"transactionHash"`
	Amount          decimal.Decimal `json:"amount"`
	ToAddress       string          `json:"toAddress"`
}
