package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteLockWindow is how long the backend honours a quoted token price.
// It is enforced server-side; the client only surfaces it to the user.
const QuoteLockWindow = 15 * time.Minute

// PaymentQuote is a time-limited fiat-to-token price lock for a pending
// payment. It is discarded once the payment executes or the flow is
// abandoned.
type PaymentQuote struct {
	PaymentID             string          `json:"paymentId"`
	AmountUSD             decimal.Decimal `json:"amountUsd"`
	TokenAmount           decimal.Decimal `json:"flowTokenAmount"`
	TokenPriceUSD         decimal.Decimal `json:"flowTokenPriceUsd"`
	ProviderWalletAddress string          `json:"providerWalletAddress"`
}

// PaymentReceipt is returned after the backend executes a transfer.
// The transaction hash is generated server-side.
type PaymentReceipt struct {
	PaymentID       string          `json:"paymentId"`
	Status          string          `json:"status"`
	TokenAmount     decimal.Decimal `json:"flowTokenAmount"`
	TransactionHash string          `json:"transactionHash"`
}

// PaymentRecord is one entry of the user's payment history.
type PaymentRecord struct {
	PaymentID       string          `json:"paymentId"`
	ServiceType     ServiceType     `json:"serviceType"`
	ServiceAddress  string          `json:"serviceAddress"`
	AmountUSD       decimal.Decimal `json:"amountUsd"`
	TokenAmount     decimal.Decimal `json:"flowTokenAmount"`
	Status          string          `json:"status"`
	TransactionHash string          `json:"transactionHash"`
	CreatedAt       time.Time       `json:"createdAt"`
}
