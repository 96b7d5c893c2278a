package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chargehive/chargehive-client/internal/models"
)

var (
	// ErrEmptyAddress rejects a send with no destination.
	ErrEmptyAddress = errors.New("recipient address required")
	// ErrInvalidAmount rejects a zero or negative send amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientBalance rejects a send larger than the known balance.
	ErrInsufficientBalance = errors.New("insufficient token balance")
)

// Backend is the slice of the API client the wallet needs.
type Backend interface {
	WalletDetails(ctx context.Context) (*models.WalletDetails, error)
	TokenBalance(ctx context.Context) (*models.TokenBalance, error)
	WalletTransactions(ctx context.Context, limit int) ([]models.WalletTransaction, error)
	PaymentHistory(ctx context.Context) ([]models.PaymentRecord, error)
	SendTokens(ctx context.Context, toAddress string, amount decimal.Decimal) (*models.TransferReceipt, error)
	ReceiveInfo(ctx context.Context) (*models.ReceiveInfo, error)
}

// Activity is one row of the wallet's recent-activity view, merging a
// payment record with a description derived from its service.
type Activity struct {
	PaymentID   string
	Description string
	AmountUSD   decimal.Decimal
	TokenAmount decimal.Decimal
	Status      string
	Hash        string
}

// Wallet exposes balance, activity, and transfer operations. Nothing is
// cached; every call reflects the backend's current state.
type Wallet struct {
	api    Backend
	logger *zap.Logger
}

func New(api Backend, logger *zap.Logger) *Wallet {
	return &Wallet{api: api, logger: logger}
}

// Details fetches the wallet address and FLOW balance.
func (w *Wallet) Details(ctx context.Context) (*models.WalletDetails, error) {
	return w.api.WalletDetails(ctx)
}

// TokenBalance fetches the CHT token balance.
func (w *Wallet) TokenBalance(ctx context.Context) (*models.TokenBalance, error) {
	return w.api.TokenBalance(ctx)
}

// Transactions returns up to limit raw transfers, newest first as
// ordered by the backend.
func (w *Wallet) Transactions(ctx context.Context, limit int) ([]models.WalletTransaction, error) {
	return w.api.WalletTransactions(ctx, limit)
}

// Activity maps the payment history onto the activity view, labelling
// each row by the kind and address of the paid-for service.
func (w *Wallet) Activity(ctx context.Context) ([]Activity, error) {
	records, err := w.api.PaymentHistory(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Activity, 0, len(records))
	for _, r := range records {
		out = append(out, Activity{
			PaymentID:   r.PaymentID,
			Description: describeService(r.ServiceType, r.ServiceAddress),
			AmountUSD:   r.AmountUSD,
			TokenAmount: r.TokenAmount,
			Status:      r.Status,
			Hash:        r.TransactionHash,
		})
	}
	return out, nil
}

// Send transfers tokens to another address. Obvious mistakes are
// rejected locally; the balance guard fails open when the balance
// cannot be fetched, leaving the backend as the final arbiter.
func (w *Wallet) Send(ctx context.Context, toAddress string, amount decimal.Decimal) (*models.TransferReceipt, error) {
	if toAddress == "" {
		return nil, ErrEmptyAddress
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if details, err := w.api.WalletDetails(ctx); err != nil {
		w.logger.Warn("balance check skipped", zap.Error(err))
	} else if details.Balance.LessThan(amount) {
		return nil, fmt.Errorf("%w: have %s FLOW", ErrInsufficientBalance, details.Balance.String())
	}

	receipt, err := w.api.SendTokens(ctx, toAddress, amount)
	if err != nil {
		return nil, err
	}
	w.logger.Info("tokens sent",
		zap.String("to", toAddress),
		zap.String("amount", amount.String()),
		zap.String("tx_hash", receipt.TransactionHash))
	return receipt, nil
}

// ReceiveInfo returns the address to share with a sender.
func (w *Wallet) ReceiveInfo(ctx context.Context) (*models.ReceiveInfo, error) {
	return w.api.ReceiveInfo(ctx)
}

func describeService(t models.ServiceType, address string) string {
	kind := "Parking"
	if t == models.ServiceCharger {
		kind = "Charging"
	}
	if address == "" {
		return kind
	}
	return kind + " - " + address
}
