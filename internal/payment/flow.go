package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chargehive/chargehive-client/internal/models"
)

// State names a step of the payment flow.
type State string

const (
	StateInitiating State = "initiating"
	StateQuoted     State = "quoted"
	StateConfirming State = "confirming"
	StateExecuting  State = "executing"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

func (s State) String() string { return string(s) }

var (
	// ErrInsufficientBalance blocks confirmation locally when the known
	// wallet balance cannot cover the quoted token amount.
	ErrInsufficientBalance = errors.New("insufficient token balance")
	// ErrInvalidState means a transition was requested from the wrong state.
	ErrInvalidState = errors.New("invalid payment flow state")
)

// Backend is the slice of the API client the payment flow needs.
type Backend interface {
	InitiatePayment(ctx context.Context, serviceID string, from, to time.Time) (*models.PaymentQuote, error)
	ExecutePayment(ctx context.Context, paymentID, senderWalletAddress string) (*models.PaymentReceipt, error)
	WalletDetails(ctx context.Context) (*models.WalletDetails, error)
}

// Flow drives one payment through
//
//	Initiating -> Quoted -> Confirming -> Executing -> Completed
//
// with Failed reachable from Initiating and a failed execution falling
// back to Quoted so the user may confirm again. The flow performs no
// transaction construction or signing; the backend executes the
// transfer and is the final arbiter of every step.
type Flow struct {
	id      string
	api     Backend
	logger  *zap.Logger
	sender  string
	service *models.Service
	from    time.Time
	to      time.Time

	state   State
	quote   *models.PaymentQuote
	balance *decimal.Decimal // nil when the fetch failed: guard inactive
	receipt *models.PaymentReceipt
}

func NewFlow(api Backend, logger *zap.Logger, service *models.Service, from, to time.Time, senderWalletAddress string) *Flow {
	id := uuid.NewString()
	return &Flow{
		id:      id,
		api:     api,
		logger:  logger.With(zap.String("payment_flow", id)),
		sender:  senderWalletAddress,
		service: service,
		from:    from,
		to:      to,
		state:   StateInitiating,
	}
}

func (f *Flow) ID() string                      { return f.id }
func (f *Flow) State() State                    { return f.state }
func (f *Flow) Quote() *models.PaymentQuote     { return f.quote }
func (f *Flow) Receipt() *models.PaymentReceipt { return f.receipt }

// Balance returns the fetched wallet balance and whether it is known.
func (f *Flow) Balance() (decimal.Decimal, bool) {
	if f.balance == nil {
		return decimal.Zero, false
	}
	return *f.balance, true
}

// Start requests the price quote and fetches the wallet balance. The
// balance fetch is best-effort: its failure only deactivates the local
// guard. A failed quote is terminal for this flow.
func (f *Flow) Start(ctx context.Context) error {
	if f.state != StateInitiating {
		return fmt.Errorf("%w: cannot start from %s", ErrInvalidState, f.state)
	}

	quote, err := f.api.InitiatePayment(ctx, f.service.ID, f.from, f.to)
	if err != nil {
		f.state = StateFailed
		f.logger.Warn("payment initiation failed", zap.Error(err))
		return err
	}
	f.quote = quote

	f.RefreshBalance(ctx)

	f.state = StateQuoted
	f.logger.Info("payment quoted",
		zap.String("payment_id", quote.PaymentID),
		zap.String("amount_usd", quote.AmountUSD.String()),
		zap.String("token_amount", quote.TokenAmount.String()))
	return nil
}

// RefreshBalance re-fetches the wallet balance. It is never called
// automatically after Start; retrying users must ask for it.
func (f *Flow) RefreshBalance(ctx context.Context) {
	details, err := f.api.WalletDetails(ctx)
	if err != nil {
		f.logger.Warn("wallet balance unavailable, balance guard inactive", zap.Error(err))
		f.balance = nil
		return
	}
	b := details.Balance
	f.balance = &b
}

// Confirm moves the quoted payment to the confirmation step. When the
// balance is known and insufficient, it rejects locally without
// contacting the backend and the flow stays in Quoted; when the balance
// is unknown the guard is skipped and the backend decides.
func (f *Flow) Confirm() error {
	if f.state != StateQuoted {
		return fmt.Errorf("%w: cannot confirm from %s", ErrInvalidState, f.state)
	}

	if f.balance != nil && f.balance.LessThan(f.quote.TokenAmount) {
		f.logger.Info("confirmation blocked",
			zap.String("balance", f.balance.String()),
			zap.String("required", f.quote.TokenAmount.String()))
		return fmt.Errorf("%w: need %s FLOW but have %s FLOW",
			ErrInsufficientBalance, f.quote.TokenAmount.String(), f.balance.String())
	}

	f.state = StateConfirming
	return nil
}

// Execute asks the backend to perform the transfer. On failure the flow
// returns to Quoted so the user may confirm again.
func (f *Flow) Execute(ctx context.Context) (*models.PaymentReceipt, error) {
	if f.state != StateConfirming {
		return nil, fmt.Errorf("%w: cannot execute from %s", ErrInvalidState, f.state)
	}
	f.state = StateExecuting

	receipt, err := f.api.ExecutePayment(ctx, f.quote.PaymentID, f.sender)
	if err != nil {
		f.state = StateQuoted
		f.logger.Warn("payment execution failed", zap.Error(err))
		return nil, err
	}

	f.receipt = receipt
	f.state = StateCompleted
	f.logger.Info("payment completed",
		zap.String("payment_id", f.quote.PaymentID),
		zap.String("tx_hash", receipt.TransactionHash))
	return receipt, nil
}
