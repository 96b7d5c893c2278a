package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chargehive/chargehive-client/internal/models"
)

type initiatePaymentRequest struct {
	ServiceID    string `json:"serviceId"`
	FromDatetime string `json:"fromDatetime"`
	ToDatetime   string `json:"toDatetime"`
}

type executePaymentRequest struct {
	PaymentID           string `json:"paymentId"`
	SenderWalletAddress string `json:"senderWalletAddress"`
}

type paymentHistoryData struct {
	Payments []models.PaymentRecord `json:"payments"`
}

// InitiatePayment requests a fiat-to-token quote for a booking. The
// quoted price is locked server-side for models.QuoteLockWindow.
func (c *Client) InitiatePayment(ctx context.Context, serviceID string, from, to time.Time) (*models.PaymentQuote, error) {
	body := initiatePaymentRequest{
		ServiceID:    serviceID,
		FromDatetime: from.UTC().Format(time.RFC3339),
		ToDatetime:   to.UTC().Format(time.RFC3339),
	}
	var quote models.PaymentQuote
	if err := c.post(ctx, "/payments/initiateFlow", body, &quote); err != nil {
		return nil, err
	}
	if quote.PaymentID == "" {
		return nil, fmt.Errorf("%w: missing payment id", ErrMalformedResponse)
	}
	return &quote, nil
}

// ExecutePayment asks the backend to perform the transfer. The client
// supplies only the payment id and sender address; transaction
// construction and signing happen server-side.
func (c *Client) ExecutePayment(ctx context.Context, paymentID, senderWalletAddress string) (*models.PaymentReceipt, error) {
	body := executePaymentRequest{PaymentID: paymentID, SenderWalletAddress: senderWalletAddress}
	var receipt models.PaymentReceipt
	if err := c.post(ctx, "/payments/executeFlow", body, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// PaymentStatus fetches the current state of a payment.
func (c *Client) PaymentStatus(ctx context.Context, paymentID string) (*models.PaymentRecord, error) {
	var record models.PaymentRecord
	if err := c.get(ctx, "/payments/"+url.PathEscape(paymentID)+"/status", &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// PaymentHistory returns the user's past payments.
func (c *Client) PaymentHistory(ctx context.Context) ([]models.PaymentRecord, error) {
	var data paymentHistoryData
	if err := c.get(ctx, "/payments/user", &data); err != nil {
		return nil, err
	}
	return data.Payments, nil
}
