package api

import (
	"context"
	"fmt"

	"github.com/chargehive/chargehive-client/internal/models"
	"github.com/shopspring/decimal"
)

type sendTokensRequest struct {
	ToAddress string          `json:"toAddress"`
	Amount    decimal.Decimal `json:"amount"`
}

// WalletDetails fetches the user's wallet address and FLOW balance.
func (c *Client) WalletDetails(ctx context.Context) (*models.WalletDetails, error) {
	var details models.WalletDetails
	if err := c.get(ctx, "/wallet", &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// WalletTransactions returns up to limit recent transfers.
func (c *Client) WalletTransactions(ctx context.Context, limit int) ([]models.WalletTransaction, error) {
	var txs []models.WalletTransaction
	if err := c.get(ctx, fmt.Sprintf("/wallet/transactions?limit=%d", limit), &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// SendTokens transfers tokens to another address via the backend.
func (c *Client) SendTokens(ctx context.Context, toAddress string, amount decimal.Decimal) (*models.TransferReceipt, error) {
	body := sendTokensRequest{ToAddress: toAddress, Amount: amount}
	var receipt models.TransferReceipt
	if err := c.post(ctx, "/wallet/send", body, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// ReceiveInfo returns what the user needs to receive tokens.
func (c *Client) ReceiveInfo(ctx context.Context) (*models.ReceiveInfo, error) {
	var info models.ReceiveInfo
	if err := c.get(ctx, "/wallet/receive", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// TokenBalance fetches the CHT token balance.
func (c *Client) TokenBalance(ctx context.Context) (*models.TokenBalance, error) {
	var balance models.TokenBalance
	if err := c.get(ctx, "/wallet/cht-balance", &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}
