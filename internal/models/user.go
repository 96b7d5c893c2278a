package models

import "encoding/json"

// User is the authenticated identity returned by the backend.
type User struct {
	ID            string `json:"userId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	WalletAddress string `json:"walletAddress"`
}

// The backend is inconsistent about the wallet address key: some
// endpoints send walletAddress, others wallet_address. Accept both and
// expose one canonical field.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := struct {
		*alias
		WalletAddressSnake string `json:"wallet_address"`
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if u.WalletAddress == "" {
		u.WalletAddress = aux.WalletAddressSnake
	}
	return nil
}
