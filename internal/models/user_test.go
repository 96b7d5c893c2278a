package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_WalletAddressKeys(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"camelCase key", `{"userId":"u1","walletAddress":"0xabc"}`, "0xabc"},
		{"snake_case key", `{"userId":"u1","wallet_address":"0xdef"}`, "0xdef"},
		{"camelCase wins when both present", `{"userId":"u1","walletAddress":"0xabc","wallet_address":"0xdef"}`, "0xabc"},
		{"absent", `{"userId":"u1"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u User
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &u))
			assert.Equal(t, "u1", u.ID)
			assert.Equal(t, tt.want, u.WalletAddress)
		})
	}
}
