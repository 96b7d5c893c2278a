package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Default map center when neither the device nor the preferences file
// provides coordinates (San Francisco).
const (
	DefaultLatitude  = 37.7749
	DefaultLongitude = -122.4194
)

// Preferences holds user-facing defaults read from an optional TOML
// file. A missing file yields defaults; a malformed file is an error.
type Preferences struct {
	DefaultLatitude  float64 `toml:"default_latitude"`
	DefaultLongitude float64 `toml:"default_longitude"`
	PaymentMethod    string  `toml:"payment_method"`
	TransactionLimit int     `toml:"transaction_limit"`
}

// DefaultPreferences returns the preferences used when no file exists.
func DefaultPreferences() *Preferences {
	return &Preferences{
		DefaultLatitude:  DefaultLatitude,
		DefaultLongitude: DefaultLongitude,
		PaymentMethod:    "card",
		TransactionLimit: 10,
	}
}

// LoadPreferences reads the preferences file at path, filling defaults
// for anything the file leaves unset.
func LoadPreferences(path string) (*Preferences, error) {
	prefs := DefaultPreferences()
	if path == "" {
		return prefs, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return prefs, nil
	}

	if _, err := toml.DecodeFile(path, prefs); err != nil {
		return nil, fmt.Errorf("error loading preferences file: %w", err)
	}

	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	return prefs, nil
}

// Validate checks the preference values that have a constrained domain.
func (p *Preferences) Validate() error {
	if p.PaymentMethod != "card" && p.PaymentMethod != "token" {
		return fmt.Errorf("payment_method must be card or token, got %q", p.PaymentMethod)
	}
	if p.TransactionLimit <= 0 {
		return fmt.Errorf("transaction_limit must be positive, got %d", p.TransactionLimit)
	}
	return nil
}
