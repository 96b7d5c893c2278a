package models

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ServiceType distinguishes the two bookable service kinds.
type ServiceType string

const (
	ServiceParking ServiceType = "parking"
	ServiceCharger ServiceType = "charger"
)

// Label returns the user-facing name for the service type.
func (t ServiceType) Label() string {
	if t == ServiceParking {
		return "Parking"
	}
	return "Charging Station"
}

// ServiceStatus is the availability state reported by the backend.
type ServiceStatus string

const (
	StatusAvailable   ServiceStatus = "available"
	StatusActive      ServiceStatus = "active"
	StatusOccupied    ServiceStatus = "occupied"
	StatusMaintenance ServiceStatus = "maintenance"
)

// Bookable reports whether a service in this status accepts bookings.
// Anything other than available or active, including an unset status,
// is treated as unavailable.
func (s ServiceStatus) Bookable() bool {
	return s == StatusAvailable || s == StatusActive
}

// Coordinate is a latitude or longitude value. The backend sends
// coordinates as JSON numbers while the demo dataset historically used
// strings, so both forms decode.
type Coordinate float64

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	s := string(data)
	if s[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid coordinate %q: %w", s, err)
	}
	*c = Coordinate(f)
	return nil
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(c))
}

// Service is a bookable parking spot or charging station.
type Service struct {
	ID          string          `json:"serviceId"`
	Type        ServiceType     `json:"serviceType"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	State       string          `json:"state"`
	Country     string          `json:"country"`
	Latitude    Coordinate      `json:"latitude"`
	Longitude   Coordinate      `json:"longitude"`
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
	Status      ServiceStatus   `json:"status"`
	Description string          `json:"description,omitempty"`
}

// Bookable reports whether the service currently accepts bookings.
func (s *Service) Bookable() bool {
	return s.Status.Bookable()
}
