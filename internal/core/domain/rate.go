package domain

import (
	"errors"
	"time"
)

var ErrRateUnavailable = errors.New("exchange rate unavailable")

// DollarRate is the Banco Nación quote for the U.S. dollar banknote.
type DollarRate struct {
	CompraBillete float64   `json:"compra_billete"`
	VentaBillete  float64   `json:"venta_billete"`
	FetchedAt     time.Time `json:"fetched_at"`
	Stale         bool      `json:"stale,omitempty"`
}
