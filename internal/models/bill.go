package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// FetchedBill is the gateway's answer to a bill-fetch. It is only ever
// associated with the request fingerprint that produced it; the fetch
// coordinator discards results whose fingerprint is no longer current.
type FetchedBill struct {
	CustomerName string              `json:"customerName,omitempty"`
	ConsumerNo   string              `json:"consumerNo"`
	BillNumber   string              `json:"billNumber,omitempty"`
	AmountDue    decimal.Decimal     `json:"amountDue"`
	DueDate      string              `json:"dueDate,omitempty"`
	Arrears      decimal.NullDecimal `json:"arrears,omitempty"`

	// RawProviderPayload preserves the gateway response verbatim for
	// receipts and diagnostics.
	RawProviderPayload json.RawMessage `json:"rawProviderPayload,omitempty"`
}

// WalletSnapshot is a point-in-time read of the agent's shared wallet. It is
// read immediately before submission and never cached across the fetch step.
type WalletSnapshot struct {
	Balance decimal.Decimal `json:"balance"`
	AsOf    time.Time       `json:"asOf"`
}
