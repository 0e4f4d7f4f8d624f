package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Field keys accepted by UpdateField. The primary identifier is part of the
// request fingerprint; editing it invalidates any fetched bill and any
// in-flight fetch.
const (
	FieldPrimaryIdentifier = "primaryIdentifier"
	FieldAuxIdentifier     = "auxIdentifier"
	FieldAmount            = "amount"
	FieldContactMobile     = "contactMobile"
	FieldDateOfBirth       = "dateOfBirth"
	FieldEmail             = "email"
)

// fingerprintFields are the fields whose change makes an in-flight fetch
// stale. Amount and email are deliberately excluded: they do not feed the
// bill-fetch call.
var fingerprintFields = map[string]struct{}{
	FieldPrimaryIdentifier: {},
	FieldAuxIdentifier:     {},
	FieldContactMobile:     {},
	FieldDateOfBirth:       {},
}

func IsFingerprintField(key string) bool {
	_, ok := fingerprintFields[key]
	return ok
}

// TransactionRequest is one logical user intent to pay. RequestID is the
// idempotency key: resubmission with the same RequestID is a retry of the
// same transaction, never a new charge.
type TransactionRequest struct {
	RequestID         string              `json:"requestId"`
	UserID            string              `json:"userId"`
	Provider          ProviderDescriptor  `json:"provider"`
	PrimaryIdentifier string              `json:"primaryIdentifier"`
	AuxIdentifier     string              `json:"auxIdentifier,omitempty"`
	Amount            decimal.NullDecimal `json:"amount,omitempty"`
	Metadata          map[string]string   `json:"metadata,omitempty"`
}

func (r *TransactionRequest) Meta(key string) string {
	if r.Metadata == nil {
		return ""
	}
	return r.Metadata[key]
}

func (r *TransactionRequest) SetMeta(key, value string) {
	if r.Metadata == nil {
		r.Metadata = map[string]string{}
	}
	r.Metadata[key] = value
}

// Fingerprint identifies the exact input a fetch was issued for. A response
// is applied only while the fingerprint it was tagged with is still current.
func (r *TransactionRequest) Fingerprint() string {
	return strings.Join([]string{
		r.Provider.ID,
		r.Provider.OperatorCode,
		r.PrimaryIdentifier,
		r.AuxIdentifier,
		r.Meta(FieldContactMobile),
		r.Meta(FieldDateOfBirth),
	}, "|")
}

func (r *TransactionRequest) HasAmount() bool {
	return r.Amount.Valid
}

// FieldViolation is one validator finding: a warning surfaced to the caller,
// never an exception.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type ValidationStage string

const (
	StageFetch  ValidationStage = "fetch"
	StageSubmit ValidationStage = "submit"
)
