package models

import (
	"strings"
)

type ProviderCategory string

const (
	CategoryMobile      ProviderCategory = "mobile"
	CategoryDTH         ProviderCategory = "dth"
	CategoryElectricity ProviderCategory = "electricity"
	CategoryWater       ProviderCategory = "water"
	CategoryGas         ProviderCategory = "gas"
	CategoryBroadband   ProviderCategory = "broadband"
	CategoryLandline    ProviderCategory = "landline"
	CategoryInsurance   ProviderCategory = "insurance"
	CategoryCreditCard  ProviderCategory = "creditcard"
	CategoryLoan        ProviderCategory = "loan"

	// Banking-correspondent cash flows. Submit-only, higher amount floor.
	CategoryCashWithdrawal ProviderCategory = "cash_withdrawal"
	CategoryCashManagement ProviderCategory = "cash_management"
)

func (c ProviderCategory) Valid() bool {
	switch c {
	case CategoryMobile, CategoryDTH, CategoryElectricity, CategoryWater,
		CategoryGas, CategoryBroadband, CategoryLandline, CategoryInsurance,
		CategoryCreditCard, CategoryLoan, CategoryCashWithdrawal,
		CategoryCashManagement:
		return true
	}
	return false
}

// IsCashLike reports whether the category carries the higher minimum-amount
// floor of banking-correspondent cash operations.
func (c ProviderCategory) IsCashLike() bool {
	return c == CategoryCashWithdrawal || c == CategoryCashManagement
}

// RequiresDateOfBirth reports whether bill fetch for the category needs a
// date of birth before the gateway is called.
func (c ProviderCategory) RequiresDateOfBirth() bool {
	return c == CategoryInsurance
}

// OpcodeNone is the catalog sentinel for billers without a gateway code.
const OpcodeNone = "NONE"

// ProviderDescriptor is the canonical identity of a biller or operator.
// Immutable; produced by resolution or manual selection, discarded when the
// identifier changes.
type ProviderDescriptor struct {
	ID                  string           `json:"id"`
	DisplayName         string           `json:"displayName"`
	OperatorCode        string           `json:"operatorCode"`
	Category            ProviderCategory `json:"category"`
	Circle              string           `json:"circle,omitempty"`
	SupportsOnlineFetch bool             `json:"supportsOnlineFetch"`
	// AuxFieldLabel names the biller-specific auxiliary field when one is
	// required, e.g. "Billing Unit (4 digits)".
	AuxFieldLabel string `json:"auxFieldLabel,omitempty"`
}

// NormalizeOpcode maps absent/sentinel operator codes to the empty string.
func NormalizeOpcode(opcode string) string {
	trimmed := strings.TrimSpace(strings.ToUpper(opcode))
	if trimmed == "" || trimmed == OpcodeNone || trimmed == "UNDEFINED" {
		return ""
	}
	return trimmed
}

// Resolution is the outcome of running the resolver over a raw identifier.
// Unresolved is a valid outcome, not an error: it means the caller must pick
// a provider manually.
type Resolution struct {
	Provider ProviderDescriptor `json:"provider"`
	Resolved bool               `json:"resolved"`
}

func Unresolved() Resolution {
	return Resolution{}
}

func ResolvedTo(p ProviderDescriptor) Resolution {
	return Resolution{Provider: p, Resolved: true}
}
