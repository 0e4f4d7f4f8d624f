package models

// ErrorKind is the closed failure taxonomy every gateway or local failure is
// classified into.
type ErrorKind string

const (
	ErrorKindValidation        ErrorKind = "VALIDATION"
	ErrorKindInsufficientFunds ErrorKind = "INSUFFICIENT_FUNDS"

	ErrorKindInvalidAccount             ErrorKind = "INVALID_ACCOUNT"
	ErrorKindAccountSuspended           ErrorKind = "ACCOUNT_SUSPENDED"
	ErrorKindAccountBlocked             ErrorKind = "ACCOUNT_BLOCKED"
	ErrorKindInvalidAmount              ErrorKind = "INVALID_AMOUNT"
	ErrorKindGatewayInsufficientBalance ErrorKind = "GATEWAY_INSUFFICIENT_BALANCE"
	ErrorKindDuplicateTransaction       ErrorKind = "DUPLICATE_TRANSACTION"
	ErrorKindAlreadyPaid                ErrorKind = "ALREADY_PAID"
	ErrorKindProviderError              ErrorKind = "PROVIDER_ERROR"
	ErrorKindGatewayDown                ErrorKind = "GATEWAY_DOWN"
	ErrorKindInternalError              ErrorKind = "INTERNAL_ERROR"

	ErrorKindTimeout          ErrorKind = "TIMEOUT"
	ErrorKindAmbiguousOutcome ErrorKind = "AMBIGUOUS_OUTCOME"

	ErrorKindUnknown ErrorKind = "UNKNOWN"
)

// userFixableKinds are failures the user can recover from by editing input.
var userFixableKinds = map[ErrorKind]bool{
	ErrorKindValidation:     true,
	ErrorKindInvalidAccount: true,
	ErrorKindInvalidAmount:  true,
	ErrorKindAlreadyPaid:    true,
}

// retrySafeKinds are failures with no evidence of gateway-side acceptance; a
// retry with the SAME requestId is an idempotent retry, not a new charge.
var retrySafeKinds = map[ErrorKind]bool{
	ErrorKindTimeout:     true,
	ErrorKindGatewayDown: true,
}

// ambiguousKinds require a status reconciliation query before any further
// submit for the same identifier and amount.
var ambiguousKinds = map[ErrorKind]bool{
	ErrorKindTimeout:          true,
	ErrorKindAmbiguousOutcome: true,
}

func (k ErrorKind) UserFixable() bool { return userFixableKinds[k] }
func (k ErrorKind) RetrySafe() bool   { return retrySafeKinds[k] }
func (k ErrorKind) Ambiguous() bool   { return ambiguousKinds[k] }

// CodeEntry maps one gateway short-code to its kind and display text.
type CodeEntry struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// GatewayCodeTable is the versioned short-code contract consumed by the
// error translator. Treated as external configuration: unmapped codes
// resolve to ErrorKindUnknown with the raw message preserved.
type GatewayCodeTable struct {
	Version string               `json:"version"`
	Codes   map[string]CodeEntry `json:"codes"`
}

// DefaultGatewayCodeTable is the stable short-code contract of the billing
// and settlement gateways.
func DefaultGatewayCodeTable() GatewayCodeTable {
	return GatewayCodeTable{
		Version: "2024-09",
		Codes: map[string]CodeEntry{
			"IAC": {ErrorKindInvalidAccount, "Invalid User Account"},
			"ICI": {ErrorKindInvalidAccount, "Invalid Customer ID / Consumer No."},
			"RNF": {ErrorKindInvalidAccount, "Remitter Not Found"},
			"IUD": {ErrorKindInvalidAccount, "Invalid User Data"},
			"NRS": {ErrorKindInvalidAccount, "No Result Found (Check Details)"},

			"ACS": {ErrorKindAccountSuspended, "Account Suspended"},
			"AAB": {ErrorKindAccountBlocked, "Account Blocked"},
			"OUI": {ErrorKindAccountSuspended, "Outlet Inactive"},
			"SDB": {ErrorKindAccountSuspended, "Service Barred"},

			"ITA": {ErrorKindInvalidAmount, "Invalid Transaction Amount"},
			"TAB": {ErrorKindInvalidAmount, "Transaction Amount Temporarily Barred"},
			"SLR": {ErrorKindInvalidAmount, "Service Limit Reached"},

			"IAB": {ErrorKindGatewayInsufficientBalance, "Insufficient Balance"},

			"RTO": {ErrorKindTimeout, "Request Timed Out"},
			"TUP": {ErrorKindAmbiguousOutcome, "Transaction Under Process"},
			"TSU": {ErrorKindAmbiguousOutcome, "Transaction Status Unavailable"},

			"DTX": {ErrorKindDuplicateTransaction, "Duplicate Transaction"},
			"DRD": {ErrorKindDuplicateTransaction, "Duplicate Request ID"},

			"NPD": {ErrorKindAlreadyPaid, "No Payment Due / Bill Already Paid"},

			"SPE": {ErrorKindProviderError, "Service Provider Error"},
			"SPD": {ErrorKindGatewayDown, "Service Provider Down"},

			"ISE": {ErrorKindInternalError, "System Error"},
			"IPE": {ErrorKindInternalError, "Internal Processing Error"},
			"ERR": {ErrorKindInternalError, "Service Error"},

			"SNA": {ErrorKindProviderError, "Service Not Allowed"},
			"ISR": {ErrorKindProviderError, "Invalid Service Type"},
			"IRP": {ErrorKindProviderError, "Invalid Request Parameters"},
			"IRI": {ErrorKindProviderError, "Invalid Request ID"},
			"ITI": {ErrorKindProviderError, "Invalid Transaction ID"},
			"EXP": {ErrorKindProviderError, "Expired"},

			"OUE": {ErrorKindUnknown, "Unknown Error"},
		},
	}
}
