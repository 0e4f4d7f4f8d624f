package models

import (
	"time"
)

// Failure describes a terminal-for-this-attempt outcome: the translated
// kind, the gateway short-code when one was supplied, and a message the
// caller can render verbatim.
type Failure struct {
	Kind         ErrorKind `json:"kind"`
	ProviderCode string    `json:"providerCode,omitempty"`
	Message      string    `json:"message"`
}

func (f Failure) Error() string {
	return string(f.Kind) + ": " + f.Message
}

// SettlementResult is the outcome of one submission. Failure nil means
// success.
type SettlementResult struct {
	TransactionID string    `json:"transactionId,omitempty"`
	SettledAt     time.Time `json:"settledAt,omitempty"`
	Failure       *Failure  `json:"failure,omitempty"`
}

func (r SettlementResult) Succeeded() bool {
	return r.Failure == nil
}

// SubmissionStatus is the lifecycle of an idempotency record kept per
// requestId.
type SubmissionStatus string

const (
	SubmissionInFlight  SubmissionStatus = "IN_FLIGHT"
	SubmissionSettled   SubmissionStatus = "SETTLED"
	SubmissionFailed    SubmissionStatus = "FAILED"
	SubmissionAmbiguous SubmissionStatus = "AMBIGUOUS"
)

// SubmissionRecord is what the submitter stores per requestId to make
// submission single-flight and retries idempotent, and what the
// reconciliation worker walks to resolve ambiguous outcomes.
type SubmissionRecord struct {
	RequestID     string           `json:"requestId"`
	UserID        string           `json:"userId"`
	Identifier    string           `json:"identifier"`
	OperatorCode  string           `json:"operatorCode"`
	Category      ProviderCategory `json:"category"`
	Amount        string           `json:"amount"`
	Status        SubmissionStatus `json:"status"`
	TransactionID string           `json:"transactionId,omitempty"`
	FailureKind   ErrorKind        `json:"failureKind,omitempty"`
	SubmittedAt   time.Time        `json:"submittedAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}
