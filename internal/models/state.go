package models

import (
	"time"
)

// OrchestratorPhase is the closed state set of the transaction flow.
type OrchestratorPhase string

const (
	PhaseIdle          OrchestratorPhase = "IDLE"
	PhaseResolving     OrchestratorPhase = "RESOLVING"
	PhaseAwaitingInput OrchestratorPhase = "AWAITING_INPUT"
	PhaseFetching      OrchestratorPhase = "FETCHING"
	PhaseFetched       OrchestratorPhase = "FETCHED"
	PhaseSubmitting    OrchestratorPhase = "SUBMITTING"
	PhaseSettled       OrchestratorPhase = "SETTLED"
	PhaseFailed        OrchestratorPhase = "FAILED"
)

// Terminal reports whether only an explicit reset leaves the phase.
func (p OrchestratorPhase) Terminal() bool {
	return p == PhaseSettled || p == PhaseFailed
}

// OrchestratorState is the externally visible snapshot of the state machine.
// Exactly one phase is current at a time.
type OrchestratorState struct {
	Phase      OrchestratorPhase  `json:"phase"`
	Provider   *ProviderDescriptor `json:"provider,omitempty"`
	Resolved   bool               `json:"resolved"`
	FetchSeq   uint64             `json:"fetchSeq,omitempty"`
	Bill       *FetchedBill       `json:"bill,omitempty"`
	Result     *SettlementResult  `json:"result,omitempty"`
	Violations []FieldViolation   `json:"violations,omitempty"`

	// LastFailure carries the most recent non-terminal failure, e.g. a
	// fetch error that returned the flow to AwaitingInput.
	LastFailure *Failure `json:"lastFailure,omitempty"`
}

// StateChange is one transition event delivered to subscribers.
type StateChange struct {
	RequestID string            `json:"requestId,omitempty"`
	From      OrchestratorPhase `json:"from"`
	To        OrchestratorPhase `json:"to"`
	State     OrchestratorState `json:"state"`
	At        time.Time         `json:"at"`
}

// NotificationEvent is published on terminal transitions for side-effect
// consumers (voice, receipt rendering). One-way: consumers have no influence
// on orchestration.
type NotificationEvent struct {
	RequestID     string            `json:"requestId"`
	UserID        string            `json:"userId"`
	Category      ProviderCategory  `json:"category"`
	Provider      string            `json:"provider"`
	Identifier    string            `json:"identifier"`
	Amount        string            `json:"amount,omitempty"`
	Phase         OrchestratorPhase `json:"phase"`
	TransactionID string            `json:"transactionId,omitempty"`
	FailureKind   ErrorKind         `json:"failureKind,omitempty"`
	Message       string            `json:"message,omitempty"`
	At            time.Time         `json:"at"`
}
