package common

import (
	"errors"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrDataNotFound         = errors.New("data not found")
	ErrInternalServerError  = errors.New("internal server error")
	ErrInvalidCategory      = errors.New("invalid provider category")
	ErrProviderNotFound     = errors.New("provider not found in catalog")
	ErrSessionNotFound      = errors.New("session not found or expired")
	ErrFetchNotSupported    = errors.New("online fetch not available for this provider")
	ErrNoFetchedBill        = errors.New("no fetched bill for this request")
	ErrInsufficientBalance  = errors.New("insufficient balance in wallet")
	ErrSubmissionInFlight   = errors.New("submission already in flight for this request")
	ErrAwaitingReconcile    = errors.New("previous submission outcome is ambiguous, reconcile before retrying")
	ErrNotRetrySafe         = errors.New("failure is not safely retryable, start a new transaction")
	ErrTerminalState        = errors.New("transaction is terminal, reset to start a new one")
	ErrNotInSubmittableState = errors.New("transaction is not ready for submission")
	ErrMissingRequest       = errors.New("no active transaction request")
)
