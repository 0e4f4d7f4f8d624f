package models

import (
	"github.com/shopspring/decimal"
)

// Wire payloads of the external billing and settlement gateways.

type BillFetchRequest struct {
	Biller     string           `json:"biller"`
	ConsumerNo string           `json:"consumerNo"`
	Opcode     string           `json:"opcode"`
	Category   ProviderCategory `json:"category"`
	AuxField   string           `json:"auxField,omitempty"`
	DOB        string           `json:"dob,omitempty"`
	Mobile     string           `json:"mobile"`
	Email      string           `json:"email,omitempty"`
}

type BillFetchResponse struct {
	Success bool         `json:"success"`
	Bill    *FetchedBill `json:"bill,omitempty"`
	Message string       `json:"message,omitempty"`
	Code    string       `json:"code,omitempty"`
}

type BillPayRequest struct {
	UserID     string           `json:"userId"`
	ConsumerNo string           `json:"consumerNo"`
	Opcode     string           `json:"opcode"`
	Amount     decimal.Decimal  `json:"amount"`
	Category   ProviderCategory `json:"category"`
	AuxField   string           `json:"auxField,omitempty"`
	DOB        string           `json:"dob,omitempty"`
	Mobile     string           `json:"mobile,omitempty"`
	Email      string           `json:"email,omitempty"`
	RequestID  string           `json:"requestId"`
}

type RechargeRequest struct {
	UserID       string          `json:"userId"`
	Mobile       string          `json:"mobile"`
	OperatorCode string          `json:"operator"`
	Circle       string          `json:"circle,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	ServiceType  string          `json:"serviceType"`
	RequestID    string          `json:"requestId"`
}

type SubmitResponse struct {
	Success bool   `json:"success"`
	TxID    string `json:"txid,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

type StatusQueryResponse struct {
	Status  string `json:"status"`
	TxID    string `json:"txid,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

const (
	GatewayStatusSuccess = "SUCCESS"
	GatewayStatusFailed  = "FAILED"
	GatewayStatusPending = "PENDING"
)

// RetryableHTTPCodes are transport-level statuses the resty clients retry.
var RetryableHTTPCodes = map[int]struct{}{
	502: {},
	503: {},
	504: {},
}
