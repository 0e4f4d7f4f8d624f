package repositories

import (
	"context"
	"time"

	"github.com/rupiksha/go-ppob-transaction/internal/models"
)

// CatalogRepository is the read-only provider catalog: prefix-to-operator
// tables and biller directories. Consumed, never mutated.
type CatalogRepository interface {
	LookupPrefix(ctx context.Context, prefix string) (models.PrefixEntry, bool, error)
	GetOperator(ctx context.Context, category models.ProviderCategory, name string) (models.OperatorEntry, bool, error)
	GetBiller(ctx context.Context, id string) (models.BillerEntry, bool, error)
	ListBillers(ctx context.Context, category models.ProviderCategory) ([]models.BillerEntry, error)
}

// BillingGatewayRepository fronts the external bill-fetch gateway.
type BillingGatewayRepository interface {
	FetchBill(ctx context.Context, req models.BillFetchRequest) (models.BillFetchResponse, error)
}

// SettlementGatewayRepository fronts the external payment gateway.
type SettlementGatewayRepository interface {
	PayBill(ctx context.Context, req models.BillPayRequest) (models.SubmitResponse, error)
	SubmitRecharge(ctx context.Context, req models.RechargeRequest) (models.SubmitResponse, error)
	QueryStatus(ctx context.Context, requestID string) (models.StatusQueryResponse, error)
}

// WalletRepository reads the agent's wallet balance. This engine never
// debits or credits: the settlement gateway owns the bookkeeping.
type WalletRepository interface {
	GetSnapshot(ctx context.Context, userID string) (models.WalletSnapshot, error)
}

// SubmissionRepository stores the per-requestId idempotency records that
// make submission single-flight, and lets the reconciliation worker walk
// ambiguous outcomes.
type SubmissionRepository interface {
	Get(ctx context.Context, requestID string) (models.SubmissionRecord, bool, error)
	Save(ctx context.Context, rec models.SubmissionRecord, ttl time.Duration) error
	// SetInFlight atomically claims the requestId; returns false when a
	// record already exists.
	SetInFlight(ctx context.Context, rec models.SubmissionRecord, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, requestID string) error
	ListAmbiguous(ctx context.Context) ([]models.SubmissionRecord, error)
}
