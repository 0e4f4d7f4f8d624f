package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rupiksha/go-ppob-transaction/internal/models"
	"github.com/rupiksha/go-ppob-transaction/internal/monitoring"
)

// Authorization is the outcome of the pre-submission balance check.
type Authorization struct {
	Authorized bool
	Balance    decimal.Decimal
	Shortfall  decimal.Decimal
}

// WalletGuardService blocks submission when the payable amount exceeds the
// wallet balance snapshot captured at confirmation time. The snapshot is
// advisory only; the settlement gateway does the authoritative debit.
type WalletGuardService interface {
	Authorize(ctx context.Context, amount decimal.Decimal, snapshot models.WalletSnapshot) Authorization
}

type walletGuard service

func (g *walletGuard) Authorize(ctx context.Context, amount decimal.Decimal, snapshot models.WalletSnapshot) Authorization {
	monitor := monitoring.New(ctx)
	defer monitor.Finish()

	if amount.LessThanOrEqual(snapshot.Balance) {
		return Authorization{Authorized: true, Balance: snapshot.Balance}
	}

	return Authorization{
		Authorized: false,
		Balance:    snapshot.Balance,
		Shortfall:  amount.Sub(snapshot.Balance),
	}
}
