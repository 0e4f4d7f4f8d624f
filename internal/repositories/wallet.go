package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/rupiksha/go-ppob-transaction/internal/common/httpclient"
	"github.com/rupiksha/go-ppob-transaction/internal/common/metrics"
	"github.com/rupiksha/go-ppob-transaction/internal/config"
	"github.com/rupiksha/go-ppob-transaction/internal/models"
	"github.com/rupiksha/go-ppob-transaction/internal/monitoring"
)

const walletLogPrefix = "[WALLET-SERVICE]"

type walletRepository struct {
	baseURL string
	wrapper *httpclient.RequestWrapper
	cfg     config.HTTPConfiguration
}

// NewWalletRepository reads wallet balances from the wallet service.
// Snapshots are intentionally never cached: the balance must be current at
// the moment of submission.
func NewWalletRepository(cfg config.HTTPConfiguration, m metrics.Metrics) WalletRepository {
	restyClient := newGatewayRestyClient(cfg)

	return &walletRepository{
		baseURL: cfg.BaseURL,
		wrapper: httpclient.NewRequestWrapper(restyClient, m, "wallet-service", walletLogPrefix),
		cfg:     cfg,
	}
}

func (r *walletRepository) GetSnapshot(ctx context.Context, userID string) (snapshot models.WalletSnapshot, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	url := fmt.Sprintf("%s/api/v1/wallets/%s/balance", r.baseURL, userID)

	httpRes, err := r.wrapper.DoRequest(ctx, http.MethodGet, url, func(req *resty.Request) *resty.Request {
		return req.SetHeader("X-Secret-Key", r.cfg.SecretKey)
	})
	if err != nil {
		return snapshot, fmt.Errorf("wallet balance call failed: %w", err)
	}

	var body struct {
		Balance string `json:"balance"`
		AsOf    string `json:"asOf"`
	}
	if err = json.Unmarshal(httpRes.Body(), &body); err != nil {
		return snapshot, fmt.Errorf("unable to decode wallet response: %w", err)
	}

	balance, err := decimal.NewFromString(body.Balance)
	if err != nil {
		return snapshot, fmt.Errorf("invalid wallet balance %q: %w", body.Balance, err)
	}

	asOf, err := time.Parse(time.RFC3339, body.AsOf)
	if err != nil {
		asOf = time.Now()
	}

	return models.WalletSnapshot{Balance: balance, AsOf: asOf}, nil
}
