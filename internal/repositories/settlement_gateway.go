package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/rupiksha/go-ppob-transaction/internal/common/httpclient"
	"github.com/rupiksha/go-ppob-transaction/internal/common/metrics"
	"github.com/rupiksha/go-ppob-transaction/internal/config"
	"github.com/rupiksha/go-ppob-transaction/internal/models"
	"github.com/rupiksha/go-ppob-transaction/internal/monitoring"
)

const settlementLogPrefix = "[SETTLEMENT-GATEWAY]"

type settlementGateway struct {
	baseURL string
	wrapper *httpclient.RequestWrapper
	cfg     config.HTTPConfiguration
}

func NewSettlementGatewayRepository(cfg config.HTTPConfiguration, m metrics.Metrics) SettlementGatewayRepository {
	restyClient := newGatewayRestyClient(cfg)

	return &settlementGateway{
		baseURL: cfg.BaseURL,
		wrapper: httpclient.NewRequestWrapper(restyClient, m, "settlement-gateway", settlementLogPrefix),
		cfg:     cfg,
	}
}

func (g *settlementGateway) post(ctx context.Context, url string, body any, out any) error {
	httpRes, err := g.wrapper.DoRequest(ctx, http.MethodPost, url, func(r *resty.Request) *resty.Request {
		return r.
			SetHeader("authkey", g.cfg.AuthKey).
			SetHeader("authpass", g.cfg.AuthPass).
			SetBody(body)
	})
	if err != nil {
		return err
	}

	if err = json.Unmarshal(httpRes.Body(), out); err != nil {
		return fmt.Errorf("unable to decode settlement response: %w", err)
	}

	return nil
}

func (g *settlementGateway) PayBill(ctx context.Context, req models.BillPayRequest) (out models.SubmitResponse, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	url := fmt.Sprintf("%s/bill-pay", g.baseURL)
	if err = g.post(ctx, url, req, &out); err != nil {
		return out, fmt.Errorf("bill pay call failed: %w", err)
	}

	return out, nil
}

func (g *settlementGateway) SubmitRecharge(ctx context.Context, req models.RechargeRequest) (out models.SubmitResponse, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	url := fmt.Sprintf("%s/recharge", g.baseURL)
	if err = g.post(ctx, url, req, &out); err != nil {
		return out, fmt.Errorf("recharge call failed: %w", err)
	}

	return out, nil
}

func (g *settlementGateway) QueryStatus(ctx context.Context, requestID string) (out models.StatusQueryResponse, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	url := fmt.Sprintf("%s/recharge-status", g.baseURL)
	body := map[string]string{"requestId": requestID}
	if err = g.post(ctx, url, body, &out); err != nil {
		return out, fmt.Errorf("status query call failed: %w", err)
	}

	return out, nil
}
