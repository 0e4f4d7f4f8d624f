package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rupiksha/go-ppob-transaction/internal/common/httpclient"
	"github.com/rupiksha/go-ppob-transaction/internal/common/log"
	"github.com/rupiksha/go-ppob-transaction/internal/common/metrics"
	"github.com/rupiksha/go-ppob-transaction/internal/config"
	"github.com/rupiksha/go-ppob-transaction/internal/models"
	"github.com/rupiksha/go-ppob-transaction/internal/monitoring"
)

const billingLogPrefix = "[BILLING-GATEWAY]"

type billingGateway struct {
	baseURL string
	wrapper *httpclient.RequestWrapper
	cfg     config.HTTPConfiguration
}

// NewBillingGatewayRepository builds the bill-fetch gateway client. The
// call timeout stays caller-controlled through ctx; the client-level
// timeout is the upper bound from config.
func NewBillingGatewayRepository(cfg config.HTTPConfiguration, m metrics.Metrics) BillingGatewayRepository {
	restyClient := newGatewayRestyClient(cfg)

	return &billingGateway{
		baseURL: cfg.BaseURL,
		wrapper: httpclient.NewRequestWrapper(restyClient, m, "billing-gateway", billingLogPrefix),
		cfg:     cfg,
	}
}

func newGatewayRestyClient(cfg config.HTTPConfiguration) *resty.Client {
	restyClient := resty.New()
	restyClient = restyClient.AddRetryCondition(func(r *resty.Response, err error) bool {
		if r == nil {
			return false
		}

		_, shouldRetry := models.RetryableHTTPCodes[r.StatusCode()]
		return shouldRetry
	})

	return restyClient.
		SetTransport(monitoring.NewMiddlewareRoundTripper(restyClient.GetClient().Transport)).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(time.Duration(cfg.RetryWaitTime) * time.Millisecond).
		SetTimeout(cfg.Timeout)
}

func (g *billingGateway) FetchBill(ctx context.Context, req models.BillFetchRequest) (out models.BillFetchResponse, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	url := fmt.Sprintf("%s/bill-fetch", g.baseURL)

	httpRes, err := g.wrapper.DoRequest(ctx, http.MethodPost, url, func(r *resty.Request) *resty.Request {
		return r.
			SetHeader("authkey", g.cfg.AuthKey).
			SetHeader("authpass", g.cfg.AuthPass).
			SetBody(req)
	})
	if err != nil {
		return out, fmt.Errorf("bill fetch call failed: %w", err)
	}

	if err = json.Unmarshal(httpRes.Body(), &out); err != nil {
		log.Warn(ctx, billingLogPrefix, log.Err(err), log.String("consumerNo", req.ConsumerNo))
		return out, fmt.Errorf("unable to decode bill fetch response: %w", err)
	}

	if out.Bill != nil {
		out.Bill.RawProviderPayload = json.RawMessage(httpRes.Body())
	}

	return out, nil
}
