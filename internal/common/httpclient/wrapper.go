package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rupiksha/go-ppob-transaction/internal/common/log"
	"github.com/rupiksha/go-ppob-transaction/internal/common/metrics"
)

// RequestWrapper adds request/response logging and the client latency
// histogram around a resty client. One wrapper per downstream gateway.
type RequestWrapper struct {
	client      *resty.Client
	metrics     metrics.Metrics
	serviceName string
	logPrefix   string
}

func NewRequestWrapper(client *resty.Client, metrics metrics.Metrics, serviceName, logPrefix string) *RequestWrapper {
	return &RequestWrapper{
		client:      client,
		metrics:     metrics,
		serviceName: serviceName,
		logPrefix:   logPrefix,
	}
}

func (w *RequestWrapper) DoRequest(ctx context.Context, method, url string, reqFunc func(*resty.Request) *resty.Request) (*resty.Response, error) {
	start := time.Now()

	logFields := []log.Field{
		log.String("url", url),
		log.String("method", method),
	}
	log.Info(ctx, w.logPrefix, append(logFields, log.String("message", "send request"))...)

	req := w.client.R().SetContext(ctx)
	if reqFunc != nil {
		req = reqFunc(req)
	}

	httpRes, err := w.execute(req, method, url)
	if err != nil {
		log.Warn(ctx, w.logPrefix, append(logFields, log.Err(err))...)
		return nil, fmt.Errorf("failed send request: %w", err)
	}

	if w.metrics != nil {
		w.metrics.GetHTTPClientPrometheus().Record(
			time.Since(start), w.serviceName, method, url, httpRes.StatusCode())
	}

	logFields = append(logFields, log.String("httpStatusCode", httpRes.Status()))
	if httpRes.IsSuccess() {
		log.Info(ctx, w.logPrefix, logFields...)
	} else {
		log.Warn(ctx, w.logPrefix, append(logFields, log.Any("httpResponse", httpRes.Body()))...)
	}

	return httpRes, nil
}

func (w *RequestWrapper) execute(req *resty.Request, method, url string) (*resty.Response, error) {
	switch method {
	case http.MethodGet:
		return req.Get(url)
	case http.MethodPost:
		return req.Post(url)
	case http.MethodPut:
		return req.Put(url)
	case http.MethodDelete:
		return req.Delete(url)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}
}
