package monitoring

import (
	"time"

	"github.com/rupiksha/go-ppob-transaction/internal/common/log"
)

var messagePrefix = map[string]string{
	LayerRepository: "[REPOSITORY]",
	LayerService:    "[SERVICE]",
	LayerDelivery:   "[DELIVERY]",
	LayerUnknown:    "[-]",
}

type finishOptions struct {
	err       error
	logFields []log.Field
}

type FinishOption func(*finishOptions)

func WithFinishCheckError(err error) FinishOption {
	return func(o *finishOptions) {
		o.err = err
	}
}

func WithFinishLogFields(fields ...log.Field) FinishOption {
	return func(o *finishOptions) {
		o.logFields = fields
	}
}

// Finish ends the segment and writes the outcome log line. Repository-layer
// successes stay quiet; the service call above them already logs one.
func (m *Monitor) Finish(opts ...FinishOption) {
	fOpts := &finishOptions{}
	for _, opt := range opts {
		opt(fOpts)
	}

	if m.segment != nil {
		defer m.segment.End()
	}

	fields := append(fOpts.logFields,
		log.Any("processDuration", time.Since(m.start)))

	if fOpts.err != nil {
		fields = append(fields,
			log.String("status", "error"),
			log.Err(fOpts.err))
		log.Warn(m.ctx, messagePrefix[m.layer], fields...)
		return
	}

	if m.layer == LayerDelivery || m.layer == LayerService {
		fields = append(fields, log.String("status", "success"))
		log.Info(m.ctx, messagePrefix[m.layer], fields...)
	}
}
