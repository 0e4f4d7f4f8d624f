package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

const (
	LayerRepository = "repositories"
	LayerService    = "services"
	LayerDelivery   = "deliveries"
	LayerUnknown    = "unknown"
)

// layerOrder decides which layer a caller file belongs to. Checked in
// order so nested paths resolve to the innermost match.
var layerOrder = []string{LayerRepository, LayerService, LayerDelivery}

type Monitor struct {
	ctx         context.Context
	segmentName string
	layer       string
	start       time.Time
	segment     *newrelic.Segment
}

type initOptions struct {
	layer       string
	segmentName string
}

type InitOption func(*initOptions)

func WithLayer(layer string) InitOption {
	return func(o *initOptions) {
		o.layer = layer
	}
}

func WithSegmentName(segmentName string) InitOption {
	return func(o *initOptions) {
		o.segmentName = segmentName
	}
}

// New opens a newrelic segment named after the calling function. Call it
// first thing in the instrumented function: the caller lookup goes exactly
// one frame up.
func New(ctx context.Context, opts ...InitOption) *Monitor {
	fOpts := &initOptions{}
	for _, opt := range opts {
		opt(fOpts)
	}

	if fOpts.segmentName == "" {
		fOpts.segmentName, fOpts.layer = callerSegment()
	}

	txn := newrelic.FromContext(ctx)
	segment := txn.StartSegment(fOpts.segmentName)
	if segment != nil {
		segment.AddAttribute("layer", fOpts.layer)
	}

	return &Monitor{
		ctx:         ctx,
		layer:       fOpts.layer,
		start:       time.Now(),
		segmentName: fOpts.segmentName,
		segment:     segment,
	}
}

func callerSegment() (name, layer string) {
	// skip=2: callerSegment -> New -> instrumented function
	pc, file, _, ok := runtime.Caller(2)
	if !ok {
		return "unknown", LayerUnknown
	}

	name = "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = getSegmentName(fn.Name())
	}

	layer = LayerUnknown
	for _, candidate := range layerOrder {
		if strings.Contains(file, candidate) {
			layer = candidate
			break
		}
	}

	return name, layer
}

func NewMiddlewareRoundTripper(next http.RoundTripper) http.RoundTripper {
	// the nr txn rides on request.Context()
	if next == nil {
		next = http.DefaultTransport
	}

	return newrelic.NewRoundTripper(next)
}
