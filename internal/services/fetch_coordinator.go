package services

import (
	"context"
	"sync"
	"time"

	"github.com/rupiksha/go-ppob-transaction/internal/common/log"
	"github.com/rupiksha/go-ppob-transaction/internal/common/timer"
	"github.com/rupiksha/go-ppob-transaction/internal/models"
)

// FetchOutcome is one completed bill-fetch attempt, tagged with the sequence
// number and input fingerprint it was issued for.
type FetchOutcome struct {
	Seq         uint64
	Fingerprint string
	Bill        *models.FetchedBill
	Failure     *models.Failure
}

// FetchCoordinator owns bill-fetch scheduling for one transaction flow. It
// debounces input edits, tags every dispatched fetch with a monotonically
// increasing sequence number, and discards any response that is no longer
// current when it lands. At most one result is ever delivered per current
// input.
type FetchCoordinator struct {
	srv *Services

	debouncer *timer.Debouncer
	timeout   time.Duration

	mu  sync.Mutex
	seq uint64

	// apply receives outcomes that survived the staleness check. Called on
	// the fetch goroutine with no coordinator locks held.
	apply func(FetchOutcome)
}

func newFetchCoordinator(srv *Services, category models.ProviderCategory, apply func(FetchOutcome)) *FetchCoordinator {
	orch := srv.conf.Orchestrator
	return &FetchCoordinator{
		srv:       srv,
		debouncer: timer.NewDebouncer(orch.DebounceFor(string(category))),
		timeout:   orch.FetchTimeout,
		apply:     apply,
	}
}

// ScheduleFetch (re)arms the debounce window for the given request. Edits
// arriving inside the window replace the pending fetch; only the final state
// of a typing burst reaches the gateway.
func (c *FetchCoordinator) ScheduleFetch(ctx context.Context, req *models.TransactionRequest) {
	snapshot := cloneRequest(req)
	fields := log.ContextFields(ctx)

	c.debouncer.Trigger(func() {
		c.dispatch(fields, snapshot)
	})
}

// FetchNow bypasses the debounce window for explicit user-initiated fetches.
// Any pending debounced fetch is superseded.
func (c *FetchCoordinator) FetchNow(ctx context.Context, req *models.TransactionRequest) uint64 {
	c.debouncer.Cancel()
	return c.dispatch(log.ContextFields(ctx), cloneRequest(req))
}

// Invalidate drops the pending debounced fetch and advances the sequence so
// any in-flight response lands stale. Called when a fingerprint field
// changes or the flow resets.
func (c *FetchCoordinator) Invalidate() {
	c.debouncer.Cancel()

	c.mu.Lock()
	c.seq++
	c.mu.Unlock()
}

// CurrentSeq returns the most recently issued sequence number.
func (c *FetchCoordinator) CurrentSeq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

func (c *FetchCoordinator) dispatch(fields []log.Field, req *models.TransactionRequest) uint64 {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	fingerprint := req.Fingerprint()

	go c.execute(fields, seq, fingerprint, req)
	return seq
}

// execute performs the gateway call on its own goroutine. The context is
// detached from the originating HTTP request: the fetch outlives the edit
// that scheduled it.
func (c *FetchCoordinator) execute(fields []log.Field, seq uint64, fingerprint string, req *models.TransactionRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	ctx = log.ContextWithFields(ctx, fields...)

	outcome := FetchOutcome{Seq: seq, Fingerprint: fingerprint}

	resp, err := c.srv.billingGateway.FetchBill(ctx, models.BillFetchRequest{
		Biller:     req.Provider.ID,
		ConsumerNo: req.PrimaryIdentifier,
		Opcode:     req.Provider.OperatorCode,
		Category:   req.Provider.Category,
		AuxField:   req.AuxIdentifier,
		DOB:        req.Meta(models.FieldDateOfBirth),
		Mobile:     req.Meta(models.FieldContactMobile),
		Email:      req.Meta(models.FieldEmail),
	})

	switch {
	case err != nil:
		failure := c.srv.Translator.TranslateTransportError(err)
		outcome.Failure = &failure
	case !resp.Success || resp.Bill == nil:
		failure := c.srv.Translator.TranslateCode(resp.Code, resp.Message)
		outcome.Failure = &failure
	default:
		outcome.Bill = resp.Bill
	}

	c.mu.Lock()
	stale := seq != c.seq
	c.mu.Unlock()

	if stale {
		log.Debug(ctx, "[FETCH-COORDINATOR] discarding stale fetch result",
			log.Uint64("seq", seq), log.Uint64("currentSeq", c.CurrentSeq()))
		c.srv.metric.GetOrchestratorPrometheus().RecordStaleFetchDiscarded()
		return
	}

	c.apply(outcome)
}

// cloneRequest snapshots the request so later edits cannot race the fetch
// goroutine.
func cloneRequest(req *models.TransactionRequest) *models.TransactionRequest {
	cp := *req
	if req.Metadata != nil {
		cp.Metadata = make(map[string]string, len(req.Metadata))
		for k, v := range req.Metadata {
			cp.Metadata[k] = v
		}
	}
	return &cp
}
