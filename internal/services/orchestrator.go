package services

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rupiksha/go-ppob-transaction/internal/common"
	"github.com/rupiksha/go-ppob-transaction/internal/common/log"
	"github.com/rupiksha/go-ppob-transaction/internal/models"
	"github.com/rupiksha/go-ppob-transaction/internal/monitoring"
)

const orchestratorLogIdentifier = "[ORCHESTRATOR]"

const requestIDPrefix = "PPOB"

// Orchestrator drives one transaction flow through its state machine. All
// mutation goes through its methods; callers observe state via State and
// Subscribe. Exactly one phase is current at a time.
//
// Locking: the mutex protects req, state and subscribers. The fetch
// coordinator and the submitter are called with the lock released; their
// results re-enter through applyFetchOutcome and finalizeSubmission, which
// re-validate currency before applying anything.
type Orchestrator struct {
	srv         *Services
	coordinator *FetchCoordinator

	mu       sync.Mutex
	category models.ProviderCategory
	userID   string
	req      *models.TransactionRequest
	state    models.OrchestratorState
	// manualPin suppresses automatic re-resolution after an explicit
	// provider selection, until the identifier is cleared.
	manualPin bool
	closed    bool

	subs      map[int]chan models.StateChange
	nextSubID int
}

func newOrchestrator(srv *Services, category models.ProviderCategory, userID string) *Orchestrator {
	o := &Orchestrator{
		srv:      srv,
		category: category,
		userID:   userID,
		subs:     map[int]chan models.StateChange{},
	}
	o.coordinator = newFetchCoordinator(srv, category, o.applyFetchOutcome)

	o.mu.Lock()
	o.state.Phase = models.PhaseIdle
	o.beginLocked()
	o.mu.Unlock()

	return o
}

// beginLocked starts a fresh logical request: a new requestId, empty input,
// no provider pin.
func (o *Orchestrator) beginLocked() {
	o.req = &models.TransactionRequest{
		RequestID: o.srv.idGenerator.Generate(requestIDPrefix),
		UserID:    o.userID,
		Provider:  models.ProviderDescriptor{Category: o.category},
	}
	o.manualPin = false
	o.state = models.OrchestratorState{Phase: o.state.Phase}

	o.transitionLocked(models.PhaseResolving)
	o.transitionLocked(models.PhaseAwaitingInput)
}

func (o *Orchestrator) transitionLocked(to models.OrchestratorPhase) {
	from := o.state.Phase
	o.state.Phase = to
	o.srv.metric.GetOrchestratorPrometheus().RecordTransition(string(from), string(to))

	change := models.StateChange{
		RequestID: o.req.RequestID,
		From:      from,
		To:        to,
		State:     o.snapshotLocked(),
		At:        time.Now(),
	}
	for _, ch := range o.subs {
		select {
		case ch <- change:
		default:
			// Slow subscriber; transitions are never allowed to block the
			// state machine.
		}
	}
}

func (o *Orchestrator) snapshotLocked() models.OrchestratorState {
	s := o.state
	if o.state.Provider != nil {
		p := *o.state.Provider
		s.Provider = &p
	}
	if o.state.Bill != nil {
		b := *o.state.Bill
		s.Bill = &b
	}
	if o.state.Result != nil {
		r := *o.state.Result
		s.Result = &r
	}
	if o.state.LastFailure != nil {
		f := *o.state.LastFailure
		s.LastFailure = &f
	}
	s.Violations = append([]models.FieldViolation(nil), o.state.Violations...)
	return s
}

// State returns a copy of the current externally visible state.
func (o *Orchestrator) State() models.OrchestratorState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

// RequestID returns the current idempotency key.
func (o *Orchestrator) RequestID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.req.RequestID
}

// Request returns a copy of the current transaction request.
func (o *Orchestrator) Request() models.TransactionRequest {
	o.mu.Lock()
	defer o.mu.Unlock()
	return *cloneRequest(o.req)
}

// Subscribe registers for transition events. The returned cancel func must
// be called to release the subscription.
func (o *Orchestrator) Subscribe() (<-chan models.StateChange, func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.nextSubID
	o.nextSubID++
	ch := make(chan models.StateChange, 16)
	o.subs[id] = ch

	return ch, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if _, ok := o.subs[id]; ok {
			delete(o.subs, id)
			close(ch)
		}
	}
}

// UpdateField applies one input edit. Fingerprint fields invalidate any
// fetched bill and any in-flight fetch; the identifier additionally
// re-resolves the provider unless one was pinned manually. A passing fetch
// validation re-arms the debounced fetch.
func (o *Orchestrator) UpdateField(ctx context.Context, key, value string) (err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	o.mu.Lock()

	if o.state.Phase == models.PhaseSubmitting {
		o.mu.Unlock()
		return common.ErrSubmissionInFlight
	}
	if o.state.Phase == models.PhaseSettled {
		o.mu.Unlock()
		return common.ErrTerminalState
	}
	if o.state.Phase == models.PhaseFailed {
		// Only user-fixable failures can be edited through; everything
		// else needs an explicit reset. Editing abandons the failed
		// attempt, so the idempotency key rotates.
		if o.state.Result == nil || o.state.Result.Failure == nil ||
			!o.state.Result.Failure.Kind.UserFixable() {
			o.mu.Unlock()
			return common.ErrTerminalState
		}
		o.req.RequestID = o.srv.idGenerator.Generate(requestIDPrefix)
		o.state.Result = nil
		o.transitionLocked(models.PhaseAwaitingInput)
	}

	if applyErr := o.applyFieldLocked(key, value); applyErr != nil {
		o.mu.Unlock()
		return applyErr
	}

	if models.IsFingerprintField(key) {
		o.coordinator.Invalidate()
		o.state.Bill = nil
		o.state.LastFailure = nil
		if o.state.Phase == models.PhaseFetching || o.state.Phase == models.PhaseFetched {
			o.transitionLocked(models.PhaseAwaitingInput)
		}
	}

	// Clearing the identifier releases a manual provider pin; the next
	// identifier runs through resolution again.
	if key == models.FieldPrimaryIdentifier && value == "" {
		o.manualPin = false
	}

	if key == models.FieldPrimaryIdentifier && !o.manualPin {
		if resolveErr := o.resolveLocked(ctx); resolveErr != nil {
			o.mu.Unlock()
			return resolveErr
		}
	}

	o.state.Violations = o.srv.Validator.Validate(ctx, o.req, models.StageFetch)

	shouldSchedule := models.IsFingerprintField(key) &&
		len(o.state.Violations) == 0 &&
		o.req.Provider.SupportsOnlineFetch &&
		o.state.Phase == models.PhaseAwaitingInput

	req := cloneRequest(o.req)
	o.mu.Unlock()

	if shouldSchedule {
		o.coordinator.ScheduleFetch(ctx, req)
		o.noteFetchPending()
	}
	return nil
}

func (o *Orchestrator) applyFieldLocked(key, value string) error {
	switch key {
	case models.FieldPrimaryIdentifier:
		o.req.PrimaryIdentifier = value
	case models.FieldAuxIdentifier:
		o.req.AuxIdentifier = value
	case models.FieldAmount:
		if value == "" {
			o.req.Amount = decimal.NullDecimal{}
			return nil
		}
		amount, err := decimal.NewFromString(value)
		if err != nil {
			o.state.Violations = []models.FieldViolation{{Field: models.FieldAmount, Reason: "amount must be numeric"}}
			return common.ErrValidation
		}
		o.req.Amount = decimal.NewNullDecimal(amount)
	case models.FieldContactMobile, models.FieldDateOfBirth, models.FieldEmail:
		o.req.SetMeta(key, value)
	default:
		return common.ErrValidation
	}
	return nil
}

// resolveLocked re-runs provider resolution off the current identifier.
func (o *Orchestrator) resolveLocked(ctx context.Context) error {
	res, err := o.srv.Resolver.Resolve(ctx, o.category, o.req.PrimaryIdentifier)
	if err != nil {
		return err
	}

	if res.Resolved {
		o.req.Provider = res.Provider
		p := res.Provider
		o.state.Provider = &p
		o.state.Resolved = true
	} else {
		o.req.Provider = models.ProviderDescriptor{Category: o.category}
		o.state.Provider = nil
		o.state.Resolved = false
	}
	return nil
}

// noteFetchPending marks the flow as fetching while a debounced fetch is
// armed. A later edit that invalidates the input returns the flow to
// AwaitingInput before the fetch can dispatch.
func (o *Orchestrator) noteFetchPending() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state.Phase == models.PhaseAwaitingInput {
		o.transitionLocked(models.PhaseFetching)
	}
}

// SelectProvider pins the provider explicitly, overriding resolution until
// the identifier is cleared.
func (o *Orchestrator) SelectProvider(ctx context.Context, providerID string) (err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	desc, err := o.srv.Resolver.GetProvider(ctx, providerID)
	if err != nil {
		return err
	}
	if desc.Category != o.category {
		return common.ErrInvalidCategory
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state.Phase == models.PhaseSubmitting || o.state.Phase.Terminal() {
		return common.ErrTerminalState
	}

	// Changing provider changes the fingerprint.
	o.coordinator.Invalidate()
	o.state.Bill = nil
	o.state.LastFailure = nil

	o.req.Provider = desc
	o.manualPin = true
	p := desc
	o.state.Provider = &p
	o.state.Resolved = true

	if o.state.Phase == models.PhaseFetching || o.state.Phase == models.PhaseFetched {
		o.transitionLocked(models.PhaseAwaitingInput)
	}
	o.state.Violations = o.srv.Validator.Validate(ctx, o.req, models.StageFetch)
	return nil
}

// RequestFetch dispatches an immediate, non-debounced bill fetch. Providers
// without online fetch short-circuit without any gateway call.
func (o *Orchestrator) RequestFetch(ctx context.Context) (err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	o.mu.Lock()

	if o.state.Phase == models.PhaseSubmitting || o.state.Phase.Terminal() {
		o.mu.Unlock()
		return common.ErrTerminalState
	}
	if o.state.Provider == nil {
		o.mu.Unlock()
		return common.ErrProviderNotFound
	}
	if !o.req.Provider.SupportsOnlineFetch {
		o.mu.Unlock()
		return common.ErrFetchNotSupported
	}

	o.state.Violations = o.srv.Validator.Validate(ctx, o.req, models.StageFetch)
	if len(o.state.Violations) > 0 {
		o.mu.Unlock()
		return common.ErrValidation
	}

	if o.state.Phase == models.PhaseFetched {
		o.state.Bill = nil
		o.transitionLocked(models.PhaseAwaitingInput)
	}
	req := cloneRequest(o.req)
	o.mu.Unlock()

	seq := o.coordinator.FetchNow(ctx, req)

	o.mu.Lock()
	o.state.FetchSeq = seq
	if o.state.Phase == models.PhaseAwaitingInput {
		o.transitionLocked(models.PhaseFetching)
	}
	o.mu.Unlock()
	return nil
}

// applyFetchOutcome receives coordinator results that survived the sequence
// check. The fingerprint is re-checked against the live request: an edit
// that raced the response wins.
func (o *Orchestrator) applyFetchOutcome(outcome FetchOutcome) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || outcome.Fingerprint != o.req.Fingerprint() {
		o.srv.metric.GetOrchestratorPrometheus().RecordStaleFetchDiscarded()
		return
	}
	if o.state.Phase != models.PhaseFetching {
		return
	}

	o.state.FetchSeq = outcome.Seq

	if outcome.Failure != nil {
		o.state.LastFailure = outcome.Failure
		o.srv.metric.GetOrchestratorPrometheus().RecordGatewayOutcome("fetch", string(outcome.Failure.Kind))
		o.transitionLocked(models.PhaseAwaitingInput)
		return
	}

	o.state.Bill = outcome.Bill
	o.state.LastFailure = nil
	// Pre-fill the payable amount from the fetched bill when the user has
	// not typed one.
	if !o.req.HasAmount() && outcome.Bill.AmountDue.IsPositive() {
		o.req.Amount = decimal.NewNullDecimal(outcome.Bill.AmountDue)
	}
	o.srv.metric.GetOrchestratorPrometheus().RecordGatewayOutcome("fetch", "success")
	o.transitionLocked(models.PhaseFetched)
}

// ConfirmAndPay validates, authorizes against the wallet snapshot and
// submits. The snapshot must be freshly read by the caller; it is advisory
// and never cached across the fetch step. Submitting is uninterruptible:
// the method returns only once the attempt reached a terminal phase.
func (o *Orchestrator) ConfirmAndPay(ctx context.Context, snapshot models.WalletSnapshot) (err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	o.mu.Lock()

	switch {
	case o.state.Phase == models.PhaseFetched:
	case o.state.Phase == models.PhaseAwaitingInput && !o.req.Provider.SupportsOnlineFetch && o.state.Provider != nil:
		// Submit-only providers have no fetch step to pass through.
	default:
		o.mu.Unlock()
		return common.ErrNotInSubmittableState
	}

	if !o.req.HasAmount() && o.state.Bill != nil {
		o.req.Amount = decimal.NewNullDecimal(o.state.Bill.AmountDue)
	}

	o.state.Violations = o.srv.Validator.Validate(ctx, o.req, models.StageSubmit)
	if len(o.state.Violations) > 0 {
		o.mu.Unlock()
		return common.ErrValidation
	}

	auth := o.srv.WalletGuard.Authorize(ctx, o.req.Amount.Decimal, snapshot)
	if !auth.Authorized {
		failure := &models.Failure{
			Kind:    models.ErrorKindInsufficientFunds,
			Message: "insufficient wallet balance, short by " + auth.Shortfall.String(),
		}
		o.state.Result = &models.SettlementResult{Failure: failure}
		o.transitionLocked(models.PhaseFailed)
		o.mu.Unlock()
		return nil
	}

	return o.submit(ctx)
}

// submit runs the gateway call with the lock released and finalizes the
// terminal phase. Callers must hold the lock; it is released on return.
func (o *Orchestrator) submit(ctx context.Context) error {
	fromPhase := o.state.Phase
	o.transitionLocked(models.PhaseSubmitting)
	req := cloneRequest(o.req)
	bill := o.state.Bill
	o.mu.Unlock()

	result, err := o.srv.Submitter.Submit(ctx, req, bill)

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		log.Warn(ctx, orchestratorLogIdentifier+" submission rejected",
			log.String("requestId", req.RequestID), log.Err(err))
		// The submitter refused to call the gateway; the attempt is not
		// spent. Return to where the flow was.
		o.transitionLocked(fromPhase)
		return err
	}

	o.state.Result = &result
	if result.Succeeded() {
		o.transitionLocked(models.PhaseSettled)
	} else {
		o.transitionLocked(models.PhaseFailed)
	}
	return nil
}

// Retry resubmits after a retry-safe failure, reusing the same requestId.
// Anything else must go through reset (new requestId) or reconciliation.
func (o *Orchestrator) Retry(ctx context.Context, snapshot models.WalletSnapshot) (err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	o.mu.Lock()

	if o.state.Phase != models.PhaseFailed {
		o.mu.Unlock()
		return common.ErrNotInSubmittableState
	}
	if o.state.Result == nil || o.state.Result.Failure == nil ||
		!o.state.Result.Failure.Kind.RetrySafe() {
		o.mu.Unlock()
		return common.ErrNotRetrySafe
	}

	auth := o.srv.WalletGuard.Authorize(ctx, o.req.Amount.Decimal, snapshot)
	if !auth.Authorized {
		o.state.Result = &models.SettlementResult{Failure: &models.Failure{
			Kind:    models.ErrorKindInsufficientFunds,
			Message: "insufficient wallet balance, short by " + auth.Shortfall.String(),
		}}
		o.mu.Unlock()
		return nil
	}

	return o.submit(ctx)
}

// Reconcile resolves an ambiguous submission outcome against the gateway's
// authoritative status. A settled answer moves the flow to Settled even
// though it previously reported Failed.
func (o *Orchestrator) Reconcile(ctx context.Context) (resolved bool, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	o.mu.Lock()
	if o.state.Phase != models.PhaseFailed ||
		o.state.Result == nil || o.state.Result.Failure == nil ||
		!o.state.Result.Failure.Kind.Ambiguous() {
		o.mu.Unlock()
		return false, common.ErrNotInSubmittableState
	}
	requestID := o.req.RequestID
	o.mu.Unlock()

	result, resolved, err := o.srv.Submitter.Reconcile(ctx, requestID)
	if err != nil || !resolved {
		return false, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.state.Result = &result
	if result.Succeeded() && o.state.Phase == models.PhaseFailed {
		o.transitionLocked(models.PhaseSettled)
	}
	return true, nil
}

// Reset abandons the current flow and starts a fresh logical request with a
// new requestId. Not permitted while a submission is in flight.
func (o *Orchestrator) Reset(ctx context.Context) (err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state.Phase == models.PhaseSubmitting {
		return common.ErrSubmissionInFlight
	}

	o.coordinator.Invalidate()
	o.transitionLocked(models.PhaseIdle)
	o.beginLocked()
	return nil
}

// Close tears the orchestrator down: cancels pending fetches and closes all
// subscriptions. Idempotent.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return
	}
	o.closed = true
	o.coordinator.Invalidate()
	for id, ch := range o.subs {
		delete(o.subs, id)
		close(ch)
	}
}
