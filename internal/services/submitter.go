package services

import (
	"context"
	"time"

	"github.com/rupiksha/go-ppob-transaction/internal/common"
	"github.com/rupiksha/go-ppob-transaction/internal/common/log"
	"github.com/rupiksha/go-ppob-transaction/internal/models"
	"github.com/rupiksha/go-ppob-transaction/internal/monitoring"
)

// SubmitterService performs the irreversible money movement. Submission is
// single-flight per requestId: an atomic claim on the idempotency record
// guarantees at most one concurrent gateway call, and a resubmit after a
// retry-safe failure reuses the same requestId so the gateway deduplicates.
type SubmitterService interface {
	Submit(ctx context.Context, req *models.TransactionRequest, bill *models.FetchedBill) (models.SettlementResult, error)
	// Reconcile queries the gateway for the authoritative outcome of an
	// ambiguous submission. resolved is false while the gateway still
	// reports the transaction in process.
	Reconcile(ctx context.Context, requestID string) (result models.SettlementResult, resolved bool, err error)
}

type submitter service

const submitterLogIdentifier = "[SUBMITTER]"

func (s *submitter) Submit(ctx context.Context, req *models.TransactionRequest, bill *models.FetchedBill) (result models.SettlementResult, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	if !req.HasAmount() {
		return models.SettlementResult{}, common.ErrValidation
	}

	recordTTL := s.srv.conf.Orchestrator.SubmissionRecordTTL
	now := time.Now()

	claim := models.SubmissionRecord{
		RequestID:    req.RequestID,
		UserID:       req.UserID,
		Identifier:   req.PrimaryIdentifier,
		OperatorCode: req.Provider.OperatorCode,
		Category:     req.Provider.Category,
		Amount:       req.Amount.Decimal.String(),
		Status:       models.SubmissionInFlight,
		SubmittedAt:  now,
		UpdatedAt:    now,
	}

	claimed, err := s.srv.submissionRepo.SetInFlight(ctx, claim, recordTTL)
	if err != nil {
		return models.SettlementResult{}, err
	}

	if !claimed {
		existing, found, getErr := s.srv.submissionRepo.Get(ctx, req.RequestID)
		if getErr != nil {
			return models.SettlementResult{}, getErr
		}
		if !found {
			// Record expired between the claim and the read. Treat as
			// in-flight rather than risk a double submit.
			return models.SettlementResult{}, common.ErrSubmissionInFlight
		}

		switch existing.Status {
		case models.SubmissionSettled:
			// Idempotent replay of an already settled transaction.
			return models.SettlementResult{
				TransactionID: existing.TransactionID,
				SettledAt:     existing.UpdatedAt,
			}, nil
		case models.SubmissionInFlight:
			return models.SettlementResult{}, common.ErrSubmissionInFlight
		case models.SubmissionAmbiguous, models.SubmissionFailed:
			// A timeout leaves the record ambiguous but is still safe to
			// retry: the gateway deduplicates on requestId. Outcomes the
			// gateway explicitly reported as under-process are not.
			if !existing.FailureKind.RetrySafe() {
				if existing.Status == models.SubmissionAmbiguous {
					return models.SettlementResult{}, common.ErrAwaitingReconcile
				}
				return models.SettlementResult{}, common.ErrNotRetrySafe
			}
			// Re-claim the record and go again with the SAME requestId.
			claim.SubmittedAt = existing.SubmittedAt
			if saveErr := s.srv.submissionRepo.Save(ctx, claim, recordTTL); saveErr != nil {
				return models.SettlementResult{}, saveErr
			}
		}
	}

	result = s.callGateway(ctx, req, bill)
	s.persistOutcome(ctx, claim, result)
	return result, nil
}

// callGateway routes to bill-pay or recharge based on the provider's fetch
// capability and classifies the response.
func (s *submitter) callGateway(ctx context.Context, req *models.TransactionRequest, bill *models.FetchedBill) models.SettlementResult {
	submitCtx, cancel := context.WithTimeout(ctx, s.srv.conf.Orchestrator.SubmitTimeout)
	defer cancel()

	var (
		resp models.SubmitResponse
		err  error
	)

	if req.Provider.SupportsOnlineFetch {
		payReq := models.BillPayRequest{
			UserID:     req.UserID,
			ConsumerNo: req.PrimaryIdentifier,
			Opcode:     req.Provider.OperatorCode,
			Amount:     req.Amount.Decimal,
			Category:   req.Provider.Category,
			AuxField:   req.AuxIdentifier,
			DOB:        req.Meta(models.FieldDateOfBirth),
			Mobile:     req.Meta(models.FieldContactMobile),
			Email:      req.Meta(models.FieldEmail),
			RequestID:  req.RequestID,
		}
		if bill != nil {
			payReq.ConsumerNo = bill.ConsumerNo
		}
		resp, err = s.srv.settlementGW.PayBill(submitCtx, payReq)
	} else {
		resp, err = s.srv.settlementGW.SubmitRecharge(submitCtx, models.RechargeRequest{
			UserID:       req.UserID,
			Mobile:       req.PrimaryIdentifier,
			OperatorCode: req.Provider.OperatorCode,
			Circle:       req.Provider.Circle,
			Amount:       req.Amount.Decimal,
			ServiceType:  string(req.Provider.Category),
			RequestID:    req.RequestID,
		})
	}

	if err != nil {
		failure := s.srv.Translator.TranslateTransportError(err)
		return models.SettlementResult{Failure: &failure}
	}

	if !resp.Success {
		failure := s.srv.Translator.TranslateCode(resp.Code, resp.Message)
		return models.SettlementResult{Failure: &failure}
	}

	return models.SettlementResult{
		TransactionID: resp.TxID,
		SettledAt:     time.Now(),
	}
}

// persistOutcome updates the idempotency record. A timeout or under-process
// answer leaves the record AMBIGUOUS: the money may have moved, so any
// further submit for this requestId is blocked until reconciliation.
func (s *submitter) persistOutcome(ctx context.Context, rec models.SubmissionRecord, result models.SettlementResult) {
	rec.UpdatedAt = time.Now()

	switch {
	case result.Succeeded():
		rec.Status = models.SubmissionSettled
		rec.TransactionID = result.TransactionID
	case result.Failure.Kind.Ambiguous():
		rec.Status = models.SubmissionAmbiguous
		rec.FailureKind = result.Failure.Kind
	default:
		rec.Status = models.SubmissionFailed
		rec.FailureKind = result.Failure.Kind
	}

	if err := s.srv.submissionRepo.Save(ctx, rec, s.srv.conf.Orchestrator.SubmissionRecordTTL); err != nil {
		log.Error(ctx, submitterLogIdentifier+" failed to persist submission record",
			log.String("requestId", rec.RequestID), log.Err(err))
	}

	kind := "settled"
	if !result.Succeeded() {
		kind = string(result.Failure.Kind)
	}
	s.srv.metric.GetOrchestratorPrometheus().RecordGatewayOutcome("submit", kind)
}

func (s *submitter) Reconcile(ctx context.Context, requestID string) (result models.SettlementResult, resolved bool, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	rec, found, err := s.srv.submissionRepo.Get(ctx, requestID)
	if err != nil {
		return models.SettlementResult{}, false, err
	}
	if !found {
		return models.SettlementResult{}, false, common.ErrDataNotFound
	}

	var resp models.StatusQueryResponse
	err = s.srv.retryer.Retry(ctx, func() error {
		var queryErr error
		resp, queryErr = s.srv.settlementGW.QueryStatus(ctx, requestID)
		return queryErr
	}, func() error {
		return common.ErrAwaitingReconcile
	})
	if err != nil {
		return models.SettlementResult{}, false, err
	}

	switch resp.Status {
	case models.GatewayStatusSuccess:
		result = models.SettlementResult{TransactionID: resp.TxID, SettledAt: time.Now()}
		resolved = true
	case models.GatewayStatusFailed:
		failure := s.srv.Translator.TranslateCode(resp.Code, resp.Message)
		result = models.SettlementResult{Failure: &failure}
		resolved = true
	default:
		// Still pending at the gateway. Leave the record ambiguous.
		return models.SettlementResult{}, false, nil
	}

	s.persistOutcome(ctx, rec, result)
	log.Info(ctx, submitterLogIdentifier+" reconciled ambiguous submission",
		log.String("requestId", requestID), log.String("status", resp.Status))
	return result, resolved, nil
}
