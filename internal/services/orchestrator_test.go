package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rupiksha/go-ppob-transaction/internal/common"
	"github.com/rupiksha/go-ppob-transaction/internal/models"
	"github.com/rupiksha/go-ppob-transaction/internal/services"
)

func waitFor(t *testing.T, o *services.Orchestrator, cond func(models.OrchestratorState) bool) models.OrchestratorState {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		st := o.State()
		if cond(st) {
			return st
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not reached, last phase %s", o.State().Phase)
	return models.OrchestratorState{}
}

func waitForPhase(t *testing.T, o *services.Orchestrator, phase models.OrchestratorPhase) models.OrchestratorState {
	t.Helper()
	return waitFor(t, o, func(st models.OrchestratorState) bool { return st.Phase == phase })
}

// electricitySession builds a session with a pinned fetch-capable biller and
// a valid contact number, ready for identifier input.
func electricitySession(t *testing.T, testHelper testServiceHelper) *services.Session {
	t.Helper()
	ctx := context.Background()

	testHelper.expectSequentialIDs()
	testHelper.mockCatalogRepo.EXPECT().GetBiller(gomock.Any(), "mseb").
		Return(models.BillerEntry{ID: "mseb", Name: "MSEB", Opcode: "MSE", Category: models.CategoryElectricity}, true, nil)

	sess, err := testHelper.srv.Sessions.Create(ctx, models.CategoryElectricity, "agent-7")
	require.NoError(t, err)
	require.Equal(t, models.PhaseAwaitingInput, sess.Orchestrator.State().Phase)

	require.NoError(t, sess.Orchestrator.SelectProvider(ctx, "mseb"))
	require.NoError(t, sess.Orchestrator.UpdateField(ctx, models.FieldContactMobile, "9876543210"))
	return sess
}

func TestOrchestrator_DebounceCoalescesEdits(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()
	sess := electricitySession(t, testHelper)

	// Exactly one fetch for a burst of edits, carrying the final value.
	testHelper.mockBillingGateway.EXPECT().FetchBill(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.BillFetchRequest) (models.BillFetchResponse, error) {
			assert.Equal(t, "1234567890", req.ConsumerNo)
			assert.Equal(t, "MSE", req.Opcode)
			return models.BillFetchResponse{Success: true, Bill: &models.FetchedBill{
				ConsumerNo: req.ConsumerNo,
				AmountDue:  decimal.RequireFromString("120.50"),
			}}, nil
		}).Times(1)

	for _, v := range []string{"123456", "1234567", "12345678", "123456789", "1234567890"} {
		require.NoError(t, sess.Orchestrator.UpdateField(ctx, models.FieldPrimaryIdentifier, v))
	}

	st := waitForPhase(t, sess.Orchestrator, models.PhaseFetched)
	require.NotNil(t, st.Bill)
	assert.Equal(t, "120.5", st.Bill.AmountDue.String())
}

func TestOrchestrator_StaleFetchResultIsDiscarded(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()
	sess := electricitySession(t, testHelper)

	firstDispatched := make(chan struct{})

	testHelper.mockBillingGateway.EXPECT().FetchBill(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.BillFetchRequest) (models.BillFetchResponse, error) {
			if req.ConsumerNo == "111111" {
				close(firstDispatched)
				// lands after the second edit superseded it
				time.Sleep(200 * time.Millisecond)
			}
			return models.BillFetchResponse{Success: true, Bill: &models.FetchedBill{
				ConsumerNo: req.ConsumerNo,
				AmountDue:  decimal.RequireFromString("99"),
			}}, nil
		}).Times(2)

	require.NoError(t, sess.Orchestrator.UpdateField(ctx, models.FieldPrimaryIdentifier, "111111"))
	<-firstDispatched
	require.NoError(t, sess.Orchestrator.UpdateField(ctx, models.FieldPrimaryIdentifier, "222222"))

	st := waitFor(t, sess.Orchestrator, func(st models.OrchestratorState) bool {
		return st.Phase == models.PhaseFetched && st.Bill != nil && st.Bill.ConsumerNo == "222222"
	})

	// the slow response for the old identifier must not overwrite the bill
	time.Sleep(250 * time.Millisecond)
	st = sess.Orchestrator.State()
	require.NotNil(t, st.Bill)
	assert.Equal(t, "222222", st.Bill.ConsumerNo)
}

func TestOrchestrator_FetchFailureReturnsToAwaitingInput(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()
	sess := electricitySession(t, testHelper)

	testHelper.mockBillingGateway.EXPECT().FetchBill(gomock.Any(), gomock.Any()).
		Return(models.BillFetchResponse{Success: false, Code: "ICI"}, nil)

	require.NoError(t, sess.Orchestrator.UpdateField(ctx, models.FieldPrimaryIdentifier, "123456"))

	st := waitFor(t, sess.Orchestrator, func(st models.OrchestratorState) bool {
		return st.Phase == models.PhaseAwaitingInput && st.LastFailure != nil
	})
	assert.Equal(t, models.ErrorKindInvalidAccount, st.LastFailure.Kind)
	assert.Nil(t, st.Bill)
}

func TestOrchestrator_InsufficientBalanceBlocksSubmission(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()
	sess := electricitySession(t, testHelper)

	testHelper.mockBillingGateway.EXPECT().FetchBill(gomock.Any(), gomock.Any()).
		Return(models.BillFetchResponse{Success: true, Bill: &models.FetchedBill{
			ConsumerNo: "123456",
			AmountDue:  decimal.NewFromInt(200),
		}}, nil)

	require.NoError(t, sess.Orchestrator.UpdateField(ctx, models.FieldPrimaryIdentifier, "123456"))
	waitForPhase(t, sess.Orchestrator, models.PhaseFetched)

	// no settlement gateway expectations: the guard must stop the flow
	err := sess.Orchestrator.ConfirmAndPay(ctx, models.WalletSnapshot{
		Balance: decimal.NewFromInt(50),
		AsOf:    time.Now(),
	})
	require.NoError(t, err)

	st := sess.Orchestrator.State()
	assert.Equal(t, models.PhaseFailed, st.Phase)
	require.NotNil(t, st.Result)
	require.NotNil(t, st.Result.Failure)
	assert.Equal(t, models.ErrorKindInsufficientFunds, st.Result.Failure.Kind)
	assert.Contains(t, st.Result.Failure.Message, "150")
}

func TestOrchestrator_HappyPathBillPayment(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()
	sess := electricitySession(t, testHelper)

	testHelper.mockBillingGateway.EXPECT().FetchBill(gomock.Any(), gomock.Any()).
		Return(models.BillFetchResponse{Success: true, Bill: &models.FetchedBill{
			ConsumerNo: "123456",
			AmountDue:  decimal.RequireFromString("120.50"),
		}}, nil)

	require.NoError(t, sess.Orchestrator.UpdateField(ctx, models.FieldPrimaryIdentifier, "123456"))
	waitForPhase(t, sess.Orchestrator, models.PhaseFetched)

	requestID := sess.Orchestrator.RequestID()

	testHelper.mockSubmissionRepo.EXPECT().SetInFlight(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(true, nil)
	testHelper.mockSettlementGW.EXPECT().PayBill(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.BillPayRequest) (models.SubmitResponse, error) {
			assert.Equal(t, requestID, req.RequestID)
			assert.Equal(t, "120.5", req.Amount.String())
			return models.SubmitResponse{Success: true, TxID: "TX-901"}, nil
		})
	testHelper.mockSubmissionRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec models.SubmissionRecord, _ time.Duration) error {
			assert.Equal(t, models.SubmissionSettled, rec.Status)
			assert.Equal(t, "TX-901", rec.TransactionID)
			return nil
		})

	err := sess.Orchestrator.ConfirmAndPay(ctx, models.WalletSnapshot{Balance: decimal.NewFromInt(500)})
	require.NoError(t, err)

	st := sess.Orchestrator.State()
	assert.Equal(t, models.PhaseSettled, st.Phase)
	require.NotNil(t, st.Result)
	assert.Equal(t, "TX-901", st.Result.TransactionID)
}

func TestOrchestrator_DuplicateFailureThenReset(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()
	sess := electricitySession(t, testHelper)

	testHelper.mockBillingGateway.EXPECT().FetchBill(gomock.Any(), gomock.Any()).
		Return(models.BillFetchResponse{Success: true, Bill: &models.FetchedBill{
			ConsumerNo: "123456",
			AmountDue:  decimal.NewFromInt(300),
		}}, nil)

	require.NoError(t, sess.Orchestrator.UpdateField(ctx, models.FieldPrimaryIdentifier, "123456"))
	waitForPhase(t, sess.Orchestrator, models.PhaseFetched)

	failedRequestID := sess.Orchestrator.RequestID()

	testHelper.mockSubmissionRepo.EXPECT().SetInFlight(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(true, nil)
	testHelper.mockSettlementGW.EXPECT().PayBill(gomock.Any(), gomock.Any()).
		Return(models.SubmitResponse{Success: false, Code: "DTX"}, nil)
	testHelper.mockSubmissionRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, sess.Orchestrator.ConfirmAndPay(ctx, models.WalletSnapshot{Balance: decimal.NewFromInt(500)}))

	st := sess.Orchestrator.State()
	assert.Equal(t, models.PhaseFailed, st.Phase)
	assert.Equal(t, models.ErrorKindDuplicateTransaction, st.Result.Failure.Kind)

	// duplicate is neither user-fixable nor retry-safe
	assert.ErrorIs(t, sess.Orchestrator.UpdateField(ctx, models.FieldAmount, "300"), common.ErrTerminalState)
	assert.ErrorIs(t, sess.Orchestrator.Retry(ctx, models.WalletSnapshot{Balance: decimal.NewFromInt(500)}), common.ErrNotRetrySafe)

	require.NoError(t, sess.Orchestrator.Reset(ctx))
	st = sess.Orchestrator.State()
	assert.Equal(t, models.PhaseAwaitingInput, st.Phase)
	assert.NotEqual(t, failedRequestID, sess.Orchestrator.RequestID())
}

func TestOrchestrator_TimeoutRetryKeepsRequestID(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()
	sess := electricitySession(t, testHelper)

	testHelper.mockBillingGateway.EXPECT().FetchBill(gomock.Any(), gomock.Any()).
		Return(models.BillFetchResponse{Success: true, Bill: &models.FetchedBill{
			ConsumerNo: "123456",
			AmountDue:  decimal.NewFromInt(400),
		}}, nil)

	require.NoError(t, sess.Orchestrator.UpdateField(ctx, models.FieldPrimaryIdentifier, "123456"))
	waitForPhase(t, sess.Orchestrator, models.PhaseFetched)

	requestID := sess.Orchestrator.RequestID()
	var ambiguousRecord models.SubmissionRecord

	// first attempt: transport timeout, record parked as ambiguous
	testHelper.mockSubmissionRepo.EXPECT().SetInFlight(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(true, nil)
	testHelper.mockSettlementGW.EXPECT().PayBill(gomock.Any(), gomock.Any()).
		Return(models.SubmitResponse{}, context.DeadlineExceeded)
	testHelper.mockSubmissionRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec models.SubmissionRecord, _ time.Duration) error {
			assert.Equal(t, models.SubmissionAmbiguous, rec.Status)
			assert.Equal(t, models.ErrorKindTimeout, rec.FailureKind)
			ambiguousRecord = rec
			return nil
		})

	require.NoError(t, sess.Orchestrator.ConfirmAndPay(ctx, models.WalletSnapshot{Balance: decimal.NewFromInt(500)}))

	st := sess.Orchestrator.State()
	assert.Equal(t, models.PhaseFailed, st.Phase)
	assert.Equal(t, models.ErrorKindTimeout, st.Result.Failure.Kind)

	// retry: SAME requestId, claim re-acquired through the existing record
	testHelper.mockSubmissionRepo.EXPECT().SetInFlight(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, nil)
	testHelper.mockSubmissionRepo.EXPECT().Get(gomock.Any(), requestID).
		DoAndReturn(func(context.Context, string) (models.SubmissionRecord, bool, error) {
			return ambiguousRecord, true, nil
		})
	testHelper.mockSubmissionRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	testHelper.mockSettlementGW.EXPECT().PayBill(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.BillPayRequest) (models.SubmitResponse, error) {
			assert.Equal(t, requestID, req.RequestID)
			return models.SubmitResponse{Success: true, TxID: "TX-902"}, nil
		})
	testHelper.mockSubmissionRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, sess.Orchestrator.Retry(ctx, models.WalletSnapshot{Balance: decimal.NewFromInt(500)}))

	st = sess.Orchestrator.State()
	assert.Equal(t, models.PhaseSettled, st.Phase)
	assert.Equal(t, requestID, sess.Orchestrator.RequestID())
}

func TestOrchestrator_RechargeSubmitOnlyFlow(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()
	testHelper.expectSequentialIDs()

	sess, err := testHelper.srv.Sessions.Create(ctx, models.CategoryMobile, "agent-7")
	require.NoError(t, err)

	testHelper.mockCatalogRepo.EXPECT().LookupPrefix(gomock.Any(), "6123").
		Return(models.PrefixEntry{}, false, nil)
	testHelper.mockCatalogRepo.EXPECT().GetOperator(gomock.Any(), models.CategoryMobile, "Jio").
		Return(models.OperatorEntry{Name: "Jio", Opcode: "JRE", Category: models.CategoryMobile}, true, nil)

	require.NoError(t, sess.Orchestrator.UpdateField(ctx, models.FieldPrimaryIdentifier, "6123456789"))

	st := sess.Orchestrator.State()
	require.True(t, st.Resolved)
	assert.False(t, st.Provider.SupportsOnlineFetch)

	// no online fetch for recharges
	assert.ErrorIs(t, sess.Orchestrator.RequestFetch(ctx), common.ErrFetchNotSupported)

	require.NoError(t, sess.Orchestrator.UpdateField(ctx, models.FieldAmount, "199"))

	testHelper.mockSubmissionRepo.EXPECT().SetInFlight(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(true, nil)
	testHelper.mockSettlementGW.EXPECT().SubmitRecharge(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.RechargeRequest) (models.SubmitResponse, error) {
			assert.Equal(t, "6123456789", req.Mobile)
			assert.Equal(t, "JRE", req.OperatorCode)
			assert.Equal(t, "199", req.Amount.String())
			return models.SubmitResponse{Success: true, TxID: "TX-777"}, nil
		})
	testHelper.mockSubmissionRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, sess.Orchestrator.ConfirmAndPay(ctx, models.WalletSnapshot{Balance: decimal.NewFromInt(500)}))
	assert.Equal(t, models.PhaseSettled, sess.Orchestrator.State().Phase)
}

func TestOrchestrator_ClearingIdentifierReleasesManualPin(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()
	testHelper.expectSequentialIDs()

	sess, err := testHelper.srv.Sessions.Create(ctx, models.CategoryMobile, "agent-7")
	require.NoError(t, err)

	testHelper.mockCatalogRepo.EXPECT().GetBiller(gomock.Any(), "vi").
		Return(models.BillerEntry{ID: "vi", Name: "Vi", Category: models.CategoryMobile}, true, nil)
	require.NoError(t, sess.Orchestrator.SelectProvider(ctx, "vi"))

	// while pinned, typing an identifier must not re-resolve
	require.NoError(t, sess.Orchestrator.UpdateField(ctx, models.FieldPrimaryIdentifier, "9123456789"))
	st := sess.Orchestrator.State()
	require.NotNil(t, st.Provider)
	assert.Equal(t, "Vi", st.Provider.DisplayName)

	// clearing the identifier drops the pin and the provider
	require.NoError(t, sess.Orchestrator.UpdateField(ctx, models.FieldPrimaryIdentifier, ""))
	st = sess.Orchestrator.State()
	assert.False(t, st.Resolved)
	assert.Nil(t, st.Provider)

	// the next identifier goes through automatic resolution again
	testHelper.mockCatalogRepo.EXPECT().LookupPrefix(gomock.Any(), "6123").
		Return(models.PrefixEntry{}, false, nil)
	testHelper.mockCatalogRepo.EXPECT().GetOperator(gomock.Any(), models.CategoryMobile, "Jio").
		Return(models.OperatorEntry{Name: "Jio", Opcode: "JRE", Category: models.CategoryMobile}, true, nil)

	require.NoError(t, sess.Orchestrator.UpdateField(ctx, models.FieldPrimaryIdentifier, "6123456789"))
	st = sess.Orchestrator.State()
	require.True(t, st.Resolved)
	require.NotNil(t, st.Provider)
	assert.Equal(t, "Jio", st.Provider.DisplayName)
}

func TestOrchestrator_ConfirmRejectedOutsideSubmittableState(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()
	sess := electricitySession(t, testHelper)

	err := sess.Orchestrator.ConfirmAndPay(ctx, models.WalletSnapshot{Balance: decimal.NewFromInt(500)})
	assert.ErrorIs(t, err, common.ErrNotInSubmittableState)
}
