package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rupiksha/go-ppob-transaction/internal/common"
	"github.com/rupiksha/go-ppob-transaction/internal/models"
)

func billPayRequest() *models.TransactionRequest {
	return &models.TransactionRequest{
		RequestID: "PPOB-42",
		UserID:    "agent-7",
		Provider: models.ProviderDescriptor{
			ID:                  "mseb",
			OperatorCode:        "MSE",
			Category:            models.CategoryElectricity,
			SupportsOnlineFetch: true,
		},
		PrimaryIdentifier: "123456",
		Amount:            decimal.NewNullDecimal(decimal.NewFromInt(250)),
	}
}

func TestSubmitter_RejectsMissingAmount(t *testing.T) {
	testHelper := serviceTestHelper(t)

	req := billPayRequest()
	req.Amount = decimal.NullDecimal{}

	_, err := testHelper.srv.Submitter.Submit(context.Background(), req, nil)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestSubmitter_ClaimsAndSettles(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()

	testHelper.mockSubmissionRepo.EXPECT().SetInFlight(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec models.SubmissionRecord, _ time.Duration) (bool, error) {
			assert.Equal(t, "PPOB-42", rec.RequestID)
			assert.Equal(t, models.SubmissionInFlight, rec.Status)
			assert.Equal(t, "250", rec.Amount)
			return true, nil
		})
	testHelper.mockSettlementGW.EXPECT().PayBill(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payReq models.BillPayRequest) (models.SubmitResponse, error) {
			// fetched consumer number wins over the typed identifier
			assert.Equal(t, "MH123456", payReq.ConsumerNo)
			return models.SubmitResponse{Success: true, TxID: "TX-1"}, nil
		})
	testHelper.mockSubmissionRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec models.SubmissionRecord, _ time.Duration) error {
			assert.Equal(t, models.SubmissionSettled, rec.Status)
			assert.Equal(t, "TX-1", rec.TransactionID)
			return nil
		})

	bill := &models.FetchedBill{ConsumerNo: "MH123456", AmountDue: decimal.NewFromInt(250)}
	result, err := testHelper.srv.Submitter.Submit(ctx, billPayRequest(), bill)
	require.NoError(t, err)
	assert.Equal(t, "TX-1", result.TransactionID)
	assert.True(t, result.Succeeded())
}

func TestSubmitter_ReplaysSettledRecord(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()

	settledAt := time.Now().Add(-time.Minute)
	testHelper.mockSubmissionRepo.EXPECT().SetInFlight(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, nil)
	testHelper.mockSubmissionRepo.EXPECT().Get(gomock.Any(), "PPOB-42").
		Return(models.SubmissionRecord{
			RequestID:     "PPOB-42",
			Status:        models.SubmissionSettled,
			TransactionID: "TX-OLD",
			UpdatedAt:     settledAt,
		}, true, nil)

	// no gateway call: the stored outcome is returned as-is
	result, err := testHelper.srv.Submitter.Submit(ctx, billPayRequest(), nil)
	require.NoError(t, err)
	assert.Equal(t, "TX-OLD", result.TransactionID)
	assert.Equal(t, settledAt, result.SettledAt)
}

func TestSubmitter_ConcurrentClaimRejected(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()

	testHelper.mockSubmissionRepo.EXPECT().SetInFlight(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, nil)
	testHelper.mockSubmissionRepo.EXPECT().Get(gomock.Any(), "PPOB-42").
		Return(models.SubmissionRecord{RequestID: "PPOB-42", Status: models.SubmissionInFlight}, true, nil)

	_, err := testHelper.srv.Submitter.Submit(ctx, billPayRequest(), nil)
	assert.ErrorIs(t, err, common.ErrSubmissionInFlight)
}

func TestSubmitter_ExpiredRecordTreatedAsInFlight(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()

	testHelper.mockSubmissionRepo.EXPECT().SetInFlight(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, nil)
	testHelper.mockSubmissionRepo.EXPECT().Get(gomock.Any(), "PPOB-42").
		Return(models.SubmissionRecord{}, false, nil)

	_, err := testHelper.srv.Submitter.Submit(ctx, billPayRequest(), nil)
	assert.ErrorIs(t, err, common.ErrSubmissionInFlight)
}

func TestSubmitter_AmbiguousOutcomeBlocksUntilReconciled(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()

	testHelper.mockSubmissionRepo.EXPECT().SetInFlight(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, nil)
	testHelper.mockSubmissionRepo.EXPECT().Get(gomock.Any(), "PPOB-42").
		Return(models.SubmissionRecord{
			RequestID:   "PPOB-42",
			Status:      models.SubmissionAmbiguous,
			FailureKind: models.ErrorKindAmbiguousOutcome,
		}, true, nil)

	_, err := testHelper.srv.Submitter.Submit(ctx, billPayRequest(), nil)
	assert.ErrorIs(t, err, common.ErrAwaitingReconcile)
}

func TestSubmitter_NonRetrySafeFailureRejected(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()

	testHelper.mockSubmissionRepo.EXPECT().SetInFlight(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, nil)
	testHelper.mockSubmissionRepo.EXPECT().Get(gomock.Any(), "PPOB-42").
		Return(models.SubmissionRecord{
			RequestID:   "PPOB-42",
			Status:      models.SubmissionFailed,
			FailureKind: models.ErrorKindDuplicateTransaction,
		}, true, nil)

	_, err := testHelper.srv.Submitter.Submit(ctx, billPayRequest(), nil)
	assert.ErrorIs(t, err, common.ErrNotRetrySafe)
}

func TestSubmitter_TimeoutRecordIsRetrySafe(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()

	submittedAt := time.Now().Add(-30 * time.Second)
	testHelper.mockSubmissionRepo.EXPECT().SetInFlight(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, nil)
	testHelper.mockSubmissionRepo.EXPECT().Get(gomock.Any(), "PPOB-42").
		Return(models.SubmissionRecord{
			RequestID:   "PPOB-42",
			Status:      models.SubmissionAmbiguous,
			FailureKind: models.ErrorKindTimeout,
			SubmittedAt: submittedAt,
		}, true, nil)
	// re-claim keeps the original submission time
	testHelper.mockSubmissionRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec models.SubmissionRecord, _ time.Duration) error {
			assert.Equal(t, models.SubmissionInFlight, rec.Status)
			assert.Equal(t, submittedAt, rec.SubmittedAt)
			return nil
		})
	testHelper.mockSettlementGW.EXPECT().PayBill(gomock.Any(), gomock.Any()).
		Return(models.SubmitResponse{Success: true, TxID: "TX-2"}, nil)
	testHelper.mockSubmissionRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	result, err := testHelper.srv.Submitter.Submit(ctx, billPayRequest(), nil)
	require.NoError(t, err)
	assert.Equal(t, "TX-2", result.TransactionID)
}

func TestSubmitter_GatewayFailureTranslated(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()

	testHelper.mockSubmissionRepo.EXPECT().SetInFlight(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(true, nil)
	testHelper.mockSettlementGW.EXPECT().PayBill(gomock.Any(), gomock.Any()).
		Return(models.SubmitResponse{Success: false, Code: "IAB"}, nil)
	testHelper.mockSubmissionRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec models.SubmissionRecord, _ time.Duration) error {
			assert.Equal(t, models.SubmissionFailed, rec.Status)
			assert.Equal(t, models.ErrorKindGatewayInsufficientBalance, rec.FailureKind)
			return nil
		})

	result, err := testHelper.srv.Submitter.Submit(ctx, billPayRequest(), nil)
	require.NoError(t, err)
	require.NotNil(t, result.Failure)
	assert.Equal(t, models.ErrorKindGatewayInsufficientBalance, result.Failure.Kind)
	assert.Equal(t, "Insufficient Balance", result.Failure.Message)
}

func TestSubmitter_Reconcile(t *testing.T) {
	t.Run("gateway reports success", func(t *testing.T) {
		testHelper := serviceTestHelper(t)
		ctx := context.Background()

		testHelper.mockSubmissionRepo.EXPECT().Get(gomock.Any(), "PPOB-42").
			Return(models.SubmissionRecord{
				RequestID:   "PPOB-42",
				Status:      models.SubmissionAmbiguous,
				FailureKind: models.ErrorKindTimeout,
			}, true, nil)
		testHelper.mockSettlementGW.EXPECT().QueryStatus(gomock.Any(), "PPOB-42").
			Return(models.StatusQueryResponse{Status: models.GatewayStatusSuccess, TxID: "TX-9"}, nil)
		testHelper.mockSubmissionRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rec models.SubmissionRecord, _ time.Duration) error {
				assert.Equal(t, models.SubmissionSettled, rec.Status)
				assert.Equal(t, "TX-9", rec.TransactionID)
				return nil
			})

		result, resolved, err := testHelper.srv.Submitter.Reconcile(ctx, "PPOB-42")
		require.NoError(t, err)
		assert.True(t, resolved)
		assert.Equal(t, "TX-9", result.TransactionID)
	})

	t.Run("gateway reports failure", func(t *testing.T) {
		testHelper := serviceTestHelper(t)
		ctx := context.Background()

		testHelper.mockSubmissionRepo.EXPECT().Get(gomock.Any(), "PPOB-42").
			Return(models.SubmissionRecord{RequestID: "PPOB-42", Status: models.SubmissionAmbiguous}, true, nil)
		testHelper.mockSettlementGW.EXPECT().QueryStatus(gomock.Any(), "PPOB-42").
			Return(models.StatusQueryResponse{Status: models.GatewayStatusFailed, Code: "NPD"}, nil)
		testHelper.mockSubmissionRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		result, resolved, err := testHelper.srv.Submitter.Reconcile(ctx, "PPOB-42")
		require.NoError(t, err)
		assert.True(t, resolved)
		require.NotNil(t, result.Failure)
		assert.Equal(t, models.ErrorKindAlreadyPaid, result.Failure.Kind)
	})

	t.Run("still pending at the gateway", func(t *testing.T) {
		testHelper := serviceTestHelper(t)
		ctx := context.Background()

		testHelper.mockSubmissionRepo.EXPECT().Get(gomock.Any(), "PPOB-42").
			Return(models.SubmissionRecord{RequestID: "PPOB-42", Status: models.SubmissionAmbiguous}, true, nil)
		testHelper.mockSettlementGW.EXPECT().QueryStatus(gomock.Any(), "PPOB-42").
			Return(models.StatusQueryResponse{Status: models.GatewayStatusPending}, nil)

		_, resolved, err := testHelper.srv.Submitter.Reconcile(ctx, "PPOB-42")
		require.NoError(t, err)
		assert.False(t, resolved)
	})

	t.Run("status query keeps failing", func(t *testing.T) {
		testHelper := serviceTestHelper(t)
		ctx := context.Background()

		testHelper.mockSubmissionRepo.EXPECT().Get(gomock.Any(), "PPOB-42").
			Return(models.SubmissionRecord{RequestID: "PPOB-42", Status: models.SubmissionAmbiguous}, true, nil)
		testHelper.mockSettlementGW.EXPECT().QueryStatus(gomock.Any(), "PPOB-42").
			Return(models.StatusQueryResponse{}, errors.New("gateway unreachable")).AnyTimes()

		_, resolved, err := testHelper.srv.Submitter.Reconcile(ctx, "PPOB-42")
		assert.ErrorIs(t, err, common.ErrAwaitingReconcile)
		assert.False(t, resolved)
	})

	t.Run("unknown request id", func(t *testing.T) {
		testHelper := serviceTestHelper(t)
		ctx := context.Background()

		testHelper.mockSubmissionRepo.EXPECT().Get(gomock.Any(), "PPOB-404").
			Return(models.SubmissionRecord{}, false, nil)

		_, resolved, err := testHelper.srv.Submitter.Reconcile(ctx, "PPOB-404")
		assert.ErrorIs(t, err, common.ErrDataNotFound)
		assert.False(t, resolved)
	})
}
