package services_test

import (
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/mock/gomock"

	mockIDGenerator "github.com/rupiksha/go-ppob-transaction/internal/common/idgenerator/mock"
	"github.com/rupiksha/go-ppob-transaction/internal/common/log"
	cMetrics "github.com/rupiksha/go-ppob-transaction/internal/common/metrics"
	mockPublisher "github.com/rupiksha/go-ppob-transaction/internal/common/publisher/mock"
	"github.com/rupiksha/go-ppob-transaction/internal/common/retry"
	"github.com/rupiksha/go-ppob-transaction/internal/config"
	"github.com/rupiksha/go-ppob-transaction/internal/repositories/mock"
	"github.com/rupiksha/go-ppob-transaction/internal/services"
)

func TestMain(m *testing.M) {
	log.InitForTest()
	os.Exit(m.Run())
}

type testServiceHelper struct {
	mockCtrl *gomock.Controller
	config   config.Config

	mockCatalogRepo    *mock.MockCatalogRepository
	mockBillingGateway *mock.MockBillingGatewayRepository
	mockSettlementGW   *mock.MockSettlementGatewayRepository
	mockWalletRepo     *mock.MockWalletRepository
	mockSubmissionRepo *mock.MockSubmissionRepository
	mockIDGenerator    *mockIDGenerator.MockGenerator
	mockPublisher      *mockPublisher.MockPublisher

	srv *services.Services
}

// serviceTestHelper wires the engine against mocks. The debounce window is
// shortened so coordinator tests complete quickly.
func serviceTestHelper(t *testing.T) testServiceHelper {
	t.Helper()
	t.Parallel()

	mockCtrl := gomock.NewController(t)

	cfg := config.Config{}
	cfg.Orchestrator.Normalize()
	cfg.Orchestrator.DebounceInterval = 30 * time.Millisecond
	cfg.Orchestrator.FetchTimeout = 2 * time.Second
	cfg.Orchestrator.SubmitTimeout = 2 * time.Second
	cfg.ExponentialBackoff = config.ExponentialBackOffConfig{
		MaxBackoffTime:    100 * time.Millisecond,
		BackoffMultiplier: 1.1,
		MaxRetries:        1,
	}

	mockCatalogRepo := mock.NewMockCatalogRepository(mockCtrl)
	mockBillingGateway := mock.NewMockBillingGatewayRepository(mockCtrl)
	mockSettlementGW := mock.NewMockSettlementGatewayRepository(mockCtrl)
	mockWalletRepo := mock.NewMockWalletRepository(mockCtrl)
	mockSubmissionRepo := mock.NewMockSubmissionRepository(mockCtrl)
	mockGen := mockIDGenerator.NewMockGenerator(mockCtrl)
	mockPub := mockPublisher.NewMockPublisher(mockCtrl)

	srv := services.New(services.Dependencies{
		Conf:           cfg,
		CatalogRepo:    mockCatalogRepo,
		BillingGateway: mockBillingGateway,
		SettlementGW:   mockSettlementGW,
		WalletRepo:     mockWalletRepo,
		SubmissionRepo: mockSubmissionRepo,
		IDGenerator:    mockGen,
		Metric:         cMetrics.NewWithRegisterer(prometheus.NewRegistry()),
		Retryer:        retry.NewExponentialBackOff(&cfg.ExponentialBackoff),
	})

	return testServiceHelper{
		mockCtrl:           mockCtrl,
		config:             cfg,
		mockCatalogRepo:    mockCatalogRepo,
		mockBillingGateway: mockBillingGateway,
		mockSettlementGW:   mockSettlementGW,
		mockWalletRepo:     mockWalletRepo,
		mockSubmissionRepo: mockSubmissionRepo,
		mockIDGenerator:    mockGen,
		mockPublisher:      mockPub,
		srv:                srv,
	}
}

// expectSequentialIDs makes the generator return REQ-1, REQ-2, ... so
// idempotency-key rotation is observable.
func (h testServiceHelper) expectSequentialIDs() {
	n := 0
	h.mockIDGenerator.EXPECT().Generate(gomock.Any()).DoAndReturn(func(...string) string {
		n++
		return "REQ-" + string(rune('0'+n))
	}).AnyTimes()
}
