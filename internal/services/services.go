package services

import (
	"github.com/rupiksha/go-ppob-transaction/internal/common/idgenerator"
	"github.com/rupiksha/go-ppob-transaction/internal/common/metrics"
	"github.com/rupiksha/go-ppob-transaction/internal/common/publisher"
	"github.com/rupiksha/go-ppob-transaction/internal/common/retry"
	"github.com/rupiksha/go-ppob-transaction/internal/config"
	"github.com/rupiksha/go-ppob-transaction/internal/models"
	"github.com/rupiksha/go-ppob-transaction/internal/repositories"
)

// Services wires the transaction engine together. Each service embeds the
// shared dependencies through the unexported service type.
type Services struct {
	conf config.Config

	catalogRepo     repositories.CatalogRepository
	billingGateway  repositories.BillingGatewayRepository
	settlementGW    repositories.SettlementGatewayRepository
	walletRepo      repositories.WalletRepository
	submissionRepo  repositories.SubmissionRepository
	idGenerator     idgenerator.Generator
	notificationPub publisher.Publisher
	metric          metrics.Metrics
	retryer         retry.Retryer

	Resolver    ResolverService
	Validator   RequestValidatorService
	Translator  ErrorTranslatorService
	WalletGuard WalletGuardService
	Submitter   SubmitterService
	Sessions    SessionService
	Dispatcher  NotificationDispatcherService
	Reconciler  ReconcilerService
}

type service struct {
	srv *Services
}

type Dependencies struct {
	Conf            config.Config
	CatalogRepo     repositories.CatalogRepository
	BillingGateway  repositories.BillingGatewayRepository
	SettlementGW    repositories.SettlementGatewayRepository
	WalletRepo      repositories.WalletRepository
	SubmissionRepo  repositories.SubmissionRepository
	IDGenerator     idgenerator.Generator
	NotificationPub publisher.Publisher
	Metric          metrics.Metrics
	Retryer         retry.Retryer
}

func New(deps Dependencies) *Services {
	srv := &Services{
		conf:            deps.Conf,
		catalogRepo:     deps.CatalogRepo,
		billingGateway:  deps.BillingGateway,
		settlementGW:    deps.SettlementGW,
		walletRepo:      deps.WalletRepo,
		submissionRepo:  deps.SubmissionRepo,
		idGenerator:     deps.IDGenerator,
		notificationPub: deps.NotificationPub,
		metric:          deps.Metric,
		retryer:         deps.Retryer,
	}

	srv.Resolver = &resolver{srv: srv}
	srv.Validator = &requestValidator{srv: srv}
	srv.Translator = NewErrorTranslator(models.DefaultGatewayCodeTable())
	srv.WalletGuard = &walletGuard{srv: srv}
	srv.Submitter = &submitter{srv: srv}
	srv.Dispatcher = newNotificationDispatcher(srv)
	srv.Sessions = newSessionManager(srv)
	srv.Reconciler = &reconciler{srv: srv}

	return srv
}

// WalletRepo exposes the wallet repository to the delivery layer, which
// captures a balance snapshot immediately before confirmation.
func (s *Services) WalletRepo() repositories.WalletRepository {
	return s.walletRepo
}
