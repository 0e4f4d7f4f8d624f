package setup

import (
	"context"
	"fmt"

	"github.com/Shopify/sarama"
	"github.com/newrelic/go-agent/v3/integrations/nrzap"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slices"

	genericCache "github.com/rupiksha/go-ppob-transaction/internal/common/cache"
	"github.com/rupiksha/go-ppob-transaction/internal/common/graceful"
	"github.com/rupiksha/go-ppob-transaction/internal/common/idgenerator"
	"github.com/rupiksha/go-ppob-transaction/internal/common/log"
	cMetrics "github.com/rupiksha/go-ppob-transaction/internal/common/metrics"
	"github.com/rupiksha/go-ppob-transaction/internal/common/publisher"
	"github.com/rupiksha/go-ppob-transaction/internal/common/retry"
	"github.com/rupiksha/go-ppob-transaction/internal/config"
	"github.com/rupiksha/go-ppob-transaction/internal/models"
	"github.com/rupiksha/go-ppob-transaction/internal/repositories"
	"github.com/rupiksha/go-ppob-transaction/internal/services"
)

type Setup struct {
	Config   config.Config
	NewRelic *newrelic.Application
	Cache    *redis.Client
	Producer sarama.SyncProducer
	Service  *services.Services
	Metrics  cMetrics.Metrics
}

func Init(command string) (setup *Setup, stopper []graceful.ProcessStopper, err error) {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return
	}

	setup = &Setup{
		Config: cfg,
	}

	logLevel := "debug"
	excludedDebugLevelOnEnvs := []config.Environment{
		config.DEV_ENV,
		config.UAT_ENV,
		config.PROD_ENV,
	}
	if slices.Contains(excludedDebugLevelOnEnvs, config.StringToEnvironment(cfg.App.Env)) {
		logLevel = "info"
	}
	if cfg.App.LogLevel != "" {
		logLevel = cfg.App.LogLevel
	}

	log.Init(cfg.App.Name,
		log.WithLogEnvOption(cfg.App.Env),
		log.WithLevel(logLevel),
		log.AddCallerSkip(1))

	stopper = append(stopper, func(ctx context.Context) error {
		log.Sync()
		return nil
	})

	newRelic := setupNR(ctx, cfg)

	mtc := cMetrics.New()

	// connect to redis
	cache := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Db,
	})
	_, err = cache.Ping(ctx).Result()
	if err != nil {
		return
	}
	stopper = append(stopper, func(ctx context.Context) error { return cache.Close() })

	if mtc != nil {
		err = mtc.RegisterRedis(cache, cfg.App.Name, command)
		if err != nil {
			err = fmt.Errorf("failed register redis prometheus: %w", err)
			return
		}
	}

	catalogCache := genericCache.NewInMemoryClient[models.Catalog]()
	stopper = append(stopper, func(ctx context.Context) error {
		catalogCache.Close()
		return nil
	})

	// register repository
	catalogRepo := repositories.NewCatalogRepository(cfg.Catalog, catalogCache)
	billingGateway := repositories.NewBillingGatewayRepository(cfg.BillingGateway, mtc)
	settlementGateway := repositories.NewSettlementGatewayRepository(cfg.SettlementGateway, mtc)
	walletRepo := repositories.NewWalletRepository(cfg.WalletService, mtc)
	submissionRepo := repositories.NewSubmissionRepository(cache)

	idGenerator := idgenerator.New()
	retryer := retry.NewExponentialBackOff(&cfg.ExponentialBackoff)

	var notificationPub publisher.Publisher
	if cfg.MessageBroker.Enabled {
		var producer sarama.SyncProducer
		producer, err = publisher.NewKafkaSyncProducer(cfg.MessageBroker.Brokers)
		if err != nil {
			err = fmt.Errorf("unable to create client kafka sync producer: %w", err)
			return
		}
		stopper = append(stopper, func(ctx context.Context) error { return producer.Close() })

		notificationPub = publisher.NewPublisher(producer, cfg.MessageBroker.NotificationTopic)
		setup.Producer = producer
	}

	// register service
	srv := services.New(services.Dependencies{
		Conf:            cfg,
		CatalogRepo:     catalogRepo,
		BillingGateway:  billingGateway,
		SettlementGW:    settlementGateway,
		WalletRepo:      walletRepo,
		SubmissionRepo:  submissionRepo,
		IDGenerator:     idGenerator,
		NotificationPub: notificationPub,
		Metric:          mtc,
		Retryer:         retryer,
	})

	setup.NewRelic = newRelic
	setup.Cache = cache
	setup.Service = srv
	setup.Metrics = mtc

	return setup, stopper, nil
}

func setupNR(ctx context.Context, cfg config.Config) *newrelic.Application {
	if cfg.NewRelicLicenseKey == "" {
		log.Info(ctx, "new relic disabled, no license key configured")
		return nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.App.Name),
		newrelic.ConfigLicense(cfg.NewRelicLicenseKey),
		newrelic.ConfigAppLogForwardingEnabled(true),
		nrzap.ConfigLogger(log.Logger()),
	)
	if err != nil {
		log.Warn(ctx, "failed to init new relic", log.Err(err))
		return nil
	}
	return app
}
