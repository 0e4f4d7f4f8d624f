package http

import (
	"context"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/rupiksha/go-ppob-transaction/internal/common/graceful"
	commonhttp "github.com/rupiksha/go-ppob-transaction/internal/common/http"
	"github.com/rupiksha/go-ppob-transaction/internal/common/http/middleware"
	"github.com/rupiksha/go-ppob-transaction/internal/common/log"
	"github.com/rupiksha/go-ppob-transaction/internal/common/metrics"
	"github.com/rupiksha/go-ppob-transaction/internal/config"
	"github.com/rupiksha/go-ppob-transaction/internal/deliveries/http/health"
	"github.com/rupiksha/go-ppob-transaction/internal/services"

	v1catalog "github.com/rupiksha/go-ppob-transaction/internal/deliveries/http/v1/catalog"
	v1session "github.com/rupiksha/go-ppob-transaction/internal/deliveries/http/v1/session"
)

type svc struct {
	e               *echo.Echo
	addr            string
	gracefulTimeout time.Duration
}

var _ graceful.ProcessStartStopper = (*svc)(nil)

func (s *svc) Start() graceful.ProcessStarter {
	return func() error {
		return s.e.Start(s.addr)
	}
}

func (s *svc) Stop() graceful.ProcessStopper {
	return func(ctx context.Context) error {
		err := s.e.Shutdown(ctx)

		if err != nil {
			log.Errorf(ctx, "[SHUTDOWN] HTTP server error: %v", err)
		} else {
			log.Info(ctx, "[SHUTDOWN] HTTP server stopped successfully")
		}

		return err
	}
}

func NewHTTPServer(
	ctx context.Context,
	conf config.Config,
	nr *newrelic.Application,
	s *services.Services,
	m metrics.Metrics,
) *svc {
	app := echo.New()
	app.HideBanner = true

	svc := &svc{
		e:               app,
		addr:            fmt.Sprintf(":%d", conf.App.HTTPPort),
		gracefulTimeout: conf.App.GracefulTimeout,
	}

	mw := middleware.NewMiddleware(conf)
	app.Pre(echomiddleware.RemoveTrailingSlash())
	app.Use(echomiddleware.Recover())
	app.Use(echomiddleware.RequestID())
	app.Use(mw.Context())
	app.Use(mw.Logger())

	if nr != nil {
		app.Use(nrecho.Middleware(nr))
	}

	// Endpoint debug/pprof/
	env := config.StringToEnvironment(conf.App.Env)
	if env != config.PROD_ENV {
		pprof.Register(app)
	}

	app.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metrics.FlattenName(conf.App.Name),
		Registerer: m.PrometheusRegisterer(),
	}))
	app.GET("/metrics", echoprometheus.NewHandler())

	apiGroup := app.Group("/api")

	health.New(apiGroup)

	v1Group := apiGroup.Group("/v1")
	v1Group.Use(mw.InternalAuth)
	v1catalog.New(v1Group, s.Resolver)
	v1session.New(v1Group, s)

	app.Any("*", func(c echo.Context) error {
		errorMessage := fmt.Errorf("route '%s' does not exist in this API", c.Request().URL)
		return commonhttp.RestErrorResponse(c, nethttp.StatusNotFound, errorMessage)
	})

	return svc
}
