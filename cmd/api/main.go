package main

import (
	"context"
	"sync"
	"time"

	"github.com/rupiksha/go-ppob-transaction/cmd/setup"
	"github.com/rupiksha/go-ppob-transaction/internal/common/graceful"
	"github.com/rupiksha/go-ppob-transaction/internal/common/log"
	"github.com/rupiksha/go-ppob-transaction/internal/deliveries/http"
)

func main() {
	var (
		ctx      = context.Background()
		starters []graceful.ProcessStarter
		stoppers []graceful.ProcessStopper
	)

	s, stopperContract, err := setup.Init("api")
	if err != nil {
		timeout := 5 * time.Second
		if s != nil && s.Config.App.GracefulTimeout != 0 {
			timeout = s.Config.App.GracefulTimeout
		}

		graceful.StopProcess(timeout, stopperContract...)

		log.Fatalf(ctx, "failed to setup app: %v", err)
	}

	// idle session eviction
	janitorCtx, cancelJanitor := context.WithCancel(ctx)
	s.Service.Sessions.StartJanitor(janitorCtx)
	stoppers = append(stoppers, func(ctx context.Context) error {
		cancelJanitor()
		return nil
	})

	httpServer := http.NewHTTPServer(ctx, s.Config, s.NewRelic, s.Service, s.Metrics)

	starters = append(starters, httpServer.Start())
	stoppers = append(stoppers, httpServer.Stop())
	stoppers = append(stoppers, stopperContract...)

	wg := new(sync.WaitGroup)
	wg.Add(1)
	go func() {
		graceful.StartProcessAtBackground(starters...)
		graceful.StopProcessAtBackground(s.Config.App.GracefulTimeout, stoppers...)
		wg.Done()
	}()
	wg.Wait()
	log.Info(ctx, "http server stopped!")
}
