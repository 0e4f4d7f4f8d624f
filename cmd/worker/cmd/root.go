package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rupiksha/go-ppob-transaction/cmd/setup"
	"github.com/rupiksha/go-ppob-transaction/internal/common/graceful"
	"github.com/rupiksha/go-ppob-transaction/internal/common/log"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "worker",
	Short: "Worker application for background reconciliation jobs",
	Long:  ``,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().DurationP(reconcileCmdInterval, "i", 0, "keep sweeping at this interval (one-shot when unset)")
}

var (
	reconcileCmd = &cobra.Command{
		Use:     "reconcile",
		Short:   "Resolve ambiguous submission outcomes against the settlement gateway",
		Long:    ``,
		Example: "worker reconcile -i=5m",
		Run:     runReconcile,
	}
	reconcileCmdInterval = "interval"
)

func runReconcile(ccmd *cobra.Command, args []string) {
	ctx := context.Background()

	interval, _ := ccmd.Flags().GetDuration(reconcileCmdInterval)

	s, stoppers, err := setup.Init("worker")
	if err != nil {
		graceful.StopProcess(5*time.Second, stoppers...)
		log.Fatalf(ctx, "failed to setup app: %v", err)
	}
	defer graceful.StopProcess(s.Config.App.GracefulTimeout, stoppers...)

	sweep := func() {
		resolved, err := s.Service.Reconciler.SweepAmbiguous(ctx)
		if err != nil {
			log.Error(ctx, "[WORKER] reconcile sweep failed", log.Err(err))
			return
		}
		log.Info(ctx, "[WORKER] reconcile sweep done", log.Int("resolved", resolved))
	}

	sweep()
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		sweep()
	}
}
