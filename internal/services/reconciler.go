package services

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/rupiksha/go-ppob-transaction/internal/common/log"
	"github.com/rupiksha/go-ppob-transaction/internal/monitoring"
)

// ReconcilerService is the worker-side sweep over ambiguous submissions:
// every record whose outcome the gateway left undetermined is queried for
// its authoritative status. Records still pending at the gateway stay
// ambiguous and are picked up by the next sweep.
type ReconcilerService interface {
	SweepAmbiguous(ctx context.Context) (resolvedCount int, err error)
}

type reconciler service

const reconcilerLogIdentifier = "[RECONCILER]"

// sweepConcurrency bounds parallel status queries against the gateway.
const sweepConcurrency = 4

func (r *reconciler) SweepAmbiguous(ctx context.Context) (resolvedCount int, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	records, err := r.srv.submissionRepo.ListAmbiguous(ctx)
	if err != nil {
		return 0, err
	}

	var resolvedTotal atomic.Int64

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)

	for _, rec := range records {
		rec := rec
		g.Go(func() error {
			if gCtx.Err() != nil {
				return gCtx.Err()
			}

			_, resolved, recErr := r.srv.Submitter.Reconcile(gCtx, rec.RequestID)
			if recErr != nil {
				// One stuck record must not starve the rest of the sweep.
				log.Warn(gCtx, reconcilerLogIdentifier+" reconcile failed",
					log.String("requestId", rec.RequestID), log.Err(recErr))
				return nil
			}
			if resolved {
				resolvedTotal.Add(1)
			}
			return nil
		})
	}

	err = g.Wait()
	resolvedCount = int(resolvedTotal.Load())

	log.Info(ctx, reconcilerLogIdentifier+" sweep finished",
		log.Int("total", len(records)), log.Int("resolved", resolvedCount))
	return resolvedCount, err
}
