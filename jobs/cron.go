package jobs

import (
	"context"
	"fmt"
	"time"

	"pousada/services"
	"pousada/services/logger"
	"pousada/services/notification"

	"github.com/robfig/cron/v3"
)

const (
	DefaultReconcileSpec = "0 3 * * *"
	DefaultCompleteSpec  = "15 0 * * *"
	jobTimeout           = 5 * time.Minute
)

// InventoryReconciler recomputes cached room counters
type InventoryReconciler interface {
	Reconcile(ctx context.Context) ([]services.Drift, error)
}

// StayCompleter closes checked-out stays
type StayCompleter interface {
	CompleteCheckedOut(ctx context.Context, cutoff time.Time) (int, error)
}

type Options struct {
	Reconciler    InventoryReconciler
	Completer     StayCompleter
	Notifier      notification.Service
	Logger        logger.Logger
	ReconcileSpec string
	CompleteSpec  string
}

// InitCronJobs registers the nightly jobs and starts the scheduler
func InitCronJobs(c *cron.Cron, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	if opts.ReconcileSpec == "" {
		opts.ReconcileSpec = DefaultReconcileSpec
	}
	if opts.CompleteSpec == "" {
		opts.CompleteSpec = DefaultCompleteSpec
	}

	if opts.Reconciler != nil {
		if _, err := c.AddFunc(opts.ReconcileSpec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			RunReconcile(ctx, opts.Reconciler, opts.Notifier, opts.Logger)
		}); err != nil {
			return fmt.Errorf("invalid reconcile schedule %q: %w", opts.ReconcileSpec, err)
		}
	}
	if opts.Completer != nil {
		if _, err := c.AddFunc(opts.CompleteSpec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			RunComplete(ctx, opts.Completer, time.Now(), opts.Logger)
		}); err != nil {
			return fmt.Errorf("invalid completion schedule %q: %w", opts.CompleteSpec, err)
		}
	}

	c.Start()
	opts.Logger.Info("Cron jobs initialized successfully")
	return nil
}

// RunReconcile fixes drifted counters and announces the ones it touched
func RunReconcile(ctx context.Context, r InventoryReconciler, n notification.Service, log logger.Logger) []services.Drift {
	log.Info("running inventory reconciliation at %v", time.Now())
	drifts, err := r.Reconcile(ctx)
	if err != nil {
		log.Error("inventory reconciliation failed: %v", err)
	}
	if len(drifts) > 0 {
		if err := notification.Publish(n, notification.NewEventBuilder(notification.InventoryReconciled)); err != nil {
			log.Warn("failed to publish reconciliation: %v", err)
		}
	}
	log.Info("inventory reconciliation fixed %d establishments", len(drifts))
	return drifts
}

// RunComplete completes CHECK_OUT stays whose check-out day is over
func RunComplete(ctx context.Context, c StayCompleter, now time.Time, log logger.Logger) int {
	y, m, d := now.UTC().Date()
	cutoff := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	n, err := c.CompleteCheckedOut(ctx, cutoff)
	if err != nil {
		log.Error("completing checked-out stays failed: %v", err)
		return n
	}
	log.Info("completed %d checked-out stays", n)
	return n
}
