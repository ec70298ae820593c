package background

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pagora/payment-service/internal/infrastructure/metrics"
	"github.com/pagora/payment-service/internal/infrastructure/redislock"
	"github.com/pagora/payment-service/internal/usecase"
)

const reconcileLockKey = "reconcile-pending"

type BackgroundTasks struct {
	Reconciler   usecase.ReconcileUsecase
	PollLock     redislock.TryLocker
	PollInterval time.Duration
	LockTTL      time.Duration
	Metrics      *metrics.PaymentMetrics

	reconciling atomic.Bool
}

// PollLock may be nil; single-instance deployments rely on the in-process
// guard alone.
func NewBackgroundTasks(reconciler usecase.ReconcileUsecase, pollLock redislock.TryLocker, pollInterval, lockTTL time.Duration, paymentMetrics *metrics.PaymentMetrics) *BackgroundTasks {
	return &BackgroundTasks{
		Reconciler:   reconciler,
		PollLock:     pollLock,
		PollInterval: pollInterval,
		LockTTL:      lockTTL,
		Metrics:      paymentMetrics,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startPendingReconciliation(ctx)
}

func (bt *BackgroundTasks) startPendingReconciliation(ctx context.Context) {
	ticker := time.NewTicker(bt.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.runReconciliationOnce(ctx)
		}
	}
}

// runReconciliationOnce admits a single pass at a time. The CAS guard
// keeps a slow pass from overlapping the next tick in this process; the
// optional distributed lock extends the same guarantee across replicas.
func (bt *BackgroundTasks) runReconciliationOnce(ctx context.Context) {
	if !bt.reconciling.CompareAndSwap(false, true) {
		bt.Metrics.PollSkippedTotal.Inc()
		slog.Warn("reconciliation pass still running, skipping tick")
		return
	}
	defer bt.reconciling.Store(false)

	if bt.PollLock != nil {
		acquired, err := bt.PollLock.TryLock(ctx, reconcileLockKey, bt.LockTTL)
		if err != nil {
			slog.Error("reconciliation lock error", "error", err)
			return
		}
		if !acquired {
			bt.Metrics.PollSkippedTotal.Inc()
			slog.Info("reconciliation lock held by another instance, skipping tick")
			return
		}
		defer func() {
			if err := bt.PollLock.Unlock(ctx, reconcileLockKey); err != nil {
				slog.Error("reconciliation unlock error", "error", err)
			}
		}()
	}

	if err := bt.Reconciler.ReconcilePendingTransactions(ctx); err != nil {
		slog.Error("reconciliation pass failed", "error", err)
	}
}
