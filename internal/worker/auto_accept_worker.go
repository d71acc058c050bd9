package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"vendorhub/internal/metrics"
	"vendorhub/internal/model"
	"vendorhub/internal/service"
)

// ActorAutoAccept is recorded as the author of status changes made by the
// worker.
const ActorAutoAccept = "auto-accept"

type VendorSource interface {
	AutoAcceptVendors(ctx context.Context) ([]string, error)
}

type OrderAcceptor interface {
	PendingForAutoAccept(ctx context.Context, vendorID string, limit int) ([]model.Order, error)
	Transition(ctx context.Context, vendorID, id string, target model.Status, actor string) (*service.OrderDetail, error)
}

// AutoAcceptWorker accepts new orders of vendors that enabled auto-accept
// in their settings.
type AutoAcceptWorker struct {
	vendors   VendorSource
	orders    OrderAcceptor
	metrics   *metrics.Registry
	interval  time.Duration
	batchSize int
}

func NewAutoAcceptWorker(vendors VendorSource, orders OrderAcceptor, m *metrics.Registry, interval time.Duration) *AutoAcceptWorker {
	return &AutoAcceptWorker{
		vendors:   vendors,
		orders:    orders,
		metrics:   m,
		interval:  interval,
		batchSize: 20,
	}
}

func (w *AutoAcceptWorker) Start(ctx context.Context) {
	slog.Info("starting auto-accept worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("auto-accept worker stopped")
			return
		case <-ticker.C:
			if _, err := w.RunOnce(ctx); err != nil {
				slog.Error("auto-accept pass failed", "error", err)
			}
		}
	}
}

// RunOnce makes a single pass over all auto-accepting vendors and returns
// how many orders were accepted.
func (w *AutoAcceptWorker) RunOnce(ctx context.Context) (int, error) {
	vendorIDs, err := w.vendors.AutoAcceptVendors(ctx)
	if err != nil {
		return 0, fmt.Errorf("list vendors: %w", err)
	}

	accepted := 0
	for _, vendorID := range vendorIDs {
		if ctx.Err() != nil {
			return accepted, ctx.Err()
		}

		orders, err := w.orders.PendingForAutoAccept(ctx, vendorID, w.batchSize)
		if err != nil {
			slog.Error("failed to list new orders", "vendor_id", vendorID, "error", err)
			continue
		}

		for _, o := range orders {
			_, err := w.orders.Transition(ctx, vendorID, o.ID, model.StatusProcessing, ActorAutoAccept)
			switch {
			case err == nil:
				accepted++
				w.metrics.AutoAccepted.Inc()
			case errors.Is(err, service.ErrStatusConflict):
				// the vendor acted on it first
				slog.Debug("order changed before auto-accept", "order_id", o.ID)
			default:
				slog.Error("failed to auto-accept order", "vendor_id", vendorID, "order_id", o.ID, "error", err)
			}
		}
	}

	if accepted > 0 {
		slog.Info("orders auto-accepted", "count", accepted)
	}
	return accepted, nil
}
