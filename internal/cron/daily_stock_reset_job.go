package cron

import (
	"context"
	"fmt"

	"github.com/dmoralesb/mesafina-backend/internal/inventory"
	"github.com/dmoralesb/mesafina-backend/pkg/db/models"
	"github.com/dmoralesb/mesafina-backend/pkg/logger"
)

const defaultResetReason = "Begin of the day"

type trackedItemLister interface {
	ListTracked(ctx context.Context) ([]models.MenuItem, error)
}

type stockResetter interface {
	DailyStockReset(ctx context.Context, input inventory.DailyStockResetInput) ([]inventory.ResetOutcome, error)
}

// DailyStockResetJobParams configure the start-of-day stock reset job.
type DailyStockResetJobParams struct {
	Logger *logger.Logger
	Items  trackedItemLister
	Stock  stockResetter
	Reason string
}

// NewDailyStockResetJob builds the job that re-applies each TRACKED item's
// initial stock as a DAILY_RESET ledger entry.
func NewDailyStockResetJob(params DailyStockResetJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Items == nil {
		return nil, fmt.Errorf("item lister required")
	}
	if params.Stock == nil {
		return nil, fmt.Errorf("stock service required")
	}
	reason := params.Reason
	if reason == "" {
		reason = defaultResetReason
	}
	return &dailyStockResetJob{
		logg:   params.Logger,
		items:  params.Items,
		stock:  params.Stock,
		reason: reason,
	}, nil
}

type dailyStockResetJob struct {
	logg   *logger.Logger
	items  trackedItemLister
	stock  stockResetter
	reason string
}

func (j *dailyStockResetJob) Name() string { return "daily-stock-reset" }

// Run resets every TRACKED item to its initial stock. Entries fail
// independently; the aggregate error marks the job failed while committed
// resets stay committed.
func (j *dailyStockResetJob) Run(ctx context.Context) error {
	items, err := j.items.ListTracked(ctx)
	if err != nil {
		return fmt.Errorf("list tracked items: %w", err)
	}
	if len(items) == 0 {
		j.logg.Info(ctx, "no tracked items to reset")
		return nil
	}

	entries := make([]inventory.ResetEntry, 0, len(items))
	for _, item := range items {
		if item.InitialStock == nil {
			continue
		}
		entries = append(entries, inventory.ResetEntry{
			ItemID:   item.ID,
			Quantity: *item.InitialStock,
		})
	}
	if len(entries) == 0 {
		j.logg.Info(ctx, "no tracked items carry an initial stock baseline")
		return nil
	}

	reason := j.reason
	outcomes, resetErr := j.stock.DailyStockReset(ctx, inventory.DailyStockResetInput{
		Entries: entries,
		Reason:  &reason,
	})

	succeeded := 0
	for _, outcome := range outcomes {
		if outcome.Err == nil {
			succeeded++
		}
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"items_total": len(entries),
		"items_reset": succeeded,
	})
	if resetErr != nil {
		j.logg.Error(logCtx, "daily stock reset finished with failures", resetErr)
		return fmt.Errorf("daily stock reset: %w", resetErr)
	}
	j.logg.Info(logCtx, "daily stock reset complete")
	return nil
}
