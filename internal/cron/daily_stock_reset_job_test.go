package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/dmoralesb/mesafina-backend/internal/inventory"
	"github.com/dmoralesb/mesafina-backend/pkg/db/models"
	"github.com/dmoralesb/mesafina-backend/pkg/enums"
	"github.com/dmoralesb/mesafina-backend/pkg/logger"
)

type fakeTrackedLister struct {
	items []models.MenuItem
	err   error
}

func (f *fakeTrackedLister) ListTracked(ctx context.Context) ([]models.MenuItem, error) {
	return f.items, f.err
}

type fakeStockResetter struct {
	input    inventory.DailyStockResetInput
	outcomes []inventory.ResetOutcome
	err      error
	called   int
}

func (f *fakeStockResetter) DailyStockReset(ctx context.Context, input inventory.DailyStockResetInput) ([]inventory.ResetOutcome, error) {
	f.called++
	f.input = input
	return f.outcomes, f.err
}

func trackedMenuItem(initial int) models.MenuItem {
	stock := 0
	alert := 2
	i := initial
	return models.MenuItem{
		ID:            uuid.New(),
		InventoryType: enums.InventoryTypeTracked,
		StockQuantity: &stock,
		InitialStock:  &i,
		LowStockAlert: &alert,
	}
}

func newResetJob(t *testing.T, lister *fakeTrackedLister, resetter *fakeStockResetter) Job {
	t.Helper()
	job, err := NewDailyStockResetJob(DailyStockResetJobParams{
		Logger: logger.New(logger.Options{ServiceName: "test"}),
		Items:  lister,
		Stock:  resetter,
	})
	if err != nil {
		t.Fatalf("NewDailyStockResetJob: %v", err)
	}
	return job
}

func TestDailyStockResetJobResetsToInitialStock(t *testing.T) {
	itemA := trackedMenuItem(30)
	itemB := trackedMenuItem(25)
	lister := &fakeTrackedLister{items: []models.MenuItem{itemA, itemB}}
	resetter := &fakeStockResetter{
		outcomes: []inventory.ResetOutcome{
			{ItemID: itemA.ID, Item: &itemA},
			{ItemID: itemB.ID, Item: &itemB},
		},
	}
	job := newResetJob(t, lister, resetter)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if resetter.called != 1 {
		t.Fatalf("expected one reset call, got %d", resetter.called)
	}
	if len(resetter.input.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(resetter.input.Entries))
	}
	if resetter.input.Entries[0].Quantity != 30 || resetter.input.Entries[1].Quantity != 25 {
		t.Fatalf("entries should carry each item's initial stock: %+v", resetter.input.Entries)
	}
	if resetter.input.Reason == nil || *resetter.input.Reason != defaultResetReason {
		t.Fatalf("expected default reason, got %v", resetter.input.Reason)
	}
}

func TestDailyStockResetJobSkipsWhenNothingTracked(t *testing.T) {
	lister := &fakeTrackedLister{}
	resetter := &fakeStockResetter{}
	job := newResetJob(t, lister, resetter)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if resetter.called != 0 {
		t.Fatal("reset should not be called without tracked items")
	}
}

func TestDailyStockResetJobSurfacesPartialFailure(t *testing.T) {
	item := trackedMenuItem(10)
	lister := &fakeTrackedLister{items: []models.MenuItem{item}}
	resetter := &fakeStockResetter{
		outcomes: []inventory.ResetOutcome{{ItemID: item.ID, Err: errors.New("boom")}},
		err:      errors.New("item failed"),
	}
	job := newResetJob(t, lister, resetter)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error when an entry fails")
	}
}

func TestDailyStockResetJobPropagatesListError(t *testing.T) {
	lister := &fakeTrackedLister{err: errors.New("db down")}
	job := newResetJob(t, lister, &fakeStockResetter{})

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected list error")
	}
}
