package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/dmoralesb/mesafina-backend/pkg/db/models"
	"github.com/dmoralesb/mesafina-backend/pkg/enums"
	pkgerrors "github.com/dmoralesb/mesafina-backend/pkg/errors"
	"github.com/dmoralesb/mesafina-backend/pkg/pagination"
)

// maxMutationAttempts bounds the optimistic retry loop for guarded stock
// writes. Each attempt re-reads the item and re-runs the business rules, so a
// loser of a race converges on the correct outcome instead of looping forever.
const maxMutationAttempts = 3

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the stock operations exposed to the API and workers.
type Service interface {
	DailyStockReset(ctx context.Context, input DailyStockResetInput) ([]ResetOutcome, error)
	AddStock(ctx context.Context, itemID uuid.UUID, input AdjustStockInput) (*models.MenuItem, error)
	RemoveStock(ctx context.Context, itemID uuid.UUID, input AdjustStockInput) (*models.MenuItem, error)
	GetLowStockItems(ctx context.Context) ([]models.MenuItem, error)
	GetOutOfStockItems(ctx context.Context) ([]models.MenuItem, error)
	GetStockHistory(ctx context.Context, itemID uuid.UUID, params pagination.Params) ([]models.StockAdjustment, pagination.Meta, error)
	UpdateInventoryType(ctx context.Context, itemID uuid.UUID, input UpdateInventoryTypeInput) (*models.MenuItem, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService wires a stock service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// ResetEntry is one item's target in a daily stock reset batch.
type ResetEntry struct {
	ItemID        uuid.UUID
	Quantity      int
	LowStockAlert *int
}

// DailyStockResetInput carries the whole reset batch.
type DailyStockResetInput struct {
	Entries []ResetEntry
	Reason  *string
	UserID  uuid.UUID
}

// ResetOutcome reports what happened to a single batch entry. Exactly one of
// Item and Err is set.
type ResetOutcome struct {
	ItemID uuid.UUID
	Item   *models.MenuItem
	Err    error
}

// AdjustStockInput carries a manual add or remove request.
type AdjustStockInput struct {
	Quantity int
	Reason   string
	UserID   uuid.UUID
}

// UpdateInventoryTypeInput switches an item between TRACKED and UNLIMITED.
type UpdateInventoryTypeInput struct {
	InventoryType enums.InventoryType
	LowStockAlert *int
}

// DailyStockReset sets each entry's stock to its target quantity, records a
// DAILY_RESET ledger row, and re-enables availability. Entries are processed
// independently: one failure does not roll back entries already committed.
// The returned error aggregates the per-entry failures; outcomes preserve
// input order.
func (s *service) DailyStockReset(ctx context.Context, input DailyStockResetInput) ([]ResetOutcome, error) {
	if len(input.Entries) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one reset entry is required")
	}

	outcomes := make([]ResetOutcome, 0, len(input.Entries))
	var batchErr error

	for _, entry := range input.Entries {
		item, err := s.resetEntry(ctx, entry, input.Reason, input.UserID)
		outcome := ResetOutcome{ItemID: entry.ItemID}
		if err != nil {
			outcome.Err = err
			batchErr = multierr.Append(batchErr, fmt.Errorf("item %s: %w", entry.ItemID, err))
		} else {
			outcome.Item = item
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, batchErr
}

func (s *service) resetEntry(ctx context.Context, entry ResetEntry, reason *string, userID uuid.UUID) (*models.MenuItem, error) {
	if err := ValidateResetQuantity(entry.Quantity); err != nil {
		return nil, err
	}
	if entry.LowStockAlert != nil && *entry.LowStockAlert < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "low stock alert cannot be negative")
	}

	return s.mutateStock(ctx, entry.ItemID, func(item *models.MenuItem) (StockMutation, *models.StockAdjustment, error) {
		if err := RequireTracked(item, "reset stock"); err != nil {
			return StockMutation{}, nil, err
		}

		previous := *item.StockQuantity
		newStock := entry.Quantity
		available := true
		initial := entry.Quantity

		mut := StockMutation{
			NewStockQuantity: newStock,
			NewIsAvailable:   &available,
			NewInitialStock:  &initial,
			NewLowStockAlert: entry.LowStockAlert,
		}
		adj := &models.StockAdjustment{
			MenuItemID:     item.ID,
			AdjustmentType: enums.AdjustmentTypeDailyReset,
			PreviousStock:  previous,
			NewStock:       newStock,
			Quantity:       absInt(newStock - previous),
			Reason:         reason,
			UserID:         optionalUserID(userID),
		}
		return mut, adj, nil
	})
}

// AddStock increases a TRACKED item's stock and clears any unavailability.
func (s *service) AddStock(ctx context.Context, itemID uuid.UUID, input AdjustStockInput) (*models.MenuItem, error) {
	if err := validateManualInput(input); err != nil {
		return nil, err
	}

	return s.mutateStock(ctx, itemID, func(item *models.MenuItem) (StockMutation, *models.StockAdjustment, error) {
		if err := RequireTracked(item, "add stock"); err != nil {
			return StockMutation{}, nil, err
		}

		previous := *item.StockQuantity
		newStock, err := ApplyAdd(previous, input.Quantity)
		if err != nil {
			return StockMutation{}, nil, err
		}
		available := true

		mut := StockMutation{NewStockQuantity: newStock, NewIsAvailable: &available}
		adj := &models.StockAdjustment{
			MenuItemID:     item.ID,
			AdjustmentType: enums.AdjustmentTypeManualAdd,
			PreviousStock:  previous,
			NewStock:       newStock,
			Quantity:       input.Quantity,
			Reason:         &input.Reason,
			UserID:         optionalUserID(input.UserID),
		}
		return mut, adj, nil
	})
}

// RemoveStock decreases a TRACKED item's stock, never below zero. A removal
// that leaves stock behind re-enables the item; when the item auto-marks
// unavailability and stock hits zero it is taken off the menu in the same
// transaction.
func (s *service) RemoveStock(ctx context.Context, itemID uuid.UUID, input AdjustStockInput) (*models.MenuItem, error) {
	if err := validateManualInput(input); err != nil {
		return nil, err
	}

	return s.mutateStock(ctx, itemID, func(item *models.MenuItem) (StockMutation, *models.StockAdjustment, error) {
		if err := RequireTracked(item, "remove stock"); err != nil {
			return StockMutation{}, nil, err
		}

		previous := *item.StockQuantity
		newStock, err := ApplyRemove(previous, input.Quantity)
		if err != nil {
			return StockMutation{}, nil, err
		}
		available := DeriveAvailability(newStock, item.AutoMarkUnavailable, true)

		mut := StockMutation{NewStockQuantity: newStock, NewIsAvailable: &available}
		adj := &models.StockAdjustment{
			MenuItemID:     item.ID,
			AdjustmentType: enums.AdjustmentTypeManualRemove,
			PreviousStock:  previous,
			NewStock:       newStock,
			Quantity:       input.Quantity,
			Reason:         &input.Reason,
			UserID:         optionalUserID(input.UserID),
		}
		return mut, adj, nil
	})
}

// GetLowStockItems returns TRACKED items at or below their alert threshold.
func (s *service) GetLowStockItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.repo.ListLowStock(ctx)
}

// GetOutOfStockItems returns TRACKED items with zero stock.
func (s *service) GetOutOfStockItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.repo.ListOutOfStock(ctx)
}

// GetStockHistory pages through the item's adjustment ledger, newest first.
func (s *service) GetStockHistory(ctx context.Context, itemID uuid.UUID, params pagination.Params) ([]models.StockAdjustment, pagination.Meta, error) {
	if itemID == uuid.Nil {
		return nil, pagination.Meta{}, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if err := params.Validate(); err != nil {
		return nil, pagination.Meta{}, err
	}

	if _, err := s.findItem(ctx, itemID); err != nil {
		return nil, pagination.Meta{}, err
	}

	rows, total, err := s.repo.ListAdjustments(ctx, itemID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return rows, pagination.NewMeta(params, total), nil
}

// UpdateInventoryType switches the item between TRACKED and UNLIMITED. A mode
// conversion is a configuration change, not a quantity change, so no ledger
// row is written. Converting to the current mode is a no-op.
func (s *service) UpdateInventoryType(ctx context.Context, itemID uuid.UUID, input UpdateInventoryTypeInput) (*models.MenuItem, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if !input.InventoryType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid inventory type %q", input.InventoryType))
	}
	if input.LowStockAlert != nil && *input.LowStockAlert < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "low stock alert cannot be negative")
	}

	item, err := s.findItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.InventoryType == input.InventoryType {
		return item, nil
	}

	var changes map[string]any
	switch input.InventoryType {
	case enums.InventoryTypeUnlimited:
		changes = map[string]any{
			"inventory_type":  enums.InventoryTypeUnlimited,
			"stock_quantity":  nil,
			"initial_stock":   nil,
			"low_stock_alert": nil,
		}
	case enums.InventoryTypeTracked:
		alert := 0
		if input.LowStockAlert != nil {
			alert = *input.LowStockAlert
		}
		changes = map[string]any{
			"inventory_type":        enums.InventoryTypeTracked,
			"stock_quantity":        0,
			"initial_stock":         0,
			"low_stock_alert":       alert,
			"auto_mark_unavailable": true,
		}
	}

	if err := s.repo.ConvertTypeGuarded(ctx, itemID, item.InventoryType, changes); err != nil {
		return nil, err
	}
	return s.findItem(ctx, itemID)
}

// mutateStock runs the read-compute-commit cycle for one item. The guarded
// update fails with CONFLICT when another writer changed the stock between
// our read and write; in that case the whole cycle reruns against fresh
// state, up to maxMutationAttempts times.
func (s *service) mutateStock(ctx context.Context, itemID uuid.UUID, compute func(*models.MenuItem) (StockMutation, *models.StockAdjustment, error)) (*models.MenuItem, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}

	for attempt := 0; attempt < maxMutationAttempts; attempt++ {
		var updated *models.MenuItem

		err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)

			item, err := repo.FindItemByID(ctx, itemID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu item")
			}

			mut, adj, err := compute(item)
			if err != nil {
				return err
			}

			if err := repo.UpdateStockGuarded(ctx, item.ID, *item.StockQuantity, mut); err != nil {
				return err
			}
			if err := repo.InsertAdjustment(ctx, adj); err != nil {
				return err
			}

			fresh, err := repo.FindItemByID(ctx, itemID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload menu item")
			}
			updated = fresh
			return nil
		})
		if err == nil {
			return updated, nil
		}
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeConflict {
			continue
		}
		return nil, err
	}

	return nil, pkgerrors.New(pkgerrors.CodeConflict, "stock mutation contention, retry the request")
}

func (s *service) findItem(ctx context.Context, itemID uuid.UUID) (*models.MenuItem, error) {
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu item")
	}
	return item, nil
}

func validateManualInput(input AdjustStockInput) error {
	if input.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}
	if input.Reason == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "reason is required")
	}
	if input.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	return nil
}

func optionalUserID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
