package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmoralesb/mesafina-backend/pkg/db/models"
	"github.com/dmoralesb/mesafina-backend/pkg/enums"
	pkgerrors "github.com/dmoralesb/mesafina-backend/pkg/errors"
	"github.com/dmoralesb/mesafina-backend/pkg/pagination"
)

// StockMutation carries the new stock fields written alongside a ledger entry.
type StockMutation struct {
	NewStockQuantity int
	NewIsAvailable   *bool
	NewInitialStock  *int
	NewLowStockAlert *int
}

// Repository provides persistence for menu item stock and the adjustment ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	UpdateStockGuarded(ctx context.Context, itemID uuid.UUID, expectedStock int, mut StockMutation) error
	InsertAdjustment(ctx context.Context, adjustment *models.StockAdjustment) error
	ConvertTypeGuarded(ctx context.Context, itemID uuid.UUID, expectedType enums.InventoryType, changes map[string]any) error
	ListTracked(ctx context.Context) ([]models.MenuItem, error)
	ListLowStock(ctx context.Context) ([]models.MenuItem, error)
	ListOutOfStock(ctx context.Context) ([]models.MenuItem, error)
	ListAdjustments(ctx context.Context, itemID uuid.UUID, params pagination.Params) ([]models.StockAdjustment, int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// FindItemByID loads the menu item without associations.
func (r *repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateStockGuarded applies mut to the item only if its stock_quantity still
// equals expectedStock. A zero rows-affected result means another writer got
// there first (or the item vanished) and surfaces as CONFLICT so the caller
// can re-read and recompute.
func (r *repository) UpdateStockGuarded(ctx context.Context, itemID uuid.UUID, expectedStock int, mut StockMutation) error {
	changes := map[string]any{
		"stock_quantity": mut.NewStockQuantity,
	}
	if mut.NewIsAvailable != nil {
		changes["is_available"] = *mut.NewIsAvailable
	}
	if mut.NewInitialStock != nil {
		changes["initial_stock"] = *mut.NewInitialStock
	}
	if mut.NewLowStockAlert != nil {
		changes["low_stock_alert"] = *mut.NewLowStockAlert
	}

	res := r.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Where("id = ? AND stock_quantity = ?", itemID, expectedStock).
		Updates(changes)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "update menu item stock")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "menu item stock changed concurrently")
	}
	return nil
}

// InsertAdjustment appends one row to the stock adjustment ledger.
func (r *repository) InsertAdjustment(ctx context.Context, adjustment *models.StockAdjustment) error {
	if err := r.db.WithContext(ctx).Create(adjustment).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert stock adjustment")
	}
	return nil
}

// ConvertTypeGuarded rewrites the inventory mode columns only while the item
// is still in expectedType, so a concurrent stock mutation and a mode flip
// cannot interleave.
func (r *repository) ConvertTypeGuarded(ctx context.Context, itemID uuid.UUID, expectedType enums.InventoryType, changes map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Where("id = ? AND inventory_type = ?", itemID, expectedType).
		Updates(changes)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "convert inventory type")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "menu item inventory type changed concurrently")
	}
	return nil
}

// ListTracked returns every TRACKED item.
func (r *repository) ListTracked(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.WithContext(ctx).
		Where("inventory_type = ?", enums.InventoryTypeTracked).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tracked items")
	}
	return items, nil
}

// ListLowStock returns TRACKED items at or below their alert threshold.
func (r *repository) ListLowStock(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.WithContext(ctx).
		Where("inventory_type = ? AND stock_quantity <= low_stock_alert", enums.InventoryTypeTracked).
		Order("stock_quantity ASC, name ASC").
		Find(&items).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list low stock items")
	}
	return items, nil
}

// ListOutOfStock returns TRACKED items with zero stock.
func (r *repository) ListOutOfStock(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.WithContext(ctx).
		Where("inventory_type = ? AND stock_quantity = 0", enums.InventoryTypeTracked).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list out of stock items")
	}
	return items, nil
}

// ListAdjustments returns the item's ledger entries newest first, plus the
// total row count for page metadata.
func (r *repository) ListAdjustments(ctx context.Context, itemID uuid.UUID, params pagination.Params) ([]models.StockAdjustment, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.StockAdjustment{}).
		Where("menu_item_id = ?", itemID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count stock adjustments")
	}

	var rows []models.StockAdjustment
	err := base.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Limit(pagination.NormalizeLimit(params.Limit)).
		Offset(params.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock adjustments")
	}
	return rows, total, nil
}
