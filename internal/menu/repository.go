package menu

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmoralesb/mesafina-backend/pkg/db/models"
	pkgerrors "github.com/dmoralesb/mesafina-backend/pkg/errors"
)

// Repository provides persistence for menu categories and items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateCategory(ctx context.Context, category *models.MenuCategory) error
	ListCategories(ctx context.Context) ([]models.MenuCategory, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.MenuCategory, error)
	CreateItem(ctx context.Context, item *models.MenuItem) error
	ListItems(ctx context.Context) ([]models.MenuItem, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateCategory(ctx context.Context, category *models.MenuCategory) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create menu category")
	}
	return nil
}

func (r *repository) ListCategories(ctx context.Context) ([]models.MenuCategory, error) {
	var categories []models.MenuCategory
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list menu categories")
	}
	return categories, nil
}

func (r *repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.MenuCategory, error) {
	var category models.MenuCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) CreateItem(ctx context.Context, item *models.MenuItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create menu item")
	}
	return nil
}

func (r *repository) ListItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.WithContext(ctx).
		Order("display_order ASC, name ASC").
		Find(&items).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list menu items")
	}
	return items, nil
}
