package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dmoralesb/mesafina-backend/pkg/db/models"
	"github.com/dmoralesb/mesafina-backend/pkg/enums"
	pkgerrors "github.com/dmoralesb/mesafina-backend/pkg/errors"
)

// Service exposes the menu operations the inventory surface needs: seeding
// categories and items, and listing them. Full menu CRUD lives elsewhere.
type Service interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.MenuCategory, error)
	ListCategories(ctx context.Context) ([]models.MenuCategory, error)
	CreateItem(ctx context.Context, input CreateItemInput) (*models.MenuItem, error)
	ListItems(ctx context.Context) ([]models.MenuItem, error)
}

type service struct {
	repo Repository
}

// NewService wires a menu service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	return &service{repo: repo}, nil
}

// CreateCategoryInput holds the validated payload to create a category.
type CreateCategoryInput struct {
	Name         string
	Description  *string
	DisplayOrder int
}

// CreateItemInput holds the validated payload to create a menu item.
type CreateItemInput struct {
	CategoryID          uuid.UUID
	Name                string
	Description         *string
	Price               decimal.Decimal
	Tags                []string
	PreparationMinutes  int
	DisplayOrder        int
	InventoryType       enums.InventoryType
	StockQuantity       *int
	LowStockAlert       *int
	AutoMarkUnavailable bool
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.MenuCategory, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}

	category := &models.MenuCategory{
		Name:         input.Name,
		Description:  input.Description,
		DisplayOrder: input.DisplayOrder,
		IsActive:     true,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *service) ListCategories(ctx context.Context) ([]models.MenuCategory, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) CreateItem(ctx context.Context, input CreateItemInput) (*models.MenuItem, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name required")
	}
	if input.CategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if !input.InventoryType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid inventory type %q", input.InventoryType))
	}

	if _, err := s.repo.FindCategoryByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu category")
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	item := &models.MenuItem{
		CategoryID:          input.CategoryID,
		Name:                input.Name,
		Description:         input.Description,
		Price:               input.Price,
		Tags:                tags,
		PreparationMinutes:  input.PreparationMinutes,
		DisplayOrder:        input.DisplayOrder,
		InventoryType:       input.InventoryType,
		IsAvailable:         true,
		AutoMarkUnavailable: input.AutoMarkUnavailable,
	}

	// TRACKED items always carry the full stock triple; UNLIMITED items none.
	if input.InventoryType == enums.InventoryTypeTracked {
		stock := 0
		if input.StockQuantity != nil {
			if *input.StockQuantity < 0 {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock quantity cannot be negative")
			}
			stock = *input.StockQuantity
		}
		alert := 0
		if input.LowStockAlert != nil {
			if *input.LowStockAlert < 0 {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "low stock alert cannot be negative")
			}
			alert = *input.LowStockAlert
		}
		initial := stock
		item.StockQuantity = &stock
		item.InitialStock = &initial
		item.LowStockAlert = &alert
	} else if input.StockQuantity != nil || input.LowStockAlert != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock fields are not allowed for UNLIMITED items")
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) ListItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.repo.ListItems(ctx)
}
