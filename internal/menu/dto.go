package menu

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmoralesb/mesafina-backend/pkg/db/models"
)

// MenuCategoryDTO is the category payload returned to clients.
type MenuCategoryDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewMenuCategoryDTO maps a stored category to its API shape.
func NewMenuCategoryDTO(category *models.MenuCategory) *MenuCategoryDTO {
	if category == nil {
		return nil
	}
	return &MenuCategoryDTO{
		ID:           category.ID,
		Name:         category.Name,
		Description:  category.Description,
		DisplayOrder: category.DisplayOrder,
		IsActive:     category.IsActive,
		CreatedAt:    category.CreatedAt,
		UpdatedAt:    category.UpdatedAt,
	}
}

// NewMenuCategoryDTOs maps a slice of categories, preserving order.
func NewMenuCategoryDTOs(categories []models.MenuCategory) []MenuCategoryDTO {
	out := make([]MenuCategoryDTO, 0, len(categories))
	for i := range categories {
		out = append(out, *NewMenuCategoryDTO(&categories[i]))
	}
	return out
}

// MenuItemDTO is the item payload returned from the menu endpoints.
type MenuItemDTO struct {
	ID                  uuid.UUID `json:"id"`
	CategoryID          uuid.UUID `json:"category_id"`
	Name                string    `json:"name"`
	Description         *string   `json:"description,omitempty"`
	Price               string    `json:"price"`
	Tags                []string  `json:"tags"`
	PreparationMinutes  int       `json:"preparation_minutes"`
	DisplayOrder        int       `json:"display_order"`
	InventoryType       string    `json:"inventory_type"`
	StockQuantity       *int      `json:"stock_quantity,omitempty"`
	InitialStock        *int      `json:"initial_stock,omitempty"`
	LowStockAlert       *int      `json:"low_stock_alert,omitempty"`
	IsAvailable         bool      `json:"is_available"`
	AutoMarkUnavailable bool      `json:"auto_mark_unavailable"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// NewMenuItemDTO maps a stored item to its API shape.
func NewMenuItemDTO(item *models.MenuItem) *MenuItemDTO {
	if item == nil {
		return nil
	}
	tags := []string(item.Tags)
	if tags == nil {
		tags = []string{}
	}
	return &MenuItemDTO{
		ID:                  item.ID,
		CategoryID:          item.CategoryID,
		Name:                item.Name,
		Description:         item.Description,
		Price:               item.Price.StringFixed(2),
		Tags:                tags,
		PreparationMinutes:  item.PreparationMinutes,
		DisplayOrder:        item.DisplayOrder,
		InventoryType:       item.InventoryType.String(),
		StockQuantity:       item.StockQuantity,
		InitialStock:        item.InitialStock,
		LowStockAlert:       item.LowStockAlert,
		IsAvailable:         item.IsAvailable,
		AutoMarkUnavailable: item.AutoMarkUnavailable,
		CreatedAt:           item.CreatedAt,
		UpdatedAt:           item.UpdatedAt,
	}
}

// NewMenuItemDTOs maps a slice of items, preserving order.
func NewMenuItemDTOs(items []models.MenuItem) []MenuItemDTO {
	out := make([]MenuItemDTO, 0, len(items))
	for i := range items {
		out = append(out, *NewMenuItemDTO(&items[i]))
	}
	return out
}
