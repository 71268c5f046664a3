package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmoralesb/mesafina-backend/pkg/db/models"
)

// MenuItemDTO represents the menu item payload returned to clients.
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

// NewMenuItemDTO maps the stored item to its API shape.
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

// StockAdjustmentDTO exposes a single ledger entry.
type StockAdjustmentDTO struct {
	ID             uuid.UUID  `json:"id"`
	MenuItemID     uuid.UUID  `json:"menu_item_id"`
	AdjustmentType string     `json:"adjustment_type"`
	PreviousStock  int        `json:"previous_stock"`
	NewStock       int        `json:"new_stock"`
	Quantity       int        `json:"quantity"`
	Reason         *string    `json:"reason,omitempty"`
	UserID         *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewStockAdjustmentDTOs maps ledger rows, preserving order.
func NewStockAdjustmentDTOs(rows []models.StockAdjustment) []StockAdjustmentDTO {
	out := make([]StockAdjustmentDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, StockAdjustmentDTO{
			ID:             row.ID,
			MenuItemID:     row.MenuItemID,
			AdjustmentType: row.AdjustmentType.String(),
			PreviousStock:  row.PreviousStock,
			NewStock:       row.NewStock,
			Quantity:       row.Quantity,
			Reason:         row.Reason,
			UserID:         row.UserID,
			CreatedAt:      row.CreatedAt,
		})
	}
	return out
}
