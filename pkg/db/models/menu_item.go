package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/dmoralesb/mesafina-backend/pkg/enums"
)

// MenuItem is a sellable dish with optional counted stock.
//
// The stock columns are nullable on purpose: they are present exactly when
// InventoryType is TRACKED and NULL when it is UNLIMITED. Every write path
// keeps that pairing, and the menu_items migration enforces it with a CHECK
// constraint.
type MenuItem struct {
	ID                  uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID          uuid.UUID           `gorm:"column:category_id;type:uuid;not null"`
	Name                string              `gorm:"column:name;not null"`
	Description         *string             `gorm:"column:description"`
	Price               decimal.Decimal     `gorm:"column:price;type:numeric(10,2);not null"`
	Tags                pq.StringArray      `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`
	PreparationMinutes  int                 `gorm:"column:preparation_minutes;not null;default:0"`
	DisplayOrder        int                 `gorm:"column:display_order;not null;default:0"`
	InventoryType       enums.InventoryType `gorm:"column:inventory_type;type:inventory_type_enum;not null;default:UNLIMITED"`
	StockQuantity       *int                `gorm:"column:stock_quantity"`
	InitialStock        *int                `gorm:"column:initial_stock"`
	LowStockAlert       *int                `gorm:"column:low_stock_alert"`
	IsAvailable         bool                `gorm:"column:is_available;not null;default:true"`
	AutoMarkUnavailable bool                `gorm:"column:auto_mark_unavailable;not null;default:true"`
	Category            *MenuCategory       `gorm:"foreignKey:CategoryID"`
	CreatedAt           time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// Tracked reports whether the item carries counted stock.
func (m *MenuItem) Tracked() bool {
	return m.InventoryType == enums.InventoryTypeTracked
}
