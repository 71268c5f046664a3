package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmoralesb/mesafina-backend/pkg/enums"
)

// StockAdjustment records an immutable stock quantity change for a menu item.
// Rows are inserted in the same transaction as the item update and are never
// updated or deleted afterwards.
type StockAdjustment struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MenuItemID     uuid.UUID            `gorm:"column:menu_item_id;type:uuid;not null"`
	AdjustmentType enums.AdjustmentType `gorm:"column:adjustment_type;type:adjustment_type_enum;not null"`
	PreviousStock  int                  `gorm:"column:previous_stock;not null"`
	NewStock       int                  `gorm:"column:new_stock;not null"`
	Quantity       int                  `gorm:"column:quantity;not null"`
	Reason         *string              `gorm:"column:reason"`
	UserID         *uuid.UUID           `gorm:"column:user_id;type:uuid"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
}
