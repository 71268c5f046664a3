package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmoralesb/mesafina-backend/api/responses"
	"github.com/dmoralesb/mesafina-backend/api/validators"
	menusvc "github.com/dmoralesb/mesafina-backend/internal/menu"
	"github.com/dmoralesb/mesafina-backend/pkg/enums"
	pkgerrors "github.com/dmoralesb/mesafina-backend/pkg/errors"
	"github.com/dmoralesb/mesafina-backend/pkg/logger"
)

type createCategoryRequest struct {
	Name         string  `json:"name" validate:"required"`
	Description  *string `json:"description,omitempty"`
	DisplayOrder int     `json:"display_order" validate:"min=0"`
}

// CreateMenuCategory registers a new category.
func CreateMenuCategory(svc menusvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.CreateCategory(r.Context(), menusvc.CreateCategoryInput{
			Name:         strings.TrimSpace(payload.Name),
			Description:  payload.Description,
			DisplayOrder: payload.DisplayOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, menusvc.NewMenuCategoryDTO(category))
	}
}

// ListMenuCategories returns the active categories in display order.
func ListMenuCategories(svc menusvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, menusvc.NewMenuCategoryDTOs(categories))
	}
}

type createMenuItemRequest struct {
	CategoryID          string   `json:"category_id" validate:"required,uuid"`
	Name                string   `json:"name" validate:"required"`
	Description         *string  `json:"description,omitempty"`
	Price               string   `json:"price" validate:"required"`
	Tags                []string `json:"tags,omitempty"`
	PreparationMinutes  int      `json:"preparation_minutes" validate:"min=0"`
	DisplayOrder        int      `json:"display_order" validate:"min=0"`
	InventoryType       string   `json:"inventory_type" validate:"required,oneof=TRACKED UNLIMITED"`
	StockQuantity       *int     `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	LowStockAlert       *int     `json:"low_stock_alert,omitempty" validate:"omitempty,min=0"`
	AutoMarkUnavailable *bool    `json:"auto_mark_unavailable,omitempty"`
}

// CreateMenuItem registers a new menu item under an existing category.
func CreateMenuItem(svc menusvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		var payload createMenuItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.CreateItem(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, menusvc.NewMenuItemDTO(item))
	}
}

// ListMenuItems returns all menu items.
func ListMenuItems(svc menusvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		items, err := svc.ListItems(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, menusvc.NewMenuItemDTOs(items))
	}
}

func (req createMenuItemRequest) toCreateInput() (menusvc.CreateItemInput, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return menusvc.CreateItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil {
		return menusvc.CreateItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}

	invType, err := enums.ParseInventoryType(req.InventoryType)
	if err != nil {
		return menusvc.CreateItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid inventory type")
	}

	autoMark := true
	if req.AutoMarkUnavailable != nil {
		autoMark = *req.AutoMarkUnavailable
	}

	return menusvc.CreateItemInput{
		CategoryID:          categoryID,
		Name:                strings.TrimSpace(req.Name),
		Description:         req.Description,
		Price:               price,
		Tags:                req.Tags,
		PreparationMinutes:  req.PreparationMinutes,
		DisplayOrder:        req.DisplayOrder,
		InventoryType:       invType,
		StockQuantity:       req.StockQuantity,
		LowStockAlert:       req.LowStockAlert,
		AutoMarkUnavailable: autoMark,
	}, nil
}
