package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmoralesb/mesafina-backend/api/middleware"
	"github.com/dmoralesb/mesafina-backend/api/responses"
	"github.com/dmoralesb/mesafina-backend/api/validators"
	"github.com/dmoralesb/mesafina-backend/internal/inventory"
	"github.com/dmoralesb/mesafina-backend/pkg/db/models"
	"github.com/dmoralesb/mesafina-backend/pkg/enums"
	pkgerrors "github.com/dmoralesb/mesafina-backend/pkg/errors"
	"github.com/dmoralesb/mesafina-backend/pkg/logger"
)

type dailyResetRequest struct {
	Entries []dailyResetEntryRequest `json:"entries" validate:"required,min=1,dive"`
	Reason  *string                  `json:"reason,omitempty"`
}

type dailyResetEntryRequest struct {
	ItemID        string `json:"item_id" validate:"required,uuid"`
	Quantity      int    `json:"quantity" validate:"min=0"`
	LowStockAlert *int   `json:"low_stock_alert,omitempty" validate:"omitempty,min=0"`
}

type resetOutcomeResponse struct {
	ItemID string                  `json:"item_id"`
	Item   *inventory.MenuItemDTO  `json:"item,omitempty"`
	Error  *resetOutcomeErrorBody  `json:"error,omitempty"`
}

type resetOutcomeErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DailyStockReset applies a batch of per-item stock targets. Entries commit
// independently, so the response always carries one outcome per entry even
// when some of them failed.
func DailyStockReset(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload dailyResetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := inventory.DailyStockResetInput{
			Reason: payload.Reason,
			UserID: userID,
		}
		for _, entry := range payload.Entries {
			itemID, err := uuid.Parse(entry.ItemID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
				return
			}
			input.Entries = append(input.Entries, inventory.ResetEntry{
				ItemID:        itemID,
				Quantity:      entry.Quantity,
				LowStockAlert: entry.LowStockAlert,
			})
		}

		outcomes, batchErr := svc.DailyStockReset(r.Context(), input)
		if outcomes == nil && batchErr != nil {
			responses.WriteError(r.Context(), logg, w, batchErr)
			return
		}

		if batchErr != nil && logg != nil {
			ctx := logg.WithField(r.Context(), "failed_entries", countFailedOutcomes(outcomes))
			logg.Warn(ctx, "daily stock reset completed with failures")
		}

		out := make([]resetOutcomeResponse, 0, len(outcomes))
		for _, outcome := range outcomes {
			resp := resetOutcomeResponse{ItemID: outcome.ItemID.String()}
			if outcome.Err != nil {
				code := pkgerrors.CodeInternal
				message := "internal server error"
				if typed := pkgerrors.As(outcome.Err); typed != nil {
					code = typed.Code()
					message = typed.Message()
				}
				resp.Error = &resetOutcomeErrorBody{Code: string(code), Message: message}
			} else {
				resp.Item = inventory.NewMenuItemDTO(outcome.Item)
			}
			out = append(out, resp)
		}

		responses.WriteSuccess(w, map[string]any{"outcomes": out})
	}
}

type adjustStockRequest struct {
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Reason   string `json:"reason" validate:"required"`
}

// AddStock increments a tracked item's stock and records the ledger entry.
func AddStock(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		adjustStock(w, r, logg, svc.AddStock)
	}
}

// RemoveStock decrements a tracked item's stock and records the ledger entry.
func RemoveStock(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		adjustStock(w, r, logg, svc.RemoveStock)
	}
}

func adjustStock(
	w http.ResponseWriter,
	r *http.Request,
	logg *logger.Logger,
	apply func(ctx context.Context, itemID uuid.UUID, input inventory.AdjustStockInput) (*models.MenuItem, error),
) {
	itemID, err := parseItemID(r)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	userID, err := requireUserID(r)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	var payload adjustStockRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	item, err := apply(r.Context(), itemID, inventory.AdjustStockInput{
		Quantity: payload.Quantity,
		Reason:   payload.Reason,
		UserID:   userID,
	})
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccess(w, inventory.NewMenuItemDTO(item))
}

// GetLowStockItems lists tracked items at or below their alert threshold.
func GetLowStockItems(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		items, err := svc.GetLowStockItems(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, inventory.NewMenuItemDTOs(items))
	}
}

// GetOutOfStockItems lists tracked items with zero stock.
func GetOutOfStockItems(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		items, err := svc.GetOutOfStockItems(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, inventory.NewMenuItemDTOs(items))
	}
}

// GetStockHistory returns the item's adjustment ledger, newest first.
func GetStockHistory(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		itemID, err := parseItemID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, meta, err := svc.GetStockHistory(r.Context(), itemID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMeta(w, inventory.NewStockAdjustmentDTOs(rows), meta)
	}
}

type updateInventoryTypeRequest struct {
	InventoryType string `json:"inventory_type" validate:"required,oneof=TRACKED UNLIMITED"`
	LowStockAlert *int   `json:"low_stock_alert,omitempty" validate:"omitempty,min=0"`
}

// UpdateInventoryType switches an item between TRACKED and UNLIMITED.
func UpdateInventoryType(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		itemID, err := parseItemID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateInventoryTypeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invType, err := enums.ParseInventoryType(payload.InventoryType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid inventory type"))
			return
		}

		item, err := svc.UpdateInventoryType(r.Context(), itemID, inventory.UpdateInventoryTypeInput{
			InventoryType: invType,
			LowStockAlert: payload.LowStockAlert,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, inventory.NewMenuItemDTO(item))
	}
}

func parseItemID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "itemId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	itemID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id")
	}
	return itemID, nil
}

func requireUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return userID, nil
}

func countFailedOutcomes(outcomes []inventory.ResetOutcome) int {
	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
		}
	}
	return failed
}
