package pagination

import pkgerrors "github.com/dmoralesb/mesafina-backend/pkg/errors"

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 20
	// MaxLimit caps how many rows any paged query can request.
	MaxLimit = 100
)

// Params holds page/limit pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Meta describes the shape of a paged result set.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Validate rejects non-positive page or limit values.
func (p Params) Validate() error {
	if p.Page < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "page must be at least 1")
	}
	if p.Limit < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "limit must be at least 1")
	}
	return nil
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Offset returns the row offset for the given params.
func (p Params) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * NormalizeLimit(p.Limit)
}

// NewMeta builds result metadata from the params and total row count.
func NewMeta(p Params, total int64) Meta {
	limit := NormalizeLimit(p.Limit)
	page := p.Page
	if page < 1 {
		page = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
