package enums

import "fmt"

// AdjustmentType maps to the adjustment_type_enum enum in Postgres.
type AdjustmentType string

const (
	AdjustmentTypeDailyReset   AdjustmentType = "DAILY_RESET"
	AdjustmentTypeManualAdd    AdjustmentType = "MANUAL_ADD"
	AdjustmentTypeManualRemove AdjustmentType = "MANUAL_REMOVE"
)

var validAdjustmentTypes = []AdjustmentType{
	AdjustmentTypeDailyReset,
	AdjustmentTypeManualAdd,
	AdjustmentTypeManualRemove,
}

// String returns the canonical string form.
func (t AdjustmentType) String() string {
	return string(t)
}

// IsValid reports whether the value matches the canonical adjustment type enum.
func (t AdjustmentType) IsValid() bool {
	for _, candidate := range validAdjustmentTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseAdjustmentType converts raw input into AdjustmentType.
func ParseAdjustmentType(value string) (AdjustmentType, error) {
	for _, candidate := range validAdjustmentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid adjustment type %q", value)
}
