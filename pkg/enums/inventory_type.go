package enums

import "fmt"

// InventoryType maps to the inventory_type_enum enum in Postgres.
type InventoryType string

const (
	InventoryTypeTracked   InventoryType = "TRACKED"
	InventoryTypeUnlimited InventoryType = "UNLIMITED"
)

var validInventoryTypes = []InventoryType{
	InventoryTypeTracked,
	InventoryTypeUnlimited,
}

// String returns the canonical string form.
func (t InventoryType) String() string {
	return string(t)
}

// IsValid reports whether the value matches the canonical inventory type enum.
func (t InventoryType) IsValid() bool {
	for _, candidate := range validInventoryTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseInventoryType converts raw input into InventoryType.
func ParseInventoryType(value string) (InventoryType, error) {
	for _, candidate := range validInventoryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inventory type %q", value)
}
