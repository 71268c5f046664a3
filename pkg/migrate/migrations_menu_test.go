package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestMenuItemsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_menu_items.sql")

	checks := []string{
		"CREATE TYPE inventory_type_enum AS ENUM ('TRACKED', 'UNLIMITED')",
		"CREATE TABLE IF NOT EXISTS menu_items",
		"FOREIGN KEY (category_id) REFERENCES menu_categories(id) ON DELETE RESTRICT",
		"CHECK (stock_quantity IS NULL OR stock_quantity >= 0)",
		"inventory_type = 'TRACKED'",
		"inventory_type = 'UNLIMITED'",
		"DROP TABLE IF EXISTS menu_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestStockAdjustmentsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_stock_adjustments.sql")

	checks := []string{
		"CREATE TYPE adjustment_type_enum AS ENUM ('DAILY_RESET', 'MANUAL_ADD', 'MANUAL_REMOVE')",
		"CREATE TABLE IF NOT EXISTS stock_adjustments",
		"FOREIGN KEY (menu_item_id) REFERENCES menu_items(id) ON DELETE CASCADE",
		"CHECK (previous_stock >= 0)",
		"CHECK (new_stock >= 0)",
		"trg_stock_adjustments_append_only",
		"DROP TABLE IF EXISTS stock_adjustments",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
