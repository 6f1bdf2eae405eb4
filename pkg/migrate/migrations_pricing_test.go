package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brunomacedo/vitrinezap-backend/pkg/migrate"
)

func TestStoresMigrationContainsPricingColumns(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_stores_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no stores migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TYPE price_model AS ENUM",
		"CREATE TABLE IF NOT EXISTS stores",
		"price_model price_model NOT NULL DEFAULT 'retail_only'",
		"min_purchase_amount NUMERIC(12,2) NOT NULL DEFAULT 0",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_stores_slug",
		"DROP TABLE IF EXISTS stores",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestTiersMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_product_price_tiers.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no price tier migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS product_price_tiers",
		"FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE",
		"CHECK (min_quantity > 0)",
		"CHECK (price >= 0)",
		"DROP TABLE IF EXISTS product_price_tiers",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirectoryValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}
