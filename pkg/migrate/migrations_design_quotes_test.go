package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kingcapco/salesops-backend/pkg/migrate"
)

func TestDesignQuotesMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_design_quotes.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no design_quotes migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS design_quotes",
		"FOREIGN KEY (design_id) REFERENCES designs(id) ON DELETE CASCADE",
		"CONSTRAINT uniq_design_quotes_design_id UNIQUE (design_id)",
		"CHECK (quantity > 0)",
		"CHECK (num_dst_files >= 0)",
		"DROP TABLE IF EXISTS design_quotes",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}
