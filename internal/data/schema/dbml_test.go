package schema

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"

	"smoweb/app/internal/data/database"
	"smoweb/app/internal/data/migrations"
)

func TestExportWritesTablesAndRefs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openTestDB(t)
	if err := migrations.Migrate(ctx, db, nil); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}

	var out strings.Builder
	if err := Export(ctx, db, migrations.Models(), &out); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	dbml := out.String()

	for _, want := range []string{
		"Table categories {",
		"Table news {",
		"Table form_submissions {",
		"Ref: news.category_id > categories.id",
		"Ref: news.author_id > users.id",
		"Ref: galleries.category_id > categories.id",
		"Ref: form_submissions.form_id > forms.id",
	} {
		if !strings.Contains(dbml, want) {
			t.Fatalf("expected %q in output:\n%s", want, dbml)
		}
	}

	if strings.Count(dbml, "Ref: news.category_id > categories.id") != 1 {
		t.Fatalf("expected references to be deduplicated:\n%s", dbml)
	}

	newsBlock := block(t, dbml, "news")
	if !lineHas(newsBlock, "id", "pk") {
		t.Fatalf("expected id to be the primary key:\n%s", newsBlock)
	}
	if !lineHas(newsBlock, "slug", "unique") {
		t.Fatalf("expected slug to be unique:\n%s", newsBlock)
	}
	if !lineHas(newsBlock, "title", "not null") {
		t.Fatalf("expected title to be not null:\n%s", newsBlock)
	}
}

func TestInspectRequiresMigratedTables(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)

	if _, err := Inspect(context.Background(), db, migrations.Models()); err == nil {
		t.Fatalf("expected error when tables are missing")
	}
	if _, err := Inspect(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error for nil database")
	}
}

func block(t *testing.T, dbml, table string) string {
	t.Helper()

	start := strings.Index(dbml, "Table "+table+" {")
	if start < 0 {
		t.Fatalf("table %s missing", table)
	}
	end := strings.Index(dbml[start:], "}")
	return dbml[start : start+end]
}

func lineHas(block, column, setting string) bool {
	for _, line := range strings.Split(block, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == column {
			return strings.Contains(line, setting)
		}
	}
	return false
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(database.Options{Path: filepath.Join(t.TempDir(), "schema.db")})
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
