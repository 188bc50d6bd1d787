package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"folio/internal/config"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
	"folio/internal/repository/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo data")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	docRepo := postgres.NewDocumentRepository(repoConfig)
	versionRepo := postgres.NewVersionRepository(repoConfig)

	log.Println("📝 Seeding a demo document with version history...")
	if err := seedDemoDocument(ctx, docRepo, versionRepo); err != nil {
		log.Fatalf("Failed to seed demo document: %v", err)
	}
	log.Println("✅ Seeding complete")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	createDocuments := `
		CREATE TABLE IF NOT EXISTS ` + tables.Documents + ` (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			chat_id UUID,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			kind TEXT NOT NULL DEFAULT 'text',
			visibility TEXT NOT NULL DEFAULT 'private',
			current_version_id UUID,
			style TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createDocuments); err != nil {
		return err
	}

	createVersions := `
		CREATE TABLE IF NOT EXISTS ` + tables.DocumentVersions + ` (
			id UUID PRIMARY KEY,
			document_id UUID NOT NULL REFERENCES ` + tables.Documents + `(id) ON DELETE CASCADE,
			version INTEGER NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			diff_content TEXT,
			previous_version_id UUID REFERENCES ` + tables.DocumentVersions + `(id),
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(document_id, version)
		)
	`
	if _, err := pool.Exec(ctx, createVersions); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documents_user_id ON ` + tables.Documents + `(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `document_versions_document_id ON ` + tables.DocumentVersions + `(document_id)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.DocumentVersions,
		tables.Documents,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}

// seedDemoDocument creates one document and walks it through a few edits so
// the history panel has something to show
func seedDemoDocument(ctx context.Context, docRepo repositories.DocumentRepository, versionRepo repositories.VersionRepository) error {
	doc := &models.Document{
		ID:         uuid.NewString(),
		UserID:     uuid.NewString(),
		Title:      "Welcome to Folio",
		Content:    "Draft one.",
		Kind:       models.KindText,
		Visibility: models.VisibilityPrivate,
	}
	if err := docRepo.Create(ctx, doc); err != nil {
		return err
	}

	edits := []string{
		"Draft one, now with an introduction.",
		"Draft one, now with an introduction and a closing thought.",
	}
	for _, content := range edits {
		if _, err := versionRepo.CreateVersion(ctx, doc.ID, repositories.CreateVersionParams{
			Title:   doc.Title,
			Content: content,
		}); err != nil {
			return err
		}
	}

	log.Printf("  ✓ Seeded document %s with %d versions", doc.ID, len(edits))
	return nil
}
