// Package admin implements the sponsoragd server-side commands.
package admin

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/clearpath-legal/sponsorag/internal/config"
	"github.com/clearpath-legal/sponsorag/internal/storage"
)

// documentSource picks the document source: S3 when configured, otherwise
// the local docs directory.
func documentSource(ctx context.Context, cfg *config.Config) (storage.DocumentSource, error) {
	if cfg.HasS3() {
		s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UsePathStyle:    true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		if err := s3Client.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure S3 bucket: %w", err)
		}
		log.Printf("S3 bucket '%s' ready", cfg.S3Bucket)
		return s3Client, nil
	}

	log.Printf("serving documents from %s", cfg.DocsDir)
	return storage.NewDirSource(cfg.DocsDir), nil
}

func runMigrations(databaseURL string) error {
	// Create a sql.DB connection for golang-migrate
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	// Create postgres driver instance
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Create migrate instance with file source
	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	// Run migrations
	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", upErr)
	}

	// Get migration version and status
	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	status, err := migrationStatus(upErr, err, version, dirty)
	if err != nil {
		return err
	}
	log.Println(status)

	return nil
}

// migrationStatus renders the post-Up status line. The no-change signal comes
// from Up, not Version: Version never returns ErrNoChange.
func migrationStatus(upErr, versionErr error, version uint, dirty bool) (string, error) {
	switch {
	case versionErr == migrate.ErrNilVersion:
		return "migrations: database is up to date (no migrations applied)", nil
	case dirty:
		return "", fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	case upErr == migrate.ErrNoChange:
		return fmt.Sprintf("migrations: database is up to date (version %d)", version), nil
	default:
		return fmt.Sprintf("migrations: applied successfully (version %d)", version), nil
	}
}
