package admin

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/clearpath-legal/sponsorag/internal/config"
	"github.com/clearpath-legal/sponsorag/internal/database"
	"github.com/clearpath-legal/sponsorag/internal/extract"
	"github.com/clearpath-legal/sponsorag/internal/jobs"
	"github.com/clearpath-legal/sponsorag/internal/openai"
	"github.com/clearpath-legal/sponsorag/internal/repository"
	"github.com/clearpath-legal/sponsorag/internal/service"
	"github.com/clearpath-legal/sponsorag/internal/storage"
)

// IngestCmd returns the ingest command
func IngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Run a one-off ingestion pass",
		Long:  "Embed and store all new or changed documents from the configured source",
		RunE:  runIngest,
	}

	cmd.Flags().String("dir", "", "Ingest from this directory instead of the configured source")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if !cfg.HasOpenAI() {
		return fmt.Errorf("SPONSORAG_OPENAI_API_KEY is required for ingestion")
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, database.PoolConfig{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	var source storage.DocumentSource
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		source = storage.NewDirSource(dir)
	} else {
		source, err = documentSource(ctx, cfg)
		if err != nil {
			return err
		}
	}

	ingestSvc := service.NewIngestService(
		openai.NewClient(cfg.OpenAIAPIKey),
		repository.NewChunkRepository(pool),
		repository.NewSourceRepository(pool),
		extract.New(),
	)
	ingestSvc.SetEmbedTimeout(cfg.EmbedTimeout)

	worker := jobs.NewIngestWorker(source, ingestSvc, cfg.IngestPollInterval)
	if err := worker.RunOnce(ctx); err != nil {
		return err
	}

	log.Println("ingest: complete")
	return nil
}
