package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/clearpath-legal/sponsorag/internal/api/handlers"
	"github.com/clearpath-legal/sponsorag/internal/config"
	"github.com/clearpath-legal/sponsorag/internal/database"
	"github.com/clearpath-legal/sponsorag/internal/extract"
	"github.com/clearpath-legal/sponsorag/internal/jobs"
	"github.com/clearpath-legal/sponsorag/internal/openai"
	"github.com/clearpath-legal/sponsorag/internal/prompt"
	"github.com/clearpath-legal/sponsorag/internal/repository"
	"github.com/clearpath-legal/sponsorag/internal/server"
	"github.com/clearpath-legal/sponsorag/internal/service"
	"github.com/clearpath-legal/sponsorag/internal/telemetry"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the sponsorag API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")
	cmd.Flags().Bool("no-ingest", false, "Disable the background ingestion worker")

	return cmd
}

// resolvePort lets an explicitly passed --port override the configured one.
// Only a flag the user actually set wins, so --port 8080 beats SPONSORAG_PORT
// too.
func resolvePort(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetString("port")
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	resolvePort(cmd, cfg)

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, database.PoolConfig{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	log.Println("connected to database")

	// Run migrations unless --no-migrate flag is set
	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	if !cfg.HasOpenAI() {
		return fmt.Errorf("SPONSORAG_OPENAI_API_KEY is required to serve queries")
	}

	chunkRepo := repository.NewChunkRepository(pool)
	sourceRepo := repository.NewSourceRepository(pool)
	openaiClient := openai.NewClient(cfg.OpenAIAPIKey)
	registry, err := prompt.NewRegistry()
	if err != nil {
		return fmt.Errorf("failed to build prompt registry: %w", err)
	}

	retriever := service.NewRetrievalServiceWithConfig(openaiClient, chunkRepo, service.RetrieverConfig{
		TopK:          cfg.SearchTopK,
		EmbedTimeout:  cfg.EmbedTimeout,
		SearchTimeout: cfg.SearchTimeout,
	})
	generator := service.NewGenerationServiceWithTimeout(retriever, registry, openaiClient, cfg.CompletionTimeout)

	var ingestWorker *jobs.IngestWorker
	noIngest, _ := cmd.Flags().GetBool("no-ingest")
	if !noIngest {
		source, err := documentSource(ctx, cfg)
		if err != nil {
			return err
		}
		extractor := extract.New()
		ingestSvc := service.NewIngestService(openaiClient, chunkRepo, sourceRepo, extractor)
		ingestSvc.SetEmbedTimeout(cfg.EmbedTimeout)
		ingestWorker = jobs.NewIngestWorker(source, ingestSvc, cfg.IngestPollInterval)
		go ingestWorker.Start(ctx)
		log.Println("ingest worker started")
	}

	router := server.NewRouter(server.RouterConfig{
		APIToken:        cfg.APIToken,
		GenerateHandler: handlers.NewGenerateHandler(generator, retriever, registry),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	if ingestWorker != nil {
		ingestWorker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}
