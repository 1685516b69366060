package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	counsel "github.com/w-h-a/counsel"
	"github.com/w-h-a/counsel/embedder"
	googleembedder "github.com/w-h-a/counsel/embedder/google"
	openaiembedder "github.com/w-h-a/counsel/embedder/openai"
	"github.com/w-h-a/counsel/generator"
	anthropicgenerator "github.com/w-h-a/counsel/generator/anthropic"
	googlegenerator "github.com/w-h-a/counsel/generator/google"
	openaigenerator "github.com/w-h-a/counsel/generator/openai"
	"github.com/w-h-a/counsel/history"
	historymemory "github.com/w-h-a/counsel/history/memory"
	historypostgres "github.com/w-h-a/counsel/history/postgres"
	"github.com/w-h-a/counsel/index"
	"github.com/w-h-a/counsel/ingest"
	"github.com/w-h-a/counsel/retriever"
	"github.com/w-h-a/counsel/server"
	httpserver "github.com/w-h-a/counsel/server/http"
	"github.com/w-h-a/counsel/translator"
	googletranslator "github.com/w-h-a/counsel/translator/google"
	"github.com/w-h-a/counsel/vectorstore"
	"github.com/w-h-a/counsel/vectorstore/local"
	"github.com/w-h-a/counsel/vectorstore/postgres"
)

var (
	cfg struct {
		// Corpus config
		CorpusDir string `help:"Directory holding the source PDF statutes" default:"./laws"`
		Rebuild   bool   `help:"Force re-ingestion even when a persisted index exists" default:"false"`

		// Index config
		Store         string `help:"Vector store backend" enum:"local,postgres" default:"local"`
		StoreLocation string `help:"Directory for the local store or postgres URL" default:"./legal_index"`
		Concurrency   int    `help:"Embedding workers during index build" default:"4"`

		// Provider config
		GoogleApiKey   string `help:"API key for Google embeddings, generation, and translation" env:"GOOGLE_API_KEY" default:""`
		EmbedderType   string `help:"Embedding provider" enum:"google,openai" default:"google"`
		EmbedderKey    string `help:"API key for the embedder; defaults to the Google key" default:""`
		Embedder       string `help:"Model identifier for the embedder" default:"embedding-001"`
		GeneratorType  string `help:"Generation provider" enum:"google,openai,anthropic" default:"google"`
		GeneratorKey   string `help:"API key for the generator; defaults to the Google key" default:""`
		Generator      string `help:"Model identifier for the generator" default:"gemini-1.5-pro"`
		GeneratorRetry uint64 `help:"Bounded retries on transient generation errors" default:"2"`

		// History config
		HistoryLocation string `help:"Postgres URL for chat archival; empty keeps history in memory only" default:""`

		// Server config
		Address        string        `help:"HTTP listen address" default:":8080"`
		RequestTimeout time.Duration `help:"Per-request deadline for one exchange" default:"60s"`
	}
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	_ = kong.Parse(&cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(cfg.GoogleApiKey) == 0 {
		slog.ErrorContext(ctx, "GOOGLE_API_KEY is required")
		os.Exit(1)
	}

	paths, err := filepath.Glob(filepath.Join(cfg.CorpusDir, "*.pdf"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to list corpus", "dir", cfg.CorpusDir, "error", err)
		os.Exit(1)
	}

	emb := newEmbedder()

	store := newStore()

	indexOpts := []index.Option{
		index.WithForceRebuild(cfg.Rebuild),
		index.WithConcurrency(cfg.Concurrency),
	}
	if cfg.Store == "local" {
		indexOpts = append(indexOpts, index.WithLockFile(cfg.StoreLocation+".lock"))
	}

	manager := index.NewManager(ingest.NewIngestor(), emb, store, indexOpts...)

	if err := manager.BuildOrLoad(ctx, paths); err != nil {
		slog.ErrorContext(ctx, "failed to build or load index", "error", err)
		os.Exit(1)
	}

	assistant := counsel.New(
		newTranslator(),
		retriever.NewRetriever(emb, store),
		newGenerator(),
		newArchiver(),
	)

	srv := httpserver.NewServer(
		assistant,
		server.WithAddress(cfg.Address),
		server.WithRequestTimeout(cfg.RequestTimeout),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		slog.ErrorContext(ctx, "server stopped", "error", err)
		os.Exit(1)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "failed to stop server cleanly", "error", err)
		os.Exit(1)
	}
}

func newEmbedder() embedder.Embedder {
	key := cfg.EmbedderKey
	if len(key) == 0 {
		key = cfg.GoogleApiKey
	}

	opts := []embedder.Option{
		embedder.WithApiKey(key),
		embedder.WithModel(cfg.Embedder),
	}

	switch cfg.EmbedderType {
	case "openai":
		return openaiembedder.NewEmbedder(opts...)
	default:
		return googleembedder.NewEmbedder(opts...)
	}
}

func newGenerator() generator.Generator {
	key := cfg.GeneratorKey
	if len(key) == 0 {
		key = cfg.GoogleApiKey
	}

	opts := []generator.Option{
		generator.WithApiKey(key),
		generator.WithModel(cfg.Generator),
	}

	var g generator.Generator

	switch cfg.GeneratorType {
	case "openai":
		g = openaigenerator.NewGenerator(opts...)
	case "anthropic":
		g = anthropicgenerator.NewGenerator(opts...)
	default:
		g = googlegenerator.NewGenerator(opts...)
	}

	return generator.NewRetryGenerator(g, cfg.GeneratorRetry, 5*time.Second)
}

func newTranslator() translator.Translator {
	return googletranslator.NewTranslator(
		translator.WithApiKey(cfg.GoogleApiKey),
	)
}

func newStore() vectorstore.VectorStore {
	switch cfg.Store {
	case "postgres":
		return postgres.NewStore(vectorstore.WithLocation(cfg.StoreLocation))
	default:
		return local.NewStore(vectorstore.WithLocation(cfg.StoreLocation))
	}
}

func newArchiver() history.Archiver {
	if len(cfg.HistoryLocation) > 0 {
		return historypostgres.NewArchiver(history.WithLocation(cfg.HistoryLocation))
	}
	return historymemory.NewArchiver()
}
