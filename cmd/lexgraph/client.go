package lexgraph

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lexgraph/lexgraph"
	"github.com/lexgraph/lexgraph/pkg/config"
	"github.com/lexgraph/lexgraph/pkg/embedder"
	"github.com/lexgraph/lexgraph/pkg/logger"
	"github.com/lexgraph/lexgraph/pkg/store"
	"github.com/lexgraph/lexgraph/pkg/telemetry"
)

// buildLogger creates the application logger, wrapping it with parquet error
// telemetry when a telemetry path is configured.
func buildLogger(cfg *config.Config) (*slog.Logger, error) {
	log := logger.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	if cfg.Telemetry.ParquetPath == "" {
		return log, nil
	}

	parquetHandler, err := telemetry.NewParquetHandler(log.Handler(), cfg.Telemetry.ParquetPath)
	if err != nil {
		log.Warn("failed to initialize error telemetry", "error", err)
		return log, nil
	}
	return slog.New(parquetHandler), nil
}

// buildClient wires the graph store, embedder, and query engine from
// configuration.
func buildClient(cfg *config.Config, log *slog.Logger) (*lexgraph.Client, error) {
	graphStore, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}

	embedderClient, err := buildEmbedder(cfg, log)
	if err != nil {
		return nil, err
	}

	clientConfig := &lexgraph.Config{
		CacheSize: cfg.Query.CacheSize,
	}
	return lexgraph.NewClient(graphStore, embedderClient, nil, clientConfig, log)
}

func buildStore(cfg *config.Config) (store.GraphStore, error) {
	switch cfg.Store.Driver {
	case "memory", "":
		if cfg.Store.Snapshot != "" {
			memStore, err := store.LoadSnapshot(cfg.Store.Snapshot)
			if err != nil {
				return nil, fmt.Errorf("failed to load snapshot: %w", err)
			}
			return memStore, nil
		}
		return store.NewMemoryStore(), nil

	case "neo4j":
		neoStore, err := store.NewNeo4jStore(cfg.Store.URI, cfg.Store.Username, cfg.Store.Password, cfg.Store.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to create neo4j store: %w", err)
		}
		return neoStore, nil

	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func buildEmbedder(cfg *config.Config, log *slog.Logger) (embedder.Client, error) {
	embedderConfig := embedder.Config{
		Model:      cfg.Embedding.Model,
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		BatchSize:  cfg.Embedding.BatchSize,
		Dimensions: cfg.Embedding.Dimensions,
	}

	var client embedder.Client
	switch cfg.Embedding.Provider {
	case "openai":
		if cfg.Embedding.APIKey == "" {
			// Semantic queries will return a configuration error.
			return nil, nil
		}
		client = embedder.NewOpenAIEmbedder(cfg.Embedding.APIKey, embedderConfig)

	case "embedeverything":
		var err error
		client, err = embedder.NewEmbedEverythingClient(embedderConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create embedder: %w", err)
		}

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}

	if cfg.CircuitBreaker.Enabled && client != nil {
		client = embedder.NewCircuitBreakerClient(client, embedder.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      cfg.CircuitBreaker.MaxRequests,
			Interval:         cfg.CircuitBreaker.Interval,
			Timeout:          cfg.CircuitBreaker.Timeout,
			ReadyToTripRatio: cfg.CircuitBreaker.ReadyToTripRatio,
		}, log)
	}
	return client, nil
}
