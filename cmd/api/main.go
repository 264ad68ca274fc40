package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fortune-cookies-ai/fc-backend/internal/adapter"
	"github.com/fortune-cookies-ai/fc-backend/internal/api/middleware"
	"github.com/fortune-cookies-ai/fc-backend/internal/api/rest"
	"github.com/fortune-cookies-ai/fc-backend/internal/api/server"
	"github.com/fortune-cookies-ai/fc-backend/internal/config"
	"github.com/fortune-cookies-ai/fc-backend/internal/domain"
	"github.com/fortune-cookies-ai/fc-backend/internal/events"
	"github.com/fortune-cookies-ai/fc-backend/internal/holdings"
	"github.com/fortune-cookies-ai/fc-backend/internal/leaderboard"
	"github.com/fortune-cookies-ai/fc-backend/internal/logger"
	"github.com/fortune-cookies-ai/fc-backend/internal/providers/blockvision"
	"github.com/fortune-cookies-ai/fc-backend/internal/providers/ethereum"
	"github.com/fortune-cookies-ai/fc-backend/internal/providers/jetstream"
	"github.com/fortune-cookies-ai/fc-backend/internal/providers/mgid"
	"github.com/fortune-cookies-ai/fc-backend/internal/providers/openai"
	"github.com/fortune-cookies-ai/fc-backend/internal/providers/pinata"
	"github.com/fortune-cookies-ai/fc-backend/internal/refresher"
	"github.com/fortune-cookies-ai/fc-backend/internal/scores"
	"github.com/fortune-cookies-ai/fc-backend/internal/store"
)

func main() {
	// Parse command line flags
	configFile := flag.String("config", "", "path to config file")
	envPath := flag.String("env", "", "path to .env file")
	flag.Parse()

	config.ChdirRepoRoot()

	// Load configuration
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Flush(2 * time.Second)

	logger.Info("Starting fortune cookie API server",
		zap.Bool("debug", cfg.Debug),
		zap.String("store_backend", cfg.Store.Backend),
	)

	ctx := context.Background()

	// Shared adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(cfg.Indexer.RequestTimeout + 3*time.Second)
	// Generation and pinning calls run much longer than indexer reads
	slowHTTPClient := adapter.NewHTTPClient(120 * time.Second)

	// Durable blob store backing the sticky holdings records and score books
	var blobs store.BlobStore
	switch cfg.Store.Backend {
	case "db":
		db, err := store.OpenPostgres(cfg.Database)
		if err != nil {
			logger.Fatal(err.Error(), zap.String("host", cfg.Database.Host))
		}
		blobs = store.NewDBBlobStore(db)
	default:
		fsStore, err := store.NewFSBlobStore(adapter.NewFileSystem(), cfg.Store.DataDir)
		if err != nil {
			logger.Fatal(err.Error(), zap.String("data_dir", cfg.Store.DataDir))
		}
		blobs = fsStore
	}

	lastGood := store.NewLastGoodStore(ctx, blobs, clock)
	lastMinted := store.NewLastMintedStore(blobs, clock)
	players := store.NewPlayerStore(blobs, clock)

	// Indexer gateway
	indexerClient := blockvision.NewClient(httpClient, clock, blockvision.Config{
		BaseURL:        cfg.Indexer.BaseURL,
		APIKey:         cfg.Indexer.APIKey,
		Retries:        cfg.Indexer.Retries,
		BaseDelay:      cfg.Indexer.BaseDelay,
		MaxDelay:       cfg.Indexer.MaxDelay,
		JitterMin:      cfg.Indexer.JitterMin,
		JitterMax:      cfg.Indexer.JitterMax,
		RequestTimeout: cfg.Indexer.RequestTimeout,
	})

	collection := domain.NormalizeAddress(cfg.Holdings.Collection)

	resolver := holdings.NewResolver(indexerClient, lastGood, clock, holdings.Config{
		CacheTTL:  cfg.Holdings.CacheTTL,
		CacheSize: cfg.Holdings.CacheSize,
		MaxPages:  cfg.Holdings.MaxPages,
		PageDelay: cfg.Indexer.PageDelay,
	})

	aggregator := leaderboard.NewAggregator(indexerClient, clock, leaderboard.AggregatorConfig{
		SnapshotTTL:   cfg.Leaderboard.SnapshotTTL,
		PageLimit:     cfg.Indexer.PageLimit,
		MaxPages:      cfg.Leaderboard.MaxPages,
		EarlyStopSize: cfg.Leaderboard.EarlyStopSize,
	})

	youCounter := leaderboard.NewYouCounter(indexerClient, leaderboard.YouCounterConfig{
		TTL:       cfg.Leaderboard.YouTTL,
		CacheSize: cfg.Holdings.CacheSize,
		PageLimit: cfg.Indexer.PageLimit,
	})

	// Chain client for mint-count enrichment and score submission
	var chainClient ethereum.Client
	if cfg.Ethereum.RPCURL != "" {
		ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
		if err != nil {
			logger.Fatal(err.Error(), zap.String("rpc_url", cfg.Ethereum.RPCURL))
		}
		chainClient, err = ethereum.NewClient(ethClient, clock, ethereum.Config{
			ScoreContract: cfg.Ethereum.ScoreContract,
			PrivateKey:    cfg.Ethereum.PrivateKey,
		})
		if err != nil {
			logger.Fatal(err.Error())
		}
	} else {
		logger.Warn("No RPC URL configured, chain reads and score submission disabled")
	}

	builder := leaderboard.NewBuilder(aggregator, youCounter, chainClient, clock, leaderboard.BuilderConfig{
		Collection:     collection,
		TopN:           cfg.Leaderboard.TopN,
		EnrichPoolSize: cfg.Refresher.PoolSize,
	})

	// Event feed is optional, requests never fail on publish errors
	eventPublisher := events.NewNoopPublisher()
	if cfg.NATS.URL != "" {
		jsPublisher, err := jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter, clock)
		if err != nil {
			logger.Fatal(err.Error(), zap.String("nats_url", cfg.NATS.URL))
		}
		eventPublisher = jsPublisher
	}

	// Vendor clients
	fortuneClient := openai.NewClient(slowHTTPClient, jsonAdapter, cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey)
	pinner := pinata.NewClient(slowHTTPClient, jsonAdapter, cfg.Pinata.BaseURL, cfg.Pinata.JWT)
	identityClient := mgid.NewClient(httpClient, jsonAdapter, cfg.MGID.BaseURL)

	scoreService := scores.NewService(chainClient, identityClient, players, eventPublisher)

	handler := rest.NewHandler(
		resolver,
		builder,
		aggregator,
		lastMinted,
		fortuneClient,
		pinner,
		scoreService,
		eventPublisher,
		collection,
	)

	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}, handler)

	// Background cache refresher
	var cacheRefresher *refresher.Refresher
	if cfg.Refresher.Enabled {
		cacheRefresher = refresher.New(resolver, builder, eventPublisher, clock, refresher.Config{
			Interval: cfg.Refresher.Interval,
			PoolSize: cfg.Refresher.PoolSize,
		})
		go func() {
			if err := cacheRefresher.Start(ctx); err != nil {
				logger.Error(err, zap.String("worker", cacheRefresher.Name()))
			}
		}()
	}

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal or server error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Fatal(err.Error())
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cacheRefresher != nil {
		if err := cacheRefresher.Stop(shutdownCtx); err != nil {
			logger.Error(err, zap.String("worker", cacheRefresher.Name()))
		}
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(err)
	}

	eventPublisher.Close()
	if chainClient != nil {
		chainClient.Close()
	}

	logger.Info("API server stopped")
}
