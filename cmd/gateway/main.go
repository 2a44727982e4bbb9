package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"apismith/internal/artifact"
	"apismith/internal/gateway"
	"apismith/internal/ledger"
	"apismith/internal/llm"
	"apismith/internal/resolver"
)

func main() {
	_ = godotenv.Load()

	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := config.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := llm.FromEnv(ctx, logger)
	if err != nil {
		// The gateway still serves catalog and fallback resolutions.
		logger.Warn("no llm credential, generation disabled", zap.Error(err))
		client = nil
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	var (
		sink         artifact.Sink
		artifactRoot string
	)
	if s3cfg, ok := artifact.S3ConfigFromEnv(); ok {
		s3, err := artifact.NewS3Sink(s3cfg)
		if err != nil {
			logger.Fatal("configure s3 sink", zap.Error(err))
		}
		sink = s3
		logger.Info("writing artifacts to s3", zap.String("bucket", s3cfg.Bucket))
	} else {
		root := strings.TrimSpace(os.Getenv("ARTIFACT_ROOT"))
		if root == "" {
			root = "generated"
		}
		dir, err := artifact.NewDirSink(root)
		if err != nil {
			logger.Fatal("configure dir sink", zap.Error(err))
		}
		sink = dir
		artifactRoot = root
		logger.Info("writing artifacts to directory", zap.String("root", root))
	}

	store := ledger.NewFromEnv(logger)
	defer func() { _ = store.Close() }()

	res := resolver.New(client, logger).WithCache(0, 0)
	srv := gateway.New(res, sink, logger).WithLedger(store)
	if artifactRoot != "" {
		srv = srv.WithArtifactDir(artifactRoot)
	}

	if err := srv.ListenAndServe(ctx, gateway.AddrFromEnv()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("gateway server failed", zap.Error(err))
	}
	logger.Info("gateway stopped")
}
