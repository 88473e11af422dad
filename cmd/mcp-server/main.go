// cmd/mcp-server/main.go — Standalone HTTP MCP server for gogrim
//
// Exposes the gogrim tools as an HTTP endpoint for AI agent frameworks.
//
// Usage:
//
//	go run ./cmd/mcp-server -addr :8080 -config grim.yaml
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
// Metrics endpoint:   GET  /metrics
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/njchilds90/gogrim"
	"github.com/njchilds90/gogrim/config"
	"github.com/njchilds90/gogrim/internal/server"
)

func main() {
	addr := flag.String("addr", "", "Address to listen on (default from config)")
	configPath := flag.String("config", "", "YAML configuration file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	engine, err := gogrim.New(cfg, logger)
	if err != nil {
		logger.Fatal("engine", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := server.New(engine, cfg.Server, logger).Run(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
