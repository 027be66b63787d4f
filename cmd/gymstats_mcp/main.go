// Package main runs the training MCP server over stdio (for local MCP clients).
// The same tools are mounted on the service at /mcp over HTTP when mcp_enabled is set.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/setsbymuscle/internal"
	"github.com/2beens/setsbymuscle/internal/config"
	"github.com/2beens/setsbymuscle/internal/logging"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// stdout carries the MCP protocol, logs go to stderr or the log file
	closeLog := logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogsPath,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
		MaxSizeMB:     cfg.LogMaxSizeMB,
		MaxBackups:    cfg.LogMaxBackups,
		Service:       "setsbymuscle-mcp",
		Environment:   cfg.Environment,
		UseStderr:     true,
	})
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := internal.NewEngine(ctx, internal.EngineParams{
		Config:           cfg,
		RedisPassword:    os.Getenv("SETSBYMUSCLE_REDIS_PASS"),
		PostgresPassword: os.Getenv("SETSBYMUSCLE_POSTGRES_PASS"),
	})
	if err != nil {
		log.Fatalf("engine: %v", err)
	}
	defer func() {
		if err := engine.Close(); err != nil {
			log.Errorf("close engine: %s", err)
		}
	}()

	if err := engine.MCPServer().Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Errorf("mcp server: %s", err)
	}
}
