package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/promptkit/bedrockd/catalog"
	"github.com/promptkit/bedrockd/config"
	"github.com/promptkit/bedrockd/invoke"
	bdlogger "github.com/promptkit/bedrockd/logger"
	"github.com/promptkit/bedrockd/tools"
)

const (
	serverName    = "bedrock-prompts"
	serverVersion = "1.0.0"

	// initTimeout bounds AWS config and credential resolution at startup.
	initTimeout = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse command-line flags
	var (
		configPath = flag.String("config", "", "Path to config file (default: ~/.bedrockd/config.yaml)")
		logFile    = flag.String("logfile", "", "Path to log file. If not set, logs to stderr")
		pretty     = flag.Bool("pretty", false, "Use pretty console output (only valid when logfile is not set)")
	)
	flag.Parse()

	// Pick up AWS settings from a local .env when present.
	_ = godotenv.Load()

	path := *configPath
	if path == "" {
		path = config.GetServerConfigPath()
	}
	appConfig, err := config.LoadServerConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load server configuration: %w", err)
	}

	// Command-line flags override the log section
	if *logFile != "" {
		appConfig.Log.File = *logFile
	}
	if *pretty {
		appConfig.Log.Pretty = true
	}
	if appConfig.Log.File != "" && appConfig.Log.Pretty {
		return fmt.Errorf("--logfile and --pretty are mutually exclusive")
	}

	logger, err := bdlogger.InitWithOptions(appConfig.Log.File, appConfig.Log.Pretty, appConfig.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info().
		Str("config", path).
		Str("version", serverVersion).
		Msg("bedrockd starting")

	// ---------------------------
	// 1. Bedrock Clients
	// ---------------------------

	initCtx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	agentClient, runtimeClient, err := config.NewBedrockClients(initCtx, appConfig, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize Bedrock clients: %w", err)
	}

	// ---------------------------
	// 2. Catalog + Invocation Engine
	// ---------------------------

	promptCatalog := catalog.NewService(agentClient, logger)
	engine := invoke.NewClient(runtimeClient, runtimeClient, logger)

	toolset := tools.NewToolset(promptCatalog, engine, tools.Options{
		BatchWorkers: appConfig.Batch.MaxWorkers,
		BatchTimeout: time.Duration(appConfig.Batch.ItemTimeout) * time.Second,
	}, logger)

	// ---------------------------
	// 3. MCP Server over stdio
	// ---------------------------

	s := server.NewMCPServer(serverName, serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	toolset.Register(s)

	logger.Info().Str("name", serverName).Msg("serving MCP over stdio")
	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info().Msg("bedrockd shutdown complete")
	return nil
}
