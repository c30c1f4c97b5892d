package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ironsheep/iris-locator-mcp/internal/config"
	"github.com/ironsheep/iris-locator-mcp/internal/location"
	"github.com/ironsheep/iris-locator-mcp/internal/logging"
	"github.com/ironsheep/iris-locator-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("iris-locator-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer func() { _ = logger.Sync() }()

	presets, err := location.LoadPresets(cfg.PresetsFile)
	if err != nil {
		logger.Fatal("failed to load presets", zap.String("path", cfg.PresetsFile), zap.Error(err))
	}

	if err := location.Init(cfg.Backend); err != nil {
		logger.Fatal("failed to initialize backend", zap.String("backend", cfg.Backend), zap.Error(err))
	}
	defer func() {
		if err := location.Teardown(); err != nil {
			logger.Warn("backend teardown failed", zap.Error(err))
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "locate" {
		if err := runLocate(os.Args[2:], os.Stdout, presets, logger); err != nil {
			logger.Error("locate failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	logger.Debug("starting server",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("commit", GitCommit),
		zap.String("backend", location.Active().Name()))

	srv := server.New(
		server.WithLogger(logger),
		server.WithPresets(presets),
		server.WithVersion(Version),
	)
	if err := srv.Run(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func printHelp() {
	fmt.Println("iris-locator-mcp - MCP server for pupil and iris localization")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  iris-locator-mcp [options]                 Serve MCP over stdin/stdout")
	fmt.Println("  iris-locator-mcp locate [flags] IMAGE...   Locate eyes in image files")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Locate flags:")
	fmt.Println("  -preset NAME     Parameter preset (default " + location.DefaultPreset + ")")
	fmt.Println("  -out DIR         Write <name>_overlay.png files to DIR")
	fmt.Println()
	fmt.Println("Environment variables (also read from .env):")
	fmt.Println("  " + config.EnvLogLevel + "=debug    Log level: debug, info, warn, error")
	fmt.Println("  " + config.EnvLogFile + "=PATH      Also write JSON logs to a rotating file")
	fmt.Println("  " + config.EnvPresets + "=PATH       YAML preset overrides")
	fmt.Println("  " + config.EnvBackend + "=NAME       Image backend: native or opencv")
}
