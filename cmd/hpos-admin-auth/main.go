// file: cmd/hpos-admin-auth/main.go

package main

import (
	"flag"
	"log"
	"os"

	"github.com/pjkundert/hp-admin-crypto/config"
	"github.com/pjkundert/hp-admin-crypto/internal/gateway"
	"github.com/pjkundert/hp-admin-crypto/internal/lifecycle"
	"github.com/pjkundert/hp-admin-crypto/internal/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Parse configuration once - reused across reloads
	cfg := parseFlags()

	// Setup logger
	appLogger, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		return err
	}
	defer appLogger.Sync()

	// Create app factory function
	createApp := func() (lifecycle.Application, error) {
		return gateway.NewApp(cfg)
	}

	// Run with reload support (handles SIGHUP automatically)
	return lifecycle.RunWithReload(createApp, appLogger)
}

// parseFlags parses command line arguments and applies overrides
func parseFlags() *config.Config {
	configPath := flag.String("config", "", "path to config file (YAML or JSON; empty = search defaults + environment)")

	listenOverride := flag.String("listen", "", "override verification listen address (empty = use config)")
	stateOverride := flag.String("state", "", "override HPOS state file path (empty = use config/HPOS_STATE_PATH)")
	metricsAddrOverride := flag.String("metrics-addr", "", "enable metrics and override metrics address (empty = use config)")

	flag.Parse()

	// The state path is validated during config load; export the override
	// first so running with just -state works.
	if *stateOverride != "" {
		os.Setenv("HPOS_STATE_PATH", *stateOverride)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Apply command line overrides
	cfg.ApplyOverrides(*listenOverride, *stateOverride, *metricsAddrOverride)

	return cfg
}
