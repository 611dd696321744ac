package main

import (
	"flag"
	"fmt"
	"os"

	"orderdesk/internal/config"
	"orderdesk/internal/logging"
	"orderdesk/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "configs/config.yaml", "Path to configuration file")
	logFile    = flag.String("log-file", "", "Write logs to this file (overrides config)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}

	// Logging to stderr would draw over the screen.
	logger := zap.NewNop()
	if cfg.LogFile != "" {
		logger, err = logging.New(cfg.LogLevel, cfg.LogFile)
		if err != nil {
			fmt.Printf("Error initializing logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	catalog, err := cfg.BuildCatalog()
	if err != nil {
		fmt.Printf("Error building catalog: %v\n", err)
		os.Exit(1)
	}

	model := tui.New(catalog, tui.Options{
		Logger:         logger,
		AutoDismiss:    cfg.Notifications.AutoDismiss,
		CurrencySymbol: cfg.CurrencySymbol,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
