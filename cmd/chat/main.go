package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"pioneering-site/internal/config"
	"pioneering-site/internal/logging"
	"pioneering-site/internal/tui"
	"pioneering-site/internal/widget"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	relayURL := flag.String("relay", cfg.RelayURL, "chat relay endpoint")
	flag.Parse()

	// The terminal belongs to the UI, so logs always go to a file.
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = "chat.log"
	}
	if _, err := logging.Init(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: logFile}); err != nil {
		fmt.Fprintf(os.Stderr, "logging setup failed: %v\n", err)
		os.Exit(1)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	relay := widget.NewRelayClient(*relayURL, timeout)
	slog.Info("chat widget starting", "relay", *relayURL)

	model := tui.New(widget.NewSession(), relay, timeout)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		slog.Error("chat widget exited", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
