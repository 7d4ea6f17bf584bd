package main

import (
	"flag"
	"fmt"
	"os"

	"simview/config"
	"simview/logger"
	"simview/sim"
	"simview/term"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to a simview config file (YAML)")
		logLevel   = flag.String("log-level", "", "Override log level: debug, info, warn, error")
		demoSeed   = flag.Int64("demo-seed", 0, "Override the demo network seed")
		stopped    = flag.Bool("stopped", false, "Start with the run in a stopped state")
		noActions  = flag.Bool("no-actions", false, "Start with backend actions disabled")
		help       = flag.Bool("help", false, "Show help")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Interactive view for a payment-network simulation.\n\n")
		fmt.Fprintf(os.Stderr, "Keys: p pay, t trustline, c clearing, x close line, n node info,\n")
		fmt.Fprintf(os.Stderr, "      j/k or arrows move, enter pick, esc cancel, q quit.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *demoSeed != 0 {
		cfg.DemoSeed = *demoSeed
	}

	logFile, err := logger.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	demo := sim.NewDemo(cfg.DemoSeed)
	if *stopped {
		demo.StopRun()
	}
	if *noActions || cfg.DisableActions {
		demo.SetActionsDisabled(true)
	}

	logger.Info("starting simview", "seed", cfg.DemoSeed)
	app := term.NewApp(cfg, demo, demo)
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
