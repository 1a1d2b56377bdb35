// cmd/inkwell/main.go
package main

import (
	"flag"
	"fmt"
	stlog "log" // standard log for errors before the logger is ready
	"os"

	"github.com/bethropolis/inkwell/internal/app"
	"github.com/bethropolis/inkwell/internal/config"
	"github.com/bethropolis/inkwell/internal/logger"
)

var version = "dev"

func main() {
	// --- Argument & Flag Parsing ---
	flags := config.NewFlags(flag.CommandLine)
	args, err := flags.Parse(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}
	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	// --- Configuration ---
	cfg, undecoded, cfgErr := config.Load(*flags.ConfigFilePath, flags)
	if cfg.Logger.LogFilePath == "" {
		// stderr would draw over the editor
		cfg.Logger.LogFilePath = config.DefaultLogFileName
	}

	// --- Logger Initialization ---
	if err := logger.InitWithConfig(cfg.Logger); err != nil {
		stlog.Printf("Warning: %v", err)
	}
	defer logger.Close()
	logger.SetFilterDebug(*flags.DebugLog)

	if cfgErr != nil {
		logger.Warnf("Config: %v (using defaults)", cfgErr)
	}
	for _, key := range undecoded {
		logger.Warnf("Config: unknown key '%s'", key)
	}

	logger.Infof("Starting %s %s...", config.AppName, version)
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting empty.")
	}

	// --- Create and Run App ---
	inkwellApp, err := app.New(cfg, filePath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}

	if err := inkwellApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}
