package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/soocke/tiffscope/app"
	"github.com/soocke/tiffscope/config"
)

func main() {
	cfgPath := flag.String("config", "tiffscope.json", "path to the JSON or YAML config file")
	debugFlag := flag.Bool("debug", false, "enable debug logging and the memory logger")
	demo := flag.Bool("demo", false, "open the embedded demo stack when no file is given")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [file.tif]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// Base config from file, defaults when missing
	cfg, err := config.Load(*cfgPath)
	if *debugFlag {
		cfg.Debug = true
	}

	// Set up logger
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}

	application := app.NewApp("TIFF Scope", cfg, *cfgPath, logger)
	application.Start(flag.Arg(0), *demo)
}
