package main

import (
	"flag"
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	showVersionShort := flag.Bool("v", false, "Print version and exit (shorthand)")
	mode := flag.String("mode", "inspect", "Mode: inspect|verify|seed|catalog")
	configPath := flag.String("config", "", "Path to an ephemlake.toml config file")
	catalogPath := flag.String("catalog", "", "Catalog database path")
	cacheDir := flag.String("cache-dir", "", "Summary cache directory")
	noCache := flag.Bool("no-cache", false, "Skip the summary cache")
	record := flag.Bool("record", false, "Record the inspected file into the catalog")
	jsonOut := flag.Bool("json", false, "Output report as JSON")
	flag.Parse()

	if *showVersion || *showVersionShort {
		fmt.Printf("ephemlake %s\n", version)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if *catalogPath != "" {
		cfg.Catalog.Path = *catalogPath
	}
	if *cacheDir != "" {
		cfg.Cache.Dir = *cacheDir
	}
	if *noCache {
		cfg.Cache.Disabled = true
	}

	if err := run(*mode, cfg, flag.Args(), *record, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "%s error: %v\n", *mode, err)
		os.Exit(1)
	}
}

func run(mode string, cfg fileConfig, args []string, record, jsonOut bool) error {
	switch mode {
	case "seed":
		if len(args) != 1 {
			return ErrFileRequired
		}
		return runSeed(args[0])
	case "verify":
		if len(args) != 1 {
			return ErrFileRequired
		}
		return runVerify(args[0])
	case "inspect":
		if len(args) != 1 {
			return ErrFileRequired
		}
		return runInspect(cfg, args[0], record, jsonOut)
	case "catalog":
		if cfg.Catalog.Path == "" {
			return ErrCatalogRequired
		}
		return runCatalog(cfg.Catalog.Path, jsonOut)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
