package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"supplierfeed/internal/config"
	"supplierfeed/internal/pipeline"
)

// main is the entry point for the supplierfeed binary. It loads the supplier
// configuration, lints it, and runs the conversion.
func main() {
	var (
		ordersPath string
		cfgPath    string
		outDir     string
		validate   bool
	)

	flag.StringVar(&ordersPath, "orders", "", "path to the raw orders export (CSV/XLSX)")
	flag.StringVar(&cfgPath, "config", "", "supplier YAML config path")
	flag.StringVar(&outDir, "outdir", "out", "output directory")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	if cfgPath == "" {
		fatalf("missing -config")
	}
	if ordersPath == "" && !validate {
		fatalf("missing -orders")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatalf("%v", err)
	}

	issues := config.Validate(cfg)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		fatalf("configuration is invalid: %s", cfgPath)
	}
	if validate {
		log.Printf("configuration is valid: %s", cfgPath)
		return
	}

	out, err := pipeline.Run(ordersPath, cfg, outDir, *verbose)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Wrote: %s\n", out)
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
