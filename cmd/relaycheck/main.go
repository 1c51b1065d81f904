// relaycheck runs the acceptance sequence against a live controller:
// bulk off, single-channel set, snapshot verification, bulk on/off, and
// a route-miss probe. Exit code 1 on the first mismatch.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danmuck/relayctl/internal/config"
)

func main() {
	cfgPath := flag.String("config", "", "path to relaycheck TOML config")
	target := flag.String("target", "", "controller address, overrides config")
	flag.Parse()

	cfg := config.DefaultProbeConfig()
	if *cfgPath != "" {
		loaded, err := config.LoadProbeConfig(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "relaycheck: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *target != "" {
		cfg.Target = *target
	}

	if err := runSequence(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "relaycheck: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("relaycheck: all checks passed against %s\n", cfg.Target)
}
