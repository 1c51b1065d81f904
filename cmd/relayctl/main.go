package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danmuck/relayctl/internal/engine"
)

func main() {
	cfgPath := flag.String("config", "", "path to relayctl TOML config")
	flag.Parse()

	cfg := engine.DefaultServiceConfig()
	if *cfgPath != "" {
		loaded, err := loadServiceConfig(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "relayctl: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	svc := engine.NewServiceWithConfig(cfg)
	if err := svc.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "relayctl: %v\n", err)
		os.Exit(1)
	}
}
