package config

import (
	"encoding/json"
	"flag"
	"fmt"
)

const HelpMessage = `
Fitness Connect booking service

Usage:
  booking [-mode booking-service|simulate] [-config-path config.yaml]
  booking -help

Options:
  -mode         booking-service  HTTP and WebSocket API over in-memory sessions (default)
                simulate         run one scripted booking episode and log every event
  -config-path  path to the YAML config file (default config.yaml)
  -help         show this message

Every config value can be overridden with an environment variable named
SECTION_KEY, for example BOOKING_MATCH_DELAY=1s or RABBITMQ_ENABLED=true.
A .env file in the working directory is loaded first when present.
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}

const masked = "********"

// PrintConfig prints the effective configuration with secrets masked.
func PrintConfig(cfg *Config) {
	c := *cfg
	c.Database.Password = masked
	c.RabbitMQ.Password = masked

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		fmt.Printf("failed to print config: %v\n", err)
		return
	}
	fmt.Printf("Configuration:\n%s\n", data)
}
