// Package config loads server settings from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Server holds the relay's runtime settings.
type Server struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// TickRate is the simulation rate advertised to headless clients.
	TickRate int
}

// Defaults.
const (
	DefaultAddr     = ":8080"
	DefaultTickRate = 60
)

// Load reads a .env file when present, then the environment. Unset
// variables fall back to defaults; malformed values are errors.
func Load() (Server, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := Server{
		Addr:     DefaultAddr,
		TickRate: DefaultTickRate,
	}

	if v := os.Getenv("SKYSTRIKE_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("SKYSTRIKE_TICK_RATE"); v != "" {
		rate, err := strconv.Atoi(v)
		if err != nil || rate <= 0 {
			return Server{}, fmt.Errorf("SKYSTRIKE_TICK_RATE = %q: want a positive integer", v)
		}
		cfg.TickRate = rate
	}
	return cfg, nil
}
