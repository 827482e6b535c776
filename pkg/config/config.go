package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/paulmach/orb"
)

// Config is the environment of a run. Positional arguments of the CLI
// are not part of it.
type Config struct {
	Width     float64
	Height    float64
	Addr      string
	LogLevel  string
	LogStderr bool
}

func Default() Config {
	return Config{
		Width:    1000,
		Height:   1000,
		Addr:     ":8080",
		LogLevel: "info",
	}
}

// Load reads an optional .env file (files is the list to try, ".env" when
// empty) and then the MABRAVO_* variables. Variables already set in the
// environment win over the file.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}

	c := Default()
	var err error

	if c.Width, err = floatEnv("MABRAVO_WIDTH", c.Width); err != nil {
		return c, err
	}
	if c.Height, err = floatEnv("MABRAVO_HEIGHT", c.Height); err != nil {
		return c, err
	}
	if v := os.Getenv("MABRAVO_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("MABRAVO_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("MABRAVO_LOG_STDERR"); v != "" {
		if c.LogStderr, err = strconv.ParseBool(v); err != nil {
			return c, fmt.Errorf("MABRAVO_LOG_STDERR: %w", err)
		}
	}

	if c.Width <= 0 || c.Height <= 0 {
		return c, fmt.Errorf("domain must be positive, got %vx%v", c.Width, c.Height)
	}
	return c, nil
}

// Domain is the simulated rectangle, anchored at the origin.
func (c Config) Domain() orb.Bound {
	return orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{c.Width, c.Height}}
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
