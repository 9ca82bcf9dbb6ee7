package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const DefaultHost = "localhost"

// ErrUsage is returned when the positional arguments do not match <dbname> <port> <user>.
var ErrUsage = errors.New("expected arguments: <dbname> <port> <user>")

type Config struct {
	Host   string
	Port   string
	DBName string
	User   string
}

// Load builds the configuration from the three positional arguments (program name excluded).
func Load(args []string) (*Config, error) {
	if len(args) != 3 {
		return nil, ErrUsage
	}

	cfg := &Config{
		Host:   DefaultHost,
		DBName: strings.TrimSpace(args[0]),
		Port:   strings.TrimSpace(args[1]),
		User:   strings.TrimSpace(args[2]),
	}

	if cfg.DBName == "" {
		return nil, fmt.Errorf("database name is empty: %w", ErrUsage)
	}
	if cfg.User == "" {
		return nil, fmt.Errorf("user is empty: %w", ErrUsage)
	}
	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port %q: %w", cfg.Port, ErrUsage)
	}

	return cfg, nil
}

// DSN returns a postgres URL. The password is empty so it is left out entirely.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.User(c.User),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// DisplayURL is the address echoed while connecting.
func (c *Config) DisplayURL() string {
	return fmt.Sprintf("postgresql://%s:%s/%s", c.Host, c.Port, c.DBName)
}
