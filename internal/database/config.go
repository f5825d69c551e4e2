package database

import (
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/koustreak/sqlconnect/internal/errs"
	"github.com/koustreak/sqlconnect/internal/options"
)

// Driver identifies the database engine.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverMySQL    Driver = "mysql"
)

// Config holds all settings needed to connect to and pool a database.
type Config struct {
	// Driver is the database engine (e.g. DriverPostgres).
	Driver Driver `yaml:"driver"`

	// DSN is the connection string in the driver's native format.
	// $VAR and ${VAR} references are expanded by LoadConfig.
	DSN string `yaml:"dsn"`

	// Pool sizing
	MaxConns        int32         `yaml:"maxConns"`        // maximum number of open connections
	MinConns        int32         `yaml:"minConns"`        // idle connections kept alive
	MaxConnLifetime time.Duration `yaml:"maxConnLifetime"` // maximum time a connection may be reused
	MaxConnIdleTime time.Duration `yaml:"maxConnIdleTime"` // maximum time a connection may sit idle

	// Options are the client options translated into connection and pool
	// properties by package connector.
	Options options.ClientOptions `yaml:"options"`
}

// DefaultConfig returns pool settings suitable for a small service.
// Client options are left unset so every driver default applies.
func DefaultConfig(driver Driver, dsn string) *Config {
	return &Config{
		Driver:          driver,
		DSN:             dsn,
		MaxConns:        10,
		MinConns:        0,
		MaxConnLifetime: 30 * time.Minute,
		MaxConnIdleTime: 5 * time.Minute,
	}
}

// LoadConfig reads a YAML config file. Fields missing from the file keep
// the DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "cannot read config "+path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML document into a Config.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig("", "")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "invalid config", err)
	}
	cfg.DSN = os.ExpandEnv(cfg.DSN)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields every driver relies on.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverPostgres, DriverMySQL:
	case "":
		return errs.New(errs.ErrKindInvalidInput, "driver is required")
	default:
		return errs.Newf(errs.ErrKindInvalidInput, "unsupported driver %q", c.Driver)
	}
	if c.DSN == "" {
		return errs.New(errs.ErrKindInvalidInput, "dsn is required")
	}
	if c.MinConns < 0 || c.MaxConns < 0 || (c.MaxConns > 0 && c.MinConns > c.MaxConns) {
		return errs.Newf(errs.ErrKindInvalidInput, "invalid pool size min=%d max=%d", c.MinConns, c.MaxConns)
	}
	return nil
}
