// Package config loads the operator-facing YAML configuration:
// database location, branch table with per-branch service charge
// rates, audit retention, and queue pacing.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/addisware/addispos/internal/model"
)

// Config is the full operator configuration. Zero fields fall back to
// defaults; a missing file yields Default() unchanged.
type Config struct {
	// DBPath is the SQLite database location.
	DBPath string `yaml:"db_path"`

	// Branches lists restaurant locations. The first entry is the
	// branch new orders default to.
	Branches []model.Branch `yaml:"branches"`

	// AuditCap bounds the audit log; oldest entries are evicted past it.
	AuditCap int `yaml:"audit_cap"`

	// MinutesPerTicket drives the queue's estimated-wait display.
	MinutesPerTicket int `yaml:"minutes_per_ticket"`

	// SeedTables is the number of dining tables created on init.
	SeedTables int `yaml:"seed_tables"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DBPath:           "addispos.db",
		Branches:         model.SeedBranches(),
		AuditCap:         1000,
		MinutesPerTicket: 5,
		SeedTables:       12,
	}
}

// Load reads a YAML config file, filling unset fields from Default().
// A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.AuditCap <= 0 {
		return fmt.Errorf("audit_cap must be positive, got %d", c.AuditCap)
	}
	if c.MinutesPerTicket <= 0 {
		return fmt.Errorf("minutes_per_ticket must be positive, got %d", c.MinutesPerTicket)
	}
	if c.SeedTables <= 0 {
		return fmt.Errorf("seed_tables must be positive, got %d", c.SeedTables)
	}
	if len(c.Branches) == 0 {
		return fmt.Errorf("at least one branch is required")
	}
	for _, b := range c.Branches {
		if b.ID == "" {
			return fmt.Errorf("branch %q: id must not be empty", b.Name)
		}
		if b.ServiceChargeRate < 0 || b.ServiceChargeRate > 1 {
			return fmt.Errorf("branch %s: service_charge_rate %v out of [0,1]", b.ID, b.ServiceChargeRate)
		}
	}
	return nil
}

// TicketWait returns the estimated wait per queued ticket.
func (c Config) TicketWait() time.Duration {
	return time.Duration(c.MinutesPerTicket) * time.Minute
}
