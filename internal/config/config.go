// Package config loads the runtime configuration.
//
// Settings that used to be ambient globals (currency, savings goal,
// duplicate detection policy) live here and are passed explicitly into
// the components that need them.
package config

import (
	"fmt"
	"strings"

	"github.com/ledgerlight/backend/internal/reconcile"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Database DatabaseConfig
	Taxonomy TaxonomyConfig
	User     UserConfig
	Import   ImportConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// TaxonomyConfig points at the declarative category taxonomy.
type TaxonomyConfig struct {
	// Source is a file path or http(s) URL. An unreachable or malformed
	// source falls back to the built-in default taxonomy.
	Source string
}

// UserConfig holds per-user presentation and goal settings.
type UserConfig struct {
	Currency    string
	SavingsGoal string `mapstructure:"savings_goal"`
}

// ImportConfig holds import behavior settings.
type ImportConfig struct {
	DuplicatePolicy string `mapstructure:"duplicate_policy"`
}

// Goal returns the configured savings goal as a decimal. An
// unparseable value counts as no goal.
func (u UserConfig) Goal() decimal.Decimal {
	goal, err := decimal.NewFromString(u.SavingsGoal)
	if err != nil {
		return decimal.Zero
	}

	return goal
}

// Policy returns the configured duplicate detection policy.
func (i ImportConfig) Policy() (reconcile.Policy, error) {
	return reconcile.ParsePolicy(i.DuplicatePolicy)
}

// Load reads configuration from file and environment. Environment
// overrides use the prefix LEDGERLIGHT_, e.g. LEDGERLIGHT_DATABASE_PATH.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", "data/ledgerlight.db")
	v.SetDefault("taxonomy.source", "config/taxonomy.yaml")
	v.SetDefault("user.currency", "EUR")
	v.SetDefault("user.savings_goal", "0")
	v.SetDefault("import.duplicate_policy", string(reconcile.PolicyStrict))

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("config")

	v.SetEnvPrefix("LEDGERLIGHT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The config file is optional, defaults and env vars suffice
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if _, err := c.Import.Policy(); err != nil {
		return Config{}, err
	}

	return c, nil
}
