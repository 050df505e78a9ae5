package config

import (
	"github.com/spf13/pflag"
)

// LoadConfig holds configuration for replaying activities into Postgres.
type LoadConfig struct {
	In        string
	PGDSN     string
	BatchSize int
	LogLevel  string
}

// LoadLoad merges config file, environment variables, and flags into LoadConfig.
func LoadLoad(cfgFile string, flags *pflag.FlagSet) (LoadConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"batch-size": 1000,
		"log-level":  "info",
	})
	if err != nil {
		return LoadConfig{}, err
	}

	return LoadConfig{
		In:        v.GetString("in"),
		PGDSN:     v.GetString("pg-dsn"),
		BatchSize: v.GetInt("batch-size"),
		LogLevel:  v.GetString("log-level"),
	}, nil
}
