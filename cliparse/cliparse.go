package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/who-pays/auth"
)

// Database types accepted by -t
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
	DatabaseMemory   = "memory"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	EnvFile      string

	// ReferenceHash is compared against the hash of each session's credential.
	// Derived from AccessSecret unless ACCESS_HASH is given directly.
	AccessSecret  string
	ReferenceHash string

	// Token bucket for mutating routes, per second
	MutationRate  float64
	MutationBurst int
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("who-pays", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or memory)")
	fs.StringVar(&cfg.EnvFile, "env-file", "", "Load environment variables from this file first")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AccessSecret, "access-secret", "", "Shared access secret (prefer env)")
	fs.StringVar(&cfg.ReferenceHash, "access-hash", "", "SHA-256 hex of the access secret (prefer env)")

	fs.Float64Var(&cfg.MutationRate, "mutation-rate", 0, "Mutations per second allowed")
	fs.IntVar(&cfg.MutationBurst, "mutation-burst", 0, "Mutation burst size")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Existing environment variables win over the file
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil {
			return Config{}, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	switch cfg.DatabaseType {
	case DatabaseSQLite, DatabasePostgres, DatabaseMemory:
	default:
		return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseType != DatabaseMemory {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.AccessSecret == "" {
		cfg.AccessSecret = os.Getenv("ACCESS_SECRET")
	}
	if cfg.ReferenceHash == "" {
		cfg.ReferenceHash = os.Getenv("ACCESS_HASH")
	}
	if cfg.ReferenceHash != "" {
		// Credentials hash to lowercase hex, so an uppercase hash could never match
		cfg.ReferenceHash = strings.ToLower(strings.TrimSpace(cfg.ReferenceHash))
		if !auth.IsHash(cfg.ReferenceHash) {
			return Config{}, errors.New("access hash must be 64 hex characters (SHA-256)")
		}
	}
	if cfg.ReferenceHash == "" && cfg.AccessSecret != "" {
		cfg.ReferenceHash = auth.ReferenceHash(cfg.AccessSecret)
	}
	if cfg.ReferenceHash == "" {
		return Config{}, errors.New("ACCESS_SECRET or ACCESS_HASH required")
	}
	if cfg.ReferenceHash == auth.EmptyCredentialHash {
		return Config{}, errors.New("access secret must not be empty")
	}

	if cfg.MutationRate == 0 {
		rate, err := envFloat("MUTATION_RATE", 5)
		if err != nil {
			return Config{}, err
		}
		cfg.MutationRate = rate
	}
	if cfg.MutationBurst == 0 {
		burst, err := envFloat("MUTATION_BURST", 10)
		if err != nil {
			return Config{}, err
		}
		cfg.MutationBurst = int(burst)
	}
	if cfg.MutationRate <= 0 || cfg.MutationBurst <= 0 {
		return Config{}, errors.New("mutation rate and burst must be positive")
	}

	return cfg, nil
}

func envFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return v, nil
}
