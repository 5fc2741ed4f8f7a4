package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"skyland/internal/db"
)

type APIConfig struct {
	Addr            string
	StoreBackend    string // postgres | file | memory
	DB              db.Config
	DataDir         string
	CatalogPath     string
	ReturnMode      string // simulated | random
	AdvisorURL      string
	AdvisorAPIKey   string
	AdvisorBudget   time.Duration
	AutoAdvanceCron string
	RandSeed        int64
}

type CLIConfig struct {
	APIBaseURL string
}

func LoadAPIFromEnv() (APIConfig, error) {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("SKYLAND_API_ADDR", ":8080")
	}

	cfg := APIConfig{
		Addr:         addr,
		StoreBackend: envStoreBackend(),
		DB: db.Config{
			URL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
			MaxConns:        int32(envInt64Default("SKYLAND_DB_MAX_CONNS", 10)),
			MinConns:        int32(envInt64Default("SKYLAND_DB_MIN_CONNS", 1)),
			MaxConnLifetime: envDurationDefault("SKYLAND_DB_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: envDurationDefault("SKYLAND_DB_CONN_IDLE_TIME", 10*time.Minute),
		},
		DataDir:         envDefault("SKYLAND_DATA_DIR", defaultDataDir()),
		CatalogPath:     strings.TrimSpace(os.Getenv("SKYLAND_CATALOG_PATH")),
		ReturnMode:      envReturnMode(),
		AdvisorURL:      strings.TrimRight(strings.TrimSpace(os.Getenv("SKYLAND_ADVISOR_URL")), "/"),
		AdvisorAPIKey:   strings.TrimSpace(os.Getenv("SKYLAND_ADVISOR_API_KEY")),
		AdvisorBudget:   envDurationDefault("SKYLAND_ADVISOR_BUDGET", 3*time.Second),
		AutoAdvanceCron: envDefault("SKYLAND_AUTO_ADVANCE_CRON", "@daily"),
		RandSeed:        envInt64Default("SKYLAND_RAND_SEED", 0),
	}
	if cfg.StoreBackend == "postgres" && cfg.DB.URL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required with the postgres store")
	}
	return cfg, nil
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("SKY_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".skyland"
	}
	return filepath.Join(home, ".skyland")
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envInt64Default(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envStoreBackend() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("SKYLAND_STORE"))) {
	case "postgres":
		return "postgres"
	case "memory":
		return "memory"
	case "file", "":
		return "file"
	default:
		return "file"
	}
}

func envReturnMode() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("SKYLAND_RETURN_MODE"))) {
	case "random":
		return "random"
	default:
		return "simulated"
	}
}
