package config

import (
	"context"
	"fmt"
	"strings"

	"sales_manager/internal/sales"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Storage backends accepted by the "storage" key.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// Config holds the settings shared by the server and the CLI commands.
type Config struct {
	Addr        string
	Storage     string
	StoragePath string
	Slot        string
	LogLevel    string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8081")
	v.SetDefault("storage", StorageFile)
	v.SetDefault("storage-path", "")
	v.SetDefault("slot", sales.DefaultSlot)
	v.SetDefault("log-level", "info")
}

// InitEnv loads .env files and makes v read SALES_* environment variables
// (e.g. SALES_STORAGE_PATH for "storage-path").
func InitEnv(v *viper.Viper) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	v.SetEnvPrefix("sales")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Addr:        v.GetString("addr"),
		Storage:     strings.ToLower(strings.TrimSpace(v.GetString("storage"))),
		StoragePath: v.GetString("storage-path"),
		Slot:        v.GetString("slot"),
		LogLevel:    v.GetString("log-level"),
	}

	switch cfg.Storage {
	case StorageMemory:
	case StorageFile:
		if cfg.StoragePath == "" {
			cfg.StoragePath = "data"
		}
	case StorageSQLite:
		if cfg.StoragePath == "" {
			cfg.StoragePath = "sales.db"
		}
	default:
		return nil, fmt.Errorf("invalid storage %q (expected one of: memory, file, sqlite)", cfg.Storage)
	}

	if cfg.Slot == "" {
		return nil, fmt.Errorf("slot cannot be empty")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	return cfg, nil
}

// NewLogger builds a production zap logger at the configured level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// OpenStorage opens the configured backend. The returned func releases it.
func (c *Config) OpenStorage(ctx context.Context, logger *zap.Logger) (sales.Storage, func(), error) {
	switch c.Storage {
	case StorageMemory:
		return sales.NewLocalStorage(), func() {}, nil
	case StorageFile:
		fs, err := sales.NewFileStorage(c.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	case StorageSQLite:
		db, err := sales.NewSQLiteStorage(ctx, c.StoragePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	}
	return nil, nil, fmt.Errorf("invalid storage %q", c.Storage)
}
