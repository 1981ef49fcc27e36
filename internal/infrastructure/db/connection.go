package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/prometheus/common/model"

	"github.com/storepulse/storepulse/internal/persistence"
	"github.com/storepulse/storepulse/internal/persistence/postgres"
)

// Config holds database connection configuration. Durations parse from
// Go duration strings in YAML ("30m", "10s").
type Config struct {
	DSN             string         `yaml:"dsn"`
	MaxOpenConns    int            `yaml:"max_open_conns"`
	MaxIdleConns    int            `yaml:"max_idle_conns"`
	ConnMaxLifetime model.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime model.Duration `yaml:"conn_max_idle_time"`
	QueryTimeout    model.Duration `yaml:"query_timeout"`
}

// DefaultConfig returns reasonable pool defaults.
func DefaultConfig() Config {
	return Config{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: model.Duration(30 * time.Minute),
		ConnMaxIdleTime: model.Duration(5 * time.Minute),
		QueryTimeout:    model.Duration(10 * time.Second),
	}
}

// Manager owns the database connection and the repository built on it.
type Manager struct {
	db     *sqlx.DB
	config Config
	repo   persistence.StoreMetricsRepo
}

// NewManager opens and verifies the connection, then wires the metrics
// repository behind a circuit breaker.
func NewManager(config Config) (*Manager, error) {
	if config.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	db, err := sqlx.Open("postgres", config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(config.ConnMaxLifetime))
	db.SetConnMaxIdleTime(time.Duration(config.ConnMaxIdleTime))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Manager{
		db:     db,
		config: config,
		repo:   persistence.NewGuardedRepo(postgres.NewStoreMetricsRepo(db, time.Duration(config.QueryTimeout))),
	}, nil
}

// Repo returns the guarded store metrics repository.
func (m *Manager) Repo() persistence.StoreMetricsRepo {
	return m.repo
}

// Ping verifies the connection is still alive.
func (m *Manager) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(m.config.QueryTimeout))
	defer cancel()
	return m.db.PingContext(ctx)
}

// Close closes the database connection.
func (m *Manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}
