package infrastructure

import (
	"fmt"
	"sync"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/jmoiron/sqlx"

	// Postgres driver registration.
	_ "github.com/lib/pq"
)

// Storage manages the Postgres connection pool. The connection is opened
// lazily on first use so a down database surfaces as a failed probe, not
// as a startup crash.
type Storage struct {
	cfg config.StorageConfig

	mu sync.Mutex
	db *sqlx.DB
}

func NewStorage(cfg config.StorageConfig) (*Storage, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("storage host is not configured")
	}

	return &Storage{cfg: cfg}, nil
}

// GetDB returns the shared connection pool, opening it on first call.
func (s *Storage) GetDB() (*sqlx.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		s.cfg.Host,
		s.cfg.Port,
		s.cfg.Username,
		s.cfg.Password,
		s.cfg.Database,
		s.cfg.SSLMode,
		int(s.cfg.ConnectTimeout.Seconds()),
	)

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(s.cfg.MaxOpenConns)
	db.SetMaxIdleConns(s.cfg.MaxIdleConns)
	db.SetConnMaxLifetime(s.cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(s.cfg.ConnMaxIdleTime)

	s.db = db

	return s.db, nil
}

func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	s.db = nil

	return nil
}
