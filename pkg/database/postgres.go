package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/bkpsdm/asn-monitor-api/pkg/config"
)

// NewPostgres returns a configured PostgreSQL client. The handle is the only
// connection to the store; it is opened once at process start and closed at
// shutdown by the caller.
func NewPostgres(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

const asnSchema = `
CREATE TABLE IF NOT EXISTS asns (
	id                        BIGSERIAL PRIMARY KEY,
	nama                      TEXT NOT NULL,
	nip                       TEXT NOT NULL,
	tmt_pns                   DATE,
	riwayat_tmt_kgb           DATE,
	riwayat_tmt_pangkat       DATE,
	jadwal_kgb_berikutnya     DATE,
	jadwal_pangkat_berikutnya DATE,
	created_at                TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_asns_jadwal_kgb ON asns (jadwal_kgb_berikutnya);
CREATE INDEX IF NOT EXISTS idx_asns_jadwal_pangkat ON asns (jadwal_pangkat_berikutnya);
`

// EnsureSchema creates the personnel table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, asnSchema); err != nil {
		return fmt.Errorf("ensure asns schema: %w", err)
	}
	return nil
}
