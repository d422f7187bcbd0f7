package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/bkpsdm/asn-monitor-api/internal/models"
)

const asnColumns = "id, nama, nip, tmt_pns, riwayat_tmt_kgb, riwayat_tmt_pangkat, jadwal_kgb_berikutnya, jadwal_pangkat_berikutnya, created_at"

// ASNRepository manages persistence for civil servant records.
type ASNRepository struct {
	db *sqlx.DB
}

// NewASNRepository constructs an ASNRepository.
func NewASNRepository(db *sqlx.DB) *ASNRepository {
	return &ASNRepository{db: db}
}

// List returns records most-recently-created first, optionally filtered by a
// name/NIP search and paginated.
func (r *ASNRepository) List(ctx context.Context, filter models.ASNFilter) ([]models.ASN, error) {
	query := "SELECT " + asnColumns + " FROM asns"
	var args []interface{}

	if search := strings.TrimSpace(filter.Search); search != "" {
		query += " WHERE LOWER(nama) LIKE $1 OR nip LIKE $1"
		args = append(args, "%"+strings.ToLower(search)+"%")
	}

	query += " ORDER BY id DESC"

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.PageSize, (page-1)*filter.PageSize)
	}

	records := []models.ASN{}
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list asns: %w", err)
	}
	return records, nil
}

// ListAll returns the full record set in creation order, the point-in-time
// snapshot the notification scan operates on.
func (r *ASNRepository) ListAll(ctx context.Context) ([]models.ASN, error) {
	records := []models.ASN{}
	query := "SELECT " + asnColumns + " FROM asns ORDER BY id ASC"
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list all asns: %w", err)
	}
	return records, nil
}

// FindByID fetches one record. Returns sql.ErrNoRows when absent.
func (r *ASNRepository) FindByID(ctx context.Context, id int64) (*models.ASN, error) {
	query := "SELECT " + asnColumns + " FROM asns WHERE id = $1"
	var record models.ASN
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts a new record, filling the store-assigned id and created_at.
func (r *ASNRepository) Create(ctx context.Context, record *models.ASN) error {
	const query = `INSERT INTO asns (nama, nip, tmt_pns, riwayat_tmt_kgb, riwayat_tmt_pangkat, jadwal_kgb_berikutnya, jadwal_pangkat_berikutnya)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	row := r.db.QueryRowxContext(ctx, query,
		record.Nama,
		record.NIP,
		record.TmtPNS,
		record.RiwayatTmtKGB,
		record.RiwayatTmtPangkat,
		record.JadwalKGBBerikutnya,
		record.JadwalPangkatBerikutnya,
	)
	if err := row.Scan(&record.ID, &record.CreatedAt); err != nil {
		return fmt.Errorf("create asn: %w", err)
	}
	return nil
}

// Update writes the full row. Last write wins; no row version is tracked.
// Returns sql.ErrNoRows when the id does not exist.
func (r *ASNRepository) Update(ctx context.Context, record *models.ASN) error {
	const query = `UPDATE asns SET
			nama = $2,
			nip = $3,
			tmt_pns = $4,
			riwayat_tmt_kgb = $5,
			riwayat_tmt_pangkat = $6,
			jadwal_kgb_berikutnya = $7,
			jadwal_pangkat_berikutnya = $8
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.Nama,
		record.NIP,
		record.TmtPNS,
		record.RiwayatTmtKGB,
		record.RiwayatTmtPangkat,
		record.JadwalKGBBerikutnya,
		record.JadwalPangkatBerikutnya,
	)
	if err != nil {
		return fmt.Errorf("update asn: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update asn rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a record. Deleting an absent id is not an error.
func (r *ASNRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM asns WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete asn: %w", err)
	}
	return nil
}

// Ping verifies the store is reachable and returns its current time.
func (r *ASNRepository) Ping(ctx context.Context) (string, error) {
	var now string
	if err := r.db.GetContext(ctx, &now, "SELECT NOW()"); err != nil {
		return "", fmt.Errorf("ping store: %w", err)
	}
	return now, nil
}
