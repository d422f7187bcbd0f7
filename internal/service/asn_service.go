package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bkpsdm/asn-monitor-api/internal/models"
	appErrors "github.com/bkpsdm/asn-monitor-api/pkg/errors"
	"github.com/bkpsdm/asn-monitor-api/pkg/export"
	"github.com/bkpsdm/asn-monitor-api/pkg/schedule"
)

type asnRepository interface {
	List(ctx context.Context, filter models.ASNFilter) ([]models.ASN, error)
	FindByID(ctx context.Context, id int64) (*models.ASN, error)
	Create(ctx context.Context, record *models.ASN) error
	Update(ctx context.Context, record *models.ASN) error
	Delete(ctx context.Context, id int64) error
}

type summaryInvalidator interface {
	Delete(ctx context.Context, key string) error
}

// CreateASNRequest is the payload for creating a record. The derived jadwal
// fields are deliberately absent: whatever a caller sends for them is ignored.
type CreateASNRequest struct {
	Nama              string        `json:"nama" validate:"required"`
	NIP               string        `json:"nip" validate:"required"`
	TmtPNS            schedule.Date `json:"tmt_pns"`
	RiwayatTmtKGB     schedule.Date `json:"riwayat_tmt_kgb"`
	RiwayatTmtPangkat schedule.Date `json:"riwayat_tmt_pangkat"`
}

// UpdateASNRequest is a merge patch: nil fields keep their stored value.
type UpdateASNRequest struct {
	Nama              *string        `json:"nama" validate:"omitempty,min=1"`
	NIP               *string        `json:"nip" validate:"omitempty,min=1"`
	TmtPNS            *schedule.Date `json:"tmt_pns"`
	RiwayatTmtKGB     *schedule.Date `json:"riwayat_tmt_kgb"`
	RiwayatTmtPangkat *schedule.Date `json:"riwayat_tmt_pangkat"`
}

// ASNService orchestrates personnel record operations.
type ASNService struct {
	repo      asnRepository
	cache     summaryInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewASNService constructs an ASNService. cache may be nil when no summary
// cache is configured.
func NewASNService(repo asnRepository, cache summaryInvalidator, validate *validator.Validate, logger *zap.Logger) *ASNService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ASNService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns records most-recently-created first.
func (s *ASNService) List(ctx context.Context, filter models.ASNFilter) ([]models.ASN, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to list records")
	}
	return records, nil
}

// Get returns a record by id.
func (s *ASNService) Get(ctx context.Context, id int64) (*models.ASN, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load record")
	}
	return record, nil
}

// Create validates and persists a new record. Both schedule fields are
// computed here, never taken from the caller.
func (s *ASNService) Create(ctx context.Context, req CreateASNRequest) (*models.ASN, error) {
	req.Nama = strings.TrimSpace(req.Nama)
	req.NIP = strings.TrimSpace(req.NIP)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "nama and nip are required")
	}

	record := &models.ASN{
		Nama:              req.Nama,
		NIP:               req.NIP,
		TmtPNS:            req.TmtPNS,
		RiwayatTmtKGB:     req.RiwayatTmtKGB,
		RiwayatTmtPangkat: req.RiwayatTmtPangkat,
	}
	record.RecomputeSchedules()

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to create record")
	}
	s.invalidateSummary(ctx)
	return record, nil
}

// Update applies a merge patch to an existing record. When either history
// date changes the corresponding schedule is recomputed in the same write;
// recomputation is a pure function of the history dates, so an untouched
// history always yields an unchanged schedule.
func (s *ASNService) Update(ctx context.Context, id int64, req UpdateASNRequest) (*models.ASN, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid record payload")
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load record")
	}

	if req.Nama != nil {
		if trimmed := strings.TrimSpace(*req.Nama); trimmed != "" {
			record.Nama = trimmed
		}
	}
	if req.NIP != nil {
		if trimmed := strings.TrimSpace(*req.NIP); trimmed != "" {
			record.NIP = trimmed
		}
	}
	if req.TmtPNS != nil {
		record.TmtPNS = *req.TmtPNS
	}
	if req.RiwayatTmtKGB != nil {
		record.RiwayatTmtKGB = *req.RiwayatTmtKGB
	}
	if req.RiwayatTmtPangkat != nil {
		record.RiwayatTmtPangkat = *req.RiwayatTmtPangkat
	}
	record.RecomputeSchedules()

	if err := s.repo.Update(ctx, record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to update record")
	}
	s.invalidateSummary(ctx)
	return record, nil
}

// Delete removes a record. Deleting an id that no longer exists succeeds.
func (s *ASNService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to delete record")
	}
	s.invalidateSummary(ctx)
	return nil
}

// ExportCSV renders the full record set as CSV.
func (s *ASNService) ExportCSV(ctx context.Context) ([]byte, error) {
	records, err := s.List(ctx, models.ASNFilter{})
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Title:   "Data Pegawai ASN",
		Columns: []string{"id", "nama", "nip", "tmt_pns", "riwayat_tmt_kgb", "riwayat_tmt_pangkat", "jadwal_kgb_berikutnya", "jadwal_pangkat_berikutnya"},
	}
	for _, r := range records {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.Nama,
			r.NIP,
			r.TmtPNS.String(),
			r.RiwayatTmtKGB.String(),
			r.RiwayatTmtPangkat.String(),
			r.JadwalKGBBerikutnya.String(),
			r.JadwalPangkatBerikutnya.String(),
		})
	}

	payload, err := export.CSV(table)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return payload, nil
}

func (s *ASNService) invalidateSummary(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, SummaryCacheKey); err != nil {
		s.logger.Warn("summary cache invalidation failed", zap.Error(err))
	}
}
