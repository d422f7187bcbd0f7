package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkpsdm/asn-monitor-api/internal/models"
	appErrors "github.com/bkpsdm/asn-monitor-api/pkg/errors"
	"github.com/bkpsdm/asn-monitor-api/pkg/schedule"
)

type mockASNRepo struct {
	items   map[int64]*models.ASN
	nextID  int64
	listErr error
	deleted []int64
}

func newMockASNRepo() *mockASNRepo {
	return &mockASNRepo{items: map[int64]*models.ASN{}, nextID: 1}
}

func (m *mockASNRepo) List(ctx context.Context, filter models.ASNFilter) ([]models.ASN, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []models.ASN{}
	for id := m.nextID - 1; id >= 1; id-- {
		if rec, ok := m.items[id]; ok {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *mockASNRepo) FindByID(ctx context.Context, id int64) (*models.ASN, error) {
	if rec, ok := m.items[id]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockASNRepo) Create(ctx context.Context, record *models.ASN) error {
	record.ID = m.nextID
	record.CreatedAt = time.Now().UTC()
	m.nextID++
	cp := *record
	m.items[record.ID] = &cp
	return nil
}

func (m *mockASNRepo) Update(ctx context.Context, record *models.ASN) error {
	if _, ok := m.items[record.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *record
	m.items[record.ID] = &cp
	return nil
}

func (m *mockASNRepo) Delete(ctx context.Context, id int64) error {
	delete(m.items, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func mustDate(t *testing.T, raw string) schedule.Date {
	t.Helper()
	d, err := schedule.ParseDate(raw)
	require.NoError(t, err)
	return d
}

func TestASNServiceCreateComputesSchedules(t *testing.T) {
	repo := newMockASNRepo()
	svc := NewASNService(repo, nil, nil, nil)

	record, err := svc.Create(context.Background(), CreateASNRequest{
		Nama:              "Budi Santoso",
		NIP:               "198001012005011001",
		RiwayatTmtKGB:     mustDate(t, "2023-08-01"),
		RiwayatTmtPangkat: mustDate(t, "2022-01-10"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), record.ID)
	assert.Equal(t, "2025-08-01", record.JadwalKGBBerikutnya.String())
	assert.Equal(t, "2026-01-10", record.JadwalPangkatBerikutnya.String())
	assert.False(t, record.CreatedAt.IsZero())
}

func TestASNServiceCreateWithoutHistoryDates(t *testing.T) {
	repo := newMockASNRepo()
	svc := NewASNService(repo, nil, nil, nil)

	record, err := svc.Create(context.Background(), CreateASNRequest{
		Nama: "Siti Rahma",
		NIP:  "199102022015032002",
	})
	require.NoError(t, err)

	assert.True(t, record.JadwalKGBBerikutnya.IsZero())
	assert.True(t, record.JadwalPangkatBerikutnya.IsZero())
}

func TestASNServiceCreateValidation(t *testing.T) {
	repo := newMockASNRepo()
	svc := NewASNService(repo, nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateASNRequest{Nama: "   ", NIP: "123"})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, repo.items, "no write on validation failure")
}

func TestASNServiceUpdateNamaKeepsSchedules(t *testing.T) {
	repo := newMockASNRepo()
	svc := NewASNService(repo, nil, nil, nil)

	created, err := svc.Create(context.Background(), CreateASNRequest{
		Nama:              "Budi Santoso",
		NIP:               "198001012005011001",
		RiwayatTmtKGB:     mustDate(t, "2023-08-01"),
		RiwayatTmtPangkat: mustDate(t, "2022-01-10"),
	})
	require.NoError(t, err)

	nama := "Budi Santoso, S.Kom"
	updated, err := svc.Update(context.Background(), created.ID, UpdateASNRequest{Nama: &nama})
	require.NoError(t, err)

	assert.Equal(t, nama, updated.Nama)
	assert.Equal(t, created.NIP, updated.NIP)
	assert.Equal(t, created.JadwalKGBBerikutnya, updated.JadwalKGBBerikutnya)
	assert.Equal(t, created.JadwalPangkatBerikutnya, updated.JadwalPangkatBerikutnya)
}

func TestASNServiceUpdateRecomputesChangedSchedule(t *testing.T) {
	repo := newMockASNRepo()
	svc := NewASNService(repo, nil, nil, nil)

	created, err := svc.Create(context.Background(), CreateASNRequest{
		Nama:              "Budi Santoso",
		NIP:               "198001012005011001",
		RiwayatTmtKGB:     mustDate(t, "2023-08-01"),
		RiwayatTmtPangkat: mustDate(t, "2022-01-10"),
	})
	require.NoError(t, err)

	newKGB := mustDate(t, "2025-08-01")
	updated, err := svc.Update(context.Background(), created.ID, UpdateASNRequest{RiwayatTmtKGB: &newKGB})
	require.NoError(t, err)

	assert.Equal(t, "2027-08-01", updated.JadwalKGBBerikutnya.String())
	assert.Equal(t, created.JadwalPangkatBerikutnya, updated.JadwalPangkatBerikutnya, "untouched schedule stays put")
}

func TestASNServiceUpdateNotFound(t *testing.T) {
	svc := NewASNService(newMockASNRepo(), nil, nil, nil)

	nama := "Siapa"
	_, err := svc.Update(context.Background(), 42, UpdateASNRequest{Nama: &nama})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestASNServiceGetNotFound(t *testing.T) {
	svc := NewASNService(newMockASNRepo(), nil, nil, nil)

	_, err := svc.Get(context.Background(), 7)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestASNServiceDeleteIsIdempotent(t *testing.T) {
	repo := newMockASNRepo()
	svc := NewASNService(repo, nil, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), 99))
	assert.Equal(t, []int64{99}, repo.deleted)
}

func TestASNServiceDeleteThenGet(t *testing.T) {
	repo := newMockASNRepo()
	svc := NewASNService(repo, nil, nil, nil)

	created, err := svc.Create(context.Background(), CreateASNRequest{Nama: "Budi", NIP: "1"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestASNServiceListStoreFailure(t *testing.T) {
	repo := newMockASNRepo()
	repo.listErr = errors.New("connection refused")
	svc := NewASNService(repo, nil, nil, nil)

	_, err := svc.List(context.Background(), models.ASNFilter{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStoreUnavailable.Code, appErrors.FromError(err).Code)
}
