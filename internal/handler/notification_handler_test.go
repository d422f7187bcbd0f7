package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkpsdm/asn-monitor-api/internal/models"
	"github.com/bkpsdm/asn-monitor-api/internal/service"
	"github.com/bkpsdm/asn-monitor-api/pkg/schedule"
)

type fakeSnapshotRepo struct {
	records []models.ASN
	err     error
}

func (f *fakeSnapshotRepo) ListAll(ctx context.Context) ([]models.ASN, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func TestNotificationHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &fakeSnapshotRepo{records: []models.ASN{
		{ID: 1, Nama: "Budi", NIP: "001", JadwalKGBBerikutnya: schedule.DateOf(time.Now().AddDate(0, 0, 45))},
		{ID: 2, Nama: "Siti", NIP: "002", JadwalPangkatBerikutnya: schedule.DateOf(time.Now().AddDate(0, 0, -10))},
		{ID: 3, Nama: "Andi", NIP: "003", JadwalKGBBerikutnya: schedule.DateOf(time.Now().AddDate(1, 0, 0))},
	}}
	handler := NewNotificationHandler(service.NewNotificationService(repo, 90, 200, nil))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/notifications", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var items []models.NotificationItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2, "ok milestones are excluded")
	assert.Equal(t, int64(2), items[0].EmployeeID, "overdue item sorts first")
	assert.Equal(t, schedule.StatusOverdue, items[0].Status)
	assert.Equal(t, schedule.StatusDueSoon, items[1].Status)
}

func TestNotificationHandlerListEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewNotificationHandler(service.NewNotificationService(&fakeSnapshotRepo{}, 90, 200, nil))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/notifications", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestNotificationHandlerExportPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &fakeSnapshotRepo{records: []models.ASN{
		{ID: 1, Nama: "Budi", NIP: "001", JadwalKGBBerikutnya: schedule.DateOf(time.Now().AddDate(0, 0, 30))},
	}}
	handler := NewNotificationHandler(service.NewNotificationService(repo, 90, 200, nil))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/notifications/export?format=pdf", nil)

	handler.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "jadwal-asn.pdf")
}
