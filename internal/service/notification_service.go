package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/bkpsdm/asn-monitor-api/internal/models"
	appErrors "github.com/bkpsdm/asn-monitor-api/pkg/errors"
	"github.com/bkpsdm/asn-monitor-api/pkg/export"
	"github.com/bkpsdm/asn-monitor-api/pkg/schedule"
)

type asnSnapshotRepository interface {
	ListAll(ctx context.Context) ([]models.ASN, error)
}

// NotificationService derives the due/overdue milestone feed from the
// current record set. The feed is recomputed in full on every call; there is
// no cached or incremental state.
type NotificationService struct {
	repo       asnSnapshotRepository
	windowDays int
	maxItems   int
	logger     *zap.Logger
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(repo asnSnapshotRepository, windowDays, maxItems int, logger *zap.Logger) *NotificationService {
	if windowDays <= 0 {
		windowDays = schedule.DefaultWindowDays
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{repo: repo, windowDays: windowDays, maxItems: maxItems, logger: logger}
}

// Feed scans one snapshot of the record set and partitions every present
// milestone date into soon/overdue, dropping the rest. Both partitions are
// sorted ascending by due date; ties keep record order, so repeated calls on
// unchanged input yield identical output.
func (s *NotificationService) Feed(ctx context.Context, now time.Time) (models.NotificationFeed, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return models.NotificationFeed{}, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to list records")
	}
	return s.build(records, now), nil
}

func (s *NotificationService) build(records []models.ASN, now time.Time) models.NotificationFeed {
	feed := models.NotificationFeed{
		Soon:    []models.NotificationItem{},
		Overdue: []models.NotificationItem{},
	}

	for _, record := range records {
		for _, candidate := range []struct {
			kind string
			due  schedule.Date
		}{
			{models.KindSalaryStep, record.JadwalKGBBerikutnya},
			{models.KindPromotion, record.JadwalPangkatBerikutnya},
		} {
			if candidate.due.IsZero() {
				continue
			}
			status := schedule.Classify(candidate.due, now, s.windowDays)
			if status == schedule.StatusOK {
				continue
			}
			item := models.NotificationItem{
				EmployeeID: record.ID,
				Nama:       record.Nama,
				NIP:        record.NIP,
				Kind:       candidate.kind,
				DueDate:    candidate.due,
				Status:     status,
				DaysUntil:  schedule.DaysUntil(candidate.due, now),
			}
			if status == schedule.StatusOverdue {
				feed.Overdue = append(feed.Overdue, item)
			} else {
				feed.Soon = append(feed.Soon, item)
			}
		}
	}

	byDueDate := func(items []models.NotificationItem) func(i, j int) bool {
		return func(i, j int) bool {
			return items[i].DueDate.Before(items[j].DueDate.Time)
		}
	}
	sort.SliceStable(feed.Soon, byDueDate(feed.Soon))
	sort.SliceStable(feed.Overdue, byDueDate(feed.Overdue))

	return feed
}

// Flat returns the merged feed ordered by nearest due date first, capped at
// the configured maximum.
func (s *NotificationService) Flat(ctx context.Context, now time.Time) ([]models.NotificationItem, error) {
	feed, err := s.Feed(ctx, now)
	if err != nil {
		return nil, err
	}
	return feed.Flatten(s.maxItems), nil
}

// Summary aggregates record and milestone counts for the dashboard.
func (s *NotificationService) Summary(ctx context.Context, now time.Time) (*models.DashboardSummary, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to list records")
	}
	feed := s.build(records, now)

	summary := &models.DashboardSummary{
		TotalEmployees: len(records),
		DueSoon:        len(feed.Soon),
		Overdue:        len(feed.Overdue),
		SoonByKind:     map[string]int{models.KindSalaryStep: 0, models.KindPromotion: 0},
		OverdueByKind:  map[string]int{models.KindSalaryStep: 0, models.KindPromotion: 0},
		GeneratedAt:    now.UTC().Format(time.RFC3339),
	}
	for _, item := range feed.Soon {
		summary.SoonByKind[item.Kind]++
	}
	for _, item := range feed.Overdue {
		summary.OverdueByKind[item.Kind]++
	}
	return summary, nil
}

// Export renders the flattened feed in the requested format ("csv" or "pdf").
func (s *NotificationService) Export(ctx context.Context, now time.Time, format string) ([]byte, error) {
	items, err := s.Flat(ctx, now)
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Title:   "Jadwal KGB & Kenaikan Pangkat",
		Columns: []string{"nama", "nip", "kind", "due_date", "status", "days_until"},
	}
	for _, item := range items {
		table.Rows = append(table.Rows, []string{
			item.Nama,
			item.NIP,
			item.Kind,
			item.DueDate.String(),
			string(item.Status),
			strconv.Itoa(item.DaysUntil),
		})
	}

	var payload []byte
	switch format {
	case "pdf":
		payload, err = export.PDF(table)
	default:
		payload, err = export.CSV(table)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return payload, nil
}
