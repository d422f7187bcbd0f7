package models

import "github.com/bkpsdm/asn-monitor-api/pkg/schedule"

// Milestone kinds surfaced by the notification feed.
const (
	KindSalaryStep = "salary_step"
	KindPromotion  = "promotion"
)

// NotificationItem is one due or overdue milestone. Items are derived fresh
// from the current record set on every read and never persisted.
type NotificationItem struct {
	EmployeeID int64           `json:"employee_id"`
	Nama       string          `json:"nama"`
	NIP        string          `json:"nip"`
	Kind       string          `json:"kind"`
	DueDate    schedule.Date   `json:"due_date"`
	Status     schedule.Status `json:"status"`
	DaysUntil  int             `json:"days_until"`
}

// NotificationFeed partitions due milestones by urgency. Both slices are
// sorted ascending by due date.
type NotificationFeed struct {
	Soon    []NotificationItem `json:"soon"`
	Overdue []NotificationItem `json:"overdue"`
}

// Flatten merges overdue and soon items into one feed ordered by nearest
// due date first, capped at limit entries (0 means no cap).
func (f NotificationFeed) Flatten(limit int) []NotificationItem {
	merged := make([]NotificationItem, 0, len(f.Soon)+len(f.Overdue))
	i, j := 0, 0
	for i < len(f.Overdue) && j < len(f.Soon) {
		if f.Overdue[i].DueDate.After(f.Soon[j].DueDate.Time) {
			merged = append(merged, f.Soon[j])
			j++
		} else {
			merged = append(merged, f.Overdue[i])
			i++
		}
	}
	merged = append(merged, f.Overdue[i:]...)
	merged = append(merged, f.Soon[j:]...)
	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// DashboardSummary aggregates record and milestone counts for the overview
// panel.
type DashboardSummary struct {
	TotalEmployees int            `json:"total_employees"`
	DueSoon        int            `json:"due_soon"`
	Overdue        int            `json:"overdue"`
	SoonByKind     map[string]int `json:"soon_by_kind"`
	OverdueByKind  map[string]int `json:"overdue_by_kind"`
	GeneratedAt    string         `json:"generated_at"`
}
