package dashboard

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	newChildAddress     = "Location not available"
	newChildAvatar      = "/placeholder.svg"
	newChildSafetyScore = 85
	newChildDailyLimit  = 120

	MinScreenLimit = 60
	MaxScreenLimit = 480

	ownReporterID   = "current-user"
	ownReporterName = "You"
)

// Board holds the dashboard's sample household and the edits a parent
// makes to it. All methods return copies.
type Board struct {
	now    func() time.Time
	logger *slog.Logger

	mu         sync.RWMutex
	children   []Child
	screenTime []ScreenTimeEntry
	alerts     []Alert
	reports    []CommunityReport
	filters    map[string]FilterSettings
}

func NewBoard(now func() time.Time, logger *slog.Logger) *Board {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	seed := SampleData(now())
	return &Board{
		now:        now,
		logger:     logger.With(slog.String("component", "dashboard")),
		children:   seed.Children,
		screenTime: seed.ScreenTime,
		alerts:     seed.Alerts,
		reports:    seed.Reports,
		filters:    seed.Filters,
	}
}

func (b *Board) Children() []Child {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Child(nil), b.children...)
}

func (b *Board) Child(id string) (Child, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i := b.childIndex(id)
	if i < 0 {
		return Child{}, ErrChildNotFound
	}
	return b.children[i], nil
}

// AddChild appends a child with offline defaults and a generated id.
func (b *Board) AddChild(in NewChild) (Child, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Child{}, ErrChildNameRequired
	}
	if in.Age < 1 || in.Age > 18 {
		return Child{}, ErrInvalidAge
	}
	avatar := in.Avatar
	if avatar == "" {
		avatar = newChildAvatar
	}

	child := Child{
		ID:               "child-" + uuid.NewString(),
		Name:             name,
		Age:              in.Age,
		Avatar:           avatar,
		Grade:            in.Grade,
		School:           in.School,
		EmergencyContact: in.EmergencyContact,
		Notes:            in.Notes,
		Location: Location{
			Address:     newChildAddress,
			LastUpdated: b.now(),
		},
		ScreenTime:  ScreenTime{Limit: newChildDailyLimit},
		SafetyScore: newChildSafetyScore,
	}

	b.mu.Lock()
	b.children = append(b.children, child)
	b.filters[child.ID] = DefaultFilters(newChildDailyLimit)
	b.mu.Unlock()

	b.logger.Info("child added", slog.String("child_id", child.ID))
	return child, nil
}

// ScreenTime lists the entries recorded for a child.
func (b *Board) ScreenTime(childID string) ([]ScreenTimeEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.childIndex(childID) < 0 {
		return nil, ErrChildNotFound
	}
	entries := []ScreenTimeEntry{}
	for _, e := range b.screenTime {
		if e.ChildID == childID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (b *Board) Alerts() []Alert {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Alert(nil), b.alerts...)
}

func (b *Board) ActiveAlerts() []Alert {
	return b.filterAlerts(false)
}

func (b *Board) ResolvedAlerts() []Alert {
	return b.filterAlerts(true)
}

func (b *Board) filterAlerts(resolved bool) []Alert {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := []Alert{}
	for _, a := range b.alerts {
		if a.Resolved == resolved {
			out = append(out, a)
		}
	}
	return out
}

// ActiveBySeverity counts unresolved alerts per severity.
func (b *Board) ActiveBySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for _, a := range b.ActiveAlerts() {
		counts[a.Severity]++
	}
	return counts
}

// ResolveAlert marks an alert resolved. Resolving twice is not an error.
func (b *Board) ResolveAlert(id string) (Alert, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.alerts {
		if b.alerts[i].ID == id {
			b.alerts[i].Resolved = true
			return b.alerts[i], nil
		}
	}
	return Alert{}, ErrAlertNotFound
}

// DismissAlert removes an alert entirely.
func (b *Board) DismissAlert(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.alerts {
		if b.alerts[i].ID == id {
			b.alerts = append(b.alerts[:i], b.alerts[i+1:]...)
			return nil
		}
	}
	return ErrAlertNotFound
}

func (b *Board) Reports() []CommunityReport {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]CommunityReport(nil), b.reports...)
}

// SubmitReport puts a new unverified report at the top of the list.
func (b *Board) SubmitReport(in NewReport) (CommunityReport, error) {
	if in.Type == "" {
		return CommunityReport{}, ErrReportTypeRequired
	}
	if !in.Type.Valid() {
		return CommunityReport{}, ErrInvalidReportType
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return CommunityReport{}, ErrDescriptionRequired
	}

	report := CommunityReport{
		ID:           uuid.NewString(),
		ReporterID:   ownReporterID,
		ReporterName: ownReporterName,
		Type:         in.Type,
		Description:  desc,
		Location:     strings.TrimSpace(in.Location),
		Timestamp:    b.now(),
	}

	b.mu.Lock()
	b.reports = append([]CommunityReport{report}, b.reports...)
	b.mu.Unlock()

	b.logger.Info("community report submitted", slog.String("report_id", report.ID), slog.String("type", string(report.Type)))
	return report, nil
}

func (b *Board) UpvoteReport(id string) (CommunityReport, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.reports {
		if b.reports[i].ID == id {
			b.reports[i].Upvotes++
			return b.reports[i], nil
		}
	}
	return CommunityReport{}, ErrReportNotFound
}

func (b *Board) Filters(childID string) (FilterSettings, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	f, ok := b.filters[childID]
	if !ok {
		return FilterSettings{}, ErrChildNotFound
	}
	return f.clone(), nil
}

// UpdateFilters replaces a child's settings. The screen time limit must be
// within the range the dashboard slider offers.
func (b *Board) UpdateFilters(childID string, settings FilterSettings) (FilterSettings, error) {
	if settings.ScreenTimeLimit < MinScreenLimit || settings.ScreenTimeLimit > MaxScreenLimit {
		return FilterSettings{}, ErrInvalidScreenLimit
	}
	settings = settings.clone()

	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.childIndex(childID)
	if i < 0 {
		return FilterSettings{}, ErrChildNotFound
	}
	b.filters[childID] = settings
	b.children[i].ScreenTime.Limit = settings.ScreenTimeLimit
	return settings.clone(), nil
}

// childIndex must be called with mu held.
func (b *Board) childIndex(id string) int {
	for i := range b.children {
		if b.children[i].ID == id {
			return i
		}
	}
	return -1
}
