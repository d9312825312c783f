package dashboard

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2025, time.June, 10, 18, 0, 0, 0, time.UTC)

func newTestBoard() *Board {
	return NewBoard(func() time.Time { return testNow }, nil)
}

func TestNewBoard_SeedsSampleHousehold(t *testing.T) {
	// Arrange & Act
	board := newTestBoard()

	// Assert
	children := board.Children()
	if len(children) != 2 || children[0].Name != "Emma Johnson" || children[1].Name != "Alex Johnson" {
		t.Fatalf("Children() = %+v", children)
	}
	if got := children[0].Location.LastUpdated; !got.Equal(testNow.Add(-30 * time.Minute)) {
		t.Errorf("Emma last updated = %v, want 30 minutes before now", got)
	}
	if n := len(board.Alerts()); n != 3 {
		t.Errorf("Alerts() len = %d, want 3", n)
	}
	if n := len(board.Reports()); n != 3 {
		t.Errorf("Reports() len = %d, want 3", n)
	}
	counts := board.ActiveBySeverity()
	if counts[SeverityHigh] != 1 || counts[SeverityMedium] != 1 {
		t.Errorf("ActiveBySeverity() = %v, want 1 high and 1 medium", counts)
	}
}

func TestBoardAddChild(t *testing.T) {
	// Arrange
	board := newTestBoard()

	// Act
	child, err := board.AddChild(NewChild{Name: "  Mia Johnson ", Age: 6, School: "Maple Street"})

	// Assert
	if err != nil {
		t.Fatalf("AddChild() error = %v", err)
	}
	if !strings.HasPrefix(child.ID, "child-") {
		t.Errorf("ID = %q, want child- prefix", child.ID)
	}
	if child.Name != "Mia Johnson" || child.IsOnline || child.SafetyScore != 85 || child.ScreenTime.Limit != 120 {
		t.Errorf("AddChild() defaults wrong: %+v", child)
	}
	if child.Location.Address != "Location not available" || child.Avatar != "/placeholder.svg" {
		t.Errorf("AddChild() location/avatar = %q, %q", child.Location.Address, child.Avatar)
	}
	children := board.Children()
	if last := children[len(children)-1]; last.ID != child.ID {
		t.Errorf("new child not appended, last = %q", last.ID)
	}
	filters, err := board.Filters(child.ID)
	if err != nil || filters.ScreenTimeLimit != 120 {
		t.Errorf("Filters(new child) = %+v, %v", filters, err)
	}
	entries, err := board.ScreenTime(child.ID)
	if err != nil || len(entries) != 0 {
		t.Errorf("ScreenTime(new child) = %v, %v, want empty", entries, err)
	}
}

func TestBoardAddChild_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   NewChild
		wantErr error
	}{
		{"missing name", NewChild{Name: " ", Age: 5}, ErrChildNameRequired},
		{"age zero", NewChild{Name: "A", Age: 0}, ErrInvalidAge},
		{"age too high", NewChild{Name: "A", Age: 19}, ErrInvalidAge},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			board := newTestBoard()

			_, err := board.AddChild(test.input)

			if !errors.Is(err, test.wantErr) {
				t.Errorf("AddChild() error = %v, want %v", err, test.wantErr)
			}
			if n := len(board.Children()); n != 2 {
				t.Errorf("children = %d after rejected add, want 2", n)
			}
		})
	}
}

func TestBoardScreenTime(t *testing.T) {
	board := newTestBoard()

	emma, err := board.ScreenTime("1")
	if err != nil {
		t.Fatalf("ScreenTime(1) error = %v", err)
	}
	alex, _ := board.ScreenTime("2")
	_, missingErr := board.ScreenTime("nope")

	if len(emma) != 3 || len(alex) != 2 {
		t.Errorf("entries = %d, %d, want 3, 2", len(emma), len(alex))
	}
	for _, e := range emma {
		if e.ChildID != "1" {
			t.Errorf("entry %s belongs to %s", e.ID, e.ChildID)
		}
	}
	if !errors.Is(missingErr, ErrChildNotFound) {
		t.Errorf("ScreenTime(unknown) error = %v", missingErr)
	}
}

func TestBoardAlerts_ResolveAndDismiss(t *testing.T) {
	// Arrange
	board := newTestBoard()

	// Act
	resolved, err := board.ResolveAlert("1")
	if err != nil {
		t.Fatalf("ResolveAlert() error = %v", err)
	}
	if err := board.DismissAlert("3"); err != nil {
		t.Fatalf("DismissAlert() error = %v", err)
	}

	// Assert
	if !resolved.Resolved {
		t.Error("ResolveAlert() returned unresolved alert")
	}
	active, done := board.ActiveAlerts(), board.ResolvedAlerts()
	if len(active) != 1 || active[0].ID != "2" {
		t.Errorf("ActiveAlerts() = %+v", active)
	}
	if len(done) != 1 || done[0].ID != "1" {
		t.Errorf("ResolvedAlerts() = %+v", done)
	}
	if _, err := board.ResolveAlert("3"); !errors.Is(err, ErrAlertNotFound) {
		t.Errorf("ResolveAlert(dismissed) error = %v", err)
	}
	if err := board.DismissAlert("3"); !errors.Is(err, ErrAlertNotFound) {
		t.Errorf("DismissAlert(twice) error = %v", err)
	}
}

func TestBoardReports(t *testing.T) {
	// Arrange
	board := newTestBoard()

	// Act
	report, err := board.SubmitReport(NewReport{Type: ReportOther, Description: "Stray dog near the bus stop", Location: "Oak Ave"})
	if err != nil {
		t.Fatalf("SubmitReport() error = %v", err)
	}
	upvoted, err := board.UpvoteReport(report.ID)
	if err != nil {
		t.Fatalf("UpvoteReport() error = %v", err)
	}

	// Assert
	reports := board.Reports()
	if reports[0].ID != report.ID {
		t.Error("new report not prepended")
	}
	if report.ReporterName != "You" || report.Verified || report.Upvotes != 0 || !report.Timestamp.Equal(testNow) {
		t.Errorf("SubmitReport() = %+v", report)
	}
	if upvoted.Upvotes != 1 {
		t.Errorf("Upvotes = %d, want 1", upvoted.Upvotes)
	}
	if _, err := board.UpvoteReport("missing"); !errors.Is(err, ErrReportNotFound) {
		t.Errorf("UpvoteReport(missing) error = %v", err)
	}
}

func TestBoardSubmitReport_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   NewReport
		wantErr error
	}{
		{"missing type", NewReport{Description: "x"}, ErrReportTypeRequired},
		{"unknown type", NewReport{Type: "gossip", Description: "x"}, ErrInvalidReportType},
		{"missing description", NewReport{Type: ReportOther, Description: "  "}, ErrDescriptionRequired},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			board := newTestBoard()

			_, err := board.SubmitReport(test.input)

			if !errors.Is(err, test.wantErr) {
				t.Errorf("SubmitReport() error = %v, want %v", err, test.wantErr)
			}
			if n := len(board.Reports()); n != 3 {
				t.Errorf("reports = %d after rejected submit, want 3", n)
			}
		})
	}
}

func TestBoardFilters(t *testing.T) {
	// Arrange
	board := newTestBoard()
	settings, err := board.Filters("2")
	if err != nil {
		t.Fatalf("Filters() error = %v", err)
	}

	// Act
	settings.ScreenTimeLimit = 210
	settings.AllowedCategories[CategoryGaming] = true
	updated, err := board.UpdateFilters("2", settings)

	// Assert
	if err != nil {
		t.Fatalf("UpdateFilters() error = %v", err)
	}
	if !updated.AllowedCategories[CategoryGaming] {
		t.Error("gaming not allowed after update")
	}
	child, _ := board.Child("2")
	if child.ScreenTime.Limit != 210 {
		t.Errorf("child limit = %d, want 210", child.ScreenTime.Limit)
	}
	emma, _ := board.Filters("1")
	if emma.ScreenTimeLimit != 240 {
		t.Errorf("other child's filters changed: %+v", emma)
	}
}

func TestBoardFilters_ReturnsCopies(t *testing.T) {
	board := newTestBoard()

	f, _ := board.Filters("1")
	f.AllowedCategories[CategorySocial] = true

	again, _ := board.Filters("1")
	if again.AllowedCategories[CategorySocial] {
		t.Error("mutating returned settings changed the board")
	}
}

func TestBoardUpdateFilters_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		childID string
		limit   int
		wantErr error
	}{
		{"below slider", "1", 30, ErrInvalidScreenLimit},
		{"above slider", "1", 500, ErrInvalidScreenLimit},
		{"unknown child", "nope", 120, ErrChildNotFound},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			board := newTestBoard()

			_, err := board.UpdateFilters(test.childID, DefaultFilters(test.limit))

			if !errors.Is(err, test.wantErr) {
				t.Errorf("UpdateFilters() error = %v, want %v", err, test.wantErr)
			}
		})
	}
}
