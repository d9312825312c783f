package dashboard

import "time"

type Category string

const (
	CategoryEducational   Category = "educational"
	CategoryEntertainment Category = "entertainment"
	CategorySocial        Category = "social"
	CategoryGaming        Category = "gaming"
	CategoryNews          Category = "news"
	CategoryOther         Category = "other"
)

type AlertType string

const (
	AlertSuspiciousContact    AlertType = "suspicious_contact"
	AlertCyberbullying        AlertType = "cyberbullying"
	AlertInappropriateContent AlertType = "inappropriate_content"
	AlertScreenTime           AlertType = "screen_time"
	AlertLocation             AlertType = "location"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type ReportType string

const (
	ReportSuspiciousPerson     ReportType = "suspicious_person"
	ReportInappropriateContent ReportType = "inappropriate_content"
	ReportCyberbullying        ReportType = "cyberbullying"
	ReportOther                ReportType = "other"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportSuspiciousPerson, ReportInappropriateContent, ReportCyberbullying, ReportOther:
		return true
	}
	return false
}

type Location struct {
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Address     string    `json:"address"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// ScreenTime totals are in minutes; Limit is per day.
type ScreenTime struct {
	Today    int `json:"today"`
	ThisWeek int `json:"thisWeek"`
	Limit    int `json:"limit"`
}

type Child struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Age              int        `json:"age"`
	Avatar           string     `json:"avatar"`
	DeviceID         string     `json:"deviceId,omitempty"`
	Grade            string     `json:"grade,omitempty"`
	School           string     `json:"school,omitempty"`
	EmergencyContact string     `json:"emergencyContact,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	IsOnline         bool       `json:"isOnline"`
	Location         Location   `json:"location"`
	ScreenTime       ScreenTime `json:"screenTime"`
	SafetyScore      int        `json:"safetyScore"`
}

type ScreenTimeEntry struct {
	ID        string    `json:"id"`
	ChildID   string    `json:"childId"`
	App       string    `json:"app"`
	Website   string    `json:"website,omitempty"`
	Category  Category  `json:"category"`
	Duration  int       `json:"duration"` // minutes
	Timestamp time.Time `json:"timestamp"`
	Blocked   bool      `json:"blocked"`
}

type Alert struct {
	ID          string    `json:"id"`
	ChildID     string    `json:"childId"`
	Type        AlertType `json:"type"`
	Severity    Severity  `json:"severity"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Resolved    bool      `json:"resolved"`
}

type CommunityReport struct {
	ID           string     `json:"id"`
	ReporterID   string     `json:"reporterId"`
	ReporterName string     `json:"reporterName"`
	Type         ReportType `json:"type"`
	Description  string     `json:"description"`
	Location     string     `json:"location,omitempty"`
	Timestamp    time.Time  `json:"timestamp"`
	Verified     bool       `json:"verified"`
	Upvotes      int        `json:"upvotes"`
}

// FilterSettings are the per-child content restrictions.
type FilterSettings struct {
	SafeSearch            bool              `json:"safeSearch"`
	BlockAdultContent     bool              `json:"blockAdultContent"`
	BlockViolence         bool              `json:"blockViolence"`
	BlockGambling         bool              `json:"blockGambling"`
	SocialMediaRestricted bool              `json:"socialMediaRestricted"`
	ScreenTimeLimit       int               `json:"screenTimeLimit"` // minutes
	BedtimeMode           bool              `json:"bedtimeMode"`
	AllowedCategories     map[Category]bool `json:"allowedCategories"`
}

func (f FilterSettings) clone() FilterSettings {
	cats := make(map[Category]bool, len(f.AllowedCategories))
	for k, v := range f.AllowedCategories {
		cats[k] = v
	}
	f.AllowedCategories = cats
	return f
}

// NewChild is what a parent fills in to add a child.
type NewChild struct {
	Name             string `json:"name"`
	Age              int    `json:"age"`
	Avatar           string `json:"avatar"`
	Grade            string `json:"grade"`
	School           string `json:"school"`
	EmergencyContact string `json:"emergencyContact"`
	Notes            string `json:"notes"`
}

type NewReport struct {
	Type        ReportType `json:"type"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
}
