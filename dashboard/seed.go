package dashboard

import "time"

func minutesAgo(now time.Time, m int) time.Time {
	return now.Add(-time.Duration(m) * time.Minute)
}

func hoursAgo(now time.Time, h int) time.Time {
	return now.Add(-time.Duration(h) * time.Hour)
}

// Seed is the sample household the dashboard starts with. Timestamps are
// relative to now.
type Seed struct {
	Children   []Child
	ScreenTime []ScreenTimeEntry
	Alerts     []Alert
	Reports    []CommunityReport
	Filters    map[string]FilterSettings
}

func SampleData(now time.Time) Seed {
	return Seed{
		Children: []Child{
			{
				ID:       "1",
				Name:     "Emma Johnson",
				Age:      12,
				Avatar:   "/young-woman-smiling.png",
				DeviceID: "device-001",
				IsOnline: true,
				Location: Location{
					Lat:         40.7128,
					Lng:         -74.006,
					Address:     "Lincoln Elementary School, New York, NY",
					LastUpdated: minutesAgo(now, 30),
				},
				ScreenTime:  ScreenTime{Today: 180, ThisWeek: 1260, Limit: 240},
				SafetyScore: 92,
			},
			{
				ID:       "2",
				Name:     "Alex Johnson",
				Age:      9,
				Avatar:   "/young-boy-drawing.png",
				DeviceID: "device-002",
				Location: Location{
					Lat:         40.7589,
					Lng:         -73.9851,
					Address:     "Home - 123 Main St, New York, NY",
					LastUpdated: minutesAgo(now, 15),
				},
				ScreenTime:  ScreenTime{Today: 120, ThisWeek: 840, Limit: 180},
				SafetyScore: 78,
			},
		},
		ScreenTime: []ScreenTimeEntry{
			{ID: "1", ChildID: "1", App: "Khan Academy", Website: "khanacademy.org", Category: CategoryEducational, Duration: 45, Timestamp: hoursAgo(now, 2)},
			{ID: "2", ChildID: "1", App: "YouTube", Website: "youtube.com", Category: CategoryEntertainment, Duration: 30, Timestamp: hoursAgo(now, 3)},
			{ID: "3", ChildID: "2", App: "Minecraft", Category: CategoryGaming, Duration: 60, Timestamp: hoursAgo(now, 1), Blocked: true},
			{ID: "4", ChildID: "1", App: "Instagram", Website: "instagram.com", Category: CategorySocial, Duration: 25, Timestamp: hoursAgo(now, 4)},
			{ID: "5", ChildID: "2", App: "Scratch", Website: "scratch.mit.edu", Category: CategoryEducational, Duration: 40, Timestamp: hoursAgo(now, 5)},
		},
		Alerts: []Alert{
			{
				ID:          "1",
				ChildID:     "1",
				Type:        AlertSuspiciousContact,
				Severity:    SeverityHigh,
				Title:       "Unknown Contact Attempt",
				Description: "Emma received a message from an unknown number asking for personal information.",
				Timestamp:   hoursAgo(now, 3),
			},
			{
				ID:          "2",
				ChildID:     "2",
				Type:        AlertScreenTime,
				Severity:    SeverityMedium,
				Title:       "Screen Time Limit Exceeded",
				Description: "Alex has exceeded the daily screen time limit by 30 minutes.",
				Timestamp:   hoursAgo(now, 1),
			},
			{
				ID:          "3",
				ChildID:     "1",
				Type:        AlertInappropriateContent,
				Severity:    SeverityMedium,
				Title:       "Blocked Content Access",
				Description: "Attempted access to age-inappropriate website was blocked.",
				Timestamp:   hoursAgo(now, 6),
				Resolved:    true,
			},
		},
		Reports: []CommunityReport{
			{
				ID:           "1",
				ReporterID:   "user-123",
				ReporterName: "Sarah M.",
				Type:         ReportSuspiciousPerson,
				Description:  "Suspicious individual approaching children near Lincoln Elementary School playground.",
				Location:     "Lincoln Elementary School, New York, NY",
				Timestamp:    hoursAgo(now, 2),
				Verified:     true,
				Upvotes:      12,
			},
			{
				ID:           "2",
				ReporterID:   "user-456",
				ReporterName: "Mike R.",
				Type:         ReportCyberbullying,
				Description:  "Reports of cyberbullying incidents on popular gaming platform targeting local children.",
				Timestamp:    hoursAgo(now, 8),
				Upvotes:      7,
			},
			{
				ID:           "3",
				ReporterID:   "user-789",
				ReporterName: "Lisa K.",
				Type:         ReportInappropriateContent,
				Description:  "Inappropriate advertisements appearing on children's educational apps.",
				Timestamp:    hoursAgo(now, 12),
				Verified:     true,
				Upvotes:      15,
			},
		},
		Filters: map[string]FilterSettings{
			"1": {
				SafeSearch:            true,
				BlockAdultContent:     true,
				BlockViolence:         true,
				BlockGambling:         true,
				SocialMediaRestricted: true,
				ScreenTimeLimit:       240,
				BedtimeMode:           true,
				AllowedCategories: map[Category]bool{
					CategoryEducational:   true,
					CategoryEntertainment: true,
					CategorySocial:        false,
					CategoryGaming:        true,
					CategoryNews:          true,
				},
			},
			"2": {
				SafeSearch:            true,
				BlockAdultContent:     true,
				BlockViolence:         true,
				BlockGambling:         true,
				SocialMediaRestricted: true,
				ScreenTimeLimit:       180,
				BedtimeMode:           true,
				AllowedCategories: map[Category]bool{
					CategoryEducational:   true,
					CategoryEntertainment: true,
					CategorySocial:        false,
					CategoryGaming:        false,
					CategoryNews:          false,
				},
			},
		},
	}
}

// DefaultFilters applies to children added after seeding.
func DefaultFilters(limit int) FilterSettings {
	return FilterSettings{
		SafeSearch:            true,
		BlockAdultContent:     true,
		BlockViolence:         true,
		BlockGambling:         true,
		SocialMediaRestricted: true,
		ScreenTimeLimit:       limit,
		BedtimeMode:           true,
		AllowedCategories: map[Category]bool{
			CategoryEducational:   true,
			CategoryEntertainment: true,
			CategorySocial:        false,
			CategoryGaming:        false,
			CategoryNews:          false,
		},
	}
}
