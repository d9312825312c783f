package dashboard

import "time"

// ChildView is a child plus the labels the dashboard cards render.
type ChildView struct {
	Child
	TodayLabel string  `json:"todayLabel"`
	LimitLabel string  `json:"limitLabel"`
	Progress   float64 `json:"progress"`
	LastSeen   string  `json:"lastSeen"`
}

type AlertView struct {
	Alert
	TimeAgo string `json:"timeAgo"`
}

type ReportView struct {
	CommunityReport
	TimeAgo string `json:"timeAgo"`
}

func (b *Board) ChildViews() []ChildView {
	now := b.now()
	children := b.Children()
	views := make([]ChildView, 0, len(children))
	for _, c := range children {
		views = append(views, ChildView{
			Child:      c,
			TodayLabel: FormatMinutes(c.ScreenTime.Today),
			LimitLabel: FormatMinutes(c.ScreenTime.Limit),
			Progress:   ScreenTimeProgress(c.ScreenTime.Today, c.ScreenTime.Limit),
			LastSeen:   FormatRelative(c.Location.LastUpdated, now),
		})
	}
	return views
}

func AlertViews(alerts []Alert, now time.Time) []AlertView {
	views := make([]AlertView, 0, len(alerts))
	for _, a := range alerts {
		views = append(views, AlertView{Alert: a, TimeAgo: FormatRelative(a.Timestamp, now)})
	}
	return views
}

func ReportViews(reports []CommunityReport, now time.Time) []ReportView {
	views := make([]ReportView, 0, len(reports))
	for _, r := range reports {
		views = append(views, ReportView{CommunityReport: r, TimeAgo: FormatRelative(r.Timestamp, now)})
	}
	return views
}

// Now is the board's clock.
func (b *Board) Now() time.Time {
	return b.now()
}
