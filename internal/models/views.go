package models

import "time"

// View types returned by the counsellor and admin endpoints. They are
// assembled in the service layer from one or more collections and are never
// stored themselves.

// CounselorStats is the counsellor dashboard summary.
type CounselorStats struct {
	ActiveClients    int64 `json:"activeClients"`
	TodaysSessions   int64 `json:"todaysSessions"`
	ThisWeekSessions int64 `json:"thisWeekSessions"`
	CompletionRate   int   `json:"completionRate"`
}

// ClientDetail is a counsellor-client relationship with its session notes.
type ClientDetail struct {
	CounselorClient
	Notes []CounselorNote `json:"notes"`
}

// AppointmentWithUser is an appointment with the student projected in.
type AppointmentWithUser struct {
	Appointment
	User *UserRef `json:"user,omitempty"`
}

// NoteWithClient is a session note with the client projected in.
type NoteWithClient struct {
	CounselorNote
	Client *UserRef `json:"client,omitempty"`
}

// AdminStats is the admin dashboard summary.
type AdminStats struct {
	TotalStudents         int64 `json:"totalStudents"`
	TotalCounselors       int64 `json:"totalCounselors"`
	TotalAppointments     int64 `json:"totalAppointments"`
	TodayAppointments     int64 `json:"todayAppointments"`
	CompletedAppointments int64 `json:"completedAppointments"`
	AppointmentRate       int   `json:"appointmentRate"`
	MoodEntries           int64 `json:"moodEntries"`
	Resources             int64 `json:"resources"`
	ForumPosts            int64 `json:"forumPosts"`
	ActiveUsers           int64 `json:"activeUsers"`
}

// WellnessMetrics summarizes the recent mood entry window.
type WellnessMetrics struct {
	MoodDistribution map[string]int `json:"moodDistribution"`
	Metrics          WellnessIndex  `json:"metrics"`
	TotalEntries     int            `json:"totalEntries"`
}

// WellnessIndex is the set of derived 0-10 indices.
type WellnessIndex struct {
	AnxietyIndex    float64 `json:"anxietyIndex"`
	DepressionIndex float64 `json:"depressionIndex"`
	StressLevel     float64 `json:"stressLevel"`
	WellbeingScore  float64 `json:"wellbeingScore"`
}

// AppointmentAnalytics is the admin appointment breakdown.
type AppointmentAnalytics struct {
	Total              int            `json:"total"`
	ByType             map[string]int `json:"byType"`
	ByStatus           map[string]int `json:"byStatus"`
	PeakHours          map[int]int    `json:"peakHours"`
	RecentAppointments []Appointment  `json:"recentAppointments"`
}

// ResourceEngagement is one row of the top-resources table.
type ResourceEngagement struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Views      int    `json:"views"`
	Likes      int    `json:"likes"`
	Category   string `json:"category"`
	Engagement string `json:"engagement"`
}

// ForumActivity is one row of the per-category forum table.
type ForumActivity struct {
	Category   string `json:"category"`
	Posts      int    `json:"posts"`
	Comments   int    `json:"comments"`
	Engagement string `json:"engagement"`
}

// RiskFlag marks an assessment that crossed the high-risk threshold.
type RiskFlag struct {
	ID       string `json:"id"`
	Student  string `json:"student"`
	Flag     string `json:"flag"`
	Date     string `json:"date"`
	Severity string `json:"severity"`
	Reviewed bool   `json:"reviewed"`
}

// SystemAlert is an operational notice on the admin dashboard.
type SystemAlert struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Pagination accompanies paged admin listings.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Pages int64 `json:"pages"`
}
