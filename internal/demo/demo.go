// Package demo provides canned dashboard payloads served when DEMO_MODE is
// enabled and the corresponding collection is still empty. Nothing here is
// ever written to storage.
package demo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hipis/internal/models"
)

func daysAgo(n int) time.Time   { return time.Now().AddDate(0, 0, -n) }
func daysAhead(n int) time.Time { return time.Now().AddDate(0, 0, n) }

func ref(name, email string) *models.UserRef {
	return &models.UserRef{ID: primitive.NewObjectID(), Name: name, Email: email}
}

// Clients is a sample counsellor roster.
func Clients() []models.CounselorClient {
	last2, last5, last1, last60 := daysAgo(2), daysAgo(5), daysAgo(1), daysAgo(60)
	return []models.CounselorClient{
		{ID: primitive.NewObjectID(), Client: ref("Aarav Kumar", "aarav@college.edu"), Status: "active", PrimaryIssue: "Anxiety & Stress", LastSessionDate: &last2, StartDate: daysAgo(30), CreatedAt: daysAgo(30)},
		{ID: primitive.NewObjectID(), Client: ref("Priya Sharma", "priya@college.edu"), Status: "active", PrimaryIssue: "Depression", LastSessionDate: &last5, StartDate: daysAgo(45), CreatedAt: daysAgo(45)},
		{ID: primitive.NewObjectID(), Client: ref("Rahul Singh", "rahul@college.edu"), Status: "active", PrimaryIssue: "Academic Pressure", LastSessionDate: &last1, StartDate: daysAgo(20), CreatedAt: daysAgo(20)},
		{ID: primitive.NewObjectID(), Client: ref("Neha Verma", "neha@college.edu"), Status: "completed", PrimaryIssue: "Relationship Issues", LastSessionDate: &last60, StartDate: daysAgo(120), CreatedAt: daysAgo(120)},
	}
}

// TodaysAppointments is a sample day schedule.
func TodaysAppointments() []models.AppointmentWithUser {
	today := time.Now().Truncate(24 * time.Hour)
	return []models.AppointmentWithUser{
		{Appointment: models.Appointment{ID: primitive.NewObjectID(), Date: today, Time: "10:00 AM", Type: "video-call", Notes: "Follow-up on anxiety management", Status: models.AppointmentUpcoming}, User: ref("Aarav Kumar", "aarav@college.edu")},
		{Appointment: models.Appointment{ID: primitive.NewObjectID(), Date: today, Time: "11:30 AM", Type: "in-person", Notes: "Initial assessment", Status: models.AppointmentUpcoming}, User: ref("Priya Sharma", "priya@college.edu")},
		{Appointment: models.Appointment{ID: primitive.NewObjectID(), Date: today, Time: "2:00 PM", Type: "phone", Notes: "Stress management techniques", Status: models.AppointmentUpcoming}, User: ref("Rahul Singh", "rahul@college.edu")},
	}
}

// UpcomingAppointments is a sample week ahead.
func UpcomingAppointments() []models.AppointmentWithUser {
	return []models.AppointmentWithUser{
		{Appointment: models.Appointment{ID: primitive.NewObjectID(), Date: daysAhead(1), Time: "10:00 AM", Type: "video-call", Notes: "Weekly check-in", Status: models.AppointmentUpcoming}, User: ref("Aarav Kumar", "aarav@college.edu")},
		{Appointment: models.Appointment{ID: primitive.NewObjectID(), Date: daysAhead(2), Time: "3:00 PM", Type: "in-person", Notes: "Mood tracking discussion", Status: models.AppointmentUpcoming}, User: ref("Priya Sharma", "priya@college.edu")},
		{Appointment: models.Appointment{ID: primitive.NewObjectID(), Date: daysAhead(3), Time: "11:00 AM", Type: "phone", Notes: "Coping strategies", Status: models.AppointmentUpcoming}, User: ref("Neha Verma", "neha@college.edu")},
		{Appointment: models.Appointment{ID: primitive.NewObjectID(), Date: daysAhead(5), Time: "1:30 PM", Type: "video-call", Notes: "Career guidance", Status: models.AppointmentUpcoming}, User: ref("Rahul Singh", "rahul@college.edu")},
	}
}

// RecentNotes is a sample note history.
func RecentNotes() []models.NoteWithClient {
	return []models.NoteWithClient{
		{CounselorNote: models.CounselorNote{ID: primitive.NewObjectID(), Content: "Client showed improvement in anxiety management techniques. Practiced breathing exercises.", KeyPoints: []string{"Breathing exercises", "Positive progress"}, Mood: "Improving", FollowUp: "Continue daily practice", SessionDate: daysAgo(2), CreatedAt: daysAgo(2)}, Client: ref("Aarav Kumar", "aarav@college.edu")},
		{CounselorNote: models.CounselorNote{ID: primitive.NewObjectID(), Content: "Discussed family relationships and healthy boundaries. Client engaged well in conversation.", KeyPoints: []string{"Family dynamics", "Boundaries", "Communication"}, Mood: "Stable", FollowUp: "Journal about interactions", SessionDate: daysAgo(5), CreatedAt: daysAgo(5)}, Client: ref("Priya Sharma", "priya@college.edu")},
		{CounselorNote: models.CounselorNote{ID: primitive.NewObjectID(), Content: "Initial session. Identified main stressors: academics and peer pressure. Established therapeutic goals.", KeyPoints: []string{"Academic stress", "Goal setting", "Initial assessment"}, Mood: "Anxious", FollowUp: "Next session: Stress management strategies", SessionDate: daysAgo(1), CreatedAt: daysAgo(1)}, Client: ref("Rahul Singh", "rahul@college.edu")},
		{CounselorNote: models.CounselorNote{ID: primitive.NewObjectID(), Content: "Client completing treatment. Significant progress in managing depression. Ready for closure.", KeyPoints: []string{"Treatment progress", "Coping skills acquired", "Closure"}, Mood: "Improved", FollowUp: "Maintenance plan discussed", SessionDate: daysAgo(10), CreatedAt: daysAgo(10)}, Client: ref("Neha Verma", "neha@college.edu")},
	}
}

// CounselorStats is a sample dashboard summary.
func CounselorStats() models.CounselorStats {
	return models.CounselorStats{
		ActiveClients:    12,
		TodaysSessions:   4,
		ThisWeekSessions: 18,
		CompletionRate:   67,
	}
}

// AdminStats is a sample platform summary.
func AdminStats() models.AdminStats {
	return models.AdminStats{
		TotalStudents:         187,
		TotalCounselors:       12,
		TotalAppointments:     342,
		TodayAppointments:     16,
		CompletedAppointments: 254,
		AppointmentRate:       74,
		MoodEntries:           512,
		Resources:             42,
		ForumPosts:            287,
		ActiveUsers:           199,
	}
}

// MoodDistribution is a sample mood histogram.
func MoodDistribution() map[string]int {
	return map[string]int{
		"happy":     45,
		"good":      52,
		"neutral":   38,
		"stressed":  28,
		"anxious":   22,
		"depressed": 10,
	}
}

// AppointmentAnalytics is a sample appointment breakdown.
func AppointmentAnalytics() models.AppointmentAnalytics {
	return models.AppointmentAnalytics{
		Total:              342,
		ByType:             map[string]int{"video-call": 185, "in-person": 128, "phone": 29},
		ByStatus:           map[string]int{"upcoming": 58, "completed": 254, "cancelled": 30},
		PeakHours:          map[int]int{9: 12, 10: 28, 11: 35, 12: 22, 14: 31, 15: 38, 16: 29, 17: 18},
		RecentAppointments: []models.Appointment{},
	}
}

// ResourceEngagement is a sample top-resources table.
func ResourceEngagement() []models.ResourceEngagement {
	return []models.ResourceEngagement{
		{ID: "1", Title: "Stress Management Techniques", Views: 245, Likes: 38, Category: "Mental Health", Engagement: "High"},
		{ID: "2", Title: "Sleep Hygiene Guide", Views: 189, Likes: 32, Category: "Wellness", Engagement: "High"},
		{ID: "3", Title: "Anxiety Disorders Explained", Views: 156, Likes: 28, Category: "Education", Engagement: "High"},
		{ID: "4", Title: "Mindfulness Practice 101", Views: 132, Likes: 22, Category: "Wellness", Engagement: "Medium"},
		{ID: "5", Title: "Building Healthy Relationships", Views: 98, Likes: 18, Category: "Social", Engagement: "Medium"},
		{ID: "6", Title: "Time Management for Students", Views: 187, Likes: 35, Category: "Study", Engagement: "High"},
		{ID: "7", Title: "Coping with Homesickness", Views: 142, Likes: 24, Category: "Wellness", Engagement: "Medium"},
		{ID: "8", Title: "Depression: Recovery Guide", Views: 178, Likes: 31, Category: "Mental Health", Engagement: "High"},
		{ID: "9", Title: "Social Anxiety Strategies", Views: 125, Likes: 21, Category: "Education", Engagement: "Medium"},
		{ID: "10", Title: "Campus Safety Resources", Views: 95, Likes: 12, Category: "Safety", Engagement: "Low"},
	}
}

// ForumActivity is a sample per-category forum table.
func ForumActivity() []models.ForumActivity {
	return []models.ForumActivity{
		{Category: "Mental Health", Posts: 95, Comments: 278, Engagement: "High"},
		{Category: "Academics", Posts: 78, Comments: 156, Engagement: "High"},
		{Category: "Relationships", Posts: 82, Comments: 195, Engagement: "High"},
		{Category: "General", Posts: 68, Comments: 134, Engagement: "Medium"},
		{Category: "Tips & Tricks", Posts: 43, Comments: 85, Engagement: "Medium"},
		{Category: "Career Guidance", Posts: 52, Comments: 98, Engagement: "Medium"},
		{Category: "Campus Life", Posts: 61, Comments: 119, Engagement: "High"},
	}
}

// RiskFlags is a sample high-risk flag list.
func RiskFlags() []models.RiskFlag {
	return []models.RiskFlag{
		{ID: "1", Student: "Priya Sharma", Flag: "GAD-7 Score: 18 (Severe)", Date: time.Now().Format("1/2/2006"), Severity: "critical", Reviewed: false},
		{ID: "2", Student: "Raj Patel", Flag: "Multiple anxiety reports", Date: daysAgo(2).Format("1/2/2006"), Severity: "warning", Reviewed: false},
		{ID: "3", Student: "Neha Singh", Flag: "Consistent low mood entries", Date: daysAgo(5).Format("1/2/2006"), Severity: "warning", Reviewed: true},
	}
}
