package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"hipis/internal/demo"
	"hipis/internal/models"
	"hipis/internal/repository"
)

// High-risk assessment thresholds. Scores above riskThreshold are flagged;
// above criticalThreshold they are marked critical.
const (
	riskThreshold     = 20
	criticalThreshold = 24
)

// AdminService aggregates platform-wide analytics for the admin dashboard.
type AdminService struct {
	userRepo        *repository.UserRepository
	appointmentRepo *repository.AppointmentRepository
	moodRepo        *repository.MoodRepository
	assessmentRepo  *repository.AssessmentRepository
	forumRepo       *repository.ForumRepository
	resourceRepo    *repository.ResourceRepository
	demoMode        bool
}

// NewAdminService creates a new admin service
func NewAdminService(
	userRepo *repository.UserRepository,
	appointmentRepo *repository.AppointmentRepository,
	moodRepo *repository.MoodRepository,
	assessmentRepo *repository.AssessmentRepository,
	forumRepo *repository.ForumRepository,
	resourceRepo *repository.ResourceRepository,
	demoMode bool,
) *AdminService {
	return &AdminService{
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		moodRepo:        moodRepo,
		assessmentRepo:  assessmentRepo,
		forumRepo:       forumRepo,
		resourceRepo:    resourceRepo,
		demoMode:        demoMode,
	}
}

// Stats computes the dashboard headline numbers.
func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	students, err := s.userRepo.Count(ctx, bson.M{"role": models.RoleStudent})
	if err != nil {
		return nil, err
	}
	counselors, err := s.userRepo.Count(ctx, bson.M{"role": models.RoleCounsellor})
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointmentRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}

	today := startOfDay(time.Now())
	todays, err := s.appointmentRepo.Count(ctx, bson.M{
		"date": bson.M{"$gte": today, "$lt": today.AddDate(0, 0, 1)},
	})
	if err != nil {
		return nil, err
	}
	completed, err := s.appointmentRepo.Count(ctx, bson.M{"status": models.AppointmentCompleted})
	if err != nil {
		return nil, err
	}

	moods, err := s.moodRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	resources, err := s.resourceRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := s.forumRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	if s.demoMode && students == 0 && appointments == 0 {
		stats := demo.AdminStats()
		return &stats, nil
	}

	stats := &models.AdminStats{
		TotalStudents:         students,
		TotalCounselors:       counselors,
		TotalAppointments:     appointments,
		TodayAppointments:     todays,
		CompletedAppointments: completed,
		MoodEntries:           moods,
		Resources:             resources,
		ForumPosts:            posts,
		ActiveUsers:           students + counselors,
	}
	if appointments > 0 {
		stats.AppointmentRate = int(completed * 100 / appointments)
	}
	return stats, nil
}

// Users returns a paged user listing for account management.
func (s *AdminService) Users(ctx context.Context, role string, page, limit int64) ([]models.User, *models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	users, total, err := s.userRepo.List(ctx, role, page, limit)
	if err != nil {
		return nil, nil, err
	}

	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return users, &models.Pagination{Total: total, Page: page, Pages: pages}, nil
}

// WellnessMetrics derives mood distribution and wellbeing indices from the
// last hundred check-ins.
func (s *AdminService) WellnessMetrics(ctx context.Context) (*models.WellnessMetrics, error) {
	entries, err := s.moodRepo.ListRecent(ctx, 100)
	if err != nil {
		return nil, err
	}

	moods := map[string]int{
		"happy": 0, "good": 0, "neutral": 0,
		"stressed": 0, "anxious": 0, "depressed": 0,
	}
	for _, entry := range entries {
		if _, ok := moods[entry.Mood]; ok {
			moods[entry.Mood]++
		}
	}

	total := 0
	for _, n := range moods {
		total += n
	}
	if total == 0 && s.demoMode {
		moods = demo.MoodDistribution()
		total = 0
		for _, n := range moods {
			total += n
		}
	}

	divisor := float64(total)
	if divisor == 0 {
		divisor = 1
	}
	return &models.WellnessMetrics{
		MoodDistribution: moods,
		Metrics: models.WellnessIndex{
			AnxietyIndex:    float64(moods["anxious"]) / divisor * 10,
			DepressionIndex: float64(moods["depressed"]) / divisor * 10,
			StressLevel:     float64(moods["stressed"]+moods["anxious"]) / divisor * 10,
			WellbeingScore:  float64(moods["happy"]+moods["good"]) / divisor * 10,
		},
		TotalEntries: total,
	}, nil
}

// AppointmentAnalytics breaks recent appointments down by type, status and
// hour of day.
func (s *AdminService) AppointmentAnalytics(ctx context.Context) (*models.AppointmentAnalytics, error) {
	appts, err := s.appointmentRepo.ListRecent(ctx, 500)
	if err != nil {
		return nil, err
	}
	if len(appts) == 0 && s.demoMode {
		analytics := demo.AppointmentAnalytics()
		return &analytics, nil
	}

	byType := map[string]int{}
	byStatus := map[string]int{}
	peakHours := map[int]int{}
	for _, appt := range appts {
		byType[appt.Type]++
		byStatus[appt.Status]++
		peakHours[appt.Date.Hour()]++
	}

	recent := appts
	if len(recent) > 10 {
		recent = recent[:10]
	}
	return &models.AppointmentAnalytics{
		Total:              len(appts),
		ByType:             byType,
		ByStatus:           byStatus,
		PeakHours:          peakHours,
		RecentAppointments: recent,
	}, nil
}

// ResourceEngagement ranks the ten most viewed resources.
func (s *AdminService) ResourceEngagement(ctx context.Context) ([]models.ResourceEngagement, error) {
	resources, err := s.resourceRepo.TopByViews(ctx, 10)
	if err != nil {
		return nil, err
	}
	if len(resources) == 0 && s.demoMode {
		return demo.ResourceEngagement(), nil
	}

	out := make([]models.ResourceEngagement, 0, len(resources))
	for _, r := range resources {
		out = append(out, models.ResourceEngagement{
			ID:         r.ID.Hex(),
			Title:      r.Title,
			Views:      r.Views,
			Likes:      r.Likes,
			Category:   r.Category,
			Engagement: engagementTier(r.Views, 100, 50),
		})
	}
	return out, nil
}

// ForumActivity summarizes post and reply volume per category. The roll-up
// happens database-side.
func (s *AdminService) ForumActivity(ctx context.Context) ([]models.ForumActivity, error) {
	rows, err := s.forumRepo.ActivityByCategory(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 && s.demoMode {
		return demo.ForumActivity(), nil
	}

	out := make([]models.ForumActivity, 0, len(rows))
	for _, row := range rows {
		cat := row.Category
		if cat == "" {
			cat = "General"
		}
		out = append(out, models.ForumActivity{
			Category:   cat,
			Posts:      row.Posts,
			Comments:   row.Comments,
			Engagement: engagementTier(row.Posts, 50, 20),
		})
	}
	return out, nil
}

// HighRiskFlags surfaces assessments above the risk threshold.
func (s *AdminService) HighRiskFlags(ctx context.Context) ([]models.RiskFlag, error) {
	assessments, err := s.assessmentRepo.ListHighRisk(ctx, riskThreshold, 20)
	if err != nil {
		return nil, err
	}
	if len(assessments) == 0 && s.demoMode {
		return demo.RiskFlags(), nil
	}

	flags := make([]models.RiskFlag, 0, len(assessments))
	for _, a := range assessments {
		severity := "warning"
		if a.Score > criticalThreshold {
			severity = "critical"
		}

		student := "Anonymous"
		if user, err := s.userRepo.GetByID(ctx, a.UserID.Hex()); err == nil {
			student = user.Name
		}

		flags = append(flags, models.RiskFlag{
			ID:       a.ID.Hex(),
			Student:  student,
			Flag:     fmt.Sprintf("High assessment score: %d (%s)", a.Score, a.Type),
			Date:     a.CreatedAt.Format("1/2/2006"),
			Severity: severity,
			Reviewed: false,
		})
	}
	return flags, nil
}

// SystemAlerts returns the operational notices shown on the dashboard.
func (s *AdminService) SystemAlerts(ctx context.Context) []models.SystemAlert {
	now := time.Now()
	return []models.SystemAlert{
		{ID: 1, Type: "warning", Message: "5 new crisis assessments this week", Timestamp: now.Add(-1 * time.Hour)},
		{ID: 2, Type: "info", Message: "Server backup completed successfully", Timestamp: now.Add(-2 * time.Hour)},
		{ID: 3, Type: "alert", Message: "3 counselors with high load (>40 appointments/week)", Timestamp: now.Add(-24 * time.Hour)},
	}
}

// SetUserStatus activates or deactivates an account.
func (s *AdminService) SetUserStatus(ctx context.Context, userID string, active bool) (*models.User, error) {
	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// AssignCounselor bulk-assigns a counsellor to students and reports how many
// accounts changed.
func (s *AdminService) AssignCounselor(ctx context.Context, studentIDs []string, counselorID string) (int64, error) {
	return s.userRepo.AssignCounselor(ctx, studentIDs, counselorID)
}

func engagementTier(n, high, medium int) string {
	switch {
	case n > high:
		return "High"
	case n > medium:
		return "Medium"
	default:
		return "Low"
	}
}
