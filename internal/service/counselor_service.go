package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hipis/internal/demo"
	"hipis/internal/models"
	"hipis/internal/repository"
)

var (
	ErrNotAClient       = errors.New("no relationship with this client")
	ErrClientNotStudent = errors.New("client must be an active student")
)

// CounselorService backs the counsellor workspace. Every query is scoped to
// the calling counsellor's id; the demo fallback only triggers when the
// deployment opted in.
type CounselorService struct {
	counselorRepo   *repository.CounselorRepository
	appointmentRepo *repository.AppointmentRepository
	userRepo        *repository.UserRepository
	demoMode        bool
}

// NewCounselorService creates a new counselor service
func NewCounselorService(
	counselorRepo *repository.CounselorRepository,
	appointmentRepo *repository.AppointmentRepository,
	userRepo *repository.UserRepository,
	demoMode bool,
) *CounselorService {
	return &CounselorService{
		counselorRepo:   counselorRepo,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		demoMode:        demoMode,
	}
}

// Clients returns the counsellor's roster with client identities populated.
func (s *CounselorService) Clients(ctx context.Context, counselorID string) ([]models.CounselorClient, error) {
	clients, err := s.counselorRepo.ListClients(ctx, counselorID)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 && s.demoMode {
		return demo.Clients(), nil
	}

	for i := range clients {
		clients[i].Client = s.userRef(ctx, clients[i].ClientID)
	}
	return clients, nil
}

// ClientDetail returns one relationship with its session notes.
func (s *CounselorService) ClientDetail(ctx context.Context, counselorID, clientID string) (*models.ClientDetail, error) {
	rel, err := s.counselorRepo.GetClient(ctx, counselorID, clientID)
	if err != nil {
		return nil, err
	}
	rel.Client = s.userRef(ctx, rel.ClientID)

	notes, err := s.counselorRepo.ListNotesByClient(ctx, counselorID, clientID)
	if err != nil {
		return nil, err
	}
	return &models.ClientDetail{CounselorClient: *rel, Notes: notes}, nil
}

// TodaysAppointments returns the counsellor's schedule for the current day.
func (s *CounselorService) TodaysAppointments(ctx context.Context, counselorID string) ([]models.AppointmentWithUser, error) {
	today := startOfDay(time.Now())
	appts, err := s.appointmentRepo.ListByCounsellorBetween(ctx, counselorID, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if len(appts) == 0 && s.demoMode {
		return demo.TodaysAppointments(), nil
	}
	return s.withUsers(ctx, appts), nil
}

// UpcomingAppointments returns the next seven days.
func (s *CounselorService) UpcomingAppointments(ctx context.Context, counselorID string) ([]models.AppointmentWithUser, error) {
	today := startOfDay(time.Now())
	appts, err := s.appointmentRepo.ListByCounsellorBetween(ctx, counselorID, today, today.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}
	if len(appts) == 0 && s.demoMode {
		return demo.UpcomingAppointments(), nil
	}
	return s.withUsers(ctx, appts), nil
}

// CreateNote records a session note. The counsellor must already hold the
// relationship; writing a note counts as a session.
func (s *CounselorService) CreateNote(ctx context.Context, counselorID string, note *models.CounselorNote) error {
	ok, err := s.counselorRepo.HasClient(ctx, counselorID, note.ClientID.Hex())
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAClient
	}

	cid, err := primitive.ObjectIDFromHex(counselorID)
	if err != nil {
		return repository.ErrInvalidID
	}
	note.CounselorID = cid

	if err := s.counselorRepo.CreateNote(ctx, note); err != nil {
		return err
	}

	if err := s.counselorRepo.TouchLastSession(ctx, counselorID, note.ClientID.Hex(), note.SessionDate); err != nil {
		slog.Warn("Failed to update last session date", "counselor_id", counselorID, "client_id", note.ClientID.Hex(), "error", err)
	}
	return nil
}

// RecentNotes returns the counsellor's latest notes with clients populated.
func (s *CounselorService) RecentNotes(ctx context.Context, counselorID string) ([]models.NoteWithClient, error) {
	notes, err := s.counselorRepo.ListRecentNotes(ctx, counselorID, 10)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 && s.demoMode {
		return demo.RecentNotes(), nil
	}

	out := make([]models.NoteWithClient, 0, len(notes))
	for _, note := range notes {
		out = append(out, models.NoteWithClient{
			CounselorNote: note,
			Client:        s.userRef(ctx, note.ClientID),
		})
	}
	return out, nil
}

// Stats computes the dashboard numbers for one counsellor.
func (s *CounselorService) Stats(ctx context.Context, counselorID string) (*models.CounselorStats, error) {
	active, err := s.counselorRepo.CountActiveClients(ctx, counselorID)
	if err != nil {
		return nil, err
	}

	today := startOfDay(time.Now())
	todays, err := s.appointmentRepo.CountByCounsellor(ctx, counselorID, bson.M{
		"date": bson.M{"$gte": today, "$lt": today.AddDate(0, 0, 1)},
	})
	if err != nil {
		return nil, err
	}

	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	weekly, err := s.appointmentRepo.CountByCounsellor(ctx, counselorID, bson.M{
		"date": bson.M{"$gte": weekStart, "$lt": weekStart.AddDate(0, 0, 7)},
	})
	if err != nil {
		return nil, err
	}

	clients, err := s.counselorRepo.ListClients(ctx, counselorID)
	if err != nil {
		return nil, err
	}
	var completed int64
	for _, c := range clients {
		if c.Status == "completed" {
			completed++
		}
	}

	stats := &models.CounselorStats{
		ActiveClients:    active,
		TodaysSessions:   todays,
		ThisWeekSessions: weekly,
	}
	if total := active + completed; total > 0 {
		stats.CompletionRate = int(completed * 100 / total)
	}

	if s.demoMode && active == 0 && todays == 0 && weekly == 0 {
		demoStats := demo.CounselorStats()
		return &demoStats, nil
	}
	return stats, nil
}

// AddClient creates a relationship with an active student.
func (s *CounselorService) AddClient(ctx context.Context, counselorID, clientID, primaryIssue string) (*models.CounselorClient, error) {
	client, err := s.userRepo.GetByID(ctx, clientID)
	if err == repository.ErrUserNotFound || err == repository.ErrInvalidID {
		return nil, ErrClientNotStudent
	}
	if err != nil {
		return nil, err
	}
	if client.Role != models.RoleStudent || !client.IsActive {
		return nil, ErrClientNotStudent
	}

	cid, err := primitive.ObjectIDFromHex(counselorID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}

	rel := &models.CounselorClient{
		CounselorID:  cid,
		ClientID:     client.ID,
		PrimaryIssue: primaryIssue,
		Status:       "active",
	}
	if err := s.counselorRepo.AddClient(ctx, rel); err != nil {
		return nil, err
	}
	rel.Client = &models.UserRef{ID: client.ID, Name: client.Name, Email: client.Email}
	return rel, nil
}

func (s *CounselorService) withUsers(ctx context.Context, appts []models.Appointment) []models.AppointmentWithUser {
	out := make([]models.AppointmentWithUser, 0, len(appts))
	for _, appt := range appts {
		out = append(out, models.AppointmentWithUser{
			Appointment: appt,
			User:        s.userRef(ctx, appt.UserID),
		})
	}
	return out
}

// userRef resolves a user projection; a lookup failure leaves the reference
// empty rather than failing the whole listing.
func (s *CounselorService) userRef(ctx context.Context, id primitive.ObjectID) *models.UserRef {
	if id.IsZero() {
		return nil
	}
	user, err := s.userRepo.GetByID(ctx, id.Hex())
	if err != nil {
		slog.Warn("Failed to resolve user reference", "user_id", id.Hex(), "error", err)
		return nil
	}
	return &models.UserRef{ID: user.ID, Name: user.Name, Email: user.Email}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
