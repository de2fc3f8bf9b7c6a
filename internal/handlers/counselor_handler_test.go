package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hipis/internal/models"
	"hipis/internal/repository"
	"hipis/internal/service"
	"hipis/internal/testutil"
)

// fakeCounselorService holds a roster per counsellor and applies the same
// relationship gate as the real service: notes only for held clients, and a
// note touches the relationship's last session date.
type fakeCounselorService struct {
	roster map[string]*models.CounselorClient // clientId hex -> relationship
	notes  []*models.CounselorNote
}

func newFakeCounselorService() *fakeCounselorService {
	return &fakeCounselorService{roster: make(map[string]*models.CounselorClient)}
}

func (s *fakeCounselorService) addClient(counselorID primitive.ObjectID) *models.CounselorClient {
	rel := &models.CounselorClient{
		ID:          primitive.NewObjectID(),
		CounselorID: counselorID,
		ClientID:    primitive.NewObjectID(),
		Status:      "active",
	}
	s.roster[rel.ClientID.Hex()] = rel
	return rel
}

func (s *fakeCounselorService) Clients(_ context.Context, counselorID string) ([]models.CounselorClient, error) {
	var out []models.CounselorClient
	for _, rel := range s.roster {
		if rel.CounselorID.Hex() == counselorID {
			out = append(out, *rel)
		}
	}
	return out, nil
}

func (s *fakeCounselorService) ClientDetail(_ context.Context, counselorID, clientID string) (*models.ClientDetail, error) {
	rel, ok := s.roster[clientID]
	if !ok || rel.CounselorID.Hex() != counselorID {
		return nil, repository.ErrClientNotFound
	}
	return &models.ClientDetail{CounselorClient: *rel}, nil
}

func (s *fakeCounselorService) TodaysAppointments(_ context.Context, _ string) ([]models.AppointmentWithUser, error) {
	return nil, nil
}

func (s *fakeCounselorService) UpcomingAppointments(_ context.Context, _ string) ([]models.AppointmentWithUser, error) {
	return nil, nil
}

func (s *fakeCounselorService) CreateNote(_ context.Context, counselorID string, note *models.CounselorNote) error {
	rel, ok := s.roster[note.ClientID.Hex()]
	if !ok || rel.CounselorID.Hex() != counselorID {
		return service.ErrNotAClient
	}
	note.ID = primitive.NewObjectID()
	note.CounselorID = rel.CounselorID
	s.notes = append(s.notes, note)
	rel.LastSessionDate = &note.SessionDate
	return nil
}

func (s *fakeCounselorService) RecentNotes(_ context.Context, _ string) ([]models.NoteWithClient, error) {
	return nil, nil
}

func (s *fakeCounselorService) Stats(_ context.Context, _ string) (*models.CounselorStats, error) {
	return &models.CounselorStats{}, nil
}

func (s *fakeCounselorService) AddClient(_ context.Context, counselorID, clientID, primaryIssue string) (*models.CounselorClient, error) {
	if _, exists := s.roster[clientID]; exists {
		return nil, repository.ErrClientExists
	}
	cid, _ := primitive.ObjectIDFromHex(counselorID)
	oid, _ := primitive.ObjectIDFromHex(clientID)
	rel := &models.CounselorClient{
		ID:           primitive.NewObjectID(),
		CounselorID:  cid,
		ClientID:     oid,
		PrimaryIssue: primaryIssue,
		Status:       "active",
	}
	s.roster[clientID] = rel
	return rel, nil
}

func TestCounselorCreateNote(t *testing.T) {
	counsellor := primitive.NewObjectID()

	t.Run("held client", func(t *testing.T) {
		svc := newFakeCounselorService()
		rel := svc.addClient(counsellor)
		h := NewCounselorHandler(svc)

		req := testutil.AuthedRequest(t, http.MethodPost, "/api/counselor/notes", map[string]interface{}{
			"clientId": rel.ClientID.Hex(),
			"content":  "Discussed exam anxiety, agreed on a sleep routine",
			"mood":     "anxious",
		}, testutil.Counsellor(counsellor.Hex()))
		rec := httptest.NewRecorder()

		h.CreateNote(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
		}
		if len(svc.notes) != 1 {
			t.Fatalf("stored %d notes, want 1", len(svc.notes))
		}
		if rel.LastSessionDate == nil {
			t.Error("last session date not touched")
		} else if time.Since(*rel.LastSessionDate) > time.Minute {
			t.Errorf("last session date = %v, want now", *rel.LastSessionDate)
		}
	})

	t.Run("someone else's client", func(t *testing.T) {
		svc := newFakeCounselorService()
		rel := svc.addClient(primitive.NewObjectID())
		h := NewCounselorHandler(svc)

		req := testutil.AuthedRequest(t, http.MethodPost, "/api/counselor/notes", map[string]interface{}{
			"clientId": rel.ClientID.Hex(),
			"content":  "should never be stored",
		}, testutil.Counsellor(counsellor.Hex()))
		rec := httptest.NewRecorder()

		h.CreateNote(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
		env := testutil.DecodeEnvelope(t, rec)
		if env.Message != "You do not have access to this client" {
			t.Errorf("message = %q", env.Message)
		}
		if len(svc.notes) != 0 {
			t.Errorf("stored %d notes, want none", len(svc.notes))
		}
		if rel.LastSessionDate != nil {
			t.Error("last session date touched for a refused note")
		}
	})

	t.Run("unknown client", func(t *testing.T) {
		svc := newFakeCounselorService()
		h := NewCounselorHandler(svc)

		req := testutil.AuthedRequest(t, http.MethodPost, "/api/counselor/notes", map[string]interface{}{
			"clientId": primitive.NewObjectID().Hex(),
			"content":  "no such relationship",
		}, testutil.Counsellor(counsellor.Hex()))
		rec := httptest.NewRecorder()

		h.CreateNote(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("missing content rejected", func(t *testing.T) {
		svc := newFakeCounselorService()
		rel := svc.addClient(counsellor)
		h := NewCounselorHandler(svc)

		req := testutil.AuthedRequest(t, http.MethodPost, "/api/counselor/notes", map[string]interface{}{
			"clientId": rel.ClientID.Hex(),
		}, testutil.Counsellor(counsellor.Hex()))
		rec := httptest.NewRecorder()

		h.CreateNote(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}
