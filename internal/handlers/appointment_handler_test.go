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
	"hipis/internal/testutil"
)

// memAppointmentStore is an in-memory AppointmentStore.
type memAppointmentStore struct {
	appts map[string]*models.Appointment
}

func newMemAppointmentStore() *memAppointmentStore {
	return &memAppointmentStore{appts: make(map[string]*models.Appointment)}
}

func (s *memAppointmentStore) Create(_ context.Context, appt *models.Appointment) error {
	if appt.ID.IsZero() {
		appt.ID = primitive.NewObjectID()
	}
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	s.appts[appt.ID.Hex()] = appt
	return nil
}

func (s *memAppointmentStore) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	appt, ok := s.appts[id]
	if !ok {
		return nil, repository.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (s *memAppointmentStore) ListByUser(_ context.Context, userID string) ([]models.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	var out []models.Appointment
	for _, appt := range s.appts {
		if appt.UserID == oid {
			out = append(out, *appt)
		}
	}
	return out, nil
}

func (s *memAppointmentStore) SetStatus(_ context.Context, id, status string) error {
	appt, ok := s.appts[id]
	if !ok {
		return repository.ErrAppointmentNotFound
	}
	appt.Status = status
	return nil
}

func seedAppointment(s *memAppointmentStore, owner, counsellor primitive.ObjectID, status string) *models.Appointment {
	appt := &models.Appointment{
		ID:           primitive.NewObjectID(),
		UserID:       owner,
		CounsellorID: counsellor,
		Type:         "video-call",
		Date:         time.Now().AddDate(0, 0, 3),
		Time:         "10:00 AM",
		Status:       status,
	}
	s.appts[appt.ID.Hex()] = appt
	return appt
}

func TestAppointmentListOwnership(t *testing.T) {
	owner := primitive.NewObjectID()
	store := newMemAppointmentStore()
	seedAppointment(store, owner, primitive.NewObjectID(), models.AppointmentUpcoming)
	h := NewAppointmentHandler(store)

	tests := []struct {
		name     string
		identity string
		admin    bool
		want     int
	}{
		{"owner can read", owner.Hex(), false, http.StatusOK},
		{"stranger is refused", primitive.NewObjectID().Hex(), false, http.StatusForbidden},
		{"admin can read anyone", primitive.NewObjectID().Hex(), true, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := testutil.Student(tt.identity)
			if tt.admin {
				identity = testutil.Admin(tt.identity)
			}

			req := testutil.AuthedRequest(t, http.MethodGet, "/api/appointments/"+owner.Hex(), nil, identity)
			req.SetPathValue("userId", owner.Hex())
			rec := httptest.NewRecorder()

			h.List(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestAppointmentCreateOwnerFromToken(t *testing.T) {
	store := newMemAppointmentStore()
	h := NewAppointmentHandler(store)

	caller := primitive.NewObjectID()
	counsellor := primitive.NewObjectID()

	req := testutil.AuthedRequest(t, http.MethodPost, "/api/appointments", map[string]interface{}{
		"counsellor": counsellor.Hex(),
		"type":       "video-call",
		"date":       "2026-09-15",
		"time":       "10:00 AM",
		// A forged owner field must be ignored.
		"userId": primitive.NewObjectID().Hex(),
	}, testutil.Student(caller.Hex()))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	if len(store.appts) != 1 {
		t.Fatalf("stored %d appointments, want 1", len(store.appts))
	}
	for _, appt := range store.appts {
		if appt.UserID != caller {
			t.Errorf("owner = %s, want caller %s", appt.UserID.Hex(), caller.Hex())
		}
		if appt.Status != models.AppointmentUpcoming {
			t.Errorf("status = %q, want %q", appt.Status, models.AppointmentUpcoming)
		}
	}
}

func TestAppointmentCreateRejectsUnknownType(t *testing.T) {
	h := NewAppointmentHandler(newMemAppointmentStore())

	req := testutil.AuthedRequest(t, http.MethodPost, "/api/appointments", map[string]interface{}{
		"counsellor": primitive.NewObjectID().Hex(),
		"type":       "seance",
		"date":       "2026-09-15",
		"time":       "10:00 AM",
	}, testutil.Student(primitive.NewObjectID().Hex()))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAppointmentCancel(t *testing.T) {
	owner := primitive.NewObjectID()
	counsellor := primitive.NewObjectID()

	t.Run("owner cancels", func(t *testing.T) {
		store := newMemAppointmentStore()
		appt := seedAppointment(store, owner, counsellor, models.AppointmentUpcoming)
		h := NewAppointmentHandler(store)

		req := testutil.AuthedRequest(t, http.MethodPatch, "/api/appointments/"+appt.ID.Hex()+"/cancel", nil, testutil.Student(owner.Hex()))
		req.SetPathValue("id", appt.ID.Hex())
		rec := httptest.NewRecorder()

		h.Cancel(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if got := store.appts[appt.ID.Hex()].Status; got != models.AppointmentCancelled {
			t.Errorf("status = %q, want cancelled", got)
		}
	})

	t.Run("counsellor cancels", func(t *testing.T) {
		store := newMemAppointmentStore()
		appt := seedAppointment(store, owner, counsellor, models.AppointmentUpcoming)
		h := NewAppointmentHandler(store)

		req := testutil.AuthedRequest(t, http.MethodPatch, "/api/appointments/"+appt.ID.Hex()+"/cancel", nil, testutil.Counsellor(counsellor.Hex()))
		req.SetPathValue("id", appt.ID.Hex())
		rec := httptest.NewRecorder()

		h.Cancel(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("stranger sees not found", func(t *testing.T) {
		store := newMemAppointmentStore()
		appt := seedAppointment(store, owner, counsellor, models.AppointmentUpcoming)
		h := NewAppointmentHandler(store)

		req := testutil.AuthedRequest(t, http.MethodPatch, "/api/appointments/"+appt.ID.Hex()+"/cancel", nil, testutil.Student(primitive.NewObjectID().Hex()))
		req.SetPathValue("id", appt.ID.Hex())
		rec := httptest.NewRecorder()

		h.Cancel(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
		if got := store.appts[appt.ID.Hex()].Status; got != models.AppointmentUpcoming {
			t.Errorf("status changed to %q, want untouched", got)
		}
	})

	t.Run("cancel twice is a no-op success", func(t *testing.T) {
		store := newMemAppointmentStore()
		appt := seedAppointment(store, owner, counsellor, models.AppointmentCancelled)
		h := NewAppointmentHandler(store)

		req := testutil.AuthedRequest(t, http.MethodPatch, "/api/appointments/"+appt.ID.Hex()+"/cancel", nil, testutil.Student(owner.Hex()))
		req.SetPathValue("id", appt.ID.Hex())
		rec := httptest.NewRecorder()

		h.Cancel(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
		env := testutil.DecodeEnvelope(t, rec)
		if !env.Success {
			t.Error("success = false, want true")
		}
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		store := newMemAppointmentStore()
		appt := seedAppointment(store, owner, counsellor, models.AppointmentCompleted)
		h := NewAppointmentHandler(store)

		req := testutil.AuthedRequest(t, http.MethodPatch, "/api/appointments/"+appt.ID.Hex()+"/cancel", nil, testutil.Student(owner.Hex()))
		req.SetPathValue("id", appt.ID.Hex())
		rec := httptest.NewRecorder()

		h.Cancel(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if got := store.appts[appt.ID.Hex()].Status; got != models.AppointmentCompleted {
			t.Errorf("status changed to %q, want completed", got)
		}
	})

	t.Run("absent id is not found", func(t *testing.T) {
		h := NewAppointmentHandler(newMemAppointmentStore())

		id := primitive.NewObjectID().Hex()
		req := testutil.AuthedRequest(t, http.MethodPatch, "/api/appointments/"+id+"/cancel", nil, testutil.Student(owner.Hex()))
		req.SetPathValue("id", id)
		rec := httptest.NewRecorder()

		h.Cancel(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}
