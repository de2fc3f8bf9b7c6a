package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hipis/internal/models"
	"hipis/internal/repository"
	"hipis/internal/testutil"
)

// memNotificationStore is an in-memory NotificationStore.
type memNotificationStore struct {
	items map[string]*models.Notification
}

func newMemNotificationStore() *memNotificationStore {
	return &memNotificationStore{items: make(map[string]*models.Notification)}
}

func (s *memNotificationStore) add(userID primitive.ObjectID, read bool) *models.Notification {
	n := &models.Notification{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Title:  "Assessment Completed",
		Type:   "assessment",
		Read:   read,
	}
	s.items[n.ID.Hex()] = n
	return n
}

func (s *memNotificationStore) ListByUser(_ context.Context, userID string, _ int64) ([]models.Notification, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	var out []models.Notification
	for _, n := range s.items {
		if n.UserID == oid {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (s *memNotificationStore) MarkAllRead(_ context.Context, userID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, repository.ErrInvalidID
	}
	var updated int64
	for _, n := range s.items {
		if n.UserID == oid && !n.Read {
			n.Read = true
			updated++
		}
	}
	return updated, nil
}

func (s *memNotificationStore) MarkRead(_ context.Context, id string) error {
	n, ok := s.items[id]
	if !ok {
		return repository.ErrNotificationNotFound
	}
	n.Read = true
	return nil
}

func (s *memNotificationStore) GetByID(_ context.Context, id string) (*models.Notification, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	n, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotificationNotFound
	}
	copied := *n
	return &copied, nil
}

func TestNotificationListOwnership(t *testing.T) {
	owner := primitive.NewObjectID()
	store := newMemNotificationStore()
	store.add(owner, false)
	h := NewNotificationHandler(store)

	req := testutil.AuthedRequest(t, http.MethodGet, "/api/notifications/"+owner.Hex(), nil, testutil.Student(primitive.NewObjectID().Hex()))
	req.SetPathValue("userId", owner.Hex())
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("stranger status = %d, want 403", rec.Code)
	}

	req = testutil.AuthedRequest(t, http.MethodGet, "/api/notifications/"+owner.Hex(), nil, testutil.Student(owner.Hex()))
	req.SetPathValue("userId", owner.Hex())
	rec = httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("owner status = %d, want 200", rec.Code)
	}
}

func TestNotificationMarkAllRead(t *testing.T) {
	owner := primitive.NewObjectID()
	store := newMemNotificationStore()
	store.add(owner, false)
	store.add(owner, false)
	store.add(owner, true)
	store.add(primitive.NewObjectID(), false)
	h := NewNotificationHandler(store)

	req := testutil.AuthedRequest(t, http.MethodPost, "/api/notifications/"+owner.Hex()+"/read", nil, testutil.Student(owner.Hex()))
	req.SetPathValue("userId", owner.Hex())
	rec := httptest.NewRecorder()

	h.MarkAllRead(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); !strings.Contains(got, `"updated":2`) {
		t.Errorf("body = %s, want updated 2", got)
	}
}

func TestNotificationMarkRead(t *testing.T) {
	owner := primitive.NewObjectID()
	store := newMemNotificationStore()
	n := store.add(owner, false)
	h := NewNotificationHandler(store)

	t.Run("stranger sees not found", func(t *testing.T) {
		req := testutil.AuthedRequest(t, http.MethodPost, "/api/notifications/read/"+n.ID.Hex(), nil, testutil.Student(primitive.NewObjectID().Hex()))
		req.SetPathValue("id", n.ID.Hex())
		rec := httptest.NewRecorder()

		h.MarkRead(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
		if store.items[n.ID.Hex()].Read {
			t.Error("notification marked read by a stranger")
		}
	})

	t.Run("owner marks read", func(t *testing.T) {
		req := testutil.AuthedRequest(t, http.MethodPost, "/api/notifications/read/"+n.ID.Hex(), nil, testutil.Student(owner.Hex()))
		req.SetPathValue("id", n.ID.Hex())
		rec := httptest.NewRecorder()

		h.MarkRead(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !store.items[n.ID.Hex()].Read {
			t.Error("notification still unread")
		}
	})
}
