package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/vibratto/vibratto-backend/internal/auth"
	"github.com/vibratto/vibratto-backend/internal/middleware"
	"github.com/vibratto/vibratto-backend/internal/models"
	"github.com/vibratto/vibratto-backend/internal/notify"
	"github.com/vibratto/vibratto-backend/internal/storage/memory"
)

type fixture struct {
	router        *mux.Router
	events        *memory.EventStore
	notifications *memory.NotificationStore
	verifier      *auth.Verifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	events := memory.NewEventStore()
	notifications := memory.NewNotificationStore()
	verifier := auth.NewVerifier("test-secret")

	router := mux.NewRouter()
	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.RequireAuth(verifier))
	RegisterRoutes(protected, &EventHandler{
		Store:    events,
		Notifier: notify.NewNotifier(notifications, nil),
	})

	return &fixture{router: router, events: events, notifications: notifications, verifier: verifier}
}

func (f *fixture) token(t *testing.T, userID, name string) string {
	t.Helper()
	token, err := f.verifier.Sign(userID, name, models.UserTypeMusician)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func (f *fixture) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) createEvent(t *testing.T, token string) string {
	t.Helper()
	date := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	body := fmt.Sprintf(`{"title":"Rock Night","location":"Buenos Aires","date":%q,"genres":["rock"]}`, date)
	rec := f.do(t, http.MethodPost, "/api/v1/events", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create event: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Event models.Event `json:"event"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	return created.Event.ID
}

func TestCreateEventRequiresFields(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/v1/events", f.token(t, "u1", "Ana"), `{"title":"sin fecha"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", rec.Code)
	}
}

func TestListFiltersByLocation(t *testing.T) {
	f := newFixture(t)
	token := f.token(t, "u1", "Ana")
	f.createEvent(t, token)
	f.events.Create(context.Background(), &models.Event{
		Title:    "Montevideo Jam",
		Location: "Montevideo",
		Date:     time.Now().Add(time.Hour),
	})

	rec := f.do(t, http.MethodGet, "/api/v1/events?location=Montevideo", token, "")
	var list []*models.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].Location != "Montevideo" {
		t.Fatalf("location filter failed: %+v", list)
	}
}

func TestToggleLikeNotifiesCreatorOnce(t *testing.T) {
	f := newFixture(t)
	id := f.createEvent(t, f.token(t, "creator", "Ana"))
	fan := f.token(t, "fan", "Beto")
	ctx := context.Background()

	rec := f.do(t, http.MethodPost, "/api/v1/events/"+id+"/like", fan, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("like: expected 200, got %d", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
		Likes   int    `json:"likes"`
	}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Message != "like added" || body.Likes != 1 {
		t.Fatalf("unexpected like response: %+v", body)
	}

	list, _ := f.notifications.ListByUser(ctx, "creator")
	if len(list) != 1 {
		t.Fatalf("expected 1 notification after like, got %d", len(list))
	}

	// Unlike removes the like without a second notification.
	rec = f.do(t, http.MethodPost, "/api/v1/events/"+id+"/like", fan, "")
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Message != "like removed" || body.Likes != 0 {
		t.Fatalf("unexpected unlike response: %+v", body)
	}
	list, _ = f.notifications.ListByUser(ctx, "creator")
	if len(list) != 1 {
		t.Fatalf("unlike generated a notification: %d total", len(list))
	}
}

func TestToggleLikeOwnEventNoSelfNotification(t *testing.T) {
	f := newFixture(t)
	creator := f.token(t, "creator", "Ana")
	id := f.createEvent(t, creator)

	f.do(t, http.MethodPost, "/api/v1/events/"+id+"/like", creator, "")
	list, _ := f.notifications.ListByUser(context.Background(), "creator")
	if len(list) != 0 {
		t.Fatalf("creator notified about their own like: %v", list)
	}
}

func TestDeleteEventOwnerOnly(t *testing.T) {
	f := newFixture(t)
	id := f.createEvent(t, f.token(t, "creator", "Ana"))

	if rec := f.do(t, http.MethodDelete, "/api/v1/events/"+id, f.token(t, "other", "Beto"), ""); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodDelete, "/api/v1/events/"+id, f.token(t, "creator", "Ana"), ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodGet, "/api/v1/events/"+id, f.token(t, "creator", "Ana"), ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}
