package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/vibratto/vibratto-backend/internal/auth"
	"github.com/vibratto/vibratto-backend/internal/middleware"
	"github.com/vibratto/vibratto-backend/internal/models"
	"github.com/vibratto/vibratto-backend/internal/notify"
	"github.com/vibratto/vibratto-backend/internal/storage/memory"
)

type fixture struct {
	router   *mux.Router
	notifier *notify.Notifier
	verifier *auth.Verifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	notifier := notify.NewNotifier(memory.NewNotificationStore(), nil)
	verifier := auth.NewVerifier("test-secret")

	router := mux.NewRouter()
	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.RequireAuth(verifier))
	RegisterRoutes(protected, &NotificationHandler{Notifier: notifier})

	return &fixture{router: router, notifier: notifier, verifier: verifier}
}

func (f *fixture) token(t *testing.T, userID string) string {
	t.Helper()
	token, err := f.verifier.Sign(userID, "Test "+userID, models.UserTypeMusician)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func (f *fixture) do(t *testing.T, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestListNotifications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.notifier.Notify(ctx, "u1", "primera")
	f.notifier.Notify(ctx, "u1", "segunda")
	f.notifier.Notify(ctx, "other", "ajena")

	rec := f.do(t, http.MethodGet, "/api/v1/notifications", f.token(t, "u1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list []*models.Notification
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(list))
	}
	if list[0].Message != "segunda" {
		t.Fatalf("expected newest first, got %q", list[0].Message)
	}
}

func TestListNotificationsEmptyIsArray(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/v1/notifications", f.token(t, "u1"))
	if body := rec.Body.String(); body != "[]\n" && body != "[]" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestMarkReadForbiddenForNonOwner(t *testing.T) {
	f := newFixture(t)
	created, _ := f.notifier.Notify(context.Background(), "owner", "m")

	rec := f.do(t, http.MethodPost, "/api/v1/notifications/"+created.ID+"/read", f.token(t, "intruder"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	list, _ := f.notifier.List(context.Background(), "owner")
	if list[0].Read {
		t.Error("rejected request changed the read flag")
	}
}

func TestMarkReadOwner(t *testing.T) {
	f := newFixture(t)
	created, _ := f.notifier.Notify(context.Background(), "u1", "m")

	rec := f.do(t, http.MethodPost, "/api/v1/notifications/"+created.ID+"/read", f.token(t, "u1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Notification *models.Notification `json:"notification"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Notification.Read {
		t.Error("notification not marked read in response")
	}
}

func TestMarkReadUnknownID(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/v1/notifications/missing/read", f.token(t, "u1"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMarkAllRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.notifier.Notify(ctx, "u1", "uno")
	f.notifier.Notify(ctx, "u1", "dos")

	rec := f.do(t, http.MethodPost, "/api/v1/notifications/read-all", f.token(t, "u1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Updated int `json:"updated"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Updated != 2 {
		t.Fatalf("expected 2 updated, got %d", body.Updated)
	}
}

func TestDeleteNotification(t *testing.T) {
	f := newFixture(t)
	created, _ := f.notifier.Notify(context.Background(), "u1", "m")

	if rec := f.do(t, http.MethodDelete, "/api/v1/notifications/"+created.ID, f.token(t, "intruder")); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodDelete, "/api/v1/notifications/"+created.ID, f.token(t, "u1")); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodDelete, "/api/v1/notifications/"+created.ID, f.token(t, "u1")); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}
