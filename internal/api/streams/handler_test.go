package streams

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/vibratto/vibratto-backend/internal/auth"
	"github.com/vibratto/vibratto-backend/internal/middleware"
	"github.com/vibratto/vibratto-backend/internal/models"
	"github.com/vibratto/vibratto-backend/internal/storage/memory"
	"github.com/vibratto/vibratto-backend/internal/ws"
)

type fixture struct {
	router   *mux.Router
	hub      *ws.Hub
	verifier *auth.Verifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hub := ws.NewHub()
	go hub.Run()
	verifier := auth.NewVerifier("test-secret")

	router := mux.NewRouter()
	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.RequireAuth(verifier))
	RegisterRoutes(protected, &StreamHandler{Store: memory.NewStreamStore(), Hub: hub})

	return &fixture{router: router, hub: hub, verifier: verifier}
}

func (f *fixture) token(t *testing.T, userID string) string {
	t.Helper()
	token, err := f.verifier.Sign(userID, "Test "+userID, models.UserTypeMusician)
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

func (f *fixture) createStream(t *testing.T, token string) string {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/v1/streams", token,
		`{"title":"Sesion acustica","url":"https://stream.vibratto.test/1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create stream: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Stream models.Stream `json:"stream"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	return body.Stream.ID
}

func TestCreateStreamRequiresURL(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/v1/streams", f.token(t, "u1"), `{"title":"sin url"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without url, got %d", rec.Code)
	}
}

func TestToggleLikeBroadcastsToRoom(t *testing.T) {
	f := newFixture(t)
	id := f.createStream(t, f.token(t, "creator"))

	// Simulate a viewer subscribed to the stream's room.
	viewer := ws.NewClient("viewer", nil)
	f.hub.Register <- viewer
	f.hub.Join <- ws.Subscription{Client: viewer, Channel: ws.StreamRoom(id)}
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && f.hub.Count(ws.StreamRoom(id)) == 0 {
		time.Sleep(time.Millisecond)
	}

	rec := f.do(t, http.MethodPost, "/api/v1/streams/"+id+"/like", f.token(t, "fan"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("like: expected 200, got %d", rec.Code)
	}

	select {
	case payload := <-viewer.Send:
		var frame struct {
			Event string `json:"event"`
			Data  struct {
				StreamID string `json:"streamId"`
				Likes    int    `json:"likes"`
			} `json:"data"`
		}
		if err := json.Unmarshal(payload, &frame); err != nil {
			t.Fatalf("unmarshal frame: %v", err)
		}
		if frame.Event != "stream:likeUpdate" || frame.Data.StreamID != id || frame.Data.Likes != 1 {
			t.Fatalf("unexpected frame: %+v", frame)
		}
	case <-time.After(time.Second):
		t.Fatal("no likeUpdate broadcast received")
	}
}

func TestToggleLikeUnknownStream(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/v1/streams/missing/like", f.token(t, "fan"), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteStreamOwnerOnly(t *testing.T) {
	f := newFixture(t)
	id := f.createStream(t, f.token(t, "creator"))

	if rec := f.do(t, http.MethodDelete, "/api/v1/streams/"+id, f.token(t, "other"), ""); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodDelete, "/api/v1/streams/"+id, f.token(t, "creator"), ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d", rec.Code)
	}
}
