package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vibratto/vibratto-backend/internal/api"
	"github.com/vibratto/vibratto-backend/internal/api/chats"
	"github.com/vibratto/vibratto-backend/internal/api/collabs"
	"github.com/vibratto/vibratto-backend/internal/api/events"
	"github.com/vibratto/vibratto-backend/internal/api/notifications"
	"github.com/vibratto/vibratto-backend/internal/api/realtime"
	"github.com/vibratto/vibratto-backend/internal/api/recommendations"
	"github.com/vibratto/vibratto-backend/internal/api/stats"
	"github.com/vibratto/vibratto-backend/internal/api/streams"
	"github.com/vibratto/vibratto-backend/internal/api/users"
	"github.com/vibratto/vibratto-backend/internal/auth"
	"github.com/vibratto/vibratto-backend/internal/config"
	"github.com/vibratto/vibratto-backend/internal/metrics"
	"github.com/vibratto/vibratto-backend/internal/middleware"
	"github.com/vibratto/vibratto-backend/internal/notify"
	"github.com/vibratto/vibratto-backend/internal/recommend"
	"github.com/vibratto/vibratto-backend/internal/storage"
	"github.com/vibratto/vibratto-backend/internal/storage/memory"
	"github.com/vibratto/vibratto-backend/internal/storage/postgres"
	"github.com/vibratto/vibratto-backend/internal/ws"
)

func main() {
	cfg := config.Load()
	api.ExposeDetail = cfg.Development()

	verifier := auth.NewVerifier(cfg.JWTSecret)
	m := metrics.New()

	// Stores. Users and notifications move to PostgreSQL when a
	// DATABASE_URL is configured; everything else is in-memory.
	var userStore storage.UserStore = memory.NewUserStore()
	var notificationStore storage.NotificationStore = memory.NewNotificationStore()
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("[DB] %v", err)
		}
		userStore = postgres.NewUserStore(db)
		notificationStore = postgres.NewNotificationStore(db)
	}
	eventStore := memory.NewEventStore()
	collabStore := memory.NewCollabStore()
	streamStore := memory.NewStreamStore()
	chatStore := memory.NewChatStore()

	// Realtime hub, optionally bridged across instances via valkey.
	hub := ws.NewHub()
	if cfg.ValkeyAddr != "" {
		relay, err := ws.NewValkeyRelay(cfg.ValkeyAddr, hub)
		if err != nil {
			log.Fatalf("[Relay] %v", err)
		}
		go func() {
			if err := relay.Listen(context.Background()); err != nil {
				log.Printf("[Relay] Listener stopped: %v", err)
			}
		}()
	}
	go hub.Run()

	notifier := notify.NewNotifier(notificationStore, hub)
	notifier.Pushed = m.NotificationsPush.Inc

	// Recommendation engine, policy from configuration.
	var scorer recommend.Scorer = recommend.TagScorer{}
	if cfg.RecommendScorer == "embedding" && cfg.EmbeddingURL != "" {
		scorer = recommend.NewEmbeddingScorer(recommend.NewHTTPEmbeddingProvider(cfg.EmbeddingURL))
	}
	engine := recommend.NewEngine(userStore, eventStore, collabStore, scorer, recommend.Policy{
		MinScore:       cfg.RecommendMinScore,
		FilterLocation: cfg.RecommendFilterLocation,
	})

	router := mux.NewRouter()
	router.Use(middleware.CORS(cfg.AllowedOrigin))
	router.Use(middleware.Observe(m))
	router.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware)
	router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	public := router.PathPrefix("/api/v1").Subrouter()
	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.RequireAuth(verifier))

	users.RegisterRoutes(public, protected, &users.UserHandler{Store: userStore, Verifier: verifier})
	events.RegisterRoutes(protected, &events.EventHandler{Store: eventStore, Notifier: notifier})
	collabs.RegisterRoutes(protected, &collabs.CollabHandler{Store: collabStore, Notifier: notifier, Hub: hub})
	streams.RegisterRoutes(protected, &streams.StreamHandler{Store: streamStore, Hub: hub})
	notifications.RegisterRoutes(protected, &notifications.NotificationHandler{Notifier: notifier})
	recommendations.RegisterRoutes(protected, &recommendations.RecommendationHandler{
		Engine: engine,
		Users:  userStore,
		Events: eventStore,
	})
	chats.RegisterRoutes(protected, &chats.ChatHandler{Store: chatStore, Hub: hub})
	stats.RegisterRoutes(protected, &stats.StatsHandler{Users: userStore, Streams: streamStore, Collabs: collabStore})
	realtime.RegisterRoutes(router, &realtime.WSHandler{
		Hub:          hub,
		Verifier:     verifier,
		Chats:        chatStore,
		Connected:    m.WSConnections.Inc,
		Disconnected: m.WSConnections.Dec,
	})

	log.Printf("Server started at :%s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
