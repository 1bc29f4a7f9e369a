package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/yomogi-health/yomogi/internal/advice"
	api "github.com/yomogi-health/yomogi/internal/api/http"
	"github.com/yomogi-health/yomogi/internal/auth"
	authmw "github.com/yomogi-health/yomogi/internal/auth/middleware"
	"github.com/yomogi-health/yomogi/internal/catalog"
	"github.com/yomogi-health/yomogi/internal/config"
	"github.com/yomogi-health/yomogi/internal/dailycheck"
	"github.com/yomogi-health/yomogi/internal/db"
	"github.com/yomogi-health/yomogi/internal/eventlog"
	"github.com/yomogi-health/yomogi/internal/questionnaire"
	"github.com/yomogi-health/yomogi/internal/storage"
	"github.com/yomogi-health/yomogi/internal/tongue"
)

func main() {
	cfg := config.FromEnv()

	// --- Catalogs (fail fast on malformed data) ---
	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	dailyCat, err := loadDailyCatalog(cfg.DailyCatalogPath)
	if err != nil {
		log.Fatalf("load daily catalog: %v", err)
	}

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	sessions := questionnaire.NewSQLStore(dbh, cfg.DBDriver)
	dailies := dailycheck.NewSQLStore(dbh, cfg.DBDriver)
	events := eventlog.New(dbh)

	// --- Engine ---
	flow := questionnaire.NewFlow(cat)
	checker := dailycheck.NewChecker(dailyCat)

	// --- Advice (remote when configured and online, rules otherwise) ---
	var gen interface {
		advice.Generator
		advice.DailyGenerator
	} = advice.RuleGenerator{}
	if cfg.Mode == config.ModeOnline && cfg.GenAIAPIKey != "" {
		g, err := advice.NewGenAIGenerator(ctx, cfg.GenAIAPIKey, cfg.GenAIModel)
		if err != nil {
			log.Printf("genai unavailable, using rule advice: %v", err)
		} else {
			gen = g
		}
	}

	// --- Tongue diagnosis + image archive ---
	blobs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}
	diagnoser := tongue.NewStubDiagnoser(blobs)

	// --- Auth ---
	authSvc := authmw.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/signup", auth.SignupHandler(authSvc, dbh))
		r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))
	}
	r.Post("/auth/guest", auth.GuestLoginHandler(authSvc, dbh, cfg))

	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))

		// Initial questionnaire
		pr.Post("/sessions", api.CreateSessionHandler(sessions, flow))
		pr.Get("/sessions/{sessionID}", api.GetSessionHandler(sessions, flow))
		pr.Post("/sessions/{sessionID}/answer", api.AnswerHandler(sessions, flow))
		pr.Post("/sessions/{sessionID}/back", api.GoBackHandler(sessions, flow))
		pr.Post("/sessions/{sessionID}/toggle", api.ToggleOptionHandler(sessions, flow))
		pr.Post("/sessions/{sessionID}/complaint", api.ComplaintHandler(sessions, flow))
		pr.Post("/sessions/{sessionID}/reset", api.ResetSessionHandler(sessions, flow))
		pr.Get("/sessions/{sessionID}/results", api.ResultsHandler(sessions, flow, cat, events))
		pr.Post("/sessions/{sessionID}/advice", api.AdviceHandler(sessions, flow, cat, gen))

		// Daily check
		pr.Post("/daily", api.StartDailyHandler(dailies, checker, dailyCat))
		pr.Get("/daily/history", api.DailyHistoryHandler(dailies))
		pr.Get("/daily/{runID}", api.GetDailyHandler(dailies, checker, dailyCat))
		pr.Post("/daily/{runID}/answer", api.DailyAnswerHandler(dailies, checker, dailyCat))
		pr.Post("/daily/{runID}/back", api.DailyBackHandler(dailies, checker, dailyCat))
		pr.Post("/daily/{runID}/wellness", api.DailyWellnessHandler(dailies, checker, dailyCat))
		pr.Post("/daily/{runID}/advice", api.DailyAdviceHandler(dailies, checker, gen))
		pr.Post("/daily/{runID}/save", api.SaveDailyHandler(dailies, checker, dailyCat, events))

		// Tongue diagnosis
		pr.Post("/tongue", api.TongueHandler(diagnoser))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("yomogid listening on %s (mode=%s)", cfg.HTTPAddr, cfg.Mode)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func loadDailyCatalog(path string) (*catalog.DailyCatalog, error) {
	if path == "" {
		return catalog.DefaultDaily()
	}
	return catalog.LoadDailyFile(path)
}
