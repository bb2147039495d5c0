package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/anketa-app/anketa/internal/api/http"
	authsvc "github.com/anketa-app/anketa/internal/auth"
	auth "github.com/anketa-app/anketa/internal/auth/middleware"
	"github.com/anketa-app/anketa/internal/config"
	"github.com/anketa-app/anketa/internal/db"
	"github.com/anketa-app/anketa/internal/grading"
	"github.com/anketa-app/anketa/internal/survey"
)

func main() {
	cfg := config.FromEnv()
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Error("db open failed", "err", err)
		os.Exit(1)
	}

	store := survey.NewSQLStore(dbh, cfg.DBDriver)
	svc := survey.NewService(store, grading.NewEvaluator(), log)
	users := authsvc.NewUsers(dbh)
	tokens := auth.NewAuthService(cfg.AuthSecret, cfg.TokenTTL)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/register", api.RegisterHandler(users, tokens))
	r.Post("/auth/login", api.LoginHandler(users, tokens))

	// Public: browsing, taking tests, viewing one's own result.
	r.Get("/tests", api.ListTestsHandler(svc))
	r.Get("/tests/{testID}", api.GetTestHandler(svc))
	r.Post("/tests/{testID}/submissions", api.SubmitTestHandler(svc))
	r.Get("/results/{resultID}", api.ResultDetailHandler(svc))

	// Authoring (JWT required).
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(tokens))
		pr.Post("/tests", api.CreateTestHandler(svc))
		pr.Put("/tests/{testID}", api.UpdateTestHandler(svc))
		pr.Delete("/tests/{testID}", api.DeleteTestHandler(svc))
		pr.Get("/my/tests", api.MyTestsHandler(svc))
		pr.Get("/tests/{testID}/results", api.TestResultsHandler(svc))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Info("listening", "addr", cfg.HTTPAddr, "db", cfg.DBDriver)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
