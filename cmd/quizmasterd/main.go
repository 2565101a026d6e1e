package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/sherlock-ohm/QuizMaster/internal/api/http"
	"github.com/sherlock-ohm/QuizMaster/internal/audit"
	"github.com/sherlock-ohm/QuizMaster/internal/config"
	"github.com/sherlock-ohm/QuizMaster/internal/db"
	"github.com/sherlock-ohm/QuizMaster/internal/quiz"
	"github.com/sherlock-ohm/QuizMaster/internal/session"
)

func main() {
	cfg := config.FromEnv()

	var (
		store    quiz.Store
		recorder audit.Recorder = audit.Nop{}
	)
	switch cfg.StoreDriver {
	case "fs":
		fs, err := quiz.NewFSStore(cfg.QuizzesDir)
		if err != nil {
			log.Fatalf("quiz store: %v", err)
		}
		store = fs
	case "sqlite", "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		dbh, err := db.Open(ctx, db.Driver(cfg.StoreDriver), cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		store = quiz.NewSQLStore(dbh)
		recorder = audit.NewSQLRecorder(dbh)
	default:
		log.Fatalf("unsupported store driver: %s", cfg.StoreDriver)
	}

	sessions := session.NewManager()

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:         300,
	}))

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/quizzes", api.ListQuizzesHandler(store))
		ar.Post("/quizzes", api.CreateQuizHandler(store, recorder))
		ar.Get("/quizzes/{quizID}", api.GetQuizHandler(store))
		ar.Put("/quizzes/{quizID}", api.UpdateQuizHandler(store, recorder))
		ar.Delete("/quizzes/{quizID}", api.DeleteQuizHandler(store, recorder))
		ar.Get("/quizzes/{quizID}/export", api.ExportQuizHandler(store))

		ar.Post("/import", api.ImportQuizHandler(store, recorder))
		ar.Post("/import/file", api.ImportQuizFileHandler(store, recorder))

		ar.Post("/sessions", api.StartSessionHandler(store, sessions))
		ar.Get("/sessions/{sessionID}", api.GetSessionHandler(sessions))
		ar.Post("/sessions/{sessionID}/select", api.SelectAnswerHandler(sessions))
		ar.Post("/sessions/{sessionID}/check", api.CheckAnswerHandler(sessions))
		ar.Post("/sessions/{sessionID}/next", api.NextQuestionHandler(sessions))
		ar.Post("/sessions/{sessionID}/prev", api.PrevQuestionHandler(sessions))
		ar.Post("/sessions/{sessionID}/submit", api.SubmitSessionHandler(sessions, recorder))
		ar.Post("/sessions/{sessionID}/exit", api.ExitSessionHandler(sessions))
		ar.Get("/sessions/{sessionID}/results", api.SessionResultsHandler(sessions))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (store=%s)", cfg.HTTPAddr, cfg.StoreDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
