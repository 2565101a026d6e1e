package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sherlock-ohm/QuizMaster/internal/audit"
	"github.com/sherlock-ohm/QuizMaster/internal/quiz"
)

// maxQuizBody bounds create/update/import payloads. Image data is embedded in
// the quiz document as data URLs, so bodies can be large.
const maxQuizBody = 32 << 20 // 32 MiB

func jsonError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func record(r *http.Request, rec audit.Recorder, typ, key string, data interface{}) {
	buf, _ := json.Marshal(data)
	if err := rec.Append(r.Context(), audit.Event{Type: typ, Key: key, DataJSON: string(buf)}); err != nil {
		log.Printf("audit: append %s: %v", typ, err)
	}
}

func ListQuizzesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := store.List(r.Context())
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to retrieve quizzes")
			return
		}
		if qs == nil {
			qs = []quiz.Quiz{}
		}
		writeJSON(w, http.StatusOK, qs)
	}
}

func GetQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := store.Get(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			if errors.Is(err, quiz.ErrNotFound) {
				jsonError(w, http.StatusNotFound, "quiz not found")
				return
			}
			jsonError(w, http.StatusInternalServerError, "failed to read quiz")
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

func CreateQuizHandler(store quiz.Store, rec audit.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q quiz.Quiz
		if err := json.NewDecoder(io.LimitReader(r.Body, maxQuizBody)).Decode(&q); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid quiz data")
			return
		}
		saved, err := store.Save(r.Context(), q)
		if err != nil {
			if errors.Is(err, quiz.ErrInvalidDefinition) {
				jsonError(w, http.StatusBadRequest, err.Error())
				return
			}
			jsonError(w, http.StatusInternalServerError, "failed to save quiz")
			return
		}
		record(r, rec, audit.QuizCreated, saved.ID, map[string]string{"title": saved.Title})
		writeJSON(w, http.StatusCreated, saved)
	}
}

func UpdateQuizHandler(store quiz.Store, rec audit.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "quizID")
		var q quiz.Quiz
		if err := json.NewDecoder(io.LimitReader(r.Body, maxQuizBody)).Decode(&q); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid quiz data")
			return
		}
		if q.ID != id {
			jsonError(w, http.StatusBadRequest, "quiz ID in URL does not match ID in request body")
			return
		}
		if _, err := store.Get(r.Context(), id); err != nil {
			if errors.Is(err, quiz.ErrNotFound) {
				jsonError(w, http.StatusNotFound, "quiz not found")
				return
			}
			jsonError(w, http.StatusInternalServerError, "failed to read quiz")
			return
		}
		saved, err := store.Save(r.Context(), q)
		if err != nil {
			if errors.Is(err, quiz.ErrInvalidDefinition) {
				jsonError(w, http.StatusBadRequest, err.Error())
				return
			}
			jsonError(w, http.StatusInternalServerError, "failed to update quiz")
			return
		}
		record(r, rec, audit.QuizUpdated, saved.ID, map[string]string{"title": saved.Title})
		writeJSON(w, http.StatusOK, saved)
	}
}

func DeleteQuizHandler(store quiz.Store, rec audit.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "quizID")
		if err := store.Delete(r.Context(), id); err != nil {
			if errors.Is(err, quiz.ErrNotFound) {
				jsonError(w, http.StatusNotFound, "quiz not found")
				return
			}
			jsonError(w, http.StatusInternalServerError, "failed to delete quiz")
			return
		}
		record(r, rec, audit.QuizDeleted, id, struct{}{})
		w.WriteHeader(http.StatusNoContent)
	}
}

// ExportQuizHandler serves the stored definition as a downloadable document.
func ExportQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := store.Get(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			if errors.Is(err, quiz.ErrNotFound) {
				jsonError(w, http.StatusNotFound, "quiz not found")
				return
			}
			jsonError(w, http.StatusInternalServerError, "failed to read quiz")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", q.ID+".json"))
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(q)
	}
}

// importQuiz saves q under a freshly assigned ID so an import can never
// overwrite an existing quiz.
func importQuiz(w http.ResponseWriter, r *http.Request, store quiz.Store, rec audit.Recorder, q quiz.Quiz) {
	originalID := q.ID
	q.ID = ""
	q.CreatedAt, q.UpdatedAt = "", ""
	saved, err := store.Save(r.Context(), q)
	if err != nil {
		if errors.Is(err, quiz.ErrInvalidDefinition) {
			jsonError(w, http.StatusBadRequest, "invalid quiz format")
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to save imported quiz")
		return
	}
	record(r, rec, audit.QuizImported, saved.ID, map[string]string{"originalId": originalID})
	writeJSON(w, http.StatusCreated, saved)
}

func ImportQuizHandler(store quiz.Store, rec audit.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q quiz.Quiz
		if err := json.NewDecoder(io.LimitReader(r.Body, maxQuizBody)).Decode(&q); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid quiz format")
			return
		}
		importQuiz(w, r, store, rec, q)
	}
}

// ImportQuizFileHandler accepts a multipart upload with a "quizFile" field
// holding a quiz JSON document.
func ImportQuizFileHandler(store quiz.Store, rec audit.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, _, err := r.FormFile("quizFile")
		if err != nil {
			jsonError(w, http.StatusBadRequest, "no file uploaded")
			return
		}
		defer f.Close()
		var q quiz.Quiz
		if err := json.NewDecoder(io.LimitReader(f, maxQuizBody)).Decode(&q); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid JSON format")
			return
		}
		importQuiz(w, r, store, rec, q)
	}
}
