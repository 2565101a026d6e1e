package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sherlock-ohm/QuizMaster/internal/audit"
	"github.com/sherlock-ohm/QuizMaster/internal/quiz"
	"github.com/sherlock-ohm/QuizMaster/internal/session"
)

type startSessionResponse struct {
	SessionID string               `json:"session_id"`
	Question  session.QuestionView `json:"question"`
}

func StartSessionHandler(store quiz.Store, mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuizID string `json:"quiz_id"`
			Resume bool   `json:"resume"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.QuizID == "" {
			jsonError(w, http.StatusBadRequest, "quiz_id required")
			return
		}
		def, err := store.Get(r.Context(), req.QuizID)
		if err != nil {
			if errors.Is(err, quiz.ErrNotFound) {
				jsonError(w, http.StatusNotFound, "quiz not found")
				return
			}
			jsonError(w, http.StatusInternalServerError, "failed to read quiz")
			return
		}
		s, err := mgr.Start(def, req.Resume)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, startSessionResponse{SessionID: s.ID, Question: s.View()})
	}
}

func GetSessionHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := mgr.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			jsonError(w, http.StatusNotFound, "session not found")
			return
		}
		writeJSON(w, http.StatusOK, s.View())
	}
}

// transition runs one state-machine step and replies with the refreshed view.
// Refused transitions come back as 409 without any state change.
func transition(mgr *session.Manager, step func(*session.Session) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := mgr.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			jsonError(w, http.StatusNotFound, "session not found")
			return
		}
		if err := step(s); err != nil {
			jsonError(w, http.StatusConflict, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, s.View())
	}
}

func SelectAnswerHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			AnswerIndex int `json:"answer_index"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, "bad json")
			return
		}
		transition(mgr, func(s *session.Session) error { return s.Select(req.AnswerIndex) })(w, r)
	}
}

func CheckAnswerHandler(mgr *session.Manager) http.HandlerFunc {
	return transition(mgr, (*session.Session).Check)
}

func NextQuestionHandler(mgr *session.Manager) http.HandlerFunc {
	return transition(mgr, (*session.Session).Next)
}

func PrevQuestionHandler(mgr *session.Manager) http.HandlerFunc {
	return transition(mgr, (*session.Session).Prev)
}

func SubmitSessionHandler(mgr *session.Manager, rec audit.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		s, err := mgr.Get(id)
		if err != nil {
			jsonError(w, http.StatusNotFound, "session not found")
			return
		}
		summary := s.Submit()
		record(r, rec, audit.SessionSubmitted, id, summary)
		writeJSON(w, http.StatusOK, summary)
	}
}

func ExitSessionHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := mgr.Exit(chi.URLParam(r, "sessionID")); err != nil {
			jsonError(w, http.StatusNotFound, "session not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func SessionResultsHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := mgr.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			jsonError(w, http.StatusNotFound, "session not found")
			return
		}
		summary, ok := s.Results()
		if !ok {
			jsonError(w, http.StatusConflict, "session not submitted")
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}
