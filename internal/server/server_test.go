package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/prepdeck/prepdeck/internal/ai"
	"github.com/prepdeck/prepdeck/internal/catalog"
	"github.com/prepdeck/prepdeck/internal/scoring"
	"github.com/prepdeck/prepdeck/internal/session"
	"github.com/prepdeck/prepdeck/internal/store"
)

func newTestServer(t *testing.T, coach ai.Coach, st *store.Store) *Server {
	t.Helper()

	c, err := catalog.Load("")
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	return New(Config{
		Evaluator: scoring.NewEvaluator(scoring.DefaultWeights()),
		Catalog:   c,
		Coach:     coach,
		Store:     st,
		Logger:    zap.NewNop(),
	})
}

func doJSON(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
		}
	}

	return rec, payload
}

func TestHealth(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil, nil)

	rec, payload := doJSON(t, s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if payload["status"] != "healthy" {
		t.Fatalf("unexpected status: %v", payload["status"])
	}
	if payload["model_loaded"] != true || payload["vectorizer_loaded"] != true {
		t.Fatalf("expected loaded flags, got %v", payload)
	}
}

func TestEvaluateAnswerHeuristic(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil, nil)

	body := `{"question": "Describe a time you worked on a team project.", "user_answer": "I worked with my team on a collaborative project. We communicated daily and delivered the project two weeks early with clear ownership of every milestone."}`
	rec, payload := doJSON(t, s, http.MethodPost, "/evaluate-answer", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	score, ok := payload["score"].(float64)
	if !ok {
		t.Fatalf("expected a numeric score, got %v", payload["score"])
	}
	if score < 0 || score > 100 {
		t.Fatalf("score out of bounds: %v", score)
	}
	if payload["feedback"] == "" {
		t.Fatalf("expected feedback")
	}
	if _, ok := payload["strengths"].([]any); !ok {
		t.Fatalf("expected strengths array, got %v", payload["strengths"])
	}
}

func TestEvaluateAnswerMissingAnswer(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil, nil)

	rec, payload := doJSON(t, s, http.MethodPost, "/evaluate-answer", `{"question": "q"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if payload["error"] != "user_answer is required" {
		t.Fatalf("unexpected error: %v", payload["error"])
	}
	if payload["feedback"] != "No answer provided." {
		t.Fatalf("unexpected feedback: %v", payload["feedback"])
	}
}

func TestEvaluateAnswerInvalidJSON(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil, nil)

	rec, payload := doJSON(t, s, http.MethodPost, "/evaluate-answer", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if payload["error"] != "Invalid request. Please provide JSON data." {
		t.Fatalf("unexpected error: %v", payload["error"])
	}
}

func TestEvaluateAnswerTooShort(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil, nil)

	rec, payload := doJSON(t, s, http.MethodPost, "/evaluate-answer", `{"question": "q", "user_answer": "short"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if payload["score"] != float64(0) {
		t.Fatalf("expected zero score, got %v", payload["score"])
	}
	if !strings.Contains(payload["feedback"].(string), "too short") {
		t.Fatalf("unexpected feedback: %v", payload["feedback"])
	}
}

type stubCoach struct {
	review *ai.Review
	err    error
}

func (s *stubCoach) Review(_ context.Context, _, _ string) (*ai.Review, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.review, nil
}

func TestEvaluateAnswerPrefersCoach(t *testing.T) {
	t.Parallel()

	coach := &stubCoach{review: &ai.Review{
		Score:        91,
		Feedback:     "Strong storytelling.",
		Strengths:    []string{"Specific metrics"},
		Improvements: []string{"Tighten the opening"},
	}}
	s := newTestServer(t, coach, nil)

	body := `{"question": "q", "user_answer": "a sufficiently long answer about teamwork"}`
	rec, payload := doJSON(t, s, http.MethodPost, "/evaluate-answer", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if payload["score"] != float64(91) {
		t.Fatalf("expected coach score, got %v", payload["score"])
	}
	if payload["feedback"] != "Strong storytelling." {
		t.Fatalf("expected coach feedback, got %v", payload["feedback"])
	}
}

func TestEvaluateAnswerCoachFailureFallsBack(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &stubCoach{err: errors.New("quota exceeded")}, nil)

	body := `{"question": "q", "user_answer": "a sufficiently long answer about teamwork"}`
	rec, payload := doJSON(t, s, http.MethodPost, "/evaluate-answer", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, ok := payload["score"].(float64); !ok {
		t.Fatalf("expected heuristic score, got %v", payload["score"])
	}
}

func TestSessionsEndpoints(t *testing.T) {
	t.Parallel()

	st, err := store.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	sess := session.New("junior", []catalog.Question{{Text: "q1", Keywords: []string{"team"}}})
	sess.Record(0, "the team delivered", scoring.Result{
		Relevance: 100, Clarity: 70, Completeness: 20, WordCount: 3, Answered: true,
	})
	sess.Submit()
	if err := st.SaveSession(sess); err != nil {
		t.Fatalf("saving session: %v", err)
	}

	s := newTestServer(t, nil, st)

	rec, payload := doJSON(t, s, http.MethodGet, "/sessions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	sessions, ok := payload["sessions"].([]any)
	if !ok || len(sessions) != 1 {
		t.Fatalf("expected one session, got %v", payload["sessions"])
	}

	rec, payload = doJSON(t, s, http.MethodGet, "/sessions/"+sess.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	questions, ok := payload["questions"].([]any)
	if !ok || len(questions) != 1 {
		t.Fatalf("expected one question record, got %v", payload["questions"])
	}

	rec, _ = doJSON(t, s, http.MethodGet, "/sessions/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSessionsWithoutStore(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil, nil)

	rec, _ := doJSON(t, s, http.MethodGet, "/sessions", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
