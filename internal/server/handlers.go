package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prepdeck/prepdeck/internal/scoring"
	"github.com/prepdeck/prepdeck/internal/store"
)

// minAnswerLength is the minimum number of characters before an answer is
// worth evaluating at all.
const minAnswerLength = 10

type evaluateRequest struct {
	Question   string `json:"question"`
	UserAnswer string `json:"user_answer"`
}

type evaluateError struct {
	Error        string   `json:"error"`
	Score        int      `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

func (s *Server) home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":            "running",
		"message":           "prepdeck answer evaluation API",
		"model_loaded":      s.evaluator != nil,
		"vectorizer_loaded": s.catalog != nil,
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":            "healthy",
		"model_loaded":      s.evaluator != nil,
		"vectorizer_loaded": s.catalog != nil,
	})
}

func (s *Server) evaluateAnswer(c *gin.Context) {
	if s.evaluator == nil || s.catalog == nil {
		c.JSON(http.StatusInternalServerError, evaluateError{
			Error:        "Scoring profile not loaded. Please restart the server.",
			Feedback:     "System error. Please try again later.",
			Strengths:    []string{},
			Improvements: []string{},
		})
		return
	}

	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, evaluateError{
			Error:        "Invalid request. Please provide JSON data.",
			Feedback:     "Invalid request format.",
			Strengths:    []string{},
			Improvements: []string{},
		})
		return
	}

	answer := strings.TrimSpace(req.UserAnswer)
	if answer == "" {
		c.JSON(http.StatusBadRequest, evaluateError{
			Error:        "user_answer is required",
			Feedback:     "No answer provided.",
			Strengths:    []string{},
			Improvements: []string{"Provide an answer to the question"},
		})
		return
	}

	if len(answer) < minAnswerLength {
		c.JSON(http.StatusOK, scoring.TooShortReview())
		return
	}

	review := s.review(c, req.Question, answer)
	c.JSON(http.StatusOK, review)
}

// review runs the heuristic evaluation and, when a coach is configured,
// prefers its richer verdict. Coach failures fall back to the heuristic so
// the endpoint never surfaces them.
func (s *Server) review(c *gin.Context, question, answer string) scoring.Review {
	keywords := s.expectedKeywords(question)
	result := s.evaluator.Evaluate(answer, keywords)
	heuristic := scoring.BuildReview(result.Overall(), result.WordCount)

	if s.coach == nil {
		return heuristic
	}

	coached, err := s.coach.Review(c.Request.Context(), question, answer)
	if err != nil {
		s.logger.Warn("coach review failed, using heuristic scores", zap.Error(err))
		return heuristic
	}

	return scoring.Review{
		Score:        coached.Score,
		Feedback:     coached.Feedback,
		Strengths:    coached.Strengths,
		Improvements: coached.Improvements,
	}
}

// expectedKeywords recovers the keyword stems for a known catalog question,
// falling back to the question's own significant words for ad hoc questions.
func (s *Server) expectedKeywords(question string) []string {
	if q, ok := s.catalog.FindQuestion(question); ok {
		return q.Keywords
	}

	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(question)) {
		word = strings.Trim(word, ".,!?\"'")
		if len(word) > 4 {
			keywords = append(keywords, word)
		}
	}

	return keywords
}

func (s *Server) listSessions(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session store is not configured"})
		return
	}

	records, err := s.store.Sessions()
	if err != nil {
		s.logger.Error("listing sessions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing sessions failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": records})
}

func (s *Server) getSession(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session store is not configured"})
		return
	}

	record, questions, err := s.store.Session(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if err != nil {
		s.logger.Error("loading session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "loading session failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        record.ID,
		"level":     record.Level,
		"timestamp": record.Timestamp,
		"questions": questions,
	})
}
