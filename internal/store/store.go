// Package store persists finished sessions: one JSON-payload record with the
// per-question results and one flat row of aggregate stats, written together
// at submission.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/prepdeck/prepdeck/internal/session"
)

// QuestionRecord is one element of a session record's questions payload.
type QuestionRecord struct {
	Question     string   `json:"question"`
	Keywords     []string `json:"keywords"`
	Answer       string   `json:"answer"`
	WordCount    int      `json:"wordCount"`
	Relevance    int      `json:"relevance"`
	Clarity      int      `json:"clarity"`
	Completeness int      `json:"completeness"`
	Feedback     string   `json:"feedback"`
}

// SessionRecord is the persisted per-question view of one session.
type SessionRecord struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	Level     string         `json:"level"`
	Timestamp time.Time      `json:"timestamp"`
	Questions datatypes.JSON `json:"questions"`
}

// StatsRecord is the persisted aggregate view of one session.
type StatsRecord struct {
	SessionID         string    `gorm:"primaryKey" json:"sessionId"`
	Level             string    `json:"level"`
	TotalQuestions    int       `json:"totalQuestions"`
	AnsweredQuestions int       `json:"answeredQuestions"`
	TotalWords        int       `json:"totalWords"`
	AvgRelevance      int       `json:"avgRelevance"`
	AvgClarity        int       `json:"avgClarity"`
	AvgCompleteness   int       `json:"avgCompleteness"`
	TimeSpentSeconds  int       `json:"timeSpent"`
	SubmittedAt       time.Time `json:"submittedAt"`
}

// ErrNotFound is returned when a session id has no persisted record.
var ErrNotFound = errors.New("session not found")

// Store wraps the sqlite database holding session records.
type Store struct {
	db *gorm.DB
}

// Open opens (and migrates) the sqlite database at the given path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening session store %s: %w", path, err)
	}

	if err := db.AutoMigrate(&SessionRecord{}, &StatsRecord{}); err != nil {
		return nil, fmt.Errorf("migrating session store: %w", err)
	}

	return &Store{db: db}, nil
}

// SaveSession persists the session record and its aggregate stats in one
// transaction. On failure nothing is written and the in-memory session is
// untouched, so the caller can retry.
func (s *Store) SaveSession(sess *session.Session) error {
	if sess == nil {
		return errors.New("session is required")
	}

	payload := make([]QuestionRecord, 0, len(sess.Answers))
	for _, a := range sess.Answers {
		payload = append(payload, QuestionRecord{
			Question:     a.Question.Text,
			Keywords:     a.Question.Keywords,
			Answer:       a.RawText,
			WordCount:    a.WordCount,
			Relevance:    a.Relevance,
			Clarity:      a.Clarity,
			Completeness: a.Completeness,
			Feedback:     a.Feedback,
		})
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal questions payload: %w", err)
	}

	stats := sess.Stats()

	record := SessionRecord{
		ID:        sess.ID,
		Level:     sess.Level,
		Timestamp: sess.StartedAt,
		Questions: datatypes.JSON(data),
	}

	statsRecord := StatsRecord{
		SessionID:         sess.ID,
		Level:             stats.Level,
		TotalQuestions:    stats.TotalQuestions,
		AnsweredQuestions: stats.AnsweredQuestions,
		TotalWords:        stats.TotalWords,
		AvgRelevance:      stats.AvgRelevance,
		AvgClarity:        stats.AvgClarity,
		AvgCompleteness:   stats.AvgCompleteness,
		TimeSpentSeconds:  int(stats.TimeSpent.Seconds()),
		SubmittedAt:       stats.SubmittedAt,
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("saving session record: %w", err)
		}
		if err := tx.Create(&statsRecord).Error; err != nil {
			return fmt.Errorf("saving stats record: %w", err)
		}
		return nil
	})
}

// Sessions returns the aggregate records, newest first.
func (s *Store) Sessions() ([]StatsRecord, error) {
	var records []StatsRecord
	if err := s.db.Order("submitted_at desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	return records, nil
}

// Session returns the full record and decoded questions for one session id.
func (s *Store) Session(id string) (*SessionRecord, []QuestionRecord, error) {
	var record SessionRecord
	err := s.db.First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loading session %s: %w", id, err)
	}

	var questions []QuestionRecord
	if err := json.Unmarshal(record.Questions, &questions); err != nil {
		return nil, nil, fmt.Errorf("decoding questions payload: %w", err)
	}

	return &record, questions, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
