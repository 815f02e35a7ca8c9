package service

import (
	"context"
	"course_hub_backend/internal/model"
	"course_hub_backend/internal/repository"
	"course_hub_backend/internal/util"
	"course_hub_backend/pkg/monitoring"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AttemptState tracks where an attempt is in its lifecycle. Transitions
// only move forward: NotStarted to InProgress to Submitted.
type AttemptState int

const (
	AttemptNotStarted AttemptState = iota
	AttemptInProgress
	AttemptSubmitted
)

const (
	SubmitManual = "manual"
	SubmitForced = "timeout"
)

// sessionMaxAge is how long an abandoned session survives before the
// janitor reclaims it.
const sessionMaxAge = 24 * time.Hour

// AttemptSession is the in-memory context of one student taking one exam.
// Sessions are never persisted; only the resulting score leaves memory.
type AttemptSession struct {
	ID        string
	UserID    uint
	ExamID    uint
	StartedAt time.Time

	mu        sync.Mutex
	state     AttemptState
	remaining int // seconds; negative means no time limit
	answers   AnswerSheet
	score     *Score
	details   []QuestionScore
	trigger   string
	cancel    context.CancelFunc

	exam      *model.Exam
	questions []model.Question
}

type AttemptService struct {
	ExamRepo *repository.ExamRepository
	Logger   *zap.Logger

	// TickInterval is one countdown second. Tests shrink it.
	TickInterval time.Duration

	mu       sync.RWMutex
	sessions map[string]*AttemptSession
}

func NewAttemptService(examRepo *repository.ExamRepository, logger *zap.Logger) *AttemptService {
	s := &AttemptService{
		ExamRepo:     examRepo,
		Logger:       logger,
		TickInterval: time.Second,
		sessions:     make(map[string]*AttemptSession),
	}
	go s.janitor()
	return s
}

// AttemptStatus is the client view of a session.
type AttemptStatus struct {
	AttemptID        string `json:"attemptId"`
	ExamID           uint   `json:"examId"`
	State            string `json:"state"`
	RemainingSeconds int    `json:"remainingSeconds"`
	AnsweredCount    int    `json:"answeredCount"`
	Score            *Score `json:"score,omitempty"`
	Trigger          string `json:"trigger,omitempty"`
}

func (st AttemptState) String() string {
	switch st {
	case AttemptInProgress:
		return "in_progress"
	case AttemptSubmitted:
		return "submitted"
	}
	return "not_started"
}

// StartAttempt opens a session against an active exam and starts its
// countdown when the exam is timed.
func (s *AttemptService) StartAttempt(userID, examID uint) (*AttemptStatus, error) {
	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	if !exam.Active {
		return nil, util.ErrExamInactive
	}
	questions, err := s.ExamRepo.QuestionsWithOptions(examID)
	if err != nil {
		return nil, err
	}

	session := s.startSession(userID, exam, questions)

	s.Logger.Info("attempt started",
		zap.String("attemptId", session.ID),
		zap.Uint("userId", userID),
		zap.Uint("examId", examID))

	return session.status(), nil
}

func (s *AttemptService) startSession(userID uint, exam *model.Exam, questions []model.Question) *AttemptSession {
	session := &AttemptSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		ExamID:    exam.ID,
		StartedAt: time.Now(),
		state:     AttemptInProgress,
		remaining: -1,
		answers:   make(AnswerSheet),
		exam:      exam,
		questions: questions,
	}
	if exam.TimeLimitMinutes != nil {
		session.remaining = *exam.TimeLimitMinutes * 60
		ctx, cancel := context.WithCancel(context.Background())
		session.cancel = cancel
		go s.countdown(ctx, session)
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

// countdown decrements the session clock once per tick and forces a
// submit when it reaches zero. The ticker is released on every exit path.
func (s *AttemptService) countdown(ctx context.Context, session *AttemptSession) {
	ticker := time.NewTicker(s.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			session.mu.Lock()
			if session.state != AttemptInProgress {
				session.mu.Unlock()
				return
			}
			session.remaining--
			if session.remaining > 0 {
				session.mu.Unlock()
				continue
			}
			session.remaining = 0
			s.finalizeLocked(session, SubmitForced)
			session.mu.Unlock()

			s.Logger.Info("attempt auto-submitted on timeout",
				zap.String("attemptId", session.ID),
				zap.Uint("examId", session.ExamID))
			return
		}
	}
}

func (s *AttemptService) lookup(attemptID string, userID uint) (*AttemptSession, error) {
	s.mu.RLock()
	session, ok := s.sessions[attemptID]
	s.mu.RUnlock()
	if !ok || session.UserID != userID {
		return nil, util.ErrAttemptNotFound
	}
	return session, nil
}

// RecordAnswer stores one answer on an in-progress session. Answers may
// be overwritten until submit.
func (s *AttemptService) RecordAnswer(attemptID string, userID, questionID uint, answer string) (*AttemptStatus, error) {
	session, err := s.lookup(attemptID, userID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.state != AttemptInProgress {
		return nil, util.ErrAlreadySubmitted
	}

	known := false
	for _, q := range session.questions {
		if q.ID == questionID {
			known = true
			break
		}
	}
	if !known {
		return nil, util.ErrQuestionNotFound
	}

	session.answers[questionID] = answer
	return session.statusLocked(), nil
}

// Tick reports the remaining seconds without mutating the session.
func (s *AttemptService) Tick(attemptID string, userID uint) (*AttemptStatus, error) {
	session, err := s.lookup(attemptID, userID)
	if err != nil {
		return nil, err
	}
	return session.status(), nil
}

// Submit grades the session exactly once. A repeated submit is a no-op
// that returns the already recorded score, so a manual submit racing the
// timeout never produces a second grade.
func (s *AttemptService) Submit(attemptID string, userID uint) (*AttemptStatus, error) {
	session, err := s.lookup(attemptID, userID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.state != AttemptSubmitted {
		s.finalizeLocked(session, SubmitManual)
	}
	return session.statusLocked(), nil
}

// Detail returns the per-question breakdown of a submitted attempt.
func (s *AttemptService) Detail(attemptID string, userID uint) ([]QuestionScore, error) {
	session, err := s.lookup(attemptID, userID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.state != AttemptSubmitted {
		return nil, util.NewValidationError("attempt has not been submitted")
	}
	return session.details, nil
}

// finalizeLocked scores the session and stops its clock. The caller holds
// session.mu and has verified the state is not already Submitted.
func (s *AttemptService) finalizeLocked(session *AttemptSession, trigger string) {
	score, details := ScoreExam(session.exam, session.questions, session.answers)
	session.score = &score
	session.details = details
	session.trigger = trigger
	session.state = AttemptSubmitted
	if session.cancel != nil {
		session.cancel()
		session.cancel = nil
	}
	monitoring.RecordSubmission(trigger, score.Passed)
}

func (session *AttemptSession) status() *AttemptStatus {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.statusLocked()
}

func (session *AttemptSession) statusLocked() *AttemptStatus {
	st := &AttemptStatus{
		AttemptID:        session.ID,
		ExamID:           session.ExamID,
		State:            session.state.String(),
		RemainingSeconds: session.remaining,
		AnsweredCount:    len(session.answers),
		Trigger:          session.trigger,
	}
	if session.score != nil {
		score := *session.score
		st.Score = &score
	}
	return st
}

// janitor reclaims sessions that outlived sessionMaxAge.
func (s *AttemptService) janitor() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-sessionMaxAge)

		s.mu.Lock()
		for id, session := range s.sessions {
			if session.StartedAt.Before(cutoff) {
				session.mu.Lock()
				if session.cancel != nil {
					session.cancel()
					session.cancel = nil
				}
				session.mu.Unlock()
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}
