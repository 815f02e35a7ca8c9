package service

import (
	"sync"
	"testing"
	"time"

	"course_hub_backend/internal/model"
	"course_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAttemptService(tick time.Duration) *AttemptService {
	return &AttemptService{
		Logger:       zap.NewNop(),
		TickInterval: tick,
		sessions:     make(map[string]*AttemptSession),
	}
}

func timedExam(passPercentage float64, limitMinutes int) *model.Exam {
	exam := &model.Exam{PassPercentage: passPercentage, TimeLimitMinutes: &limitMinutes, Active: true}
	exam.ID = 1
	return exam
}

func untimedExam(passPercentage float64) *model.Exam {
	exam := &model.Exam{PassPercentage: passPercentage, Active: true}
	exam.ID = 1
	return exam
}

func twoQuestionSet() []model.Question {
	return []model.Question{
		mcQuestion(1, 1, 11, 10, 11),
		ftQuestion(2, 1),
	}
}

func TestAttemptLifecycle(t *testing.T) {
	s := newTestAttemptService(time.Second)
	session := s.startSession(7, untimedExam(50), twoQuestionSet())

	status, err := s.Tick(session.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", status.State)
	assert.Equal(t, -1, status.RemainingSeconds, "untimed attempts have no countdown")

	status, err = s.RecordAnswer(session.ID, 7, 1, "11")
	require.NoError(t, err)
	assert.Equal(t, 1, status.AnsweredCount)

	// answers can be overwritten before submit
	_, err = s.RecordAnswer(session.ID, 7, 1, "10")
	require.NoError(t, err)
	_, err = s.RecordAnswer(session.ID, 7, 1, "11")
	require.NoError(t, err)

	status, err = s.Submit(session.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, "submitted", status.State)
	assert.Equal(t, SubmitManual, status.Trigger)
	require.NotNil(t, status.Score)
	assert.Equal(t, 1.0, status.Score.PointsEarned)
	assert.True(t, status.Score.Passed)
}

func TestAttemptUnknownSessionOrWrongUser(t *testing.T) {
	s := newTestAttemptService(time.Second)
	session := s.startSession(7, untimedExam(50), twoQuestionSet())

	_, err := s.Tick("no-such-attempt", 7)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)

	_, err = s.Submit(session.ID, 99)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}

func TestAttemptRejectsUnknownQuestion(t *testing.T) {
	s := newTestAttemptService(time.Second)
	session := s.startSession(7, untimedExam(50), twoQuestionSet())

	_, err := s.RecordAnswer(session.ID, 7, 42, "11")
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestAttemptSubmitIsIdempotent(t *testing.T) {
	s := newTestAttemptService(time.Second)
	session := s.startSession(7, untimedExam(50), twoQuestionSet())

	_, err := s.RecordAnswer(session.ID, 7, 1, "11")
	require.NoError(t, err)

	first, err := s.Submit(session.ID, 7)
	require.NoError(t, err)

	// late answers are rejected, not silently regraded
	_, err = s.RecordAnswer(session.ID, 7, 2, "filled in after the fact")
	assert.ErrorIs(t, err, util.ErrAlreadySubmitted)

	second, err := s.Submit(session.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Trigger, second.Trigger)
}

func TestAttemptConcurrentSubmitScoresOnce(t *testing.T) {
	s := newTestAttemptService(time.Second)
	session := s.startSession(7, untimedExam(50), twoQuestionSet())

	_, err := s.RecordAnswer(session.ID, 7, 1, "11")
	require.NoError(t, err)

	const submitters = 16
	results := make([]*AttemptStatus, submitters)
	var wg sync.WaitGroup
	wg.Add(submitters)
	for i := 0; i < submitters; i++ {
		go func(i int) {
			defer wg.Done()
			status, err := s.Submit(session.ID, 7)
			assert.NoError(t, err)
			results[i] = status
		}(i)
	}
	wg.Wait()

	for _, status := range results {
		require.NotNil(t, status.Score)
		assert.Equal(t, *results[0].Score, *status.Score)
	}
}

func TestAttemptForcedSubmitOnTimeout(t *testing.T) {
	s := newTestAttemptService(time.Millisecond)
	session := s.startSession(7, timedExam(50, 1), twoQuestionSet())

	_, err := s.RecordAnswer(session.ID, 7, 1, "11")
	require.NoError(t, err)

	// 60 ticks of 1ms drain the one-minute budget
	require.Eventually(t, func() bool {
		status, err := s.Tick(session.ID, 7)
		return err == nil && status.State == "submitted"
	}, 5*time.Second, 5*time.Millisecond)

	status, err := s.Tick(session.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, SubmitForced, status.Trigger)
	assert.Zero(t, status.RemainingSeconds)
	require.NotNil(t, status.Score)
	assert.Equal(t, 1.0, status.Score.PointsEarned)
}

func TestAttemptForcedAndManualSubmitScoreIdentically(t *testing.T) {
	manual := newTestAttemptService(time.Second)
	manualSession := manual.startSession(7, untimedExam(50), twoQuestionSet())
	_, err := manual.RecordAnswer(manualSession.ID, 7, 1, "11")
	require.NoError(t, err)
	manualStatus, err := manual.Submit(manualSession.ID, 7)
	require.NoError(t, err)

	forced := newTestAttemptService(time.Millisecond)
	forcedSession := forced.startSession(7, timedExam(50, 1), twoQuestionSet())
	_, err = forced.RecordAnswer(forcedSession.ID, 7, 1, "11")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		status, err := forced.Tick(forcedSession.ID, 7)
		return err == nil && status.State == "submitted"
	}, 5*time.Second, 5*time.Millisecond)
	forcedStatus, err := forced.Tick(forcedSession.ID, 7)
	require.NoError(t, err)

	assert.Equal(t, *manualStatus.Score, *forcedStatus.Score)
	assert.NotEqual(t, manualStatus.Trigger, forcedStatus.Trigger)
}

func TestAttemptManualSubmitStopsCountdown(t *testing.T) {
	s := newTestAttemptService(time.Millisecond)
	session := s.startSession(7, timedExam(50, 10), twoQuestionSet())

	status, err := s.Submit(session.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, SubmitManual, status.Trigger)

	remaining := status.RemainingSeconds
	time.Sleep(20 * time.Millisecond)

	status, err = s.Tick(session.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, remaining, status.RemainingSeconds, "clock is frozen after submit")
	assert.Equal(t, SubmitManual, status.Trigger, "timeout never overrides a manual submit")
}

func TestAttemptDetailOnlyAfterSubmit(t *testing.T) {
	s := newTestAttemptService(time.Second)
	session := s.startSession(7, untimedExam(50), twoQuestionSet())

	_, err := s.Detail(session.ID, 7)
	assert.Error(t, err)

	_, err = s.RecordAnswer(session.ID, 7, 2, "a free text answer")
	require.NoError(t, err)
	_, err = s.Submit(session.ID, 7)
	require.NoError(t, err)

	details, err := s.Detail(session.ID, 7)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.False(t, details[0].Correct)
	assert.True(t, details[1].Correct)
}
