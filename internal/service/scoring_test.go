package service

import (
	"fmt"
	"strconv"
	"testing"

	"course_hub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mcQuestion(id uint, points float64, correctOptionID uint, optionIDs ...uint) model.Question {
	q := model.Question{
		Text:   "pick one",
		Type:   model.MultipleChoice,
		Points: points,
	}
	q.ID = id
	for _, oid := range optionIDs {
		o := model.Option{Text: fmt.Sprintf("option %d", oid), IsCorrect: oid == correctOptionID}
		o.ID = oid
		q.Options = append(q.Options, o)
	}
	return q
}

func ftQuestion(id uint, points float64) model.Question {
	q := model.Question{
		Text:   "explain",
		Type:   model.FreeText,
		Points: points,
	}
	q.ID = id
	return q
}

func passExam(passPercentage float64) *model.Exam {
	exam := &model.Exam{PassPercentage: passPercentage}
	exam.ID = 1
	return exam
}

func TestScoreExamMultipleChoice(t *testing.T) {
	exam := passExam(70)
	questions := []model.Question{
		mcQuestion(1, 2, 11, 10, 11, 12),
		mcQuestion(2, 3, 21, 20, 21),
	}

	tests := []struct {
		name       string
		answers    AnswerSheet
		wantEarned float64
		wantPct    float64
		wantPassed bool
	}{
		{
			name:       "all correct",
			answers:    AnswerSheet{1: "11", 2: "21"},
			wantEarned: 5,
			wantPct:    100,
			wantPassed: true,
		},
		{
			name:       "wrong option earns nothing",
			answers:    AnswerSheet{1: "10", 2: "21"},
			wantEarned: 3,
			wantPct:    60,
			wantPassed: false,
		},
		{
			name:       "unanswered counts toward total",
			answers:    AnswerSheet{2: "21"},
			wantEarned: 3,
			wantPct:    60,
			wantPassed: false,
		},
		{
			name:       "unparseable answer earns nothing",
			answers:    AnswerSheet{1: "not-a-number", 2: "21"},
			wantEarned: 3,
			wantPct:    60,
			wantPassed: false,
		},
		{
			name:       "option id from another question earns nothing",
			answers:    AnswerSheet{1: "21", 2: "21"},
			wantEarned: 3,
			wantPct:    60,
			wantPassed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, details := ScoreExam(exam, questions, tt.answers)
			assert.Equal(t, 5.0, score.PointsTotal)
			assert.Equal(t, tt.wantEarned, score.PointsEarned)
			assert.InDelta(t, tt.wantPct, score.Percentage, 0.0001)
			assert.Equal(t, tt.wantPassed, score.Passed)
			assert.Len(t, details, 2)
		})
	}
}

func TestScoreExamFreeText(t *testing.T) {
	exam := passExam(50)
	questions := []model.Question{ftQuestion(1, 1), ftQuestion(2, 1)}

	score, _ := ScoreExam(exam, questions, AnswerSheet{1: "any response at all"})
	assert.Equal(t, 1.0, score.PointsEarned)
	assert.True(t, score.Passed, "50 percent meets a 50 percent threshold")

	score, _ = ScoreExam(exam, questions, AnswerSheet{1: "   ", 2: "\t\n"})
	assert.Zero(t, score.PointsEarned, "whitespace-only answers earn nothing")
	assert.False(t, score.Passed)
}

func TestScoreExamPassBoundary(t *testing.T) {
	// one of two equal questions correct is exactly 50 percent
	exam := passExam(50)
	questions := []model.Question{
		mcQuestion(1, 1, 11, 10, 11),
		mcQuestion(2, 1, 21, 20, 21),
	}

	score, _ := ScoreExam(exam, questions, AnswerSheet{1: "11", 2: "20"})
	assert.InDelta(t, 50.0, score.Percentage, 0.0001)
	assert.True(t, score.Passed, "hitting the threshold exactly passes")

	score, _ = ScoreExam(passExam(50.01), questions, AnswerSheet{1: "11", 2: "20"})
	assert.False(t, score.Passed)
}

func TestScoreExamDefaultsNonPositivePointsToOne(t *testing.T) {
	exam := passExam(70)
	questions := []model.Question{
		mcQuestion(1, 0, 11, 10, 11),
		mcQuestion(2, -2.5, 21, 20, 21),
	}

	score, details := ScoreExam(exam, questions, AnswerSheet{1: "11", 2: "21"})
	assert.Equal(t, 2.0, score.PointsTotal)
	assert.Equal(t, 2.0, score.PointsEarned)
	for _, d := range details {
		assert.Equal(t, 1.0, d.Points)
	}
}

func TestScoreExamNoQuestions(t *testing.T) {
	score, details := ScoreExam(passExam(70), nil, AnswerSheet{})
	assert.Zero(t, score.PointsTotal)
	assert.Zero(t, score.PointsEarned)
	assert.Zero(t, score.Percentage)
	assert.False(t, score.Passed)
	assert.Empty(t, details)
}

func TestScoreExamIsDeterministic(t *testing.T) {
	exam := passExam(70)
	questions := []model.Question{
		mcQuestion(1, 2, 11, 10, 11),
		ftQuestion(2, 3),
	}
	answers := AnswerSheet{1: "11", 2: "because"}

	first, _ := ScoreExam(exam, questions, answers)
	for i := 0; i < 10; i++ {
		again, _ := ScoreExam(exam, questions, answers)
		assert.Equal(t, first, again)
	}
}

func TestScoreExamDetailPerQuestion(t *testing.T) {
	exam := passExam(70)
	questions := []model.Question{
		mcQuestion(1, 2, 11, 10, 11),
		ftQuestion(2, 3),
		mcQuestion(3, 1, 31, 30, 31),
	}

	_, details := ScoreExam(exam, questions, AnswerSheet{
		1: strconv.Itoa(11),
		2: "a written answer",
	})
	require.Len(t, details, 3)

	assert.Equal(t, uint(1), details[0].QuestionID)
	assert.True(t, details[0].Correct)
	assert.Equal(t, 2.0, details[0].PointsEarned)
	assert.Equal(t, "option 11", details[0].CorrectOption)
	assert.False(t, details[0].NeedsReview)

	assert.True(t, details[1].Correct)
	assert.Equal(t, 3.0, details[1].PointsEarned)
	assert.True(t, details[1].NeedsReview)
	assert.Empty(t, details[1].CorrectOption)

	assert.False(t, details[2].Correct)
	assert.Zero(t, details[2].PointsEarned)
	assert.Equal(t, "option 31", details[2].CorrectOption)
}
