package service

import (
	"testing"

	"course_hub_backend/internal/model"
	"course_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateExamSettings(t *testing.T) {
	zero := 0
	thirty := 30

	assert.NoError(t, validateExamSettings(nil, 1, 70))
	assert.NoError(t, validateExamSettings(&thirty, 3, 0))
	assert.NoError(t, validateExamSettings(&thirty, 1, 100))

	assert.Error(t, validateExamSettings(&zero, 1, 70))
	assert.Error(t, validateExamSettings(nil, 0, 70))
	assert.Error(t, validateExamSettings(nil, 1, -1))
	assert.Error(t, validateExamSettings(nil, 1, 100.5))
}

func TestValidateOptions(t *testing.T) {
	valid := []OptionRequest{
		{Text: "red", IsCorrect: true},
		{Text: "blue"},
	}
	assert.NoError(t, validateOptions(model.MultipleChoice, valid))

	err := validateOptions(model.MultipleChoice, valid[:1])
	assert.True(t, util.IsValidationError(err), "fewer than two options is rejected")

	err = validateOptions(model.MultipleChoice, []OptionRequest{
		{Text: "red"},
		{Text: "blue"},
	})
	assert.True(t, util.IsValidationError(err), "a correct option is required")

	err = validateOptions(model.MultipleChoice, []OptionRequest{
		{Text: "  ", IsCorrect: true},
		{Text: "blue"},
	})
	assert.True(t, util.IsValidationError(err), "blank option text is rejected")

	assert.NoError(t, validateOptions(model.FreeText, nil))
	err = validateOptions(model.FreeText, valid)
	assert.True(t, util.IsValidationError(err), "free text questions carry no options")
}

func TestBuildExamPayloadStudentView(t *testing.T) {
	limit := 30
	exam := &model.Exam{
		CourseID:         5,
		Title:            "Midterm",
		TimeLimitMinutes: &limit,
		AllowedAttempts:  2,
		PassPercentage:   70,
		Active:           true,
	}
	exam.ID = 9

	questions := []model.Question{
		mcQuestion(1, 2, 11, 10, 11),
		ftQuestion(2, 3),
	}

	payload := buildExamPayload(exam, questions, false)
	assert.Equal(t, uint(9), payload.ID)
	require.Len(t, payload.Questions, 2)

	mc := payload.Questions[0]
	require.Len(t, mc.Options, 2)
	for _, o := range mc.Options {
		assert.Nil(t, o.IsCorrect, "student view never reveals correct flags")
	}

	ft := payload.Questions[1]
	assert.Empty(t, ft.Options, "free text questions deliver no options")
}

func TestBuildExamPayloadInstructorView(t *testing.T) {
	exam := &model.Exam{CourseID: 5, Title: "Midterm", PassPercentage: 70}
	exam.ID = 9

	payload := buildExamPayload(exam, []model.Question{mcQuestion(1, 2, 11, 10, 11)}, true)
	require.Len(t, payload.Questions, 1)
	require.Len(t, payload.Questions[0].Options, 2)

	correct := 0
	for _, o := range payload.Questions[0].Options {
		require.NotNil(t, o.IsCorrect)
		if *o.IsCorrect {
			correct++
		}
	}
	assert.Equal(t, 1, correct)
}
