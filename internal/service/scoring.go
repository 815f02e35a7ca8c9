package service

import (
	"course_hub_backend/internal/model"
	"strconv"
	"strings"
)

// AnswerSheet maps question ID to the submitted answer. For multiple
// choice questions the value is the selected option ID in decimal form;
// for free text questions it is the written response.
type AnswerSheet map[uint]string

// Score is the outcome of grading one attempt.
type Score struct {
	PointsTotal  float64 `json:"pointsTotal"`
	PointsEarned float64 `json:"pointsEarned"`
	Percentage   float64 `json:"percentage"`
	Passed       bool    `json:"passed"`
}

// QuestionScore is the per-question grading detail. NeedsReview marks
// free text answers that were credited on presence alone; CorrectOption
// carries the right choice's text for multiple choice questions.
type QuestionScore struct {
	QuestionID    uint    `json:"questionId"`
	Points        float64 `json:"points"`
	PointsEarned  float64 `json:"pointsEarned"`
	Correct       bool    `json:"correct"`
	NeedsReview   bool    `json:"needsReview"`
	CorrectOption string  `json:"correctOption,omitempty"`
}

// OptionPayload is an option as delivered to a client. IsCorrect is only
// populated in the instructor view.
type OptionPayload struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	Order     int    `json:"order"`
	IsCorrect *bool  `json:"isCorrect,omitempty"`
}

// QuestionPayload is a question as delivered to a client. Free text
// questions carry no options.
type QuestionPayload struct {
	ID      uint               `json:"id"`
	Text    string             `json:"text"`
	Type    model.QuestionType `json:"type"`
	Points  float64            `json:"points"`
	Order   int                `json:"order"`
	Options []OptionPayload    `json:"options,omitempty"`
}

// ExamPayload is the assembled exam a client renders.
type ExamPayload struct {
	ID               uint              `json:"id"`
	CourseID         uint              `json:"courseId"`
	ModuleID         *uint             `json:"moduleId,omitempty"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	TimeLimitMinutes *int              `json:"timeLimitMinutes"`
	AllowedAttempts  int               `json:"allowedAttempts"`
	PassPercentage   float64           `json:"passPercentage"`
	Active           bool              `json:"active"`
	Questions        []QuestionPayload `json:"questions"`
}

// buildExamPayload assembles the delivery form of an exam. Questions and
// options arrive already ordered by the repository. When includeAnswers is
// false the correct flags are stripped, which is the student view.
func buildExamPayload(exam *model.Exam, questions []model.Question, includeAnswers bool) ExamPayload {
	payload := ExamPayload{
		ID:               exam.ID,
		CourseID:         exam.CourseID,
		ModuleID:         exam.ModuleID,
		Title:            exam.Title,
		Description:      exam.Description,
		TimeLimitMinutes: exam.TimeLimitMinutes,
		AllowedAttempts:  exam.AllowedAttempts,
		PassPercentage:   exam.PassPercentage,
		Active:           exam.Active,
		Questions:        make([]QuestionPayload, 0, len(questions)),
	}

	for _, q := range questions {
		qp := QuestionPayload{
			ID:     q.ID,
			Text:   q.Text,
			Type:   q.Type,
			Points: q.Points,
			Order:  q.Order,
		}
		if q.Type == model.MultipleChoice {
			qp.Options = make([]OptionPayload, 0, len(q.Options))
			for _, o := range q.Options {
				op := OptionPayload{ID: o.ID, Text: o.Text, Order: o.Order}
				if includeAnswers {
					correct := o.IsCorrect
					op.IsCorrect = &correct
				}
				qp.Options = append(qp.Options, op)
			}
		}
		payload.Questions = append(payload.Questions, qp)
	}
	return payload
}

// questionPoints normalizes a question's weight. Unset and non-positive
// point values count as one point.
func questionPoints(points float64) float64 {
	if points <= 0 {
		return 1
	}
	return points
}

// ScoreExam grades an answer sheet against an exam's questions. There is
// no partial credit: a multiple choice answer earns the question's points
// only when the selected option is the correct one, and a free text answer
// earns them when a non-blank response was written. Unanswered questions
// earn nothing but still count toward the total. An exam with no questions
// scores zero percent.
func ScoreExam(exam *model.Exam, questions []model.Question, answers AnswerSheet) (Score, []QuestionScore) {
	var total, earned float64
	details := make([]QuestionScore, 0, len(questions))

	for _, q := range questions {
		points := questionPoints(q.Points)
		total += points

		detail := QuestionScore{QuestionID: q.ID, Points: points}
		answer, answered := answers[q.ID]

		switch q.Type {
		case model.MultipleChoice:
			var optionID uint64
			if answered {
				optionID, _ = strconv.ParseUint(answer, 10, 64)
			}
			for _, o := range q.Options {
				if o.IsCorrect {
					if detail.CorrectOption == "" {
						detail.CorrectOption = o.Text
					}
					if answered && uint(optionID) == o.ID {
						detail.Correct = true
					}
				}
			}
		case model.FreeText:
			detail.Correct = answered && strings.TrimSpace(answer) != ""
			detail.NeedsReview = detail.Correct
		}

		if detail.Correct {
			detail.PointsEarned = points
			earned += points
		}
		details = append(details, detail)
	}

	score := Score{PointsTotal: total, PointsEarned: earned}
	if total > 0 {
		score.Percentage = earned / total * 100
	}
	score.Passed = score.Percentage >= exam.PassPercentage
	return score, details
}
