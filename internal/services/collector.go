package services

import (
	"fmt"
	"math"
	"time"

	"github.com/growthlab/diagnostic/internal/models"
)

// AnswerCollector accumulates at most one answer per question while a user
// works through the bank. It is owned by a single test-taking session and is
// not safe for concurrent use.
type AnswerCollector struct {
	test    *models.DiagnosticTest
	answers map[string]models.Answer
	now     func() time.Time
}

func NewAnswerCollector(test *models.DiagnosticTest) *AnswerCollector {
	if test == nil {
		test = PersonalGrowthTest()
	}
	return &AnswerCollector{
		test:    test,
		answers: map[string]models.Answer{},
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Record validates value against the question's declared answer type and
// upserts it. A later answer to the same question replaces the earlier one.
// Out-of-range or mistyped values are rejected, never clamped.
func (c *AnswerCollector) Record(questionID string, value any) error {
	q := FindQuestion(c.test, questionID)
	if q == nil {
		return NewInvalidError(fmt.Sprintf("unknown question %q", questionID))
	}
	normalized, err := validateAnswerValue(q, value)
	if err != nil {
		return err
	}
	c.answers[questionID] = models.Answer{
		QuestionID:  questionID,
		Value:       normalized,
		SubmittedAt: c.now(),
	}
	return nil
}

// Answer returns the recorded value for a question, if any.
func (c *AnswerCollector) Answer(questionID string) (any, bool) {
	a, ok := c.answers[questionID]
	if !ok {
		return nil, false
	}
	return a.Value, true
}

// Answers returns the collected answers in bank order, skipping unanswered
// questions.
func (c *AnswerCollector) Answers() []models.Answer {
	out := make([]models.Answer, 0, len(c.answers))
	for _, q := range c.test.Questions {
		if a, ok := c.answers[q.ID]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Complete reports whether every question in the bank has an answer.
func (c *AnswerCollector) Complete() bool {
	return len(c.answers) == len(c.test.Questions)
}

// Reset discards all recorded answers (retake or abandon).
func (c *AnswerCollector) Reset() {
	c.answers = map[string]models.Answer{}
}

// validateAnswerValue checks value against the question contract and returns
// the canonical representation to store (int for scale questions, since JSON
// decoding hands numbers over as float64).
func validateAnswerValue(q *models.Question, value any) (any, error) {
	switch q.Type {
	case models.QuestionScale:
		f, ok := numericAnswer(value)
		if !ok {
			return nil, NewInvalidError(fmt.Sprintf("question %q expects a numeric value", q.ID))
		}
		if f != math.Trunc(f) {
			return nil, NewInvalidError(fmt.Sprintf("question %q expects a whole number", q.ID))
		}
		n := int(f)
		if n < q.ScaleMin || n > q.ScaleMax {
			return nil, NewInvalidError(fmt.Sprintf("question %q expects a value between %d and %d", q.ID, q.ScaleMin, q.ScaleMax))
		}
		return n, nil
	case models.QuestionMultipleChoice:
		s, ok := value.(string)
		if !ok {
			return nil, NewInvalidError(fmt.Sprintf("question %q expects one of its options", q.ID))
		}
		for _, opt := range q.Options {
			if opt == s {
				return s, nil
			}
		}
		return nil, NewInvalidError(fmt.Sprintf("question %q has no option %q", q.ID, s))
	case models.QuestionBoolean:
		b, ok := value.(bool)
		if !ok {
			return nil, NewInvalidError(fmt.Sprintf("question %q expects a boolean value", q.ID))
		}
		return b, nil
	default:
		return nil, NewInternalError(fmt.Sprintf("question %q has unsupported type %q", q.ID, q.Type))
	}
}

func numericAnswer(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	default:
		return 0, false
	}
}
