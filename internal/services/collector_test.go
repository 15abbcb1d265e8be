package services

import (
	"testing"
	"time"

	"github.com/growthlab/diagnostic/internal/models"
)

func expectInvalid(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation error, got nil")
	}
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorInvalid {
		t.Fatalf("expected invalid error, got %v", err)
	}
}

func TestRecordUpsertsLatestValue(t *testing.T) {
	c := NewAnswerCollector(nil)
	if err := c.Record("eq1", 3); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := c.Record("eq1", 5); err != nil {
		t.Fatalf("record again: %v", err)
	}
	v, ok := c.Answer("eq1")
	if !ok || v != 5 {
		t.Fatalf("answer = %v (%v), want 5", v, ok)
	}
	if got := len(c.Answers()); got != 1 {
		t.Fatalf("answers = %d, want 1 (upsert, not append)", got)
	}
}

func TestRecordUnknownQuestion(t *testing.T) {
	c := NewAnswerCollector(nil)
	expectInvalid(t, c.Record("nope", 3))
}

func TestRecordScaleValidation(t *testing.T) {
	c := NewAnswerCollector(nil)
	expectInvalid(t, c.Record("eq1", "three"))
	expectInvalid(t, c.Record("eq1", 3.5))
	expectInvalid(t, c.Record("eq1", 0))
	expectInvalid(t, c.Record("eq1", 6))
	expectInvalid(t, c.Record("eq1", true))
	if _, ok := c.Answer("eq1"); ok {
		t.Fatalf("rejected values must not be stored")
	}
	// JSON decoding hands numbers over as float64
	if err := c.Record("eq1", float64(4)); err != nil {
		t.Fatalf("record float64: %v", err)
	}
	if v, _ := c.Answer("eq1"); v != 4 {
		t.Fatalf("answer = %v, want normalized int 4", v)
	}
}

func TestRecordChoiceAndBooleanValidation(t *testing.T) {
	test := &models.DiagnosticTest{
		ID:         "mixed",
		Categories: []models.Category{models.CategorySocial},
		Questions: []*models.Question{
			{ID: "c1", Text: "pick one", Category: models.CategorySocial, Type: models.QuestionMultipleChoice, Options: []string{"daily", "weekly"}},
			{ID: "b1", Text: "yes or no", Category: models.CategorySocial, Type: models.QuestionBoolean},
		},
	}
	c := NewAnswerCollector(test)

	expectInvalid(t, c.Record("c1", "monthly"))
	expectInvalid(t, c.Record("c1", 2))
	if err := c.Record("c1", "weekly"); err != nil {
		t.Fatalf("record option: %v", err)
	}

	expectInvalid(t, c.Record("b1", "yes"))
	expectInvalid(t, c.Record("b1", 1))
	if err := c.Record("b1", true); err != nil {
		t.Fatalf("record boolean: %v", err)
	}
}

func TestAnswersBankOrder(t *testing.T) {
	c := NewAnswerCollector(nil)
	for _, id := range []string{"rel1", "eq2", "health3"} {
		if err := c.Record(id, 4); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}
	got := c.Answers()
	want := []string{"eq2", "health3", "rel1"}
	if len(got) != len(want) {
		t.Fatalf("answers = %d, want %d", len(got), len(want))
	}
	for i, a := range got {
		if a.QuestionID != want[i] {
			t.Fatalf("answers[%d] = %s, want %s", i, a.QuestionID, want[i])
		}
	}
}

func TestAnswerTimestamps(t *testing.T) {
	c := NewAnswerCollector(nil)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }
	if err := c.Record("eq1", 2); err != nil {
		t.Fatalf("record: %v", err)
	}
	if got := c.Answers()[0].SubmittedAt; !got.Equal(fixed) {
		t.Fatalf("submitted at = %v, want %v", got, fixed)
	}
}

func TestCompleteAndReset(t *testing.T) {
	c := NewAnswerCollector(nil)
	if c.Complete() {
		t.Fatalf("empty collector must not be complete")
	}
	for _, q := range PersonalGrowthTest().Questions {
		if err := c.Record(q.ID, 3); err != nil {
			t.Fatalf("record %s: %v", q.ID, err)
		}
	}
	if !c.Complete() {
		t.Fatalf("collector with every question answered must be complete")
	}
	c.Reset()
	if c.Complete() || len(c.Answers()) != 0 {
		t.Fatalf("reset must discard all answers")
	}
}
