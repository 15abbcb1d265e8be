package services

import (
	"math"

	"github.com/growthlab/diagnostic/internal/models"
)

// pointsPerQuestion is the assumed 5-point scale used for max scores. The
// denominator counts every question in a category whether answered or not,
// and whatever its type, so partial completion and non-scorable questions
// depress the percentage rather than shrinking the denominator.
const pointsPerQuestion = 5

// ScoreAnswers aggregates an answer set into one CategoryScore per bank
// category plus the overall percentage. Only scale answers carry points;
// multiple-choice and boolean answers contribute zero.
func ScoreAnswers(test *models.DiagnosticTest, answers []models.Answer) (map[models.Category]*models.CategoryScore, int) {
	byQuestion := make(map[string]models.Answer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	scores := make(map[models.Category]*models.CategoryScore, len(test.Categories))
	totalRaw, totalMax := 0, 0
	for _, cat := range test.Categories {
		questions := QuestionsByCategory(test, cat)
		raw := 0
		maxScore := len(questions) * pointsPerQuestion
		for _, q := range questions {
			a, ok := byQuestion[q.ID]
			if !ok {
				continue
			}
			if n, ok := answerPoints(a.Value); ok {
				raw += n
			}
		}
		pct := percentage(raw, maxScore)
		scores[cat] = &models.CategoryScore{
			Category:   cat,
			Score:      raw,
			MaxScore:   maxScore,
			Percentage: pct,
			Level:      classifyLevel(pct),
		}
		totalRaw += raw
		totalMax += maxScore
	}
	return scores, percentage(totalRaw, totalMax)
}

// answerPoints extracts the point value of an answer. Non-numeric values
// (multiple choice, boolean) score zero.
func answerPoints(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// percentage rounds 100*raw/max to the nearest integer. An empty category
// is 0% by convention.
func percentage(raw, max int) int {
	if max <= 0 {
		return 0
	}
	return int(math.Round(float64(raw) / float64(max) * 100))
}

func classifyLevel(pct int) models.ScoreLevel {
	switch {
	case pct < 60:
		return models.LevelLow
	case pct < 80:
		return models.LevelModerate
	default:
		return models.LevelHigh
	}
}
