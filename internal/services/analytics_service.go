package services

import (
	"sort"

	"github.com/growthlab/diagnostic/internal/models"
)

type AnalyticsStore interface {
	ListResultsByUser(userID string) ([]*models.DiagnosticResult, error)
}

// AnalyticsService summarizes a user's saved results: per-category trend,
// internal consistency of each category's items, and completions over time.
type AnalyticsService struct {
	store AnalyticsStore
	test  *models.DiagnosticTest
}

type CategoryAnalytics struct {
	Category          models.Category   `json:"category"`
	AveragePercentage int               `json:"average_percentage"`
	LatestPercentage  int               `json:"latest_percentage"`
	LatestLevel       models.ScoreLevel `json:"latest_level"`
	Alpha             float64           `json:"alpha"`
}

type AnalyticsTimeseries struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type AnalyticsSummary struct {
	UserID       string                `json:"user_id"`
	TotalResults int                   `json:"total_results"`
	Categories   []CategoryAnalytics   `json:"categories"`
	Timeseries   []AnalyticsTimeseries `json:"timeseries"`
}

func NewAnalyticsService(store AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{store: store, test: PersonalGrowthTest()}
}

func (s *AnalyticsService) Summary(userID string) (*AnalyticsSummary, error) {
	if userID == "" {
		return nil, NewInvalidError("user id required")
	}
	results, err := s.store.ListResultsByUser(userID)
	if err != nil {
		return nil, err
	}

	categories := make([]CategoryAnalytics, 0, len(s.test.Categories))
	for _, cat := range s.test.Categories {
		ca := CategoryAnalytics{Category: cat}
		sum, n := 0, 0
		for _, r := range results {
			cs := r.Scores[cat]
			if cs == nil {
				continue
			}
			sum += cs.Percentage
			n++
			ca.LatestPercentage = cs.Percentage
			ca.LatestLevel = cs.Level
		}
		if n > 0 {
			ca.AveragePercentage = (sum + n/2) / n
		}
		ca.Alpha = categoryAlpha(QuestionsByCategory(s.test, cat), results)
		categories = append(categories, ca)
	}

	countsByDay := map[string]int{}
	for _, r := range results {
		countsByDay[r.CompletedAt.UTC().Format("2006-01-02")]++
	}

	return &AnalyticsSummary{
		UserID:       userID,
		TotalResults: len(results),
		Categories:   categories,
		Timeseries:   buildTimeseries(countsByDay),
	}, nil
}

// categoryAlpha computes Cronbach's alpha for one category's items across the
// user's results. Only results that answered every item of the category
// contribute a row.
func categoryAlpha(questions []*models.Question, results []*models.DiagnosticResult) float64 {
	rows := make([][]float64, 0, len(results))
	for _, r := range results {
		byQuestion := map[string]float64{}
		for _, a := range r.Answers {
			if n, ok := answerPoints(a.Value); ok {
				byQuestion[a.QuestionID] = float64(n)
			}
		}
		row := make([]float64, 0, len(questions))
		complete := true
		for _, q := range questions {
			v, ok := byQuestion[q.ID]
			if !ok {
				complete = false
				break
			}
			row = append(row, v)
		}
		if complete && len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return cronbachAlpha(rows)
}

// cronbachAlpha measures internal consistency over a [nResults][nItems]
// matrix, using population variance throughout so perfectly correlated items
// yield 1.0. Degenerate inputs return 0.
func cronbachAlpha(matrix [][]float64) float64 {
	n := len(matrix)
	if n == 0 {
		return 0
	}
	k := len(matrix[0])
	if k < 2 {
		return 0
	}
	for _, row := range matrix {
		if len(row) != k {
			return 0
		}
	}

	totals := make([]float64, n)
	sumItemVars := 0.0
	for j := 0; j < k; j++ {
		col := make([]float64, n)
		for i := 0; i < n; i++ {
			col[i] = matrix[i][j]
			totals[i] += matrix[i][j]
		}
		sumItemVars += populationVariance(col)
	}
	totalVar := populationVariance(totals)
	if totalVar == 0 {
		return 0
	}

	kf := float64(k)
	alpha := (kf / (kf - 1.0)) * (1.0 - sumItemVars/totalVar)
	if alpha < 0 {
		return 0
	}
	if alpha > 1 {
		return 1
	}
	return alpha
}

func populationVariance(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= n
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / n
}

func buildTimeseries(counts map[string]int) []AnalyticsTimeseries {
	days := make([]string, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	sort.Strings(days)
	out := make([]AnalyticsTimeseries, 0, len(days))
	for _, d := range days {
		out = append(out, AnalyticsTimeseries{Date: d, Count: counts[d]})
	}
	return out
}
