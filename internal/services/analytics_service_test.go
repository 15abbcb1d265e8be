package services

import (
	"context"
	"testing"

	"github.com/growthlab/diagnostic/internal/models"
)

func TestAnalyticsSummary(t *testing.T) {
	store := &stubResultStore{}
	diag := newTestDiagnosticService(store)

	first, err := diag.ComputeResult("u1", "t1", answersForAll(t, 1))
	if err != nil {
		t.Fatalf("ComputeResult: %v", err)
	}
	second, err := diag.ComputeResult("u1", "t1", answersForAll(t, 5))
	if err != nil {
		t.Fatalf("ComputeResult: %v", err)
	}
	for _, r := range []*models.DiagnosticResult{first, second} {
		if err := diag.SaveResult(context.Background(), r); err != nil {
			t.Fatalf("SaveResult: %v", err)
		}
	}

	svc := NewAnalyticsService(store)
	summary, err := svc.Summary("u1")
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.TotalResults != 2 {
		t.Fatalf("total results = %d, want 2", summary.TotalResults)
	}
	if len(summary.Categories) != len(models.Categories()) {
		t.Fatalf("categories = %d, want %d", len(summary.Categories), len(models.Categories()))
	}
	for _, ca := range summary.Categories {
		if ca.AveragePercentage != 60 {
			t.Fatalf("category %s average = %d, want 60", ca.Category, ca.AveragePercentage)
		}
		if ca.LatestPercentage != 100 || ca.LatestLevel != models.LevelHigh {
			t.Fatalf("category %s latest = %d/%s, want 100/high", ca.Category, ca.LatestPercentage, ca.LatestLevel)
		}
		// constant rows per result are perfectly correlated items
		if ca.Alpha != 1.0 {
			t.Fatalf("category %s alpha = %v, want 1.0", ca.Category, ca.Alpha)
		}
	}
	if len(summary.Timeseries) != 1 {
		t.Fatalf("timeseries = %d, want 1 day", len(summary.Timeseries))
	}
	if summary.Timeseries[0].Date != "2026-03-01" || summary.Timeseries[0].Count != 2 {
		t.Fatalf("timeseries[0] = %+v", summary.Timeseries[0])
	}
}

func TestAnalyticsSummaryEmpty(t *testing.T) {
	svc := NewAnalyticsService(&stubResultStore{})
	summary, err := svc.Summary("u1")
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.TotalResults != 0 || len(summary.Timeseries) != 0 {
		t.Fatalf("unexpected summary for empty store: %+v", summary)
	}
	for _, ca := range summary.Categories {
		if ca.AveragePercentage != 0 || ca.Alpha != 0 {
			t.Fatalf("category %s must be zeroed: %+v", ca.Category, ca)
		}
	}
}

func TestCronbachAlpha(t *testing.T) {
	cases := []struct {
		name   string
		matrix [][]float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single item", [][]float64{{3}, {4}}, 0},
		{"no variance", [][]float64{{3, 3}, {3, 3}}, 0},
		{"perfectly correlated", [][]float64{{1, 1, 1, 1}, {5, 5, 5, 5}}, 1},
		{"ragged rows", [][]float64{{1, 2}, {3}}, 0},
	}
	for _, c := range cases {
		if got := cronbachAlpha(c.matrix); got != c.want {
			t.Fatalf("%s: alpha = %v, want %v", c.name, got, c.want)
		}
	}
}
