package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/growthlab/diagnostic/internal/models"
)

func TestExportAnswersCSV(t *testing.T) {
	svc := newTestDiagnosticService(&stubResultStore{})
	result, err := svc.ComputeResult("u1", "t1", answersForAll(t, 3))
	if err != nil {
		t.Fatalf("ComputeResult: %v", err)
	}

	b, err := ExportAnswersCSV([]*models.DiagnosticResult{result})
	if err != nil {
		t.Fatalf("ExportAnswersCSV returned error: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 1+len(PersonalGrowthTest().Questions) {
		t.Fatalf("rows = %d, want header plus one per answer", len(rows))
	}
	if rows[0][0] != "result_id" || rows[0][3] != "value" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	first := rows[1]
	if first[0] != result.ID || first[2] != "eq1" || first[3] != "3" {
		t.Fatalf("unexpected first row: %v", first)
	}
}

func TestExportScoresCSV(t *testing.T) {
	svc := newTestDiagnosticService(&stubResultStore{})
	result, err := svc.ComputeResult("u1", "t1", answersForAll(t, 3))
	if err != nil {
		t.Fatalf("ComputeResult: %v", err)
	}

	b, err := ExportScoresCSV([]*models.DiagnosticResult{result})
	if err != nil {
		t.Fatalf("ExportScoresCSV returned error: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header plus one result", len(rows))
	}
	wantCols := 2 + len(models.Categories()) + 1
	if len(rows[0]) != wantCols {
		t.Fatalf("header cols = %d, want %d", len(rows[0]), wantCols)
	}
	row := rows[1]
	if row[0] != result.ID {
		t.Fatalf("result id = %q", row[0])
	}
	// 3 of 5 on every question puts every category and the overall at 60
	for i := 2; i < wantCols; i++ {
		if row[i] != "60" {
			t.Fatalf("col %d (%s) = %q, want 60", i, rows[0][i], row[i])
		}
	}
}
