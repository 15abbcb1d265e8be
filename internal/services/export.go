package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/growthlab/diagnostic/internal/models"
)

// ExportAnswersCSV renders every answer of the given results as long-format
// rows, one answer per row.
func ExportAnswersCSV(results []*models.DiagnosticResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"result_id", "test_id", "question_id", "value", "submitted_at"})
	for _, r := range results {
		for _, a := range r.Answers {
			rec := []string{
				r.ID,
				r.TestID,
				a.QuestionID,
				answerCell(a.Value),
				a.SubmittedAt.UTC().Format(time.RFC3339),
			}
			if err := w.Write(rec); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExportScoresCSV renders one row per result with the category percentages in
// bank order plus the overall score.
func ExportScoresCSV(results []*models.DiagnosticResult) ([]byte, error) {
	cats := models.Categories()
	header := make([]string, 0, len(cats)+3)
	header = append(header, "result_id", "completed_at")
	for _, cat := range cats {
		header = append(header, string(cat))
	}
	header = append(header, "overall")

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write(header)
	for _, r := range results {
		row := make([]string, 0, len(header))
		row = append(row, r.ID, r.CompletedAt.UTC().Format(time.RFC3339))
		for _, cat := range cats {
			pct := 0
			if cs := r.Scores[cat]; cs != nil {
				pct = cs.Percentage
			}
			row = append(row, strconv.Itoa(pct))
		}
		row = append(row, strconv.Itoa(r.OverallScore))
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func answerCell(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
