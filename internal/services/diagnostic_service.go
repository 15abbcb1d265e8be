package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/growthlab/diagnostic/internal/models"
)

// ResultStore abstracts persistence for completed diagnostic results.
type ResultStore interface {
	AddResult(r *models.DiagnosticResult) error
	ListResultsByUser(userID string) ([]*models.DiagnosticResult, error)
}

// DiagnosticService assembles diagnostic results and hands them to the
// result store. Scoring and recommendation generation are pure; only the
// save step touches a collaborator and only the save step retries.
type DiagnosticService struct {
	store        ResultStore
	test         *models.DiagnosticTest
	now          func() time.Time
	idGenerator  func() string
	saveAttempts int
	retryDelay   time.Duration
}

func NewDiagnosticService(store ResultStore) *DiagnosticService {
	return &DiagnosticService{
		store:        store,
		test:         PersonalGrowthTest(),
		now:          func() time.Time { return time.Now().UTC() },
		idGenerator:  func() string { return shortID(12) },
		saveAttempts: 3,
		retryDelay:   200 * time.Millisecond,
	}
}

func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

// Test returns the assessment this service scores against.
func (s *DiagnosticService) Test() *models.DiagnosticTest {
	return s.test
}

// ComputeResult runs the scorer and the recommendation generator over the
// answer set and stamps the completion time. The returned record is immutable
// from the caller's point of view.
func (s *DiagnosticService) ComputeResult(userID, testID string, answers []models.Answer) (*models.DiagnosticResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewInvalidError("user id required")
	}
	if strings.TrimSpace(testID) == "" {
		testID = s.test.ID
	}
	if len(s.test.Questions) == 0 || len(s.test.Categories) == 0 {
		return nil, NewInternalError("question bank is empty")
	}

	scores, overall := ScoreAnswers(s.test, answers)
	recs := GenerateRecommendations(s.test, scores)

	return &models.DiagnosticResult{
		ID:              s.idGenerator(),
		UserID:          userID,
		TestID:          testID,
		Answers:         append([]models.Answer(nil), answers...),
		Scores:          scores,
		OverallScore:    overall,
		Recommendations: recs,
		CompletedAt:     s.now(),
	}, nil
}

// SaveResult appends the result to the store. Transient store failures are
// retried with a short backoff under the caller's context; anything else
// surfaces immediately.
func (s *DiagnosticService) SaveResult(ctx context.Context, r *models.DiagnosticResult) error {
	if r == nil {
		return NewInvalidError("result required")
	}
	var lastErr error
	for attempt := 0; attempt < s.saveAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.retryDelay * time.Duration(attempt)):
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.store.AddResult(r)
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

// ResultsForUser returns the user's saved results in completion order.
func (s *DiagnosticService) ResultsForUser(userID string) ([]*models.DiagnosticResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewInvalidError("user id required")
	}
	return s.store.ListResultsByUser(userID)
}
