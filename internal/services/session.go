package services

import (
	"context"

	"github.com/growthlab/diagnostic/internal/models"
)

type SessionState string

const (
	StateIntro      SessionState = "intro"
	StateTaking     SessionState = "taking"
	StateProcessing SessionState = "processing"
	StateResults    SessionState = "results"
)

// AssessmentSession drives one user through the
// intro -> taking -> processing -> results flow. It exclusively owns its
// answer collector, so no locking is needed; the interaction model allows a
// single in-flight submission per session.
type AssessmentSession struct {
	userID    string
	svc       *DiagnosticService
	collector *AnswerCollector
	state     SessionState
	result    *models.DiagnosticResult
}

func NewAssessmentSession(svc *DiagnosticService, userID string) *AssessmentSession {
	return &AssessmentSession{
		userID:    userID,
		svc:       svc,
		collector: NewAnswerCollector(svc.Test()),
		state:     StateIntro,
	}
}

func (s *AssessmentSession) State() SessionState { return s.state }

// Collector exposes the session's answer collector for progress display.
func (s *AssessmentSession) Collector() *AnswerCollector { return s.collector }

// Start moves the session from the intro screen into the questionnaire.
func (s *AssessmentSession) Start() error {
	if s.state != StateIntro {
		return NewConflictError("session already started")
	}
	s.state = StateTaking
	return nil
}

// Record stores an answer while the questionnaire is in progress.
func (s *AssessmentSession) Record(questionID string, value any) error {
	if s.state != StateTaking {
		return NewConflictError("session is not taking answers")
	}
	return s.collector.Record(questionID, value)
}

// Submit computes and persists the result. On failure the session reverts to
// taking with the answers intact, so the user can retry without re-answering.
func (s *AssessmentSession) Submit(ctx context.Context) (*models.DiagnosticResult, error) {
	if s.state != StateTaking {
		return nil, NewConflictError("nothing to submit")
	}
	s.state = StateProcessing

	result, err := s.svc.ComputeResult(s.userID, s.svc.Test().ID, s.collector.Answers())
	if err != nil {
		s.state = StateTaking
		return nil, err
	}
	if err := s.svc.SaveResult(ctx, result); err != nil {
		s.state = StateTaking
		return nil, err
	}
	s.result = result
	s.state = StateResults
	return result, nil
}

// Result returns the completed result, once the session reached it.
func (s *AssessmentSession) Result() *models.DiagnosticResult { return s.result }

// Retake returns to the intro screen and clears the collector.
func (s *AssessmentSession) Retake() error {
	if s.state != StateResults {
		return NewConflictError("no completed result to retake from")
	}
	s.collector.Reset()
	s.result = nil
	s.state = StateIntro
	return nil
}

// Abandon discards the in-progress attempt with no side effect.
func (s *AssessmentSession) Abandon() {
	s.collector.Reset()
	s.result = nil
	s.state = StateIntro
}
