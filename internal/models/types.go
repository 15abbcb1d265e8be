package models

import "time"

// Category partitions the question bank into the fixed set of life areas
// covered by the assessment.
type Category string

const (
	CategoryEmotional     Category = "emotional"
	CategorySocial        Category = "social"
	CategoryCareer        Category = "career"
	CategoryHealth        Category = "health"
	CategoryMindfulness   Category = "mindfulness"
	CategoryRelationships Category = "relationships"

	// CategoryGeneral is only used by the fallback recommendation; it never
	// appears in the question bank.
	CategoryGeneral Category = "general"
)

// Categories returns the category enumeration in bank order.
func Categories() []Category {
	return []Category{
		CategoryEmotional,
		CategorySocial,
		CategoryCareer,
		CategoryHealth,
		CategoryMindfulness,
		CategoryRelationships,
	}
}

type QuestionType string

const (
	QuestionScale          QuestionType = "scale"
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionBoolean        QuestionType = "boolean"
)

// ScaleLabels captures the endpoint labels shown for a scale question.
type ScaleLabels struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// Question is a single entry of the question bank. Questions are defined at
// load time and never mutated.
type Question struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Category    Category     `json:"category"`
	Type        QuestionType `json:"type"`
	Options     []string     `json:"options,omitempty"`
	ScaleMin    int          `json:"scale_min,omitempty"`
	ScaleMax    int          `json:"scale_max,omitempty"`
	ScaleLabels *ScaleLabels `json:"scale_labels,omitempty"`
}

// Answer records the respondent's value for one question. Values are numeric
// for scale questions, strings for multiple choice and booleans for boolean
// questions.
type Answer struct {
	QuestionID  string    `json:"question_id"`
	Value       any       `json:"value"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type ScoreLevel string

const (
	LevelLow      ScoreLevel = "low"
	LevelModerate ScoreLevel = "moderate"
	LevelHigh     ScoreLevel = "high"
)

// CategoryScore is the derived score for one category. Never mutated after
// computation.
type CategoryScore struct {
	Category   Category   `json:"category"`
	Score      int        `json:"score"`
	MaxScore   int        `json:"max_score"`
	Percentage int        `json:"percentage"`
	Level      ScoreLevel `json:"level"`
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Resource points at supporting material attached to a recommendation.
type Resource struct {
	Title string `json:"title"`
	Type  string `json:"type"` // article, video, book or exercise
	URL   string `json:"url,omitempty"`
}

// Recommendation is a templated growth suggestion selected by category and
// score bracket. All content is static; nothing is derived from answer text.
type Recommendation struct {
	ID              string     `json:"id"`
	Category        Category   `json:"category"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	ActionItems     []string   `json:"action_items"`
	Priority        Priority   `json:"priority"`
	EstimatedImpact string     `json:"estimated_impact"`
	Resources       []Resource `json:"resources"`
}

// DiagnosticTest is a fixed assessment definition: an ordered question bank
// plus presentation metadata.
type DiagnosticTest struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	EstimatedTime string      `json:"estimated_time"`
	Categories    []Category  `json:"categories"`
	Questions     []*Question `json:"questions"`
}

// DiagnosticResult is the immutable record produced when a test is completed.
type DiagnosticResult struct {
	ID              string                      `json:"id"`
	UserID          string                      `json:"user_id"`
	TestID          string                      `json:"test_id"`
	Answers         []Answer                    `json:"answers"`
	Scores          map[Category]*CategoryScore `json:"scores"`
	OverallScore    int                         `json:"overall_score"`
	Recommendations []Recommendation            `json:"recommendations"`
	CompletedAt     time.Time                   `json:"completed_at"`
}

// User is an account on the platform. PII should be minimized.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	PassHash  []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
