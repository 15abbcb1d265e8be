package services

import "github.com/growthlab/diagnostic/internal/models"

// Recommendation templates keyed by category. Template IDs are fixed so that
// generation stays deterministic. Content is static; nothing is derived from
// answer text.
var lowScoreTemplates = map[models.Category]models.Recommendation{
	models.CategoryEmotional: {
		ID:       "rec-emotional-low",
		Category: models.CategoryEmotional,
		Title:    "Develop Emotional Intelligence",
		Description: "Your emotional awareness and regulation could benefit from focused development. " +
			"Building these skills will improve your overall well-being and relationships.",
		ActionItems: []string{
			"Practice daily emotion journaling for 5 minutes",
			"Try the 'STOP' technique when feeling overwhelmed",
			"Learn to identify emotional triggers",
			"Practice deep breathing exercises",
		},
		Priority:        models.PriorityHigh,
		EstimatedImpact: "Significant improvement in stress management and relationships within 4-6 weeks",
		Resources: []models.Resource{
			{Title: "Emotional Intelligence 2.0", Type: "book", URL: "https://example.com/ei-book"},
			{Title: "5-Minute Mindfulness Meditation", Type: "exercise"},
		},
	},
	models.CategorySocial: {
		ID:       "rec-social-low",
		Category: models.CategorySocial,
		Title:    "Enhance Social Communication Skills",
		Description: "Improving your social skills will help you build stronger relationships " +
			"and feel more confident in social situations.",
		ActionItems: []string{
			"Practice active listening in conversations",
			"Join a social group or club aligned with your interests",
			"Set a goal to have one meaningful conversation daily",
			"Learn about non-verbal communication cues",
		},
		Priority:        models.PriorityHigh,
		EstimatedImpact: "Noticeable improvement in social confidence within 3-4 weeks",
		Resources: []models.Resource{
			{Title: "How to Win Friends and Influence People", Type: "book"},
			{Title: "Active Listening Techniques", Type: "article"},
		},
	},
	models.CategoryHealth: {
		ID:       "rec-health-low",
		Category: models.CategoryHealth,
		Title:    "Build Healthy Lifestyle Habits",
		Description: "Your physical health foundation needs attention. Small, consistent changes " +
			"can lead to significant improvements in energy and well-being.",
		ActionItems: []string{
			"Start with 10 minutes of daily movement",
			"Establish a consistent sleep schedule",
			"Plan and prep healthy meals weekly",
			"Create a stress management routine",
		},
		Priority:        models.PriorityHigh,
		EstimatedImpact: "Increased energy and better mood within 2-3 weeks",
		Resources: []models.Resource{
			{Title: "Atomic Habits", Type: "book"},
			{Title: "7-Minute Workout", Type: "exercise"},
		},
	},
}

var moderateScoreTemplates = map[models.Category]models.Recommendation{
	models.CategoryCareer: {
		ID:       "rec-career-moderate",
		Category: models.CategoryCareer,
		Title:    "Accelerate Career Development",
		Description: "You have a solid foundation but can benefit from more strategic career " +
			"planning and skill development.",
		ActionItems: []string{
			"Set specific, measurable career goals for the next year",
			"Identify 2-3 key skills to develop",
			"Seek feedback from mentors or supervisors",
			"Network with professionals in your field",
		},
		Priority:        models.PriorityMedium,
		EstimatedImpact: "Clear career direction and new opportunities within 2-3 months",
		Resources: []models.Resource{
			{Title: "What Color Is Your Parachute?", Type: "book"},
			{Title: "LinkedIn Learning Courses", Type: "article"},
		},
	},
	models.CategoryMindfulness: {
		ID:          "rec-mindfulness-moderate",
		Category:    models.CategoryMindfulness,
		Title:       "Deepen Mindfulness Practice",
		Description: "You show good self-awareness but could benefit from more consistent mindfulness practices.",
		ActionItems: []string{
			"Establish a daily 10-minute meditation routine",
			"Practice mindful eating during one meal per day",
			"Use mindfulness apps for guided sessions",
			"Schedule weekly self-reflection time",
		},
		Priority:        models.PriorityMedium,
		EstimatedImpact: "Enhanced focus and emotional balance within 3-4 weeks",
		Resources: []models.Resource{
			{Title: "Headspace App", Type: "article"},
			{Title: "The Power of Now", Type: "book"},
		},
	},
}

// fallbackRecommendation fires only when no category-specific recommendation
// was generated.
var fallbackRecommendation = models.Recommendation{
	ID:       "rec-general",
	Category: models.CategoryGeneral,
	Title:    "Continue Your Growth Journey",
	Description: "You're doing well across most areas! Focus on maintaining your current practices " +
		"while exploring new growth opportunities.",
	ActionItems: []string{
		"Set new challenging but achievable goals",
		"Explore areas outside your comfort zone",
		"Share your knowledge and mentor others",
		"Celebrate your progress and achievements",
	},
	Priority:        models.PriorityLow,
	EstimatedImpact: "Sustained growth and increased fulfillment",
	Resources: []models.Resource{
		{Title: "The 7 Habits of Highly Effective People", Type: "book"},
	},
}

// GenerateRecommendations evaluates the template table per category in bank
// order: below 60% emits the category's high-priority template, 60-79% the
// medium-priority one, 80% and up nothing. If no template fires at all, the
// single general fallback is emitted instead. Pure lookup; cannot fail given
// valid scores.
func GenerateRecommendations(test *models.DiagnosticTest, scores map[models.Category]*models.CategoryScore) []models.Recommendation {
	out := []models.Recommendation{}
	for _, cat := range test.Categories {
		cs := scores[cat]
		if cs == nil {
			continue
		}
		switch {
		case cs.Percentage < 60:
			if rec, ok := lowScoreTemplates[cat]; ok {
				out = append(out, rec)
			}
		case cs.Percentage < 80:
			if rec, ok := moderateScoreTemplates[cat]; ok {
				out = append(out, rec)
			}
		}
	}
	if len(out) == 0 {
		out = append(out, fallbackRecommendation)
	}
	return out
}
