package services

import "github.com/growthlab/diagnostic/internal/models"

// The built-in Personal Growth Assessment. The bank is static configuration:
// same questions, same order, every run.
var personalGrowthTest = &models.DiagnosticTest{
	ID:    "personal-growth-assessment",
	Title: "Personal Growth Assessment",
	Description: "A comprehensive evaluation of your current state across key life areas " +
		"to provide personalized growth recommendations.",
	EstimatedTime: "10-15 minutes",
	Categories:    models.Categories(),
	Questions: []*models.Question{
		scaleQuestion("eq1", "I am aware of my emotions as they occur", models.CategoryEmotional, "Never", "Always"),
		scaleQuestion("eq2", "I can manage my emotions effectively during stressful situations", models.CategoryEmotional, "Never", "Always"),
		scaleQuestion("eq3", "I understand how my emotions affect others", models.CategoryEmotional, "Never", "Always"),
		scaleQuestion("eq4", "I can bounce back quickly from setbacks", models.CategoryEmotional, "Never", "Always"),

		scaleQuestion("social1", "I feel comfortable in social situations", models.CategorySocial, "Never", "Always"),
		scaleQuestion("social2", "I can effectively communicate my ideas to others", models.CategorySocial, "Never", "Always"),
		scaleQuestion("social3", "I actively listen when others are speaking", models.CategorySocial, "Never", "Always"),
		scaleQuestion("social4", "I can resolve conflicts constructively", models.CategorySocial, "Never", "Always"),

		scaleQuestion("career1", "I have clear goals for my career development", models.CategoryCareer, "Strongly Disagree", "Strongly Agree"),
		scaleQuestion("career2", "I actively seek opportunities to learn new skills", models.CategoryCareer, "Never", "Always"),
		scaleQuestion("career3", "I feel satisfied with my current work-life balance", models.CategoryCareer, "Never", "Always"),
		scaleQuestion("career4", "I take initiative in my professional responsibilities", models.CategoryCareer, "Never", "Always"),

		scaleQuestion("health1", "I maintain a regular exercise routine", models.CategoryHealth, "Never", "Always"),
		scaleQuestion("health2", "I get adequate sleep most nights", models.CategoryHealth, "Never", "Always"),
		scaleQuestion("health3", "I eat a balanced and nutritious diet", models.CategoryHealth, "Never", "Always"),
		scaleQuestion("health4", "I effectively manage stress in my daily life", models.CategoryHealth, "Never", "Always"),

		scaleQuestion("mindful1", "I practice mindfulness or meditation regularly", models.CategoryMindfulness, "Never", "Always"),
		scaleQuestion("mindful2", "I am present and focused during daily activities", models.CategoryMindfulness, "Never", "Always"),
		scaleQuestion("mindful3", "I regularly reflect on my personal growth", models.CategoryMindfulness, "Never", "Always"),
		scaleQuestion("mindful4", "I am aware of my personal values and live by them", models.CategoryMindfulness, "Never", "Always"),

		scaleQuestion("rel1", "I maintain meaningful relationships with family and friends", models.CategoryRelationships, "Never", "Always"),
		scaleQuestion("rel2", "I can express my needs and boundaries clearly", models.CategoryRelationships, "Never", "Always"),
		scaleQuestion("rel3", "I show empathy and understanding toward others", models.CategoryRelationships, "Never", "Always"),
		scaleQuestion("rel4", "I invest time and energy in building relationships", models.CategoryRelationships, "Never", "Always"),
	},
}

func scaleQuestion(id, text string, cat models.Category, minLabel, maxLabel string) *models.Question {
	return &models.Question{
		ID:          id,
		Text:        text,
		Category:    cat,
		Type:        models.QuestionScale,
		ScaleMin:    1,
		ScaleMax:    5,
		ScaleLabels: &models.ScaleLabels{Min: minLabel, Max: maxLabel},
	}
}

// PersonalGrowthTest returns the built-in assessment definition. Callers must
// treat the returned test as read-only.
func PersonalGrowthTest() *models.DiagnosticTest {
	return personalGrowthTest
}

// FindQuestion looks a question up by ID, or returns nil.
func FindQuestion(test *models.DiagnosticTest, id string) *models.Question {
	for _, q := range test.Questions {
		if q.ID == id {
			return q
		}
	}
	return nil
}

// QuestionsByCategory returns the bank questions of one category, in bank order.
func QuestionsByCategory(test *models.DiagnosticTest, cat models.Category) []*models.Question {
	out := make([]*models.Question, 0, len(test.Questions))
	for _, q := range test.Questions {
		if q.Category == cat {
			out = append(out, q)
		}
	}
	return out
}
