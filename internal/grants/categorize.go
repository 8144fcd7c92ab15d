// Package grants analyzes a foundation's historical grant list into a
// reusable pattern profile: size tiers, categories, geography, and style.
package grants

import "strings"

// Canonical grant purpose categories.
const (
	CategoryEducation     = "education"
	CategoryHealth        = "health"
	CategoryArtsCulture   = "arts_culture"
	CategoryEnvironment   = "environment"
	CategoryHumanServices = "human_services"
	CategoryInternational = "international"
	CategoryResearch      = "research"
	CategoryOther         = "other"
)

// Categories lists the canonical categories in stable order.
var Categories = []string{
	CategoryEducation,
	CategoryHealth,
	CategoryArtsCulture,
	CategoryEnvironment,
	CategoryHumanServices,
	CategoryInternational,
	CategoryResearch,
	CategoryOther,
}

// categoryKeywords drives purpose-text categorization. The first category
// whose keyword list hits wins, so more specific categories come first.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{CategoryResearch, []string{"research", "study", "studies", "laboratory", "fellowship"}},
	{CategoryInternational, []string{"international", "global", "overseas", "refugee", "developing countries"}},
	{CategoryEducation, []string{"education", "school", "scholarship", "university", "college", "literacy", "student", "teacher", "stem"}},
	{CategoryHealth, []string{"health", "hospital", "medical", "clinic", "disease", "mental health", "wellness", "patient"}},
	{CategoryArtsCulture, []string{"arts", "art ", "museum", "theater", "theatre", "music", "cultural", "culture", "humanities", "orchestra"}},
	{CategoryEnvironment, []string{"environment", "conservation", "wildlife", "climate", "river", "watershed", "sustainab", "habitat"}},
	{CategoryHumanServices, []string{"human services", "food", "hunger", "housing", "homeless", "shelter", "family", "families", "youth", "community", "poverty", "social services"}},
}

// CategorizePurpose maps a grant's purpose text to one of the canonical
// categories via keyword match. Unmatched or empty text falls into "other".
func CategorizePurpose(purpose string) string {
	text := strings.ToLower(purpose)
	if strings.TrimSpace(text) == "" {
		return CategoryOther
	}
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				return entry.category
			}
		}
	}
	return CategoryOther
}
