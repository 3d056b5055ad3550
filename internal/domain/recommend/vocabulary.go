package recommend

import "strings"

// The trigger vocabulary is kept as plain data so the inference rules
// can be unit tested and extended without touching the scorer.

// eventTypeTerms are occasion words recognized in event text.
var eventTypeTerms = []string{
	"wedding", "corporate", "conference", "birthday", "gala",
	"celebration", "meeting", "party", "workshop", "seminar",
}

// supplierNeedTerms are service words recognized in event text.
var supplierNeedTerms = []string{
	"catering", "food", "decor", "decoration", "audio",
	"visual", "sound", "video", "lighting", "venue", "location",
	"transportation", "photography", "printing", "staffing",
	"entertainment", "music", "flowers",
}

// defaultKeywords guarantee keyword scoring never sees an empty set.
var defaultKeywords = []string{"event", "professional"}

// categoryRule maps trigger substrings to one supplier category.
// Rules are independent; any number of them may fire for one event.
type categoryRule struct {
	category string
	triggers []string
}

var categoryRules = []categoryRule{
	{category: "Catering", triggers: []string{"food", "meal", "dinner", "lunch"}},
	{category: "Decor", triggers: []string{"decor", "decoration", "design", "flowers"}},
	{category: "Audio/Visual", triggers: []string{"sound", "audio", "music", "lighting", "visual", "video"}},
	{category: "Venue", triggers: []string{"venue", "location", "space", "hall"}},
	{category: "Transportation", triggers: []string{"transport", "travel", "car"}},
	{category: "Photography", triggers: []string{"photo", "picture", "image"}},
	{category: "Printing", triggers: []string{"print", "material", "banner", "program"}},
	{category: "Staffing", triggers: []string{"staff", "personnel", "waiter", "service"}},
}

// defaultCategories cover sparse event text so category scoring is not
// trivially zero for every candidate.
var defaultCategories = []string{"Catering", "Venue", "Decor", "Audio/Visual"}

// ExtractKeywords returns every vocabulary term contained in the
// case-folded event name and description. Matching is substring
// containment, not whole words. When nothing matches, a fixed
// two-keyword default is returned.
func ExtractKeywords(name, description string) []string {
	combined := strings.ToLower(name + " " + description)

	var keywords []string
	for _, term := range eventTypeTerms {
		if strings.Contains(combined, term) {
			keywords = append(keywords, term)
		}
	}
	for _, term := range supplierNeedTerms {
		if strings.Contains(combined, term) {
			keywords = append(keywords, term)
		}
	}

	if len(keywords) == 0 {
		keywords = append(keywords, defaultKeywords...)
	}
	return keywords
}

// RelevantCategories returns the supplier categories whose trigger rules
// fire on the case-folded event text, falling back to a fixed set of
// four common categories when no rule fires.
func RelevantCategories(name, description string) []string {
	combined := strings.ToLower(name + " " + description)

	var categories []string
	for _, rule := range categoryRules {
		for _, trigger := range rule.triggers {
			if strings.Contains(combined, trigger) {
				categories = append(categories, rule.category)
				break
			}
		}
	}

	if len(categories) == 0 {
		categories = append(categories, defaultCategories...)
	}
	return categories
}
