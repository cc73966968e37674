// Package advisory maps a predicted disease class to a treatment suggestion.
package advisory

import "strings"

const (
	HealthyAdvice = "Great! Your plant appears to be healthy. Continue regular care and monitoring."
	DefaultAdvice = "Consult with a local agricultural extension office for specific treatment recommendations."
)

type rule struct {
	keyword string
	advice  string
}

// Checked in order; the first keyword contained in the class wins.
var rules = []rule{
	{"scab", "Remove infected leaves and apply fungicide. Ensure good air circulation."},
	{"rot", "Remove infected parts immediately. Reduce watering and improve drainage. Apply copper-based fungicide."},
	{"rust", "Remove infected leaves. Apply fungicide and ensure plants are not overcrowded."},
	{"blight", "Remove and destroy infected plants. Apply fungicide preventatively. Avoid overhead watering."},
	{"mildew", "Improve air circulation. Apply sulfur-based or neem oil fungicide. Water at base of plants."},
	{"spot", "Remove infected leaves. Apply copper-based bactericide or fungicide. Practice crop rotation."},
	{"mold", "Improve ventilation. Reduce humidity. Apply fungicide if necessary."},
	{"virus", "Remove and destroy infected plants to prevent spread. Control insect vectors. No cure available."},
	{"mites", "Spray with water to remove mites. Apply insecticidal soap or neem oil. Introduce predatory mites."},
}

// Suggestion returns the advice for a disease class name such as "Apple___Black_rot".
func Suggestion(className string) string {
	lower := strings.ToLower(className)

	if strings.Contains(lower, "healthy") {
		return HealthyAdvice
	}

	for _, r := range rules {
		if strings.Contains(lower, r.keyword) {
			return r.advice
		}
	}

	return DefaultAdvice
}
