package advisory

import (
	"strings"
	"testing"
)

func TestSuggestion(t *testing.T) {
	tests := []struct {
		class    string
		contains string
	}{
		{"Tomato___healthy", HealthyAdvice},
		{"Apple___Black_rot", "Reduce watering and improve drainage"},
		{"Unknown___Weird_thing", DefaultAdvice},
		{"Apple___Apple_scab", "Ensure good air circulation"},
		{"Corn_(maize)___Common_rust_", "not overcrowded"},
		{"Potato___Late_blight", "Avoid overhead watering"},
		{"Squash___Powdery_mildew", "sulfur-based"},
		{"Tomato___Leaf_Mold", "Reduce humidity"},
		{"Tomato___Tomato_mosaic_virus", "No cure available"},
		{"Peach___Bacterial_spot", "crop rotation"},
	}

	for _, tt := range tests {
		got := Suggestion(tt.class)
		if !strings.Contains(got, tt.contains) {
			t.Errorf("Suggestion(%q) = %q, expected it to contain %q", tt.class, got, tt.contains)
		}
	}
}

func TestSuggestion_KeywordOrder(t *testing.T) {
	// "Strawberry___Leaf_scab" and the spider mite class also contain later
	// keywords; the earlier rule must win.
	if got := Suggestion("Strawberry___Leaf_scab"); got != rules[0].advice {
		t.Errorf("scab class got %q", got)
	}
	if got := Suggestion("Tomato___Spider_mites Two-spotted_spider_mite"); got != Suggestion("x_spot") {
		t.Errorf("mites class should resolve to the spot advice, got %q", got)
	}
	if got := Suggestion("Grape___Leaf_blight_(Isariopsis_Leaf_Spot)"); got != Suggestion("blight") {
		t.Errorf("blight must precede spot, got %q", got)
	}
}

func TestSuggestion_HealthyBeatsKeywords(t *testing.T) {
	if got := Suggestion("ROT_BUT_HEALTHY"); got != HealthyAdvice {
		t.Errorf("got %q, expected healthy advice", got)
	}
}
