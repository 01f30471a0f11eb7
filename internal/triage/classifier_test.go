package triage

import (
	"context"
	"testing"
)

func TestRuleClassifier_Classify(t *testing.T) {
	c := NewRuleClassifier(ClassifierConfig{})

	tests := []struct {
		name string
		rec  Record
		want RiskLevel
	}{
		{
			name: "immediate keyword in symptoms",
			rec:  Record{Symptoms: []string{"unconscious", "pale skin"}},
			want: RiskImmediate,
		},
		{
			name: "immediate keyword in notes",
			rec: Record{
				Symptoms: []string{"collapsed"},
				Notes:    "Patient found unresponsive by family.",
			},
			want: RiskImmediate,
		},
		{
			name: "high tier",
			rec:  Record{Symptoms: []string{"chest pain", "sweating"}},
			want: RiskHigh,
		},
		{
			name: "medium tier",
			rec:  Record{Symptoms: []string{"vomiting", "mild headache"}},
			want: RiskMedium,
		},
		{
			name: "no match falls back to low",
			rec:  Record{Symptoms: []string{"paper cut"}},
			want: RiskLow,
		},
		{
			name: "most severe tier wins",
			rec:  Record{Symptoms: []string{"severe bleeding", "deep cut"}},
			want: RiskImmediate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, confidence, err := c.Classify(context.Background(), &tt.rec)
			if err != nil {
				t.Fatalf("Classify() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
			if confidence < 0 || confidence > 1 {
				t.Errorf("Classify() confidence = %f, want within [0,1]", confidence)
			}
		})
	}
}

func TestRuleClassifier_Fallback(t *testing.T) {
	c := NewRuleClassifier(ClassifierConfig{Fallback: RiskMedium})

	got, confidence, err := c.Classify(context.Background(), &Record{Symptoms: []string{"paper cut"}})
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	if got != RiskMedium {
		t.Errorf("Classify() = %s, want MEDIUM fallback", got)
	}
	if confidence >= 0.5 {
		t.Errorf("fallback confidence = %f, want low", confidence)
	}
}

func TestRuleClassifier_Threshold(t *testing.T) {
	// With an unreachable threshold everything falls through
	c := NewRuleClassifier(ClassifierConfig{Threshold: 1.0})

	got, _, err := c.Classify(context.Background(), &Record{Symptoms: []string{"stroke"}})
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	if got != RiskLow {
		t.Errorf("Classify() with threshold 1.0 = %s, want LOW", got)
	}
}

func TestKeywordScore(t *testing.T) {
	keywords := []string{"chest pain", "confusion"}

	tests := []struct {
		text string
		want float64
	}{
		{"sudden chest pain and confusion", 1.0},
		{"chest pain only", 0.5},
		{"nothing relevant", 0.0},
	}

	for _, tt := range tests {
		if got := keywordScore(tt.text, keywords); got != tt.want {
			t.Errorf("keywordScore(%q) = %f, want %f", tt.text, got, tt.want)
		}
	}
}
