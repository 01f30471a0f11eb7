package triage

import (
	"context"
	"strings"
)

// Classifier assigns a risk level to a patient record. The production
// system backs this with an ML model; the queue only cares about the
// (risk level, confidence) pair it produces.
type Classifier interface {
	// Classify analyzes a record and returns a risk level and a
	// confidence in [0,1].
	Classify(ctx context.Context, rec *Record) (RiskLevel, float64, error)
}

// ClassifierConfig contains configuration options for the rule-based
// classifier.
type ClassifierConfig struct {
	// Threshold is the minimum keyword score for a tier to match
	Threshold float64

	// Fallback is the risk level assigned when no tier matches.
	// Empty falls back to RiskLow.
	Fallback RiskLevel
}

// RuleClassifier is a keyword-matching classifier over a record's
// symptoms and clinical notes. It stands in for the ML model in local
// and test deployments.
type RuleClassifier struct {
	immediateKeywords []string
	highKeywords      []string
	mediumKeywords    []string
	threshold         float64
	fallback          RiskLevel
}

// NewRuleClassifier creates a rule-based classifier.
func NewRuleClassifier(config ClassifierConfig) *RuleClassifier {
	fallback := config.Fallback
	if fallback == "" {
		fallback = RiskLow
	}

	return &RuleClassifier{
		// Simplified keyword tiers - the real model is far richer
		immediateKeywords: []string{
			"not breathing", "cardiac arrest", "unconscious", "unresponsive",
			"severe bleeding", "stroke", "anaphylaxis", "overdose", "seizure",
		},
		highKeywords: []string{
			"chest pain", "difficulty breathing", "shortness of breath",
			"severe pain", "high fever", "head injury", "broken bone",
			"allergic reaction", "confusion",
		},
		mediumKeywords: []string{
			"vomiting", "dehydration", "abdominal pain", "deep cut",
			"burn", "dizziness", "persistent fever",
		},
		threshold: config.Threshold,
		fallback:  fallback,
	}
}

// Classify implements the Classifier interface.
func (c *RuleClassifier) Classify(_ context.Context, rec *Record) (RiskLevel, float64, error) {
	text := strings.ToLower(strings.Join(rec.Symptoms, " ") + " " + rec.Notes)

	// Check tiers from most to least severe; first match wins
	if score := keywordScore(text, c.immediateKeywords); score > c.threshold {
		return RiskImmediate, score, nil
	}
	if score := keywordScore(text, c.highKeywords); score > c.threshold {
		return RiskHigh, score, nil
	}
	if score := keywordScore(text, c.mediumKeywords); score > c.threshold {
		return RiskMedium, score, nil
	}

	return c.fallback, 0.3, nil // Low confidence
}

// keywordScore computes a relevance score as the fraction of tier
// keywords present in the text.
func keywordScore(text string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0.0
	}

	matches := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			matches++
		}
	}

	return float64(matches) / float64(len(keywords))
}
