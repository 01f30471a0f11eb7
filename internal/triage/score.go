package triage

import (
	"strings"
)

// DefaultCriticalSymptoms is the built-in list of symptoms that add the
// flat critical-symptom bonus. Matching is a case-insensitive substring
// check, so "crushing chest pain" matches "chest pain".
var DefaultCriticalSymptoms = []string{
	"chest pain",
	"difficulty breathing",
	"unconscious",
	"stroke",
	"severe bleeding",
}

// Score bonuses and thresholds. The scoring is additive: base score from
// the risk level plus small fixed bonuses per severity condition, clamped
// to [0,100].
const (
	heartRateHigh = 130
	heartRateLow  = 50
	systolicHigh  = 180
	systolicLow   = 90
	tempHigh      = 103
	tempLow       = 95

	bonusHeartRate = 10
	bonusBP        = 10
	bonusTemp      = 5
	bonusInfant    = 10 // age < 1
	bonusChild     = 5  // age < 5
	bonusElderly   = 5  // age > 65
	bonusSymptom   = 5  // flat, not per-symptom
)

// ImmediateThreshold is the score at or above which a patient is flagged
// as needing immediate attention.
const ImmediateThreshold = 90

// Factor is a single contribution to a priority score. The breakdown of
// factors is what gets reported back for audit trails.
type Factor struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// Breakdown explains a computed score factor by factor.
type Breakdown struct {
	Base    int      `json:"base"`
	Factors []Factor `json:"factors"`
	Total   int      `json:"total"` // After clamping to [0,100]
}

// Scorer converts a patient record into a priority score. It is
// deterministic and has no failure modes: missing vitals or age simply
// contribute nothing.
type Scorer struct {
	critical []string
}

// NewScorer creates a scorer. A nil or empty critical symptom list falls
// back to DefaultCriticalSymptoms.
func NewScorer(criticalSymptoms []string) *Scorer {
	if len(criticalSymptoms) == 0 {
		criticalSymptoms = DefaultCriticalSymptoms
	}
	lowered := make([]string, len(criticalSymptoms))
	for i, s := range criticalSymptoms {
		lowered[i] = strings.ToLower(s)
	}
	return &Scorer{critical: lowered}
}

// Score computes the priority score for a record: risk base plus vital,
// age, and symptom bonuses, clamped to [0,100].
func (s *Scorer) Score(rec *Record) int {
	return s.Breakdown(rec).Total
}

// Breakdown computes the score and reports every factor that fired.
func (s *Scorer) Breakdown(rec *Record) Breakdown {
	b := Breakdown{Base: rec.RiskLevel.Base()}
	total := b.Base

	if hr := rec.Vitals.HeartRate; hr != nil {
		if *hr > heartRateHigh || *hr < heartRateLow {
			b.Factors = append(b.Factors, Factor{Name: "critical heart rate", Points: bonusHeartRate})
			total += bonusHeartRate
		}
	}
	if sys := rec.Vitals.BPSystolic; sys != nil {
		if *sys > systolicHigh || *sys < systolicLow {
			b.Factors = append(b.Factors, Factor{Name: "critical blood pressure", Points: bonusBP})
			total += bonusBP
		}
	}
	if temp := rec.Vitals.Temperature; temp != nil {
		if *temp > tempHigh || *temp < tempLow {
			b.Factors = append(b.Factors, Factor{Name: "critical temperature", Points: bonusTemp})
			total += bonusTemp
		}
	}

	// Age brackets are mutually exclusive, most specific first
	if rec.Age != nil {
		switch age := *rec.Age; {
		case age < 1:
			b.Factors = append(b.Factors, Factor{Name: "infant", Points: bonusInfant})
			total += bonusInfant
		case age < 5:
			b.Factors = append(b.Factors, Factor{Name: "pediatric", Points: bonusChild})
			total += bonusChild
		case age > 65:
			b.Factors = append(b.Factors, Factor{Name: "elderly", Points: bonusElderly})
			total += bonusElderly
		}
	}

	if s.hasCriticalSymptom(rec.Symptoms) {
		b.Factors = append(b.Factors, Factor{Name: "critical symptom", Points: bonusSymptom})
		total += bonusSymptom
	}

	b.Total = clampScore(total)
	return b
}

// hasCriticalSymptom reports whether any symptom matches the critical
// list. The bonus is flat: one match is enough.
func (s *Scorer) hasCriticalSymptom(symptoms []string) bool {
	for _, symptom := range symptoms {
		lowered := strings.ToLower(symptom)
		for _, crit := range s.critical {
			if strings.Contains(lowered, crit) {
				return true
			}
		}
	}
	return false
}

// clampScore clamps a score to the closed interval [0,100]. The additive
// design cannot go negative, but the clamp is part of the contract.
func clampScore(score int) int {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}
