package triage

import (
	"testing"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func TestScorer_Score(t *testing.T) {
	scorer := NewScorer(nil)

	tests := []struct {
		name string
		rec  Record
		want int
	}{
		{
			name: "base scores only",
			rec:  Record{RiskLevel: RiskMedium, Symptoms: []string{"headache"}},
			want: 40,
		},
		{
			name: "high risk with tachycardia pediatric chest pain",
			rec: Record{
				RiskLevel: RiskHigh,
				Vitals:    Vitals{HeartRate: fp(140)},
				Age:       ip(3),
				Symptoms:  []string{"chest pain"},
			},
			want: 90, // 70 + 10 + 5 + 5
		},
		{
			name: "immediate clamps at 100",
			rec: Record{
				RiskLevel: RiskImmediate,
				Vitals:    Vitals{HeartRate: fp(150), BPSystolic: fp(200), Temperature: fp(105)},
				Age:       ip(80),
				Symptoms:  []string{"stroke"},
			},
			want: 100,
		},
		{
			name: "bradycardia fires the heart rate bonus",
			rec: Record{
				RiskLevel: RiskLow,
				Vitals:    Vitals{HeartRate: fp(45)},
				Symptoms:  []string{"fatigue"},
			},
			want: 20,
		},
		{
			name: "hypotension fires the blood pressure bonus",
			rec: Record{
				RiskLevel: RiskLow,
				Vitals:    Vitals{BPSystolic: fp(85)},
				Symptoms:  []string{"fatigue"},
			},
			want: 20,
		},
		{
			name: "hypothermia fires the temperature bonus",
			rec: Record{
				RiskLevel: RiskLow,
				Vitals:    Vitals{Temperature: fp(94)},
				Symptoms:  []string{"fatigue"},
			},
			want: 15,
		},
		{
			name: "borderline vitals contribute nothing",
			rec: Record{
				RiskLevel: RiskMedium,
				Vitals:    Vitals{HeartRate: fp(130), BPSystolic: fp(180), Temperature: fp(103)},
				Symptoms:  []string{"cough"},
			},
			want: 40,
		},
		{
			name: "missing vitals contribute nothing",
			rec:  Record{RiskLevel: RiskHigh, Symptoms: []string{"cough"}},
			want: 70,
		},
		{
			name: "infant bonus wins over pediatric",
			rec:  Record{RiskLevel: RiskLow, Age: ip(0), Symptoms: []string{"fever"}},
			want: 20, // 10 + 10, not 10 + 5
		},
		{
			name: "pediatric bonus",
			rec:  Record{RiskLevel: RiskLow, Age: ip(4), Symptoms: []string{"fever"}},
			want: 15,
		},
		{
			name: "elderly bonus",
			rec:  Record{RiskLevel: RiskLow, Age: ip(70), Symptoms: []string{"fever"}},
			want: 15,
		},
		{
			name: "adult age contributes nothing",
			rec:  Record{RiskLevel: RiskLow, Age: ip(30), Symptoms: []string{"fever"}},
			want: 10,
		},
		{
			name: "critical symptom bonus is flat across multiple matches",
			rec: Record{
				RiskLevel: RiskMedium,
				Symptoms:  []string{"chest pain", "difficulty breathing"},
			},
			want: 45, // +5 once, not per symptom
		},
		{
			name: "critical symptom matches case-insensitive substring",
			rec: Record{
				RiskLevel: RiskMedium,
				Symptoms:  []string{"Crushing CHEST PAIN radiating to arm"},
			},
			want: 45,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(&tt.rec)
			if got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScorer_ScoreRange(t *testing.T) {
	scorer := NewScorer(nil)

	// Every combination of risk level and bonuses must land in [0,100]
	for _, risk := range []RiskLevel{RiskImmediate, RiskHigh, RiskMedium, RiskLow, ""} {
		rec := Record{
			RiskLevel: risk,
			Vitals:    Vitals{HeartRate: fp(170), BPSystolic: fp(210), Temperature: fp(106)},
			Age:       ip(0),
			Symptoms:  []string{"unconscious"},
		}
		got := scorer.Score(&rec)
		if got < 0 || got > 100 {
			t.Errorf("Score() with risk %q = %d, want within [0,100]", risk, got)
		}
	}
}

func TestScorer_Breakdown(t *testing.T) {
	scorer := NewScorer(nil)

	rec := Record{
		RiskLevel: RiskHigh,
		Vitals:    Vitals{HeartRate: fp(140)},
		Age:       ip(3),
		Symptoms:  []string{"chest pain"},
	}

	b := scorer.Breakdown(&rec)

	if b.Base != 70 {
		t.Errorf("Breakdown().Base = %d, want 70", b.Base)
	}
	if b.Total != 90 {
		t.Errorf("Breakdown().Total = %d, want 90", b.Total)
	}
	if len(b.Factors) != 3 {
		t.Fatalf("Breakdown().Factors has %d entries, want 3", len(b.Factors))
	}

	// Factors must sum to the unclamped delta over base
	sum := b.Base
	for _, f := range b.Factors {
		sum += f.Points
	}
	if sum != b.Total {
		t.Errorf("base + factor points = %d, want %d", sum, b.Total)
	}
}

func TestScorer_CustomCriticalSymptoms(t *testing.T) {
	scorer := NewScorer([]string{"snake bite"})

	withBite := Record{RiskLevel: RiskLow, Symptoms: []string{"snake bite on leg"}}
	if got := scorer.Score(&withBite); got != 15 {
		t.Errorf("Score() with custom critical symptom = %d, want 15", got)
	}

	// The default list is replaced, not extended
	chestPain := Record{RiskLevel: RiskLow, Symptoms: []string{"chest pain"}}
	if got := scorer.Score(&chestPain); got != 10 {
		t.Errorf("Score() with replaced list = %d, want 10", got)
	}
}

func TestRiskLevel_Base(t *testing.T) {
	tests := []struct {
		risk RiskLevel
		want int
	}{
		{RiskImmediate, 100},
		{RiskHigh, 70},
		{RiskMedium, 40},
		{RiskLow, 10},
		{"", 10},        // Empty defaults to low
		{"UNKNOWN", 10}, // Invalid defaults to low
	}

	for _, tt := range tests {
		t.Run(string(tt.risk), func(t *testing.T) {
			if got := tt.risk.Base(); got != tt.want {
				t.Errorf("Base() = %d, want %d", got, tt.want)
			}
		})
	}
}
