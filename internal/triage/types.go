// Package triage implements priority scoring and ranking for patients
// awaiting emergency care.
//
// A patient record is scored by the Scorer into an urgency value in [0,100],
// then tracked in a Queue ordered by that score with FIFO tie-breaking on
// arrival. When a patient's condition changes, the score is recomputed and
// the queue entry is re-ranked in place.
package triage

import (
	"time"
)

// RiskLevel is the coarse classification produced by the risk classifier.
// It feeds the base component of the priority score.
type RiskLevel string

const (
	// RiskImmediate - life-threatening, needs care now
	RiskImmediate RiskLevel = "IMMEDIATE"
	// RiskHigh - urgent, should be seen soon
	RiskHigh RiskLevel = "HIGH"
	// RiskMedium - semi-urgent
	RiskMedium RiskLevel = "MEDIUM"
	// RiskLow - non-urgent (default)
	RiskLow RiskLevel = "LOW"
)

// IsValid checks if a RiskLevel value is valid.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskImmediate, RiskHigh, RiskMedium, RiskLow, "":
		return true
	default:
		return false
	}
}

// Base returns the base priority score contributed by the risk level.
func (r RiskLevel) Base() int {
	switch r {
	case RiskImmediate:
		return 100
	case RiskHigh:
		return 70
	case RiskMedium:
		return 40
	case RiskLow:
		return 10
	default:
		return 10 // Unknown defaults to low
	}
}

// Vitals holds the measured vital signs for a patient. Every field is
// optional; a nil field means "not measured" and contributes nothing to
// the priority score.
type Vitals struct {
	// HeartRate in beats per minute
	HeartRate *float64 `yaml:"heart_rate,omitempty" validate:"omitempty,gte=30,lte=250"`

	// BPSystolic is the systolic blood pressure in mmHg
	BPSystolic *float64 `yaml:"bp_systolic,omitempty" validate:"omitempty,gte=60,lte=250"`

	// BPDiastolic is the diastolic blood pressure in mmHg
	BPDiastolic *float64 `yaml:"bp_diastolic,omitempty" validate:"omitempty,gte=40,lte=150"`

	// Temperature is the body temperature in degrees Fahrenheit
	Temperature *float64 `yaml:"temperature,omitempty" validate:"omitempty,gte=90,lte=110"`
}

// Record is a patient triage record: the attributes the Scorer and the
// risk classifier consume. Records are defined in intake files with YAML
// front matter followed by free-text clinical notes.
type Record struct {
	// From front matter
	PatientID string    `yaml:"id" validate:"required"`
	Age       *int      `yaml:"age,omitempty" validate:"omitempty,gte=0,lte=120"`
	Vitals    Vitals    `yaml:"vitals"`
	Symptoms  []string  `yaml:"symptoms" validate:"required,min=1"`
	RiskLevel RiskLevel `yaml:"risk_level,omitempty"` // If empty, a classifier assigns it

	// Derived fields (not in YAML)
	FilePath  string    `yaml:"-"`
	Notes     string    `yaml:"-"` // Free-text clinical notes (after front matter)
	ArrivedAt time.Time `yaml:"-"`
}

// Entry is a queue entry as owned by the Queue: the patient identifier,
// the current priority score, and the arrival sequence number used for
// tie-breaking. Entries are exported in full by Dump so callers can
// persist and restore the queue without losing tie-break ordering.
type Entry struct {
	PatientID string `json:"patient_id" yaml:"patient_id"`
	Score     int    `json:"score" yaml:"score"`
	Seq       uint64 `json:"seq" yaml:"seq"`
}

// RankedEntry is a queue entry paired with its 1-based rank, as returned
// by Snapshot and PeekQueue. Rank 1 is the next patient to be served.
type RankedEntry struct {
	PatientID string `json:"patient_id"`
	Score     int    `json:"score"`
	Rank      int    `json:"rank"`
}

// ValidationError represents a record validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "record." + e.Field + ": " + e.Message
	}
	return e.Message
}
