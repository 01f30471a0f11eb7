// Package state provides persistent state tracking for the patient queue.
//
// State is stored in .triageq/state/queue.json and holds the queued
// entries (with their arrival sequence numbers, so tie-break ordering
// survives restarts) plus an append-only audit trail of every scoring
// action. The state file is gitignored and survives CLI restarts.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/openclinic/triageq/internal/triage"
)

// State represents the complete persisted queue state.
type State struct {
	// Version is the state schema version
	Version string `json:"version"`

	// Entries are the queued patients, including arrival sequence numbers
	Entries []triage.Entry `json:"entries"`

	// Audit is the append-only trail of scoring actions
	Audit []AuditEntry `json:"audit,omitempty"`
}

// AuditEntry records one scoring action for accountability. The factor
// breakdown explains how the score was reached.
type AuditEntry struct {
	// PatientID identifies the patient the action applies to
	PatientID string `json:"patient_id"`

	// Action is what happened: added, rescored, served, removed
	Action string `json:"action"`

	// RiskLevel at the time of the action
	RiskLevel string `json:"risk_level,omitempty"`

	// Score assigned by the action
	Score int `json:"score"`

	// Factors that contributed to the score
	Factors []triage.Factor `json:"factors,omitempty"`

	// Timestamp of the action
	Timestamp time.Time `json:"timestamp"`
}

// Manager owns the state file: loading it at startup, mutating it in
// memory, and writing it back atomically.
type Manager struct {
	mu    sync.Mutex
	path  string
	state *State
}

// NewManager creates a state manager backed by the given file path. A
// missing file starts with empty state; it is created on first save.
func NewManager(path string) (*Manager, error) {
	m := &Manager{
		path: path,
		state: &State{
			Version: "1",
		},
	}

	if err := m.load(); err != nil {
		return nil, err
	}

	return m, nil
}

// DefaultStatePath returns the standard state file location.
func DefaultStatePath() string {
	return filepath.Join(".triageq", "state", "queue.json")
}

// SaveQueue replaces the persisted entries with the queue's current
// contents and writes the state file.
func (m *Manager) SaveQueue(q *triage.Queue) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Entries = q.Dump()
	return m.saveToDisk()
}

// RestoreQueue loads the persisted entries into the queue, replacing its
// contents.
func (m *Manager) RestoreQueue(q *triage.Queue) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := q.Restore(m.state.Entries); err != nil {
		return fmt.Errorf("restore queue: %w", err)
	}
	return nil
}

// AppendAudit adds an audit entry. The trail is append-only; entries are
// never rewritten. The caller is expected to follow with SaveQueue (or
// Flush) to persist.
func (m *Manager) AppendAudit(entry AuditEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	m.state.Audit = append(m.state.Audit, entry)
}

// AuditFor returns the audit trail for a patient, oldest first.
func (m *Manager) AuditFor(patientID string) []AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	var trail []AuditEntry
	for _, e := range m.state.Audit {
		if e.PatientID == patientID {
			trail = append(trail, e)
		}
	}
	return trail
}

// Flush writes the current state to disk without touching the entries.
func (m *Manager) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saveToDisk()
}

// Path returns the state file path.
func (m *Manager) Path() string {
	return m.path
}

func (m *Manager) load() error {
	data, err := os.ReadFile(m.path) // #nosec G304 - path is the fixed state location
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Fresh state
		}
		return fmt.Errorf("read state file: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("parse state file: %w", err)
	}

	if state.Version == "" {
		state.Version = "1"
	}
	m.state = &state
	return nil
}

func (m *Manager) saveToDisk() error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := json.MarshalIndent(m.state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmpPath := m.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write temp state file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, m.path); err != nil {
		return fmt.Errorf("rename temp state file: %w", err)
	}

	return nil
}
