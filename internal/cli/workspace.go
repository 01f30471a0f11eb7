package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/openclinic/triageq/internal/config"
	"github.com/openclinic/triageq/internal/state"
	"github.com/openclinic/triageq/internal/triage"
)

// workspace wires the queue, scorer, classifier, and state manager
// together for a command invocation. The queue is restored from the
// state file on open and written back by save after mutations.
type workspace struct {
	cfg        *config.Config
	states     *state.Manager
	queue      *triage.Queue
	scorer     *triage.Scorer
	classifier triage.Classifier
}

// openWorkspace loads config and state and restores the queue.
func openWorkspace() (*workspace, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	states, err := state.NewManager(state.DefaultStatePath())
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	queue := triage.NewQueue()
	if err := states.RestoreQueue(queue); err != nil {
		return nil, err
	}

	classifier := triage.NewRuleClassifier(triage.ClassifierConfig{
		Threshold: cfg.Classifier.Threshold,
		Fallback:  triage.RiskLevel(cfg.Classifier.Fallback),
	})

	return &workspace{
		cfg:        cfg,
		states:     states,
		queue:      queue,
		scorer:     triage.NewScorer(cfg.CriticalSymptoms),
		classifier: classifier,
	}, nil
}

// save persists the queue and any pending audit entries.
func (w *workspace) save() error {
	return w.states.SaveQueue(w.queue)
}

// waitEstimate returns the estimated wait in minutes for a 1-based
// queue position.
func (w *workspace) waitEstimate(position int) int {
	return position * w.cfg.Queue.WaitMinutes
}

// colorScore renders a score with urgency coloring when stdout is a
// terminal.
func colorScore(score int) string {
	s := fmt.Sprintf("%d", score)
	if !isTerminal() {
		return s
	}

	switch {
	case score >= triage.ImmediateThreshold:
		return color.RedString(s)
	case score >= 70:
		return color.YellowString(s)
	default:
		return color.GreenString(s)
	}
}

// isTerminal checks if stdout is a terminal (TTY).
// This is used to determine whether to use colors in output.
func isTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// confirm prompts the user for yes/no confirmation.
func confirm(message string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", message)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
