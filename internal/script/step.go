// Package script builds and runs the COR1/COR2 transaction scripts: ordered
// sequences of UI actions against one SAP GUI session, with each step tagged
// critical (failure aborts the script) or optional (failure is recorded and
// execution continues).
package script

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/zeusmes/sapbridge/internal/sapgui"
)

// Status classifies how one step ended.
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Step is one unit of a transaction script. Critical steps abort the script
// on failure; optional steps degrade to a skipped result. Optional steps
// cover conditional UI branching that cannot be enumerated in advance
// (popups that may not appear, controls that may be disabled).
type Step struct {
	Name     string
	Critical bool
	Run      func(s sapgui.Session) error
}

// StepResult is the tagged outcome of one executed step.
type StepResult struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Outcome is the classified result of a whole script. Success is decided
// structurally — did a critical step fail — never by parsing the message.
type Outcome struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Steps   []StepResult `json:"steps,omitempty"`
	Err     error        `json:"-"`
}

// Run executes steps in order against the session. On a critical failure it
// attempts one recovery read of the status line, which often carries SAP's
// own rejection reason ("lote ya existe"), before surfacing the failure.
func Run(logger zerolog.Logger, s sapgui.Session, transaction string, steps []Step, fallback string) Outcome {
	results := make([]StepResult, 0, len(steps))
	start := time.Now()

	for _, st := range steps {
		err := st.Run(s)
		if err == nil {
			results = append(results, StepResult{Name: st.Name, Status: StatusOK})
			continue
		}
		if !st.Critical {
			logger.Debug().
				Str("transaction", transaction).
				Str("step", st.Name).
				Err(err).
				Msg("optional step skipped")
			results = append(results, StepResult{Name: st.Name, Status: StatusSkipped, Reason: err.Error()})
			continue
		}

		logger.Error().
			Str("transaction", transaction).
			Str("step", st.Name).
			Dur("elapsed", time.Since(start)).
			Err(err).
			Msg("critical step failed")
		results = append(results, StepResult{Name: st.Name, Status: StatusFailed, Reason: err.Error()})
		return Outcome{
			Success: false,
			Message: "Error SAP: " + extractStatus(s, err.Error()),
			Steps:   results,
			Err:     err,
		}
	}

	logger.Info().
		Str("transaction", transaction).
		Dur("elapsed", time.Since(start)).
		Msg("script completed")
	return Outcome{
		Success: true,
		Message: "SAP: " + extractStatus(s, fallback),
		Steps:   results,
	}
}

// extractStatus reads the status line, returning fallback on any failure.
// The save itself already happened (or already failed) by the time this
// runs, so an unreadable status bar must not change the outcome.
func extractStatus(s sapgui.Session, fallback string) string {
	text, err := sapgui.StatusBarText(s)
	if err != nil || text == "" {
		return fallback
	}
	return text
}
