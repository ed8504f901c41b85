// Package alerts turns sync outcomes into short status lines for the user.
// Logs go to the logger; alerts are what the CLI prints about a run.
package alerts

import (
	"fmt"

	"github.com/agentstation/utc"

	"github.com/agentstation/esxsync/pkg/report"
	"github.com/agentstation/esxsync/pkg/syncer"
)

// Alert is one status line with optional detail lines below it.
type Alert struct {
	Level     Level
	Message   string
	Details   []string
	Timestamp utc.Time
	Err       error
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{
		Level:     level,
		Message:   message,
		Timestamp: utc.Now(),
	}
}

// NewError creates a new error alert.
func NewError(message string) *Alert {
	return New(LevelError, message)
}

// NewWarning creates a new warning alert.
func NewWarning(message string) *Alert {
	return New(LevelWarning, message)
}

// WithError adds an underlying error to the alert.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails adds detail lines to the alert.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns the alert's headline with its icon.
func (a *Alert) String() string {
	message := a.Level.Icon() + " " + a.Message
	if a.Err != nil {
		message += fmt.Sprintf(": %v", a.Err)
	}
	return message
}

// ForResult summarizes a finished run. A run that staged nothing is a
// warning, anything else a success.
func ForResult(r *syncer.Result) *Alert {
	if r == nil {
		return nil
	}
	level := LevelSuccess
	if !r.HasChanges() {
		level = LevelWarning
	}
	return New(level, r.Summary())
}

// NoWork is printed when no device reported a BSSID.
func NoWork() *Alert {
	return NewWarning("No Dashboard device reported a BSSID, project left untouched")
}

// FromEvents folds correlation events of one kind into a single warning,
// one detail line per device. It returns nil when there is nothing to say.
func FromEvents(kind report.Kind, events []report.Event) *Alert {
	var details []string
	for _, e := range events {
		if e.Kind != kind {
			continue
		}
		detail := e.Name
		if e.BSSID != "" {
			detail += " (" + e.BSSID + ")"
		}
		if e.Message != "" {
			detail += ": " + e.Message
		}
		details = append(details, detail)
	}
	if len(details) == 0 {
		return nil
	}

	var message string
	switch kind {
	case report.KindMiss:
		message = fmt.Sprintf("%d devices not found in the project", len(details))
	case report.KindAmbiguous:
		message = fmt.Sprintf("%d devices matched an access point that was already claimed", len(details))
	default:
		message = fmt.Sprintf("%d %s events", len(details), kind)
	}
	return NewWarning(message).WithDetails(details...)
}
