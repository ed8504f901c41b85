package alerts

import "fmt"

// Level is the severity of an alert.
type Level int

// Alert levels, most severe first.
const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
	LevelSuccess
)

const resetColor = "\033[0m"

var levelStyles = []struct {
	name, icon, color string
}{
	LevelError:   {"error", "✗", "\033[31m"},
	LevelWarning: {"warning", "!", "\033[33m"},
	LevelInfo:    {"info", "i", "\033[36m"},
	LevelSuccess: {"success", "✓", "\033[32m"},
}

func (l Level) valid() bool {
	return l >= 0 && int(l) < len(levelStyles)
}

func (l Level) String() string {
	if !l.valid() {
		return fmt.Sprintf("unknown(%d)", int(l))
	}
	return levelStyles[l].name
}

// Icon is printed in front of the alert message.
func (l Level) Icon() string {
	if !l.valid() {
		return "?"
	}
	return levelStyles[l].icon
}

// Color is the ANSI escape used on terminals.
func (l Level) Color() string {
	if !l.valid() {
		return resetColor
	}
	return levelStyles[l].color
}
