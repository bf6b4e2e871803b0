package progress

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

// buildTaskMessage constructs the progress line for a task
func buildTaskMessage(task TaskInfo, action string) string {
	noun := "names"
	if task.Names == 1 {
		noun = "name"
	}
	return fmt.Sprintf("%s %d %s to %s", action, task.Names, noun, task.Format)
}

// formatElapsed renders a duration rounded for humans (e.g., "1.2s", "850ms")
func formatElapsed(d time.Duration) string {
	if d >= time.Second {
		return d.Round(100 * time.Millisecond).String()
	}
	return d.Round(time.Millisecond).String()
}

// checkmark returns the appropriate checkmark symbol
func checkmark(symbols ProgressSymbols, supportsColor bool) string {
	return paint(symbols.Checkmark, color.FgGreen, supportsColor && symbols.Checkmark == "✓")
}

// failureMark returns the appropriate failure symbol
func failureMark(symbols ProgressSymbols, supportsColor bool) string {
	return paint(symbols.Failure, color.FgRed, supportsColor && symbols.Failure == "✗")
}

func paint(s string, attr color.Attribute, enabled bool) string {
	if !enabled {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}
