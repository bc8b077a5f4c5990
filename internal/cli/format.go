package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	// fatih/color disables these automatically when output is not a TTY
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
)

// All diagnostic helpers take the writer explicitly: stdout is reserved for
// the plan_id, so progress and warnings go to stderr.

// Every line starts with a bracketed level tag so logs stay greppable
// once colors are stripped.

// PrintSuccess prints a success message tagged [OK]
func PrintSuccess(w io.Writer, msg string) {
	_, _ = successColor.Fprintf(w, "[OK] %s\n", msg)
}

// PrintWarning prints a warning message tagged [WARN]
func PrintWarning(w io.Writer, msg string) {
	_, _ = warningColor.Fprintf(w, "[WARN] %s\n", msg)
}

// PrintError prints an error message tagged [ERROR]
func PrintError(w io.Writer, msg string) {
	_, _ = errorColor.Fprintf(w, "[ERROR] %s\n", msg)
}

// PrintInfo prints an informational message tagged [INFO]
func PrintInfo(w io.Writer, msg string) {
	_, _ = infoColor.Fprintf(w, "[INFO] %s\n", msg)
}

// PrintLabelValue prints a label-value pair with proper formatting
func PrintLabelValue(w io.Writer, label, value string) {
	_, _ = labelColor.Fprintf(w, "  %s: ", label)
	_, _ = valueColor.Fprintln(w, value)
}

// PrintCount prints a count with proper formatting
func PrintCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
