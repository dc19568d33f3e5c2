package styles

import (
	"os"

	"github.com/muesli/termenv"
)

// Styles for output printed outside the picker's alternate screen: fatal
// errors, usage text, and the final confirmation line.
var (
	stdout = termenv.NewOutput(os.Stdout)
	stderr = termenv.NewOutput(os.Stderr)

	ERROR = func(s string) string {
		return stderr.String(s).
			Foreground(stderr.Color("9")).
			String()
	}
	HEADING = func(s string) string {
		return stdout.String(s).
			Foreground(stdout.Color("11")).
			Bold().
			String()
	}
	RESULT = func(s string) string {
		return stdout.String(s).
			Foreground(stdout.Color("10")).
			String()
	}
	HINT = func(s string) string {
		return stdout.String(s).
			Foreground(stdout.Color("244")).
			String()
	}
)
