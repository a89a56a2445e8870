// Package ttyguard keeps non-interactive folio invocations from probing the
// terminal. Import it for its side effect before any lipgloss/termenv code
// runs:
//
//	import _ "github.com/vanderheijden86/folio/pkg/ttyguard"
package ttyguard

import (
	"os"
	"strings"
)

// init runs before Bubble Tea or lipgloss touch the terminal.
//
// Lipgloss background detection emits OSC/DSR queries to stdout. In a real
// terminal they are harmless, but they corrupt JSON and Markdown written by
// robot and export modes when stdout is captured. Termenv skips probing when
// CI is set, so non-interactive invocations set CI=1 early.
func init() {
	if os.Getenv("CI") != "" {
		return
	}
	if !ShouldSuppress(os.Args, os.Getenv("FOLIO_ROBOT") == "1", os.Getenv("FOLIO_TEST_MODE") != "") {
		return
	}
	_ = os.Setenv("CI", "1")
}

// ShouldSuppress reports whether the invocation is non-interactive.
func ShouldSuppress(args []string, envRobot, envTest bool) bool {
	if envRobot || envTest {
		return true
	}
	for _, arg := range args {
		if strings.HasPrefix(arg, "--robot-") || strings.HasPrefix(arg, "--export-") {
			return true
		}
		switch arg {
		case "--version", "--help", "-h":
			return true
		}
	}
	return false
}
