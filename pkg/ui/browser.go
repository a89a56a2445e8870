package ui

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
)

var errBrowserDisabled = errors.New("browser disabled")

// browserDisabled reports whether opening URLs is suppressed, e.g. in tests.
func browserDisabled() bool {
	return os.Getenv("FOLIO_NO_BROWSER") != "" || os.Getenv("FOLIO_TEST_MODE") != ""
}

// openURL hands url to the platform opener without waiting for it.
func openURL(url string) error {
	if browserDisabled() {
		return errBrowserDisabled
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		if _, err := exec.LookPath("xdg-open"); err != nil {
			return err
		}
		return exec.Command("xdg-open", url).Start()
	}
}
