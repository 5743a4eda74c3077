package nbplot

import (
	"os/exec"
	"runtime"

	"github.com/sirupsen/logrus"
)

// browserCommand returns the command that opens url in the default browser
// on goos.
func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "windows":
		return "cmd", []string{"/c", "start", url}
	case "darwin":
		return "open", []string{url}
	default: // linux and the BSDs
		return "xdg-open", []string{url}
	}
}

func openBrowser(url string, logger logrus.FieldLogger) {
	name, args := browserCommand(runtime.GOOS, url)
	logger.WithField("command", name).Debug("opening chart in a web browser")

	if err := exec.Command(name, args...).Start(); err != nil {
		logger.WithError(err).Warnf("could not open %s in a web browser, open it manually", url)
	}
}
