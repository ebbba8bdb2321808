package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the rftidy CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Number is the plain semantic version. It never contains terminal
	// escape sequences; cache keys and machine-readable output use it.
	Number = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the styled form of Number for terminal display.
	Version = styled(Number)
)

func styled(number string) string {
	parts := strings.SplitN(number, ".", 3)
	if len(parts) != 3 {
		return number
	}
	return versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2])
}
