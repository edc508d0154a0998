package cli

import (
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"go.viam.com/dhfk/utils"
)

// gimbalWarnDegrees is how close to ±90° pitch has to be before roll and yaw are flagged as unreliable.
const gimbalWarnDegrees = 0.5

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// infof prints a message prefixed with a bold cyan "Info: ".
func infof(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	color.New(color.Bold, color.FgCyan).Fprint(w, "Info: ")
	printf(w, format, a...)
}

// warningf prints a message prefixed with a bold yellow "Warning: ".
func warningf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	color.New(color.Bold, color.FgYellow).Fprint(w, "Warning: ")
	printf(w, format, a...)
}

// nearGimbalLock reports whether a pitch in degrees is within gimbalWarnDegrees of ±90°.
func nearGimbalLock(pitchDeg float64) bool {
	return utils.AngleDiffDeg(math.Abs(pitchDeg), 90) < gimbalWarnDegrees
}

var errModelSource = errors.New("exactly one of --model or --builtin must be set")
