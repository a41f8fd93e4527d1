package paths

import (
	"os"
	"strconv"

	"github.com/golang/glog"
)

// Display reports the pixel density of the screen resources are resolved for.
type Display interface {
	// Scale returns the number of pixels per point, such as 2 on a "retina"
	// display. It is at least 1.
	Scale() int
}

// FixedDisplay is a display with a constant scale.
type FixedDisplay int

func (d FixedDisplay) Scale() int {
	if d < 1 {
		return 1
	}
	return int(d)
}

// DisplayScaleEnv is the environment variable read by EnvDisplay.
const DisplayScaleEnv = "SHEETKIT_DISPLAY_SCALE"

// EnvDisplay reads the display scale from an environment variable, by default
// DisplayScaleEnv. A missing or malformed value means 1x.
type EnvDisplay struct {
	Var string
}

func (d EnvDisplay) Scale() int {
	name := d.Var
	if name == "" {
		name = DisplayScaleEnv
	}
	v := os.Getenv(name)
	if v == "" {
		return 1
	}
	s, err := strconv.Atoi(v)
	if err != nil || s < 1 {
		glog.Warningf("paths: ignoring bad %s=%q", name, v)
		return 1
	}
	return s
}
