package paths

import (
	"flag"
)

// SetupFilePathFlag creates a new string flag with the passed name with a sane
// default for the path to the file, if found using the Find function. If not,
// the flag defaults to an empty string.
func SetupFilePathFlag(fileName, flagName string, flagPtr *string) {
	flag.StringVar(flagPtr, flagName, Find(fileName), "Path to "+fileName)
}

type flagDisplay struct {
	scale *int
}

func (d flagDisplay) Scale() int {
	if *d.scale <= 0 {
		return EnvDisplay{}.Scale()
	}
	return FixedDisplay(*d.scale).Scale()
}

// SetupDisplayScaleFlag registers an integer flag overriding the display
// scale, and makes Default use it. While the flag is unset or 0, the scale
// comes from the DisplayScaleEnv environment variable.
func SetupDisplayScaleFlag(flagName string) Display {
	d := flagDisplay{scale: flag.Int(flagName, 0, "display scale (1, 2, 3...) used to pick @Nx resources; 0 reads $"+DisplayScaleEnv)}
	Default.Display = d
	return d
}
