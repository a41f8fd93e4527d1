// Command sheetprint prints the frames of a sprite sheet on the terminal, and
// can export the sheet as an animated GIF.
//
// The sheet comes either from a manifest (--manifest hero.json) or from an
// image laid out as a regular grid (--image hero.png --columns 8 --rows 12).
// Without either, the demo manifest from the data directory is used.
// Images are looked up as scaled resources, so --display_scale=2 prefers
// hero@2x.png next to hero.png.
package main

import (
	"flag"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-sheetkit/imageprint"
	"badc0de.net/pkg/go-sheetkit/manifest"
	"badc0de.net/pkg/go-sheetkit/paths"
	"badc0de.net/pkg/go-sheetkit/sheet"
)

var (
	// manifestPath defaults to the demo sheet in the data directory.
	manifestPath string

	tag       = flag.String("tag", "", "only use frames of this manifest tag")
	imagePath = flag.String("image", "", "path to a grid sheet image; takes precedence over --manifest")
	columns   = flag.Int("columns", 1, "grid columns of --image")
	rows      = flag.Int("rows", 1, "grid rows of --image")
	frameDur  = flag.Duration("frame_duration", time.Second/10, "duration of each grid frame")
	loopCount = flag.Int("loop", 0, "loop count of the grid sheet; 0 loops forever")
	frames    = flag.String("frames", "", "comma separated frame indices to print; all if empty")
	mode      = flag.String("mode", "24bit", "print mode: none, 256, 24bit, iterm or rasterm")
	blanks    = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	fit       = flag.Bool("fit", true, "downsize frames to fit the terminal")
	scaleBy   = flag.Float64("scale_by", 1, "resize the sheet by this factor before printing")
	gifOut    = flag.String("gif", "", "if set, write the sheet as an animated gif to this path")
	quantizer = flag.String("quantizer", "gogif", "gif quantizer: gogif or mediancut")
)

func loadGrid(p string) (*sheet.Sheet, error) {
	resolved, ok := paths.PathForScaledResource(filepath.Base(p), "", filepath.Dir(p))
	if !ok {
		return nil, errors.Wrapf(paths.ErrNotFound, "sheet image %q", p)
	}
	f, err := os.Open(resolved)
	if err != nil {
		return nil, errors.Wrap(err, "opening sheet image")
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding sheet image %q", resolved)
	}
	glog.Infof("sheetprint: using %q (%dx)", resolved, paths.ScaleOf(resolved))
	return sheet.NewGrid(img, *columns, *rows, *frameDur, *loopCount)
}

func loadSheet() (*sheet.Sheet, error) {
	switch {
	case *imagePath != "":
		return loadGrid(*imagePath)
	case manifestPath != "":
		return manifest.Load(manifestPath, *tag)
	default:
		return nil, errors.New("one of --manifest or --image is required")
	}
}

func parseFrames(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var out []int
	for _, f := range strings.Split(s, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, errors.Wrapf(err, "bad frame index %q", f)
		}
		out = append(out, i)
	}
	return out, nil
}

// fitToTerminal downsizes the sheet so that a single frame is at most as wide
// as the terminal. Each pixel takes two columns in the block modes.
func fitToTerminal(s *sheet.Sheet) (*sheet.Sheet, error) {
	sz, err := GetTermSize()
	if err != nil || sz.WSCol == 0 {
		glog.V(1).Infof("sheetprint: no terminal size, not fitting: %v", err)
		return s, nil
	}
	widest := 0
	for _, f := range s.Frames() {
		if f.Rect.Dx() > widest {
			widest = f.Rect.Dx()
		}
	}
	maxW := int(sz.WSCol / 2)
	if widest <= maxW {
		return s, nil
	}
	factor := float64(maxW) / float64(widest)
	glog.V(1).Infof("sheetprint: fitting %dpx wide frames into %d columns, factor %.3f", widest, sz.WSCol, factor)
	return sheet.Scaled(s, factor)
}

func writeGIF(s *sheet.Sheet, p string) error {
	o := &sheet.GIFOptions{}
	switch *quantizer {
	case "gogif":
	case "mediancut":
		o.Quantizer = sheet.MedianCutQuantizer{}
	default:
		return errors.Errorf("unknown quantizer %q", *quantizer)
	}
	f, err := os.Create(p)
	if err != nil {
		return errors.Wrap(err, "creating gif")
	}
	if err := sheet.EncodeGIF(f, s, o); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func run() error {
	m, err := imageprint.ParseMode(*mode)
	if err != nil {
		return err
	}
	which, err := parseFrames(*frames)
	if err != nil {
		return err
	}
	s, err := loadSheet()
	if err != nil {
		return err
	}
	if *scaleBy != 1 {
		if s, err = sheet.Scaled(s, *scaleBy); err != nil {
			return err
		}
	}
	if *gifOut != "" {
		if err := writeGIF(s, *gifOut); err != nil {
			return err
		}
		glog.Infof("sheetprint: wrote %q", *gifOut)
	}
	if *fit && m != imageprint.ITerm && m != imageprint.RasTerm {
		if s, err = fitToTerminal(s); err != nil {
			return err
		}
	}
	return imageprint.FprintSheet(os.Stdout, s, which, m, *blanks)
}

func main() {
	paths.SetupDisplayScaleFlag("display_scale")
	paths.SetupFilePathFlag("demo.yaml", "manifest", &manifestPath)
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if err := run(); err != nil {
		glog.Exitf("sheetprint: %v", err)
	}
}
