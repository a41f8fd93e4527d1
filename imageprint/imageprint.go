// Package imageprint prints images and sprite sheet frames on a terminal.
//
// This package has an API with no stability guarantees.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-sheetkit/sheet"
)

// Mode selects how pixels reach the terminal.
type Mode int

const (
	// NoColor prints ascii art only. Only makes sense without blanks.
	NoColor Mode = iota
	// Color256 uses the 256 color palette.
	Color256
	// TrueColor uses 24bit color escape sequences, changing the background.
	TrueColor
	// ITerm uses iTerm2's inline image escape sequences.
	ITerm
	// RasTerm picks Kitty, iTerm or Sixel graphics, whichever the terminal supports.
	RasTerm
)

var modeNames = map[string]Mode{
	"none":    NoColor,
	"256":     Color256,
	"24bit":   TrueColor,
	"iterm":   ITerm,
	"rasterm": RasTerm,
}

// ParseMode parses the flag spelling of a mode: none, 256, 24bit, iterm or rasterm.
func ParseMode(s string) (Mode, error) {
	if m, ok := modeNames[strings.ToLower(s)]; ok {
		return m, nil
	}
	return NoColor, errors.Errorf("unknown print mode %q", s)
}

func shade(w io.Writer, col ic.Color, mode Mode, blanks bool) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		if mode == NoColor {
			fmt.Fprint(w, "  ")
		} else {
			fmt.Fprint(w, "\x1b[0m  ")
		}
		return
	}

	s := "  "
	if !blanks {
		a := ((cR + cG + cB) / 3) >> 8
		switch {
		case a < 32:
			s = ".."
		case a < 64:
			s = "--"
		case a < 128:
			s = "=="
		default:
			s = "##"
		}
	}

	r, g, b := uint8(cR>>8), uint8(cG>>8), uint8(cB>>8)
	switch mode {
	case TrueColor:
		fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm%s\x1b[0m", r, g, b, s)
	case Color256:
		fmt.Fprint(w, color.RGB(r, g, b, true).Sprint(s))
	default:
		fmt.Fprint(w, s)
	}
}

func fprintBlocks(w io.Writer, i image.Image, mode Mode, blanks bool) {
	for y := i.Bounds().Min.Y; y < i.Bounds().Max.Y; y++ {
		for x := i.Bounds().Min.X; x < i.Bounds().Max.X; x++ {
			shade(w, i.At(x, y), mode, blanks)
		}
		if mode != NoColor {
			fmt.Fprint(w, "\x1b[0m")
		}
		fmt.Fprint(w, "\n")
	}
}

// FprintITerm draws an image using iTerm2's escape sequences.
//
// https://www.iterm2.com/documentation-images.html
func FprintITerm(w io.Writer, i image.Image, fn string) error {
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	bEnc := base64.NewEncoder(base64.StdEncoding, b)
	if err := png.Encode(bEnc, i); err != nil {
		return errors.Wrap(err, "encoding png for iterm")
	}
	bEnc.Close()
	_, err := fmt.Fprintf(w, "\n\033]1337;File=name=%s;inline=1;size=%d;width=%dpx;height=%dpx:%s\a\n", name, b.Len(), i.Bounds().Size().X, i.Bounds().Size().Y, b.String())
	return err
}

// Fprint draws an image onto w using the passed mode. blanks selects colored
// blanks instead of some bad ascii art for the block modes.
func Fprint(w io.Writer, i image.Image, mode Mode, blanks bool) error {
	switch mode {
	case ITerm:
		return FprintITerm(w, i, "frame.png")
	case RasTerm:
		return FprintRasTerm(w, i)
	default:
		fprintBlocks(w, i, mode, blanks)
		return nil
	}
}

// FprintSheet draws the frames of s listed in which, or all frames if which
// is empty, each preceded by a line describing it.
func FprintSheet(w io.Writer, s *sheet.Sheet, which []int, mode Mode, blanks bool) error {
	if len(which) == 0 {
		for i := 0; i < s.FrameCount(); i++ {
			which = append(which, i)
		}
	}
	for _, idx := range which {
		frame, err := s.Frame(idx)
		if err != nil {
			return err
		}
		cr, _ := s.ContentsRect(idx)
		fmt.Fprintf(w, "frame %d/%d %v contents %v for %v\n", idx, s.FrameCount(), frame.Bounds(), cr, s.FrameDuration(idx))
		if err := Fprint(w, frame, mode, blanks); err != nil {
			return errors.Wrapf(err, "printing frame %d", idx)
		}
	}
	return nil
}
