package sheet

import (
	"image"
	"math"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// Scaled returns a copy of s whose image and frame rects are multiplied by
// factor, e.g. to produce the @2x variant of a sheet drawn at 1x, or the @1x
// variant of a sheet drawn at 3x (factor 1/3).
//
// Frame rects are scaled with their edges rounded to the nearest pixel and
// clipped to the new image bounds. Durations and loop count are kept.
func Scaled(s *Sheet, factor float64) (*Sheet, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, errors.Wrapf(ErrInvalidArgument, "bad scale factor %v", factor)
	}
	b := s.img.Bounds()
	w := uint(math.Round(float64(b.Dx()) * factor))
	h := uint(math.Round(float64(b.Dy()) * factor))
	if w == 0 || h == 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "scale factor %v collapses %v", factor, b)
	}

	interp := resize.Lanczos3
	if factor >= 1 && factor == math.Trunc(factor) {
		// Integer upscaling of pixel art should stay crisp.
		interp = resize.NearestNeighbor
	}
	img := resize.Resize(w, h, s.img, interp)
	nb := img.Bounds()

	sc := func(v, from int) int {
		return int(math.Round(float64(v-from) * factor))
	}
	frames := make([]Frame, len(s.frames))
	for i, f := range s.frames {
		r := image.Rect(
			sc(f.Rect.Min.X, b.Min.X), sc(f.Rect.Min.Y, b.Min.Y),
			sc(f.Rect.Max.X, b.Min.X), sc(f.Rect.Max.Y, b.Min.Y),
		).Add(nb.Min).Intersect(nb)
		frames[i] = Frame{Rect: r, Duration: f.Duration}
	}
	return newSheet(img, frames, s.loopCount)
}
