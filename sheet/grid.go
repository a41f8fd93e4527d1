package sheet

import (
	"image"
	"time"

	"github.com/bradfitz/iter"
	"github.com/pkg/errors"
)

// GridRects splits bounds into cols*rows equally sized cells and returns them
// in row-major order (left to right, then top to bottom). Any remainder
// pixels on the right and bottom edges are not covered.
func GridRects(bounds image.Rectangle, cols, rows int) ([]image.Rectangle, error) {
	if cols <= 0 || rows <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "bad grid %dx%d", cols, rows)
	}
	w, h := bounds.Dx()/cols, bounds.Dy()/rows
	if w == 0 || h == 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "grid %dx%d too fine for %v", cols, rows, bounds)
	}
	rects := make([]image.Rectangle, 0, cols*rows)
	for j := range iter.N(rows) {
		for i := range iter.N(cols) {
			origin := bounds.Min.Add(image.Pt(i*w, j*h))
			rects = append(rects, image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))})
		}
	}
	return rects, nil
}

// NewGrid creates a sheet from an image laid out as a regular grid of
// cols*rows frames, each shown for frameDuration.
func NewGrid(img image.Image, cols, rows int, frameDuration time.Duration, loopCount int) (*Sheet, error) {
	if img == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil sheet image")
	}
	rects, err := GridRects(img.Bounds(), cols, rows)
	if err != nil {
		return nil, err
	}
	frames := make([]Frame, len(rects))
	for i, r := range rects {
		frames[i] = Frame{Rect: r, Duration: frameDuration}
	}
	return newSheet(img, frames, loopCount)
}
