package sheet

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is the cause of all construction failures.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIndexOutOfBounds is returned when a frame index is not in [0, FrameCount()).
	ErrIndexOutOfBounds = errors.New("index out of bounds")
)

// Frame is a single animation frame: where it lives in the sheet image, and
// how long it is shown.
type Frame struct {
	Rect     image.Rectangle
	Duration time.Duration
}

// Rect is a rectangle in unit-square coordinates relative to the full sheet,
// with the origin in the top left corner (same as image.Image coordinates).
//
// It is suitable for use as a "contents rectangle", i.e. the part of a backing
// image a layer should display.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) String() string {
	return fmt.Sprintf("{%.4f,%.4f %.4fx%.4f}", r.X, r.Y, r.W, r.H)
}

// In reports whether r lies fully within the unit square.
func (r Rect) In() bool {
	return r.X >= 0 && r.Y >= 0 && r.W >= 0 && r.H >= 0 && r.X+r.W <= 1 && r.Y+r.H <= 1
}

// Sheet is a sprite sheet image together with its frame layout.
//
// Sheet implements image.Image by delegating to the sheet image, so it can be
// passed anywhere a plain image is accepted; it also implements Animated.
type Sheet struct {
	img       image.Image
	frames    []Frame
	loopCount int
}

// New creates a sheet from the image containing all frames, the frame
// rectangles in the image's coordinates, and matching frame durations in
// seconds. loopCount of 0 means infinite looping.
//
// New fails with ErrInvalidArgument if img is nil, if rects is empty, if rects
// and durations differ in length, if a duration or loopCount is negative, or
// if a rectangle is empty or not fully inside img's bounds.
func New(img image.Image, rects []image.Rectangle, durations []float64, loopCount int) (*Sheet, error) {
	if len(rects) != len(durations) {
		return nil, errors.Wrapf(ErrInvalidArgument, "got %d rects but %d durations", len(rects), len(durations))
	}
	frames := make([]Frame, len(rects))
	for i, r := range rects {
		d := durations[i]
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, errors.Wrapf(ErrInvalidArgument, "frame %d: bad duration %v", i, d)
		}
		if d >= math.MaxInt64/float64(time.Second) {
			return nil, errors.Wrapf(ErrInvalidArgument, "frame %d: duration %vs out of range", i, d)
		}
		frames[i] = Frame{Rect: r, Duration: time.Duration(d * float64(time.Second))}
	}
	return newSheet(img, frames, loopCount)
}

// NewWithFrames is like New, but takes already assembled frames.
//
// The frames slice is copied.
func NewWithFrames(img image.Image, frames []Frame, loopCount int) (*Sheet, error) {
	return newSheet(img, append([]Frame(nil), frames...), loopCount)
}

func newSheet(img image.Image, frames []Frame, loopCount int) (*Sheet, error) {
	if img == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil sheet image")
	}
	if len(frames) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "no frames")
	}
	if loopCount < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "negative loop count %d", loopCount)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, errors.Wrapf(ErrInvalidArgument, "empty sheet image bounds %v", b)
	}
	for i, f := range frames {
		if f.Rect.Empty() {
			return nil, errors.Wrapf(ErrInvalidArgument, "frame %d: empty rect %v", i, f.Rect)
		}
		if !f.Rect.In(b) {
			return nil, errors.Wrapf(ErrInvalidArgument, "frame %d: rect %v outside of sheet bounds %v", i, f.Rect, b)
		}
		if f.Duration < 0 {
			return nil, errors.Wrapf(ErrInvalidArgument, "frame %d: negative duration %v", i, f.Duration)
		}
	}
	return &Sheet{img: img, frames: frames, loopCount: loopCount}, nil
}

// Image returns the sheet image containing all frames.
func (s *Sheet) Image() image.Image { return s.img }

// FrameCount returns the number of frames; it is always at least 1.
func (s *Sheet) FrameCount() int { return len(s.frames) }

// LoopCount returns how many times the animation plays. 0 means forever.
func (s *Sheet) LoopCount() int { return s.loopCount }

// Frames returns a copy of the frame list in playback order.
func (s *Sheet) Frames() []Frame {
	return append([]Frame(nil), s.frames...)
}

// FrameRect returns the rectangle of the frame at index i in sheet image coordinates.
func (s *Sheet) FrameRect(i int) (image.Rectangle, error) {
	if err := s.check(i); err != nil {
		return image.Rectangle{}, err
	}
	return s.frames[i].Rect, nil
}

// FrameDuration returns the display duration of frame i, or 0 if i is out of
// range.
func (s *Sheet) FrameDuration(i int) time.Duration {
	if i < 0 || i >= len(s.frames) {
		return 0
	}
	return s.frames[i].Duration
}

// TotalDuration is the duration of a single pass over all frames.
func (s *Sheet) TotalDuration() time.Duration {
	var total time.Duration
	for _, f := range s.frames {
		total += f.Duration
	}
	return total
}

// ContentsRect returns the rectangle of frame i expressed in unit-square
// coordinates relative to the sheet image bounds.
func (s *Sheet) ContentsRect(i int) (Rect, error) {
	if err := s.check(i); err != nil {
		return Rect{}, err
	}
	b := s.img.Bounds()
	r := s.frames[i].Rect.Sub(b.Min)
	w, h := float64(b.Dx()), float64(b.Dy())
	return Rect{
		X: float64(r.Min.X) / w,
		Y: float64(r.Min.Y) / h,
		W: float64(r.Dx()) / w,
		H: float64(r.Dy()) / h,
	}, nil
}

// MustContentsRect is like ContentsRect but panics on an out of range index.
func (s *Sheet) MustContentsRect(i int) Rect {
	r, err := s.ContentsRect(i)
	if err != nil {
		panic(err)
	}
	return r
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Frame returns the image of frame i. If the sheet image supports SubImage,
// the returned image shares pixels with it; otherwise the frame is copied.
//
// The returned image's bounds are those of the frame rect in the sheet.
func (s *Sheet) Frame(i int) (image.Image, error) {
	if err := s.check(i); err != nil {
		return nil, err
	}
	r := s.frames[i].Rect
	if si, ok := s.img.(subImager); ok {
		return si.SubImage(r), nil
	}
	dst := image.NewRGBA(r)
	draw.Draw(dst, r, s.img, r.Min, draw.Src)
	return dst, nil
}

func (s *Sheet) check(i int) error {
	if i < 0 || i >= len(s.frames) {
		return errors.Wrapf(ErrIndexOutOfBounds, "frame %d of %d", i, len(s.frames))
	}
	return nil
}

// ColorModel implements image.Image.
func (s *Sheet) ColorModel() color.Model { return s.img.ColorModel() }

// Bounds implements image.Image.
func (s *Sheet) Bounds() image.Rectangle { return s.img.Bounds() }

// At implements image.Image.
func (s *Sheet) At(x, y int) color.Color { return s.img.At(x, y) }
