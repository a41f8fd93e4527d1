package sheet

import (
	"image"
	"time"
)

// Animated is an image that can also be played back as a frame animation.
//
// A display component holding an Animated shows Frame(i) (or the sheet image
// clipped to ContentsRect(i)) for FrameDuration(i), advancing i and wrapping
// around until LoopCount passes are done.
type Animated interface {
	image.Image

	FrameCount() int
	LoopCount() int
	FrameDuration(i int) time.Duration
	Frame(i int) (image.Image, error)
	ContentsRect(i int) (Rect, error)
}

var _ Animated = (*Sheet)(nil)
