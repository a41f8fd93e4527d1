package sheet

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"runtime"
	"time"

	"github.com/andybons/gogif"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Quantizer converts a frame into a paletted image with at most 256 colors,
// the first of which is color.Transparent.
type Quantizer interface {
	Paletted(img image.Image) *image.Paletted
}

// GoGIFQuantizer quantizes using gogif's median cut implementation.
type GoGIFQuantizer struct {
	NumColor int // Excluding transparency. Defaults to 255.
}

func (q GoGIFQuantizer) Paletted(img image.Image) *image.Paletted {
	n := q.NumColor
	if n <= 0 || n > 255 {
		n = 255
	}
	b := img.Bounds()
	pal := image.NewPaletted(b, nil)
	quantizer := gogif.MedianCutQuantizer{NumColor: n}
	quantizer.Quantize(pal, b, img, b.Min)

	// gogif does not reserve a transparent entry, so the quantized palette
	// is only used as a source of colors for a second, transparent-first
	// image.
	palTransparent := image.NewPaletted(b, append(color.Palette{color.Transparent}, pal.Palette...))
	draw.Draw(palTransparent, b, img, b.Min, draw.Over)
	return palTransparent
}

// MedianCutQuantizer quantizes using go-quantize, which weights colors by
// pixel count and is generally faster than gogif on large frames.
type MedianCutQuantizer struct{}

func (MedianCutQuantizer) Paletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, 255), img)
	pal := image.NewPaletted(b, append(color.Palette{color.Transparent}, p...))
	draw.Draw(pal, b, img, b.Min, draw.Over)
	return pal
}

// GIFOptions controls EncodeGIF. A nil *GIFOptions uses GoGIFQuantizer.
type GIFOptions struct {
	Quantizer Quantizer
}

// gifLoopCount maps a sheet loop count (total number of passes, 0 meaning
// forever) onto image/gif's LoopCount (number of restarts, -1 meaning none).
func gifLoopCount(loopCount int) int {
	switch loopCount {
	case 0:
		return 0
	case 1:
		return -1
	default:
		return loopCount - 1
	}
}

// gifDelay converts a frame duration into GIF delay units of 10ms.
func gifDelay(d time.Duration) int {
	return int((d + 5*time.Millisecond) / (10 * time.Millisecond))
}

// ToGIF converts the sheet into an animated GIF. Every frame becomes one GIF
// image anchored at the top left corner; the logical screen is large enough
// to fit the largest frame.
func ToGIF(s *Sheet, o *GIFOptions) (*gif.GIF, error) {
	var q Quantizer = GoGIFQuantizer{}
	if o != nil && o.Quantizer != nil {
		q = o.Quantizer
	}

	n := s.FrameCount()
	g := &gif.GIF{
		Image:     make([]*image.Paletted, n),
		Delay:     make([]int, n),
		Disposal:  make([]byte, n),
		LoopCount: gifLoopCount(s.LoopCount()),
	}

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		i := i
		r := s.frames[i].Rect
		if r.Dx() > g.Config.Width {
			g.Config.Width = r.Dx()
		}
		if r.Dy() > g.Config.Height {
			g.Config.Height = r.Dy()
		}
		g.Delay[i] = gifDelay(s.frames[i].Duration)
		g.Disposal[i] = gif.DisposalBackground

		eg.Go(func() error {
			frame, err := s.Frame(i)
			if err != nil {
				return errors.Wrapf(err, "extracting frame %d", i)
			}
			// Move the frame to the origin so that every GIF image starts
			// at the top left corner of the logical screen.
			origin := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
			draw.Draw(origin, origin.Bounds(), frame, r.Min, draw.Src)
			g.Image[i] = q.Paletted(origin)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	g.BackgroundIndex = 0 // color.Transparent

	glog.V(2).Infof("sheet.ToGIF: %d frames, %dx%d, loop %d", n, g.Config.Width, g.Config.Height, g.LoopCount)
	return g, nil
}

// EncodeGIF writes the sheet as an animated GIF to w.
func EncodeGIF(w io.Writer, s *Sheet, o *GIFOptions) error {
	g, err := ToGIF(s, o)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(w, g); err != nil {
		return errors.Wrap(err, "encoding gif")
	}
	return nil
}
