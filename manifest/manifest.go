// Package manifest reads sprite sheet descriptions stored next to sheet
// images, and turns them into sheet.Sheet values.
//
// Two formats are understood: the JSON data files written by Aseprite and
// TexturePacker (both the "hash" and the "array" frame layouts), and a small
// YAML format describing either a regular grid or explicit frames.
package manifest

import (
	"image"
	"math"
	"time"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-sheetkit/sheet"
)

var (
	// ErrUnknownFormat is returned for files that are neither JSON nor YAML manifests.
	ErrUnknownFormat = errors.New("unknown manifest format")
	// ErrNoSuchTag is returned by Tagged for a tag that is not in the manifest.
	ErrNoSuchTag = errors.New("no such tag")
)

// Tag names a contiguous range of frames, such as "walk" or "idle".
type Tag struct {
	Name     string
	From, To int // Inclusive.
	// Repeat is the loop count to use when playing only this tag; 0 means forever.
	Repeat int
}

// Manifest describes the frame layout of a sheet image.
//
// Frame rects are expressed in the coordinates of the image the manifest was
// authored for, which had the scale Scale (1 for a 1x image).
type Manifest struct {
	Image     string
	Scale     float64
	LoopCount int

	// Either Frames is set, or Columns and Rows describe a grid whose cells
	// are all shown for FrameDuration.
	Frames        []sheet.Frame
	Columns, Rows int
	FrameDuration time.Duration

	Tags []Tag

	// selected is the tag chosen by Tagged on a grid manifest, whose frames
	// are only known once the image is.
	selected *Tag
}

// Tagged returns a manifest with only the frames of the named tag, looping as
// the tag requests.
func (m *Manifest) Tagged(name string) (*Manifest, error) {
	for _, t := range m.Tags {
		if t.Name != name {
			continue
		}
		out := *m
		out.LoopCount = t.Repeat
		out.Tags = []Tag{{Name: t.Name, From: 0, To: t.To - t.From, Repeat: t.Repeat}}
		if len(m.Frames) == 0 {
			// Tags of an already tagged grid are relative to its selection.
			sel := t
			if m.selected != nil {
				sel.From += m.selected.From
				sel.To += m.selected.From
			}
			out.selected = &sel
			return &out, nil
		}
		if t.From < 0 || t.To >= len(m.Frames) || t.From > t.To {
			return nil, errors.Wrapf(sheet.ErrInvalidArgument, "tag %q covers frames %d..%d of %d", name, t.From, t.To, len(m.Frames))
		}
		out.Frames = append([]sheet.Frame(nil), m.Frames[t.From:t.To+1]...)
		return &out, nil
	}
	return nil, errors.Wrapf(ErrNoSuchTag, "%q", name)
}

// Sheet combines the manifest with the sheet image it describes. imageScale
// is the scale of img; when it differs from the manifest's Scale, the frame
// rects are scaled to match.
func (m *Manifest) Sheet(img image.Image, imageScale float64) (*sheet.Sheet, error) {
	if img == nil {
		return nil, errors.Wrap(sheet.ErrInvalidArgument, "nil sheet image")
	}
	if len(m.Frames) == 0 {
		return m.gridSheet(img)
	}

	from := m.Scale
	if from <= 0 {
		from = 1
	}
	if imageScale <= 0 {
		imageScale = 1
	}
	factor := imageScale / from

	frames := make([]sheet.Frame, len(m.Frames))
	origin := img.Bounds().Min
	for i, f := range m.Frames {
		frames[i] = sheet.Frame{Rect: scaleRect(f.Rect, factor).Add(origin), Duration: f.Duration}
	}
	return sheet.NewWithFrames(img, frames, m.LoopCount)
}

func (m *Manifest) gridSheet(img image.Image) (*sheet.Sheet, error) {
	g, err := sheet.NewGrid(img, m.Columns, m.Rows, m.FrameDuration, m.LoopCount)
	if err != nil || m.selected == nil {
		return g, err
	}
	t := m.selected
	if t.From < 0 || t.To >= g.FrameCount() || t.From > t.To {
		return nil, errors.Wrapf(sheet.ErrInvalidArgument, "tag %q covers frames %d..%d of %d", t.Name, t.From, t.To, g.FrameCount())
	}
	return sheet.NewWithFrames(img, g.Frames()[t.From:t.To+1], m.LoopCount)
}

func scaleRect(r image.Rectangle, factor float64) image.Rectangle {
	if factor == 1 {
		return r
	}
	sc := func(v int) int { return int(math.Round(float64(v) * factor)) }
	return image.Rect(sc(r.Min.X), sc(r.Min.Y), sc(r.Max.X), sc(r.Max.Y))
}
