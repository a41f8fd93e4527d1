package manifest

import (
	"bytes"
	"image"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-sheetkit/sheet"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Filename string   `json:"filename,omitempty"`
	Frame    jsonRect `json:"frame"`
	Rotated  bool     `json:"rotated"`
	Duration int      `json:"duration"` // Milliseconds.
}

type jsonTag struct {
	Name      string `json:"name"`
	From      int    `json:"from"`
	To        int    `json:"to"`
	Direction string `json:"direction"`
	Repeat    string `json:"repeat,omitempty"`
}

// jsonScale accepts both "2" (as Aseprite and TexturePacker write it) and 2.
type jsonScale float64

func (s *jsonScale) UnmarshalJSON(b []byte) error {
	str := string(b)
	if uq, err := strconv.Unquote(str); err == nil {
		str = uq
	}
	if str == "" || str == "null" {
		*s = 0
		return nil
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return errors.Wrapf(err, "bad scale %s", b)
	}
	*s = jsonScale(f)
	return nil
}

type jsonMeta struct {
	App       string    `json:"app,omitempty"`
	Image     string    `json:"image"`
	Scale     jsonScale `json:"scale"`
	FrameTags []jsonTag `json:"frameTags,omitempty"`
}

type jsonManifest struct {
	Frames jsoniter.RawMessage `json:"frames"`
	Meta   jsonMeta            `json:"meta"`
	// Not part of the Aseprite format; lets hand-written files loop.
	Loop int `json:"loop,omitempty"`
}

// ParseJSON parses an Aseprite or TexturePacker JSON data file.
//
// Frames in the "hash" layout are kept in file order.
func ParseJSON(data []byte) (*Manifest, error) {
	var jm jsonManifest
	if err := json.Unmarshal(data, &jm); err != nil {
		return nil, errors.Wrap(err, "decoding json manifest")
	}

	var frames []jsonFrame
	raw := bytes.TrimSpace(jm.Frames)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '[':
		if err := json.Unmarshal(raw, &frames); err != nil {
			return nil, errors.Wrap(err, "decoding json manifest frames")
		}
	default:
		it := jsoniter.ParseBytes(json, raw)
		it.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			var f jsonFrame
			it.ReadVal(&f)
			f.Filename = key
			frames = append(frames, f)
			return it.Error == nil
		})
		if it.Error != nil {
			return nil, errors.Wrap(it.Error, "decoding json manifest frames")
		}
	}
	if len(frames) == 0 {
		return nil, errors.Wrap(sheet.ErrInvalidArgument, "json manifest has no frames")
	}

	m := &Manifest{
		Image:     jm.Meta.Image,
		Scale:     float64(jm.Meta.Scale),
		LoopCount: jm.Loop,
	}
	for i, f := range frames {
		if f.Rotated {
			return nil, errors.Wrapf(sheet.ErrInvalidArgument, "frame %d (%q) is rotated; rotated frames are not supported", i, f.Filename)
		}
		m.Frames = append(m.Frames, sheet.Frame{
			Rect:     image.Rect(f.Frame.X, f.Frame.Y, f.Frame.X+f.Frame.W, f.Frame.Y+f.Frame.H),
			Duration: time.Duration(f.Duration) * time.Millisecond,
		})
	}
	for _, t := range jm.Meta.FrameTags {
		tag := Tag{Name: t.Name, From: t.From, To: t.To}
		if t.Repeat != "" {
			r, err := strconv.Atoi(t.Repeat)
			if err != nil || r < 0 {
				return nil, errors.Wrapf(sheet.ErrInvalidArgument, "tag %q: bad repeat %q", t.Name, t.Repeat)
			}
			tag.Repeat = r
		}
		m.Tags = append(m.Tags, tag)
	}
	return m, nil
}
