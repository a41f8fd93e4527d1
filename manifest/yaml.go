package manifest

import (
	"image"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"badc0de.net/pkg/go-sheetkit/sheet"
)

type yamlFrame struct {
	X        int           `yaml:"x"`
	Y        int           `yaml:"y"`
	W        int           `yaml:"w"`
	H        int           `yaml:"h"`
	Duration time.Duration `yaml:"duration"`
}

type yamlTag struct {
	Name   string `yaml:"name"`
	From   int    `yaml:"from"`
	To     int    `yaml:"to"`
	Repeat int    `yaml:"repeat"`
}

type yamlManifest struct {
	Image    string        `yaml:"image"`
	Scale    float64       `yaml:"scale"`
	Loop     int           `yaml:"loop"`
	Columns  int           `yaml:"columns"`
	Rows     int           `yaml:"rows"`
	Duration time.Duration `yaml:"duration"`
	Frames   []yamlFrame   `yaml:"frames"`
	Tags     []yamlTag     `yaml:"tags"`
}

// ParseYAML parses a YAML manifest, which looks like either
//
//	image: hero.png
//	columns: 8
//	rows: 12
//	duration: 16ms
//	loop: 0
//
// or lists frames explicitly:
//
//	image: hero.png
//	scale: 2
//	frames:
//	  - {x: 0, y: 0, w: 64, h: 64, duration: 100ms}
//	  - {x: 64, y: 0, w: 64, h: 64, duration: 150ms}
//	tags:
//	  - {name: idle, from: 0, to: 1, repeat: 0}
//
// A frame without a duration uses the top-level duration.
func ParseYAML(data []byte) (*Manifest, error) {
	var ym yamlManifest
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return nil, errors.Wrap(err, "decoding yaml manifest")
	}
	m := &Manifest{
		Image:         ym.Image,
		Scale:         ym.Scale,
		LoopCount:     ym.Loop,
		Columns:       ym.Columns,
		Rows:          ym.Rows,
		FrameDuration: ym.Duration,
	}
	for _, f := range ym.Frames {
		d := f.Duration
		if d == 0 {
			d = ym.Duration
		}
		m.Frames = append(m.Frames, sheet.Frame{Rect: image.Rect(f.X, f.Y, f.X+f.W, f.Y+f.H), Duration: d})
	}
	if len(m.Frames) == 0 && (m.Columns <= 0 || m.Rows <= 0) {
		return nil, errors.Wrap(sheet.ErrInvalidArgument, "yaml manifest needs frames or columns and rows")
	}
	for _, t := range ym.Tags {
		m.Tags = append(m.Tags, Tag{Name: t.Name, From: t.From, To: t.To, Repeat: t.Repeat})
	}
	return m, nil
}
