package manifest

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"badc0de.net/pkg/go-sheetkit/paths"
	"badc0de.net/pkg/go-sheetkit/sheet"
)

// Parse parses a manifest, picking the format from the file name's
// extension (.json, .yaml or .yml).
func Parse(name string, data []byte) (*Manifest, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", name)
	}
}

// Loader reads manifests and their sheet images through a scaled resource
// resolver, so that the image variant best matching the display is used.
type Loader struct {
	// Resolver defaults to paths.Default.
	Resolver *paths.Resolver
}

// DefaultLoader loads from the OS filesystem using paths.Default.
var DefaultLoader = &Loader{}

func (l *Loader) resolver() *paths.Resolver {
	if l.Resolver == nil {
		return paths.Default
	}
	return l.Resolver
}

// ReadManifest reads and parses the manifest at manifestPath.
func (l *Loader) ReadManifest(manifestPath string) (*Manifest, error) {
	data, err := afero.ReadFile(l.resolver().FileSystem(), manifestPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest %q", manifestPath)
	}
	m, err := Parse(manifestPath, data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %q", manifestPath)
	}
	return m, nil
}

// ImagePath resolves the sheet image named by m, relative to the directory
// holding the manifest. If the manifest names no image, one with the
// manifest's base name and a .png extension is looked for.
func (l *Loader) ImagePath(manifestPath string, m *Manifest) (string, error) {
	dir := filepath.Dir(manifestPath)
	name := m.Image
	if name == "" {
		base := filepath.Base(manifestPath)
		name = strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	}
	p, ok := l.resolver().PathForScaledResource(filepath.ToSlash(name), "", dir)
	if !ok {
		return "", errors.Wrapf(paths.ErrNotFound, "sheet image %q for manifest %q", name, manifestPath)
	}
	return p, nil
}

// Load reads the manifest at manifestPath, the sheet image it refers to, and
// returns the resulting sheet. If tag is not empty, only the frames of that tag
// are used.
func (l *Loader) Load(manifestPath, tag string) (*sheet.Sheet, error) {
	m, err := l.ReadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	if tag != "" {
		if m, err = m.Tagged(tag); err != nil {
			return nil, errors.Wrapf(err, "manifest %q", manifestPath)
		}
	}

	imgPath, err := l.ImagePath(manifestPath, m)
	if err != nil {
		return nil, err
	}
	f, err := l.resolver().FileSystem().Open(imgPath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening sheet image %q", imgPath)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(sheet.ErrInvalidArgument, "decoding sheet image %q: %v", imgPath, err)
	}

	scale := paths.ScaleOf(imgPath)
	glog.V(1).Infof("manifest.Load(%q): %s image %q at %dx, %v", manifestPath, format, imgPath, scale, img.Bounds())
	s, err := m.Sheet(img, float64(scale))
	if err != nil {
		return nil, errors.Wrapf(err, "manifest %q", manifestPath)
	}
	return s, nil
}

// Load calls DefaultLoader.Load.
func Load(manifestPath, tag string) (*sheet.Sheet, error) {
	return DefaultLoader.Load(manifestPath, tag)
}
