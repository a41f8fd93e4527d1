package paths

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// ErrNotFound is for callers that need to turn a failed lookup into an error;
// the lookups themselves report "not found" through their boolean result.
var ErrNotFound = errors.New("resource not found")

// ScaleTable maps a display's native scale onto the order in which scaled
// resource variants are searched on such a display.
type ScaleTable map[int][]int

// DefaultScaleTable prefers the native scale, then higher scales, then lower
// ones.
var DefaultScaleTable = ScaleTable{
	1: {1, 2, 3},
	2: {2, 3, 1},
	3: {3, 2, 1},
}

// Lookup returns the search order for the passed native scale. The native
// scale always comes first; the rest follow the table entry for native, or
// for the nearest scale that is present (the lower one on a tie) if native
// is missing from the table. Scales below 1 are treated as 1.
func (t ScaleTable) Lookup(native int) []int {
	if native < 1 {
		native = 1
	}
	scales, ok := t[native]
	if !ok {
		best, bestDist := 0, -1
		for k := range t {
			d := k - native
			if d < 0 {
				d = -d
			}
			if bestDist < 0 || d < bestDist || (d == bestDist && k < best) {
				best, bestDist = k, d
			}
		}
		if bestDist >= 0 {
			scales = t[best]
		} else if native != 1 {
			scales = []int{1}
		}
	}

	out := []int{native}
	for _, s := range scales {
		if s != native {
			out = append(out, s)
		}
	}
	return out
}

// Resolver finds scale-decorated variants of resources, such as
// "button@2x.png" for "button"/"png", preferring the variant that matches the
// display's scale.
//
// Resolver keeps no state between calls; each lookup probes the filesystem
// again. The zero value is usable and works on the OS filesystem with
// EnvDisplay and DefaultScaleTable.
type Resolver struct {
	Fs      afero.Fs
	Display Display
	Table   ScaleTable
}

// Default is the resolver used by the package-level functions.
var Default = &Resolver{}

// FileSystem returns the filesystem r probes.
func (r *Resolver) FileSystem() afero.Fs {
	if r.Fs == nil {
		return afero.NewOsFs()
	}
	return r.Fs
}

func (r *Resolver) display() Display {
	if r.Display == nil {
		return EnvDisplay{}
	}
	return r.Display
}

// PreferredScales returns the scales to try, in order, on the current
// display. For example [1 2 3] on a 1x display, [2 3 1] on a 2x display and
// [3 2 1] on a 3x display.
func (r *Resolver) PreferredScales() []int {
	t := r.Table
	if t == nil {
		t = DefaultScaleTable
	}
	return t.Lookup(r.display().Scale())
}

// PreferredScales returns Default.PreferredScales().
func PreferredScales() []int {
	return Default.PreferredScales()
}

// PathForScaledResource returns the full path of the resource file identified
// by name and extension residing in the passed directory.
//
// It first tries the variant with the display's scale (such as "name@2x.ext"),
// then the other scales in PreferredScales order, and finally the undecorated
// name. The 1x variant is the undecorated name.
//
// If ext is empty, the file is the one whose name exactly matches the
// (decorated) name; if name carries its own extension, the scale is inserted
// before it. If name is empty, the first file with extension ext in the
// directory is returned.
//
// The second return value is false if the file could not be located, including
// when dir does not exist or is not a readable directory.
func (r *Resolver) PathForScaledResource(name, ext, dir string) (string, bool) {
	return r.resolve([]string{dir}, name, ext)
}

// PathForScaledResource calls Default.PathForScaledResource.
func PathForScaledResource(name, ext, dir string) (string, bool) {
	return Default.PathForScaledResource(name, ext, dir)
}

func (r *Resolver) resolve(dirs []string, name, ext string) (string, bool) {
	ext = strings.TrimPrefix(ext, ".")
	fs := r.FileSystem()

	var readable []string
	for _, dir := range dirs {
		if ok, err := afero.IsDir(fs, dir); err == nil && ok {
			readable = append(readable, dir)
		}
	}
	if len(readable) == 0 {
		glog.V(2).Infof("paths.PathForScaledResource(%q, %q): no readable directory in %q", name, ext, dirs)
		return "", false
	}

	for _, scale := range r.PreferredScales() {
		scaledName := ScaledName(name, ext, scale)
		for _, dir := range readable {
			if p, ok := pathForResource(fs, dir, scaledName, ext); ok {
				glog.V(2).Infof("paths.PathForScaledResource(%q, %q)=%s", name, ext, p)
				return p, true
			}
		}
	}
	for _, dir := range readable {
		if p, ok := pathForResource(fs, dir, name, ext); ok {
			glog.V(2).Infof("paths.PathForScaledResource(%q, %q)=%s (unscaled)", name, ext, p)
			return p, true
		}
	}
	return "", false
}

// pathForResource looks for an exact resource in a single directory.
func pathForResource(fs afero.Fs, dir, name, ext string) (string, bool) {
	if name == "" {
		if ext == "" {
			return "", false
		}
		infos, err := afero.ReadDir(fs, dir)
		if err != nil {
			return "", false
		}
		for _, fi := range infos {
			if !fi.IsDir() && filepath.Ext(fi.Name()) == "."+ext {
				return filepath.Join(dir, fi.Name()), true
			}
		}
		return "", false
	}

	fileName := name
	if ext != "" {
		fileName += "." + ext
	}
	p := filepath.Join(dir, fileName)
	if _, err := fs.Stat(p); err != nil {
		return "", false
	}
	return p, true
}

// ScaledName decorates name with the passed scale, e.g. "icon" becomes
// "icon@2x". Scale 1, an empty name and names ending in a slash are returned
// unchanged.
//
// If ext is empty, name is treated as a file name that may carry its own
// extension, and the scale goes in front of it: "icon.png" becomes
// "icon@2x.png".
func ScaledName(name, ext string, scale int) string {
	if scale == 1 || name == "" || strings.HasSuffix(name, "/") {
		return name
	}
	suffix := fmt.Sprintf("@%dx", scale)
	if ext != "" {
		return name + suffix
	}
	e := path.Ext(name)
	return strings.TrimSuffix(name, e) + suffix + e
}

var scaleRE = regexp.MustCompile(`@([1-9][0-9]*)x$`)

// ScaleOf returns the scale a resource path is decorated with, such as 2 for
// "/res/icon@2x.png". Undecorated paths have scale 1.
func ScaleOf(p string) int {
	base := filepath.Base(p)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	m := scaleRE.FindStringSubmatch(base)
	if m == nil {
		return 1
	}
	s, err := strconv.Atoi(m[1])
	if err != nil {
		return 1
	}
	return s
}
