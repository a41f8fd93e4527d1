// Package paths locates resource files on disk.
//
// The central piece is Resolver, which finds scale-decorated variants of a
// resource ("icon@2x.png" next to "icon.png") in the order best suited for the
// current display. Find and Open use it to locate the module's data files in
// a few well-known directories.
package paths

import (
	"io"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// DataDirEnv names an extra directory searched first by Find.
const DataDirEnv = "SHEETKIT_DATA"

// DataDirs returns the directories searched by Find, in order.
func DataDirs() []string {
	var dirs []string
	if d := os.Getenv(DataDirEnv); d != "" {
		dirs = append(dirs, d)
	}
	dirs = append(dirs,
		"datafiles",
		os.Args[0]+".runfiles/go_sheetkit/datafiles",
	)
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Join(filepath.Dir(exe), "datafiles"))
	}
	return dirs
}

// Find locates the passed datafile shortname and returns an absolute or
// relative path to find the datafile at, or an empty string.
//
// The best scaled variant is preferred, so on a 2x display "hero.png" may be
// found as "datafiles/hero@2x.png".
func Find(fileName string) string {
	for _, dir := range DataDirs() {
		if path, ok := Default.PathForScaledResource(fileName, "", dir); ok {
			glog.Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return ""
}

// Open locates the passed file in the same locations that Find would look, and
// opens it. If Find returns an empty string, an error is returned.
func Open(fileName string) (interface {
	io.ReadCloser
	io.Seeker
}, error) {
	path := Find(fileName)
	if path == "" {
		return nil, errors.Wrapf(os.ErrNotExist, "paths.Open(%q): not found in %q", fileName, DataDirs())
	}
	return NoFindOpen(path)
}

// NoFindOpen opens the passed path as-is.
func NoFindOpen(fileName string) (interface {
	io.ReadCloser
	io.Seeker
}, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "paths.NoFindOpen(%q)", fileName)
	}
	return f, nil
}
