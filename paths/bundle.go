package paths

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Bundle is a directory holding an application's resources, either directly
// or in a Resources subdirectory.
type Bundle struct {
	Path string

	// Resolver defaults to Default.
	Resolver *Resolver
}

// NewBundle returns a bundle rooted at path.
func NewBundle(path string) *Bundle {
	return &Bundle{Path: path}
}

// ExecutableBundle returns the bundle containing the running executable.
func ExecutableBundle() (*Bundle, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, errors.Wrap(err, "locating executable for bundle")
	}
	return NewBundle(filepath.Dir(exe)), nil
}

func (b *Bundle) resolver() *Resolver {
	if b.Resolver == nil {
		return Default
	}
	return b.Resolver
}

// resourceDirs lists the directories searched for resources, optionally
// descending into subpath.
func (b *Bundle) resourceDirs(subpath string) []string {
	return []string{
		filepath.Join(b.Path, "Resources", subpath),
		filepath.Join(b.Path, subpath),
	}
}

// PathForScaledResource returns the full path of the resource identified by
// name and extension in the bundle's resource directories. The search order
// over scales is the same as Resolver.PathForScaledResource; for each scale,
// the Resources directory is searched before the bundle root.
//
// If name is empty, the first file with extension ext is returned.
func (b *Bundle) PathForScaledResource(name, ext string) (string, bool) {
	return b.PathForScaledResourceInDirectory(name, ext, "")
}

// PathForScaledResourceInDirectory is like PathForScaledResource, but searches
// the passed subdirectory of the resource directories. An empty subpath
// searches the resource directories themselves.
func (b *Bundle) PathForScaledResourceInDirectory(name, ext, subpath string) (string, bool) {
	return b.resolver().resolve(b.resourceDirs(subpath), name, ext)
}
