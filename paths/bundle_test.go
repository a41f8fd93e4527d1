package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBundle(t *testing.T) {
	r := memResolver(t, 2,
		"/app/Resources/icon.png",
		"/app/Resources/icon@2x.png",
		"/app/icon@2x.png",
		"/app/logo@3x.png",
		"/app/Resources/sprites/hero@3x.png",
		"/app/sprites/hero@2x.png",
		"/app/sprites/hero.json",
	)
	b := &Bundle{Path: "/app", Resolver: r}

	for _, tc := range []struct {
		name, ext, subpath string
		want               string
	}{
		{"icon", "png", "", "/app/Resources/icon@2x.png"},
		{"logo", "png", "", "/app/logo@3x.png"},
		{"hero", "png", "sprites", "/app/sprites/hero@2x.png"},
		{"hero", "json", "sprites", "/app/sprites/hero.json"},
		{"", "json", "sprites", "/app/sprites/hero.json"},
		{"missing", "png", "", ""},
		{"hero", "png", "nope", ""},
	} {
		got, found := b.PathForScaledResourceInDirectory(tc.name, tc.ext, tc.subpath)
		assert.Equal(t, filepath.FromSlash(tc.want), got, "%s.%s in %q", tc.name, tc.ext, tc.subpath)
		assert.Equal(t, tc.want != "", found, "%s.%s in %q", tc.name, tc.ext, tc.subpath)
	}

	got, found := b.PathForScaledResource("icon", "png")
	assert.True(t, found)
	assert.Equal(t, filepath.FromSlash("/app/Resources/icon@2x.png"), got)
}

func TestBundleMissingRoot(t *testing.T) {
	b := &Bundle{Path: "/nowhere", Resolver: memResolver(t, 1, "/app/icon.png")}
	_, found := b.PathForScaledResource("icon", "png")
	assert.False(t, found)
}
