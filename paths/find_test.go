package paths

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAndOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hero.png"), []byte("1x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hero@2x.png"), []byte("2x"), 0644))
	t.Setenv(DataDirEnv, dir)

	t.Setenv(DisplayScaleEnv, "1")
	assert.Equal(t, filepath.Join(dir, "hero.png"), Find("hero.png"))

	t.Setenv(DisplayScaleEnv, "2")
	assert.Equal(t, filepath.Join(dir, "hero@2x.png"), Find("hero.png"))

	f, err := Open("hero.png")
	require.NoError(t, err)
	defer f.Close()
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "2x", string(b))

	assert.Equal(t, "", Find("villain.png"))
	_, err = Open("villain.png")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSetupFilePathFlag(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "walk.yaml"), []byte("columns: 1\nrows: 1\n"), 0644))
	t.Setenv(DataDirEnv, dir)

	var found, missing string
	SetupFilePathFlag("walk.yaml", "test_walk_path", &found)
	SetupFilePathFlag("run.yaml", "test_run_path", &missing)

	assert.Equal(t, filepath.Join(dir, "walk.yaml"), found)
	assert.Equal(t, filepath.Join(dir, "walk.yaml"), flag.Lookup("test_walk_path").DefValue)
	assert.Equal(t, "", missing)

	require.NoError(t, flag.Set("test_run_path", "/elsewhere/run.yaml"))
	assert.Equal(t, "/elsewhere/run.yaml", missing)
}
