package owid

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectRoot(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "src", "lib", "stories")
	assert.Nil(t, os.MkdirAll(deep, 0o755))
	assert.Nil(t, os.WriteFile(filepath.Join(root, ".here"), nil, 0o644))

	got, e := ProjectRoot(deep)
	assert.Nil(t, e)

	want, _ := filepath.EvalSymlinks(root)
	gotReal, _ := filepath.EvalSymlinks(got)
	assert.Equal(t, want, gotReal)
}

func TestProjectRoot_Nearest(t *testing.T) {
	root := t.TempDir()
	inner := filepath.Join(root, "packages", "site")
	assert.Nil(t, os.MkdirAll(inner, 0o755))
	assert.Nil(t, os.WriteFile(filepath.Join(root, ".here"), nil, 0o644))
	assert.Nil(t, os.WriteFile(filepath.Join(inner, "package.json"), []byte("{}"), 0o644))

	got, e := ProjectRoot(inner)
	assert.Nil(t, e)
	assert.Equal(t, filepath.Base(inner), filepath.Base(got))
}

func TestProjectRoot_NotFound(t *testing.T) {
	// RootMarkers is package state; restore it for the other tests
	saved := RootMarkers
	defer func() { RootMarkers = saved }()
	RootMarkers = []string{".marker-that-does-not-exist-anywhere"}

	_, e := ProjectRoot(t.TempDir())
	assert.True(t, errors.Is(e, ErrNoProjectRoot))
}

func TestHere_Absolute(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "x.csv")
	got, e := Here(abs)
	assert.Nil(t, e)
	assert.Equal(t, abs, got)
}
