// file: internal/dataset/dataset_test.go
// version: 1.1.0
// guid: 6d7e8f9a-0b1c-4d2e-9f3a-4b5c6d7e8f9a

package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, root, name, creatures, moves string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "creatures.txt"), []byte(creatures), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "moves.txt"), []byte(moves), 0o644))
}

func TestCatalogLoadAndGet(t *testing.T) {
	root := t.TempDir()
	writeDataset(t, root, "kanto", "Pikachu\nBulbasaur\n", "Tackle\nGrowl\n")
	writeDataset(t, root, "johto", "Chikorita\n", "Razor Leaf\n")

	c := NewCatalog(root)
	require.NoError(t, c.Load())

	assert.Equal(t, 2, c.Len())

	ds, err := c.Get("kanto")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pikachu", "Bulbasaur"}, ds.Creatures)
	assert.Equal(t, []string{"Tackle", "Growl"}, ds.Moves)

	_, err = c.Get("hoenn")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCatalogListSortedByName(t *testing.T) {
	root := t.TempDir()
	writeDataset(t, root, "kanto", "Pikachu\n", "Tackle\n")
	writeDataset(t, root, "johto", "Chikorita\n", "Razor Leaf\n")

	c := NewCatalog(root)
	require.NoError(t, c.Load())

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "johto", list[0].Name)
	assert.Equal(t, "kanto", list[1].Name)
}

func TestReadLinesTrimsAndDropsBlanks(t *testing.T) {
	root := t.TempDir()
	writeDataset(t, root, "kanto", "  Pikachu  \n\n\tBulbasaur\n   \n", "Tackle\n")

	c := NewCatalog(root)
	require.NoError(t, c.Load())

	ds, err := c.Get("kanto")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pikachu", "Bulbasaur"}, ds.Creatures)
}

func TestManifestOverrides(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "custom")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.yaml"), []byte(
		"name: Custom Region\ncreatures_file: mons.txt\nmoves_file: attacks.txt\nexemptions:\n  - Splash\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mons.txt"), []byte("Magikarp\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "attacks.txt"), []byte("Splash\n"), 0o644))

	c := NewCatalog(root)
	require.NoError(t, c.Load())

	ds, err := c.Get("Custom Region")
	require.NoError(t, err)
	assert.Equal(t, []string{"Magikarp"}, ds.Creatures)
	assert.Equal(t, []string{"Splash"}, ds.Exemptions)
}

func TestLoadSkipsBrokenDataset(t *testing.T) {
	root := t.TempDir()
	writeDataset(t, root, "kanto", "Pikachu\n", "Tackle\n")
	// Dataset directory missing its moves file.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "broken"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken", "creatures.txt"), []byte("Mew\n"), 0o644))

	c := NewCatalog(root)
	require.NoError(t, c.Load())

	assert.Equal(t, 1, c.Len())
	_, err := c.Get("broken")
	assert.Error(t, err)
}

func TestLoadEmptyFilesRejected(t *testing.T) {
	root := t.TempDir()
	writeDataset(t, root, "empty", "\n\n", "Tackle\n")

	c := NewCatalog(root)
	require.NoError(t, c.Load())
	assert.Equal(t, 0, c.Len())
}

func TestReloadReplacesContents(t *testing.T) {
	root := t.TempDir()
	writeDataset(t, root, "kanto", "Pikachu\n", "Tackle\n")

	c := NewCatalog(root)
	require.NoError(t, c.Load())
	require.Equal(t, 1, c.Len())

	require.NoError(t, os.RemoveAll(filepath.Join(root, "kanto")))
	writeDataset(t, root, "johto", "Chikorita\n", "Razor Leaf\n")
	require.NoError(t, c.Load())

	assert.Equal(t, 1, c.Len())
	_, err := c.Get("kanto")
	assert.Error(t, err)
	_, err = c.Get("johto")
	assert.NoError(t, err)
}

func TestLoadMissingRoot(t *testing.T) {
	c := NewCatalog(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, c.Load())
}
