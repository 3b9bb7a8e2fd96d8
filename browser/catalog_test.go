package browser

import (
	"errors"
	"io"
	"path"
	"testing"
	"testing/fstest"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceCatalog_QueryKeepsOrderAndIgnoresCase(t *testing.T) {
	c := pngCatalog(t, "add.png", "Remove.png", "rename.png", "help.txt")

	all, err := c.Query("*")
	require.NoError(t, err)
	assert.Equal(t, []string{"add.png", "Remove.png", "rename.png", "help.txt"}, all)

	re, err := c.Query("re*")
	require.NoError(t, err)
	assert.Equal(t, []string{"Remove.png", "rename.png"}, re)

	none, err := c.Query("zzz*")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestResourceCatalog_BadPattern(t *testing.T) {
	c := NewResourceCatalog()

	_, err := c.Query("[*")
	require.Error(t, err)
	assert.ErrorIs(t, err, path.ErrBadPattern)
}

func TestResourceCatalog_Open(t *testing.T) {
	c := pngCatalog(t, "add.png")

	rc, err := c.Open("add.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.NotEmpty(t, data)

	_, err = c.Open("missing.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSupportedNames(t *testing.T) {
	names := []string{"a.PNG", "b.svg", "c.txt", "noext", "d.jpeg"}
	got := supportedNames(names, []string{".png", ".svg"})
	assert.Equal(t, []string{"a.PNG", "b.svg"}, got)
}

func TestFSCatalog_SkipsDirectories(t *testing.T) {
	fsys := fstest.MapFS{
		"add.png":        {Data: []byte("x")},
		"remove.png":     {Data: []byte("y")},
		"nested/new.png": {Data: []byte("z")},
	}
	c := NewFSCatalogFS(fsys)

	names, err := c.Query("*")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"add.png", "remove.png"}, names)

	_, err = c.Open("gone.png")
	assert.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got %v", err)
}

func TestNewFSCatalog_RejectsMissingDir(t *testing.T) {
	_, err := NewFSCatalog(t.TempDir() + "/nope")
	assert.Error(t, err)
}

func TestFuzzyCatalog_MatchesSubsequence(t *testing.T) {
	c := NewFuzzyCatalog(pngCatalog(t, "content-add.png", "content-remove.png", "folder.png"))

	got, err := c.Query("crm*")
	require.NoError(t, err)
	assert.Equal(t, []string{"content-remove.png"}, got)

	all, err := c.Query("*")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestThemeCatalog_NamesAndContent(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	c := ThemeCatalog()
	names, err := c.Query("*")
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Contains(t, names, "account.svg")

	rc, err := c.Open("account.svg")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}
