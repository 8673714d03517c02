package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"buckler/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	in := models.TokenPair{AccessToken: "acc", RefreshToken: "ref"}
	require.NoError(t, store.Set(KeyTokens, in))

	var out models.TokenPair
	require.NoError(t, store.Get(KeyTokens, &out))
	assert.Equal(t, in, out)
}

func TestFileStoreMissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	var out models.TokenPair
	assert.ErrorIs(t, store.Get("never_written", &out), ErrNotFound)
}

func TestFileStoreDeleteIsIdempotent(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyHostServices, []string{"bnb"}))
	require.NoError(t, store.Delete(KeyHostServices))
	require.NoError(t, store.Delete(KeyHostServices))

	var out []string
	assert.ErrorIs(t, store.Get(KeyHostServices, &out), ErrNotFound)
}

func TestFileStoreOverwrite(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyHostServices, []string{"bnb"}))
	require.NoError(t, store.Set(KeyHostServices, []string{"bnb", "tours"}))

	var out []string
	require.NoError(t, store.Get(KeyHostServices, &out))
	assert.Equal(t, []string{"bnb", "tours"}, out)
}

func TestFileStoreFlattensPrefixedKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyResumePrefix+"booking", map[string]string{"listing": "l1"}))

	_, err = os.Stat(filepath.Join(dir, "resume_booking.json"))
	require.NoError(t, err)
}

func TestFileStoreTokenFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyTokens, models.TokenPair{AccessToken: "acc"}))

	info, err := os.Stat(filepath.Join(dir, KeyTokens+".json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
