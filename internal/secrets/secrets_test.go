// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingDir(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestLoadReadsKeys(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "elsevier-api-key"), []byte("abc123\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crossref-email"), []byte("  who@example.org  "), 0o600))

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "abc123", s["elsevier-api-key"])
	assert.Equal(t, "who@example.org", s["crossref-email"])
}

func TestLoadSkipsHiddenAndEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty-key"), []byte("   \n"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, s)
}
