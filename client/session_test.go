package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	tok, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, tok)

	require.NoError(t, store.Save("abc"))
	tok, err = NewFileStore(path).Load()
	require.NoError(t, err)
	require.Equal(t, "abc", tok)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"admin_token"`)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, store.Clear())
	tok, err = store.Load()
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestFileStoreKeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"dark"}`), 0o600))

	store := NewFileStore(path)
	require.NoError(t, store.Save("t1"))
	require.NoError(t, store.Clear())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"theme":"dark"}`, string(raw))
}

func TestSessionOverCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewSession(NewFileStore(path))
	require.False(t, s.IsAuthenticated())
	require.Error(t, s.SetToken("x"))
}

func TestMemorySession(t *testing.T) {
	s := NewSession(NewMemoryStore())
	require.False(t, s.IsAuthenticated())
	require.NoError(t, s.SetToken("expired-but-present"))
	require.True(t, s.IsAuthenticated())
	require.NoError(t, s.Clear())
	require.Empty(t, s.Token())
}
