package idcache

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 7, 500} {
		entries := make(map[int64]int64, n)
		for i := 0; i < n; i++ {
			entries[int64(i*3+1)] = int64(1000 + i)
		}

		path := filepath.Join(t.TempDir(), "klasses.cache")
		require.NoError(t, Save(path, entries))

		got, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, entries, got, "n=%d", n)
	}
}

func TestSave_Format(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "instructors.cache")
	require.NoError(t, Save(path, map[int64]int64{9: 2, 3: 1}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "entries 2\n3 1\n9 2\n", string(raw))
}

func TestSave_Overwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "answers.cache")
	require.NoError(t, Save(path, map[int64]int64{1: 1, 2: 2}))
	require.NoError(t, Save(path, map[int64]int64{5: 6}))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, map[int64]int64{5: 6}, got)

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	require.NoError(t, err)
	require.Empty(t, leftovers)
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.cache"))
	require.Error(t, err)
	require.True(t, errors.Is(err, fs.ErrNotExist))
	require.False(t, errors.Is(err, ErrCorrupt))
}

func TestLoad_Corrupt(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty":        "",
		"no header":    "1 2\n3 4\n",
		"bad count":    "entries x\n",
		"fewer lines":  "entries 3\n1 2\n3 4\n",
		"more lines":   "entries 1\n1 2\n3 4\n",
		"bad pair":     "entries 1\n1\n",
		"non-numeric":  "entries 1\na b\n",
		"three fields": "entries 1\n1 2 3\n",
	}
	for name, content := range cases {
		path := filepath.Join(t.TempDir(), "x.cache")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := Load(path)
		require.ErrorIs(t, err, ErrCorrupt, name)
	}
}

func TestLoad_CaseInsensitiveHeaderAndCRLF(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "x.cache")
	require.NoError(t, os.WriteFile(path, []byte("Entries 2\r\n1 10\r\n2 20\r\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, map[int64]int64{1: 10, 2: 20}, got)
}
