package dumpfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"
)

func TestParse_UnescapesCommas(t *testing.T) {
	t.Parallel()

	recs, err := Parse(strings.NewReader("1,2\\,3,4\n"), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, []string{"1", "2,3", "4"}, recs[0].Values())
	require.Equal(t, "2,3", recs[0].Get("b"))
	require.Equal(t, 1, recs[0].Line)
}

func TestParse_KeepSlashes(t *testing.T) {
	t.Parallel()

	recs, err := Parse(strings.NewReader("1,2\\,3,4\n"), []string{"a", "b", "c"}, KeepSlashes())
	require.NoError(t, err)
	require.Equal(t, `2\,3`, recs[0].Get("b"))
}

func TestParse_PadsAndTruncates(t *testing.T) {
	t.Parallel()

	recs, err := Parse(strings.NewReader("1,EECS\n2,Physics,PHYS,extra,fields\n"), []string{"id", "name", "abbrev"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, []string{"1", "EECS", ""}, recs[0].Values())
	require.Equal(t, []string{"2", "Physics", "PHYS"}, recs[1].Values())
}

func TestParse_EmptyFieldsAndWhitespaceAfterDelimiter(t *testing.T) {
	t.Parallel()

	recs, err := Parse(strings.NewReader("10,Intro to Programming,CS61A,0,1,,http://x,4,1,,\r\n"),
		[]string{"id", "coursename", "coursenumber", "level", "departmentid", "description", "url", "units", "current", "prerequisites", "newsgroup"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	r := recs[0]
	require.Equal(t, "Intro to Programming", r.Get("coursename"))
	require.Equal(t, "", r.Get("description"))
	require.Equal(t, "http://x", r.Get("url"))
	require.Equal(t, "", r.Get("newsgroup"))

	recs, err = Parse(strings.NewReader("1,  spaced,\tvalue\n"), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Equal(t, []string{"1", "spaced", "value"}, recs[0].Values())
}

func TestParse_NullMarkerAndBlankLines(t *testing.T) {
	t.Parallel()

	recs, err := Parse(strings.NewReader("\xEF\xBB\xBF1,\\N\n\n2,x\n"), []string{"id", "url"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "1", recs[0].Get("id"))
	require.Equal(t, "N", recs[0].Get("url"))
	require.Equal(t, 3, recs[1].Line)
}

func TestParse_NoTrailingNewline(t *testing.T) {
	t.Parallel()

	recs, err := Parse(strings.NewReader("1,a\n2,b"), []string{"id", "v"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "b", recs[1].Get("v"))
}

func TestTokenize_RoundTrip(t *testing.T) {
	t.Parallel()

	lines := []string{
		"1,EECS,EECS",
		"1,2\\,3,4",
		"a,,c",
		",,",
		"x\\,y\\,z",
		"trailing,",
		"",
	}
	for _, line := range lines {
		tokens := Tokenize(line)
		require.Equal(t, line, strings.Join(tokens, ","), "line %q", line)

		values := make([]string, len(tokens))
		for i, tok := range tokens {
			values[i] = strings.ReplaceAll(tok, `\`, "")
		}
		require.Equal(t, line, Join(values), "line %q", line)
	}
}

func TestRead_Errors(t *testing.T) {
	t.Parallel()

	_, err := Read("", []string{"a"})
	require.ErrorIs(t, err, ErrMissingArgument)

	_, err = Read("department.txt", nil)
	require.ErrorIs(t, err, ErrMissingArgument)

	_, err = Read(filepath.Join(t.TempDir(), "missing.txt"), []string{"a"})
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRead_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "department.txt")
	require.NoError(t, os.WriteFile(path, []byte("1,EECS,EECS\n2,Mathematics,MATH\n"), 0o644))

	recs, err := Read(path, []string{"id", "name", "abbrev"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "Mathematics", recs[1].Get("name"))
	require.Equal(t, "", recs[1].Get("unknown"))
}
