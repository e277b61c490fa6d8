package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hkn-eecs/hkn/modules/coursesurveys/domain/entities"
	"github.com/hkn-eecs/hkn/modules/coursesurveys/infrastructure/persistence/memory"
	"github.com/hkn-eecs/hkn/pkg/dumpfile"
)

func TestSplitCourseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in                     string
		prefix, number, suffix string
		ok                     bool
	}{
		{"CS61A", "CS", "61", "A", true},
		{"EE20N", "EE", "20", "N", true},
		{"170", "", "170", "", true},
		{"H195", "H", "195", "", true},
		{"", "", "", "", true},
		{"C149/249", "", "C149/249", "", false},
	}
	for _, tt := range tests {
		prefix, number, suffix, ok := splitCourseNumber(tt.in)
		require.Equal(t, tt.ok, ok, tt.in)
		require.Equal(t, []string{tt.prefix, tt.number, tt.suffix}, []string{prefix, number, suffix}, tt.in)
	}
}

func TestQuestionKeyword(t *testing.T) {
	t.Parallel()

	require.Equal(t, entities.KeywordProfEff, questionKeyword("tep"))
	require.Equal(t, entities.KeywordTAEff, questionKeyword("teta"))
	require.Equal(t, entities.KeywordWorthwhile, questionKeyword("ww"))
	require.Equal(t, entities.KeywordNone, questionKeyword("TEP"))
	require.Equal(t, entities.KeywordNone, questionKeyword(""))
}

func parseOne(t *testing.T, line string, fields ...string) dumpfile.Record {
	t.Helper()
	records, err := dumpfile.Parse(strings.NewReader(line), fields)
	require.NoError(t, err)
	require.Len(t, records, 1)
	return records[0]
}

func TestFieldConversions(t *testing.T) {
	t.Parallel()

	rec := parseOne(t, `42, \N,,7.25,3,0,x,ten`+"\n", "id", "null", "empty", "mean", "flag", "off", "bad", "badid")
	im, hook := newTestImporter(t, memory.New(), Options{From: t.TempDir()})

	id, err := int64Field(rec, "id")
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
	_, err = int64Field(rec, "badid")
	require.ErrorIs(t, err, ErrMalformedField)

	for _, name := range []string{"null", "empty"} {
		require.Zero(t, im.intField(rec, name))
		require.Zero(t, im.floatField(rec, name))
		require.Empty(t, stringField(rec, name))
	}
	require.Equal(t, 7.25, im.floatField(rec, "mean"))
	require.True(t, im.boolField(rec, "flag"))
	require.False(t, im.boolField(rec, "off"))
	require.Empty(t, warnings(hook))

	require.Zero(t, im.intField(rec, "bad"))
	require.Zero(t, im.floatField(rec, "bad"))
	require.Len(t, warnings(hook), 2)
	require.Equal(t, "x", stringField(rec, "bad"))
}

func TestParseLeadingNumbers(t *testing.T) {
	t.Parallel()

	ints := []struct {
		in    string
		want  int64
		exact bool
	}{
		{"4", 4, true},
		{" -3 ", -3, true},
		{"1-4", 1, false},
		{"1A", 1, false},
		{"four", 0, false},
		{"", 0, true},
		{"N", 0, true},
	}
	for _, tt := range ints {
		n, exact := parseLeadingInt(tt.in)
		require.Equal(t, tt.want, n, tt.in)
		require.Equal(t, tt.exact, exact, tt.in)
	}

	floats := []struct {
		in    string
		want  float64
		exact bool
	}{
		{"5.5", 5.5, true},
		{".5", 0.5, true},
		{"1e2", 100, true},
		{"3.2abc", 3.2, false},
		{"abc", 0, false},
		{"N", 0, true},
	}
	for _, tt := range floats {
		f, exact := parseLeadingFloat(tt.in)
		require.Equal(t, tt.want, f, tt.in)
		require.Equal(t, tt.exact, exact, tt.in)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	v := ""
	merge(&v, "first")
	merge(&v, "second")
	require.Equal(t, "first", v)
}

func TestIDMap(t *testing.T) {
	t.Parallel()

	m := newIDMap(TableKlasses)
	m.Set(1, 10)
	m.SetMissing(2, 20)

	id, err := m.Lookup(1)
	require.NoError(t, err)
	require.Equal(t, int64(10), id)

	_, err = m.Lookup(2)
	require.ErrorIs(t, err, ErrUnresolvedReference)
	_, err = m.Lookup(3)
	require.ErrorIs(t, err, ErrUnresolvedReference)

	require.Equal(t, 2, m.Len())
	require.Equal(t, map[int64]int64{1: 10}, m.Resolved())
}

func TestParseTable(t *testing.T) {
	t.Parallel()

	for _, tbl := range TableOrder {
		got, err := ParseTable(string(tbl))
		require.NoError(t, err)
		require.Equal(t, tbl, got)
		require.NotEmpty(t, tbl.Fields())
		require.True(t, strings.HasSuffix(tbl.DumpFile(), ".txt"))
	}

	got, err := ParseTable(" Instructors_Klasses ")
	require.NoError(t, err)
	require.Equal(t, TableInstructorships, got)
	require.Equal(t, "instructor_klass.txt", got.DumpFile())
	require.Empty(t, got.CacheFile())

	_, err = ParseTable("events")
	require.ErrorIs(t, err, ErrUnknownTable)
}
