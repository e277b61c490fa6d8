package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"

	"github.com/hkn-eecs/hkn/modules/coursesurveys/domain/entities"
	"github.com/hkn-eecs/hkn/modules/coursesurveys/services"
)

var dump = map[string]string{
	"instructor.txt":       "5,Paul,Hilfinger,1,Professor,,0,,,,,,,,,1,,,0\n",
	"question.txt":         "1,Overall,prof,1,0,7,tep,tep\n",
	"season.txt":           "3,Fall,0.9\n",
	"department.txt":       "1,EECS,EECS\n",
	"course.txt":           "10,Intro to Programming,CS61A,0,1,,http://x,4,1,,\n",
	"klass.txt":            "100,10,3,2010,1,\\N\n",
	"instructor_klass.txt": "100,5\n",
	"answer.txt":           "1000,100,1,[1\\,2],5.5,1.2,6,1,5\n",
}

func writeDump(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range dump {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_MissingDumpPath(t *testing.T) {
	out, err := execute(t)
	require.Error(t, err)
	require.Equal(t, exitUsage, exitCode(err))
	require.Contains(t, out, "Usage:")
	require.Contains(t, out, "--skip")
}

func TestRoot_Help(t *testing.T) {
	out, err := execute(t, "-h")
	require.NoError(t, err)
	require.Equal(t, exitOK, exitCode(err))
	require.Contains(t, out, "import-course-surveys [options] /path/to/dumpfolder")
}

func TestRoot_UnknownSkipTable(t *testing.T) {
	_, err := execute(t, "--dry-run", "-s", "events", writeDump(t))
	require.ErrorIs(t, err, services.ErrUnknownTable)
	require.Equal(t, exitUsage, exitCode(err))
}

func TestRoot_UnknownFlag(t *testing.T) {
	_, err := execute(t, "--bogus", writeDump(t))
	require.Error(t, err)
	require.Equal(t, exitUsage, exitCode(err))
}

func TestRoot_DryRun(t *testing.T) {
	metricsFile := filepath.Join(t.TempDir(), "import.prom")
	out, err := execute(t, "--dry-run", "--json", "--metrics-file", metricsFile, writeDump(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "Warming up... please wait.", lines[0])
	require.Equal(t, "All done.", lines[2])

	var summary services.Summary
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &summary))
	require.Len(t, summary.Tables, len(services.TableOrder))
	answers, ok := summary.Table(services.TableAnswers)
	require.True(t, ok)
	require.Equal(t, services.SourceDump, answers.Source)
	require.Equal(t, 1, answers.Saved)

	body, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	require.Contains(t, string(body), "coursesurveys_import_runs_total")
}

func TestRoot_SkipLeavesDependentsUnresolved(t *testing.T) {
	out, err := execute(t, "--dry-run", "--skip", "departments", writeDump(t))
	require.ErrorIs(t, err, services.ErrUnresolvedReference)
	require.Equal(t, exitData, exitCode(err))
	require.NotContains(t, out, "All done.")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, exitOK},
		{errors.Wrap(services.ErrMissingArgument, "x"), exitUsage},
		{errors.Wrap(&entities.ValidationError{Entity: "course", Errors: map[string]string{"Name": "can't be blank"}}, "x"), exitValidation},
		{errors.Wrap(services.ErrUnresolvedReference, "x"), exitData},
		{errors.Wrap(services.ErrMalformedField, "x"), exitData},
		{errors.Wrap(services.ErrUnknownSeason, "x"), exitData},
		{errors.Wrap(entities.ErrNotFound, "x"), exitData},
		{errors.New("boom"), exitOther},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, classify(tt.err), "%v", tt.err)
	}
	require.Equal(t, exitStore, exitCode(withCode(exitStore, errors.New("db down"))))
	require.NoError(t, withCode(exitStore, nil))
}
