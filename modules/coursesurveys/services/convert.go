package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/hkn-eecs/hkn/pkg/dumpfile"
)

// nullValue is what mysqldump's \N becomes once backslashes are removed.
const nullValue = "N"

var (
	leadingIntRe   = regexp.MustCompile(`^[-+]?[0-9]+`)
	leadingFloatRe = regexp.MustCompile(`^[-+]?([0-9]+(\.[0-9]+)?|\.[0-9]+)([eE][-+]?[0-9]+)?`)
)

func numeric(rec dumpfile.Record, name string) (string, bool) {
	v := strings.TrimSpace(rec.Get(name))
	if v == "" || v == nullValue {
		return "", false
	}
	return v, true
}

// stringField reads a text column, turning NULL into "".
func stringField(rec dumpfile.Record, name string) string {
	v := rec.Get(name)
	if v == nullValue {
		return ""
	}
	return v
}

// int64Field parses a legacy id. Ids are never guessed, so anything that is
// not an integer fails with ErrMalformedField.
func int64Field(rec dumpfile.Record, name string) (int64, error) {
	v, ok := numeric(rec, name)
	if !ok {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedField, "line %d: %s=%q", rec.Line, name, rec.Get(name))
	}
	return n, nil
}

// parseLeadingInt reads the integer prefix of v, so "1-4" is 1 and "x" is 0.
// exact is false when anything had to be dropped.
func parseLeadingInt(v string) (n int64, exact bool) {
	v = strings.TrimSpace(v)
	if v == "" || v == nullValue {
		return 0, true
	}
	prefix := leadingIntRe.FindString(v)
	if prefix == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, prefix == v
}

// parseLeadingFloat is parseLeadingInt for decimals.
func parseLeadingFloat(v string) (f float64, exact bool) {
	v = strings.TrimSpace(v)
	if v == "" || v == nullValue {
		return 0, true
	}
	prefix := leadingFloatRe.FindString(v)
	if prefix == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0, false
	}
	return f, prefix == v
}

func (im *Importer) coerced(rec dumpfile.Record, name string, got any) {
	im.log.WithFields(logrus.Fields{"line": rec.Line, "field": name}).
		Warnf("%s=%q is not a number, using %v", name, rec.Get(name), got)
}

func (im *Importer) intField(rec dumpfile.Record, name string) int {
	n, exact := parseLeadingInt(rec.Get(name))
	if !exact {
		im.coerced(rec, name, n)
	}
	return int(n)
}

func (im *Importer) floatField(rec dumpfile.Record, name string) float64 {
	f, exact := parseLeadingFloat(rec.Get(name))
	if !exact {
		im.coerced(rec, name, f)
	}
	return f
}

// boolField treats any nonzero integer as true.
func (im *Importer) boolField(rec dumpfile.Record, name string) bool {
	return im.intField(rec, name) != 0
}

// merge fills dst only when it is still empty.
func merge(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
