// Package dumpfile reads the comma-delimited table dumps produced by
// `mysqldump --fields-terminated-by=,`. Commas inside values are escaped as `\,`
// and NULL is written as `\N`; there is no quoting and no header row.
package dumpfile

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
)

var ErrMissingArgument = errors.New("dumpfile: path and fields are required")

// Record is one parsed line. Values are kept in declared field order.
type Record struct {
	Line   int
	fields []string
	values []string
}

func (r Record) Get(name string) string {
	for i, f := range r.fields {
		if f == name {
			return r.values[i]
		}
	}
	return ""
}

func (r Record) Values() []string { return r.values }

type options struct {
	removeSlashes bool
}

type Option func(*options)

// KeepSlashes leaves escape backslashes in field values.
func KeepSlashes() Option {
	return func(o *options) { o.removeSlashes = false }
}

func Read(path string, fields []string, opts ...Option) ([]Record, error) {
	if strings.TrimSpace(path) == "" || fields == nil {
		return nil, ErrMissingArgument
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	records, err := Parse(f, fields, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return records, nil
}

func Parse(r io.Reader, fields []string, opts ...Option) ([]Record, error) {
	if fields == nil {
		return nil, ErrMissingArgument
	}
	o := options{removeSlashes: true}
	for _, opt := range opts {
		opt(&o)
	}

	br := stripUTF8BOM(bufio.NewReader(r))
	var out []Record
	line := 0
	for {
		s, err := br.ReadString('\n')
		if s != "" {
			line++
			s = strings.TrimRight(s, "\r\n")
			if strings.TrimSpace(s) != "" {
				out = append(out, newRecord(line, fields, Tokenize(s), o))
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrapf(err, "line %d", line+1)
		}
	}
	return out, nil
}

func newRecord(line int, fields, tokens []string, o options) Record {
	values := make([]string, len(fields))
	for i := range fields {
		if i >= len(tokens) {
			break
		}
		v := tokens[i]
		if o.removeSlashes {
			v = strings.ReplaceAll(v, `\`, "")
		}
		values[i] = v
	}
	return Record{Line: line, fields: fields, values: values}
}

// Tokenize splits a line on unescaped commas. Whitespace right after a
// delimiter is consumed. Escapes are left in the returned tokens.
func Tokenize(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	var (
		tokens []string
		cur    strings.Builder
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line) && line[i+1] == ',':
			cur.WriteString(`\,`)
			i++
		case c == ',':
			tokens = append(tokens, cur.String())
			cur.Reset()
			for i+1 < len(line) && isSpace(line[i+1]) {
				i++
			}
		default:
			cur.WriteByte(c)
		}
	}
	return append(tokens, cur.String())
}

// Escape makes a value safe to place between delimiters.
func Escape(v string) string {
	return strings.ReplaceAll(v, ",", `\,`)
}

// Join is the inverse of Tokenize followed by slash removal, for values
// that contain no backslashes of their own.
func Join(values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = Escape(v)
	}
	return strings.Join(escaped, ",")
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f'
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}
