// Package idcache persists legacy id -> new id mappings between import runs.
//
// File layout:
//
//	entries <count>
//	<legacy_id> <new_id>
//	...
package idcache

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

var ErrCorrupt = errors.New("corrupt cache file")

var headerRe = regexp.MustCompile(`(?i)^entries ([0-9]+)$`)

// Load reads a cache file. The mapping is returned only when the file holds
// exactly the declared number of entries.
func Load(path string) (map[int64]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		return nil, errors.Wrapf(ErrCorrupt, "%s: missing header", path)
	}
	m := headerRe.FindStringSubmatch(strings.TrimSpace(sc.Text()))
	if m == nil {
		return nil, errors.Wrapf(ErrCorrupt, "%s: malformed header %q", path, sc.Text())
	}
	want, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "%s: entry count: %v", path, err)
	}

	out := make(map[int64]int64, want)
	got := 0
	line := 1
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		parts := strings.Fields(text)
		if len(parts) != 2 {
			return nil, errors.Wrapf(ErrCorrupt, "%s: line %d: expected 2 ids, got %d", path, line, len(parts))
		}
		oldID, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrCorrupt, "%s: line %d: legacy id: %v", path, line, err)
		}
		newID, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrCorrupt, "%s: line %d: new id: %v", path, line, err)
		}
		out[oldID] = newID
		got++
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	if got != want {
		return nil, errors.Wrapf(ErrCorrupt, "%s: expected %d entries, found %d", path, want, got)
	}
	return out, nil
}

// Save overwrites path with the mapping. The file is written next to its
// destination and renamed into place.
func Save(path string, entries map[int64]int64) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "mkdir %s", dir)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	keys := make([]int64, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	w := bufio.NewWriter(tmp)
	fmt.Fprintf(w, "entries %d\n", len(keys))
	for _, k := range keys {
		fmt.Fprintf(w, "%d %d\n", k, entries[k])
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "rename to %s", path)
	}
	return nil
}
