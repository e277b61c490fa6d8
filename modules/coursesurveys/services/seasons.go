package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

// Season codes as stored in the last digit of a klass semester.
var seasonCodes = map[string]int{
	"spring": 1,
	"summer": 2,
	"fall":   3,
}

// loadSeasons keeps seasons in memory only; klasses fold them into their
// semester string.
func (im *Importer) loadSeasons(_ context.Context, res *TableResult) error {
	records, err := im.readDump(TableSeasons)
	if err != nil {
		return err
	}
	for _, rec := range records {
		res.Read++
		legacyID, err := int64Field(rec, "id")
		if err != nil {
			res.Failed++
			return err
		}
		s := season{name: rec.Get("name"), fraction: rec.Get("fraction")}
		im.seasons[legacyID] = s
		res.Saved++
		im.verbosef("Loaded season %s (fraction %s).", s.name, s.fraction)
	}
	return nil
}

// semester builds the "{year}{code}" semester string, e.g. "20103" for
// Fall 2010.
func (im *Importer) semester(seasonID int64, year string) (string, error) {
	s, ok := im.seasons[seasonID]
	if !ok {
		return "", errors.Wrapf(ErrUnresolvedReference, "%s: legacy id %d was never imported", TableSeasons, seasonID)
	}
	code, ok := seasonCodes[strings.ToLower(strings.TrimSpace(s.name))]
	if !ok {
		return "", errors.Wrapf(ErrUnknownSeason, "season %d is named %q", seasonID, s.name)
	}
	return strings.TrimSpace(year) + strconv.Itoa(code), nil
}
