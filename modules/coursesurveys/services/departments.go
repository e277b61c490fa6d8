package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/hkn-eecs/hkn/modules/coursesurveys/domain/entities"
)

// loadDepartments logs and skips departments the store rejects. Their
// courses then fail to resolve.
func (im *Importer) loadDepartments(ctx context.Context, res *TableResult) error {
	records, err := im.readDump(TableDepartments)
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

		dept, err := im.store.FindOrNewDepartment(ctx, rec.Get("name"))
		if err != nil {
			res.Failed++
			return errors.Wrapf(err, "line %d", rec.Line)
		}
		dept.Abbr = stringField(rec, "abbrev")
		if err := im.store.SaveDepartment(ctx, &dept); err != nil {
			res.Failed++
			var verr *entities.ValidationError
			if !errors.As(err, &verr) {
				return errors.Wrapf(err, "line %d: failed to save department %s", rec.Line, dept)
			}
			im.log.WithError(err).WithField("line", rec.Line).Errorf("Failed to load department %s", dept)
			continue
		}
		res.Saved++
		im.departments.Set(legacyID, dept.ID)
		im.verbosef("Loaded department %s (%s).", dept.Name, dept.Abbr)
	}
	return nil
}
