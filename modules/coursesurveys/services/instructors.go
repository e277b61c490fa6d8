package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/hkn-eecs/hkn/modules/coursesurveys/domain/entities"
	"github.com/hkn-eecs/hkn/pkg/dumpfile"
)

// loadInstructors creates or updates instructors. Existing attributes are
// never overwritten, except Private which always takes the legacy value.
func (im *Importer) loadInstructors(ctx context.Context, res *TableResult) error {
	cached, err := im.loadCache(ctx, TableInstructors, im.instructors, func(ctx context.Context, id int64) error {
		_, err := im.store.FindInstructor(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	if cached {
		res.Source = SourceCache
		return nil
	}

	records, err := im.readDump(TableInstructors)
	if err != nil {
		return err
	}
	for _, rec := range records {
		res.Read++
		if err := im.importInstructor(ctx, rec); err != nil {
			res.Failed++
			return err
		}
		res.Saved++
	}
	im.writeCache(TableInstructors, im.instructors)
	return nil
}

func (im *Importer) importInstructor(ctx context.Context, rec dumpfile.Record) error {
	legacyID, err := int64Field(rec, "id")
	if err != nil {
		return err
	}
	private := im.boolField(rec, "private")

	key := entities.InstructorKey{FirstName: stringField(rec, "firstname"), LastName: stringField(rec, "lastname")}
	inst, err := im.store.FindOrNewInstructor(ctx, key)
	if err != nil {
		return errors.Wrapf(err, "line %d", rec.Line)
	}
	merge(&inst.Email, stringField(rec, "email"))
	merge(&inst.Title, stringField(rec, "role"))
	merge(&inst.PhoneNumber, stringField(rec, "phone"))
	merge(&inst.Office, stringField(rec, "office"))
	merge(&inst.HomePage, stringField(rec, "url"))
	merge(&inst.Interests, stringField(rec, "interests"))
	merge(&inst.Picture, stringField(rec, "picture_url"))
	inst.Private = private

	if err := im.store.SaveInstructor(ctx, &inst); err != nil {
		return errors.Wrapf(err, "line %d: failed to save instructor %s", rec.Line, inst)
	}
	im.verbosef("Created/updated instructor %s (new id %d)", inst.FullName(), inst.ID)
	im.instructors.Set(legacyID, inst.ID)
	return nil
}
