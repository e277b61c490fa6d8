package services

import (
	"context"

	"github.com/go-faster/errors"
)

func (im *Importer) loadInstructorships(ctx context.Context, res *TableResult) error {
	records, err := im.readDump(TableInstructorships)
	if err != nil {
		return err
	}
	for i, rec := range records {
		res.Read++
		klassLegacyID, err := int64Field(rec, "klassid")
		if err != nil {
			res.Failed++
			return err
		}
		instructorLegacyID, err := int64Field(rec, "instructorid")
		if err != nil {
			res.Failed++
			return err
		}
		klassID, err := im.klasses.Lookup(klassLegacyID)
		if err != nil {
			res.Failed++
			return errors.Wrapf(err, "line %d", rec.Line)
		}
		instructorID, err := im.instructors.Lookup(instructorLegacyID)
		if err != nil {
			res.Failed++
			return errors.Wrapf(err, "line %d", rec.Line)
		}

		klass, err := im.store.FindKlass(ctx, klassID)
		if err != nil {
			res.Failed++
			return errors.Wrapf(err, "line %d: couldn't find klass %d", rec.Line, klassID)
		}
		instructor, err := im.store.FindInstructor(ctx, instructorID)
		if err != nil {
			res.Failed++
			return errors.Wrapf(err, "line %d: couldn't find instructor %d", rec.Line, instructorID)
		}

		linked, err := im.store.LinkInstructor(ctx, klass.ID, instructor.ID)
		if err != nil {
			res.Failed++
			return errors.Wrapf(err, "line %d: error saving instructor-klass relationship", rec.Line)
		}
		if linked {
			res.Saved++
		}
		im.verbosef("Created/updated instructorship %d/%d of %s for %s", i+1, len(records), instructor.FullName(), klass)
	}
	return nil
}
