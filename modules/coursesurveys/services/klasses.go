package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/hkn-eecs/hkn/modules/coursesurveys/domain/entities"
	"github.com/hkn-eecs/hkn/pkg/dumpfile"
)

func (im *Importer) loadKlasses(ctx context.Context, res *TableResult) error {
	cached, err := im.loadCache(ctx, TableKlasses, im.klasses, func(ctx context.Context, id int64) error {
		_, err := im.store.FindKlass(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	if cached {
		res.Source = SourceCache
		return nil
	}

	records, err := im.readDump(TableKlasses)
	if err != nil {
		return err
	}
	for _, rec := range records {
		res.Read++
		if err := im.importKlass(ctx, rec); err != nil {
			res.Failed++
			return err
		}
		res.Saved++
	}
	im.writeCache(TableKlasses, im.klasses)
	return nil
}

func (im *Importer) importKlass(ctx context.Context, rec dumpfile.Record) error {
	legacyID, err := int64Field(rec, "id")
	if err != nil {
		return err
	}
	courseLegacyID, err := int64Field(rec, "courseid")
	if err != nil {
		return err
	}
	seasonID, err := int64Field(rec, "seasonid")
	if err != nil {
		return err
	}

	courseID, err := im.courses.Lookup(courseLegacyID)
	if err != nil {
		return errors.Wrapf(err, "line %d: klass %d", rec.Line, legacyID)
	}
	semester, err := im.semester(seasonID, rec.Get("year"))
	if err != nil {
		return errors.Wrapf(err, "line %d: klass %d", rec.Line, legacyID)
	}

	k, err := im.store.FindOrNewKlass(ctx, entities.KlassKey{CourseID: courseID, Semester: semester})
	if err != nil {
		return errors.Wrapf(err, "line %d", rec.Line)
	}
	k.Section = im.intField(rec, "section")
	if url := rec.Get("url"); url != nullValue {
		k.Notes = "Imported url: " + url
	}

	if err := im.store.SaveKlass(ctx, &k); err != nil {
		return errors.Wrapf(err, "line %d: couldn't save klass %s", rec.Line, k)
	}
	im.verbosef("Loaded klass %s %s %s", k, im.seasons[seasonID].name, rec.Get("year"))
	im.klasses.Set(legacyID, k.ID)
	return nil
}
