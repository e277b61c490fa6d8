package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/go-faster/errors"

	"github.com/hkn-eecs/hkn/modules/coursesurveys/domain/entities"
	"github.com/hkn-eecs/hkn/pkg/dumpfile"
)

var courseNumberRe = regexp.MustCompile(`^([a-zA-Z]*)([0-9]*)([a-zA-Z]*)$`)

// splitCourseNumber splits "CS61A" into "CS", "61", "A". ok is false when
// the number has some other shape.
func splitCourseNumber(number string) (prefix, digits, suffix string, ok bool) {
	m := courseNumberRe.FindStringSubmatch(number)
	if m == nil {
		return "", number, "", false
	}
	return m[1], m[2], m[3], true
}

func (im *Importer) loadCourses(ctx context.Context, res *TableResult) error {
	records, err := im.readDump(TableCourses)
	if err != nil {
		return err
	}
	for _, rec := range records {
		res.Read++
		if err := im.importCourse(ctx, rec); err != nil {
			res.Failed++
			return err
		}
		res.Saved++
	}
	return nil
}

func (im *Importer) importCourse(ctx context.Context, rec dumpfile.Record) error {
	legacyID, err := int64Field(rec, "id")
	if err != nil {
		return err
	}
	deptLegacyID, err := int64Field(rec, "departmentid")
	if err != nil {
		return err
	}
	deptID, err := im.departments.Lookup(deptLegacyID)
	if err != nil {
		return errors.Wrapf(err, "line %d: course %d", rec.Line, legacyID)
	}

	number := strings.TrimSpace(stringField(rec, "coursenumber"))
	prefix, digits, suffix, ok := splitCourseNumber(number)
	if !ok {
		im.log.WithField("line", rec.Line).Warnf("course number %q does not split into prefix, number, suffix; keeping it whole", number)
	}

	c, err := im.store.FindOrNewCourse(ctx, entities.CourseKey{
		DepartmentID: deptID,
		Prefix:       prefix,
		CourseNumber: digits,
		Suffix:       suffix,
	})
	if err != nil {
		return errors.Wrapf(err, "line %d", rec.Line)
	}
	c.Name = stringField(rec, "coursename")
	c.Description = stringField(rec, "description")
	c.Units = im.intField(rec, "units")
	c.Prereqs = stringField(rec, "prerequisites")
	// Courses no longer offered have no name in the dump.
	if strings.TrimSpace(c.Name) == "" {
		c.Name = entities.InvalidCourseName
	}

	if err := im.store.SaveCourse(ctx, &c); err != nil {
		return errors.Wrapf(err, "line %d: couldn't save course %s", rec.Line, c)
	}
	im.verbosef("Loaded course %s", c.Abbr())
	im.courses.Set(legacyID, c.ID)
	return nil
}
