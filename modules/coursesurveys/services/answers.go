package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/hkn-eecs/hkn/modules/coursesurveys/domain/entities"
	"github.com/hkn-eecs/hkn/pkg/dumpfile"
)

func (im *Importer) loadAnswers(ctx context.Context, res *TableResult) error {
	cached, err := im.loadCache(ctx, TableAnswers, im.answers, func(ctx context.Context, id int64) error {
		_, err := im.store.FindAnswer(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	if cached {
		res.Source = SourceCache
		return nil
	}

	records, err := im.readDump(TableAnswers)
	if err != nil {
		return err
	}
	for i, rec := range records {
		res.Read++
		a, err := im.importAnswer(ctx, rec)
		if err != nil {
			res.Failed++
			return err
		}
		res.Saved++
		im.verbosef("Created/updated answer (%d/%d) #%d %s", i+1, len(records), a.Order, a)
	}
	im.writeCache(TableAnswers, im.answers)
	return nil
}

func (im *Importer) importAnswer(ctx context.Context, rec dumpfile.Record) (entities.SurveyAnswer, error) {
	var (
		legacyID, klassLegacyID, questionLegacyID, instructorLegacyID int64
		err                                                            error
	)
	ints := []struct {
		name string
		dst  *int64
	}{
		{"id", &legacyID},
		{"klassid", &klassLegacyID},
		{"questionid", &questionLegacyID},
		{"instructorid", &instructorLegacyID},
	}
	for _, f := range ints {
		if *f.dst, err = int64Field(rec, f.name); err != nil {
			return entities.SurveyAnswer{}, err
		}
	}

	var key entities.AnswerKey
	if key.KlassID, err = im.klasses.Lookup(klassLegacyID); err != nil {
		return entities.SurveyAnswer{}, errors.Wrapf(err, "line %d: answer %d", rec.Line, legacyID)
	}
	if key.InstructorID, err = im.instructors.Lookup(instructorLegacyID); err != nil {
		return entities.SurveyAnswer{}, errors.Wrapf(err, "line %d: answer %d", rec.Line, legacyID)
	}
	if key.SurveyQuestionID, err = im.questions.Lookup(questionLegacyID); err != nil {
		return entities.SurveyAnswer{}, errors.Wrapf(err, "line %d: answer %d", rec.Line, legacyID)
	}

	a, err := im.store.FindOrNewAnswer(ctx, key)
	if err != nil {
		return entities.SurveyAnswer{}, errors.Wrapf(err, "line %d", rec.Line)
	}
	a.Mean = im.floatField(rec, "mean")
	a.Deviation = im.floatField(rec, "deviation")
	a.Median = im.floatField(rec, "median")
	a.Order = im.intField(rec, "orderinsurvey")
	a.Frequencies = stringField(rec, "frequencies")

	if err := im.store.SaveAnswer(ctx, &a); err != nil {
		return entities.SurveyAnswer{}, errors.Wrapf(err, "line %d: couldn't save answer %s", rec.Line, a)
	}
	im.answers.Set(legacyID, a.ID)
	return a, nil
}
