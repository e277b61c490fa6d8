package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/hkn-eecs/hkn/modules/coursesurveys/domain/entities"
	"github.com/hkn-eecs/hkn/pkg/dumpfile"
)

var legacyKeywords = map[string]entities.Keyword{
	"tep":  entities.KeywordProfEff,
	"teta": entities.KeywordTAEff,
	"ww":   entities.KeywordWorthwhile,
}

func questionKeyword(legacy string) entities.Keyword {
	if k, ok := legacyKeywords[legacy]; ok {
		return k
	}
	return entities.KeywordNone
}

// loadQuestions skips questions the store rejects. Answers to them then
// fail to resolve.
func (im *Importer) loadQuestions(ctx context.Context, res *TableResult) error {
	records, err := im.readDump(TableQuestions)
	if err != nil {
		return err
	}
	for _, rec := range records {
		res.Read++
		saved, err := im.importQuestion(ctx, rec)
		if err != nil {
			res.Failed++
			return err
		}
		if !saved {
			res.Failed++
			continue
		}
		res.Saved++
	}
	return nil
}

func (im *Importer) importQuestion(ctx context.Context, rec dumpfile.Record) (bool, error) {
	legacyID, err := int64Field(rec, "id")
	if err != nil {
		return false, err
	}
	ratingMax := im.intField(rec, "ratingmax")
	important := im.boolField(rec, "important")
	inverted := im.boolField(rec, "inverted")

	q, err := im.store.FindOrNewQuestion(ctx, rec.Get("text"))
	if err != nil {
		return false, errors.Wrapf(err, "line %d", rec.Line)
	}
	q.Text = rec.Get("text")
	q.Important = important
	q.Inverted = inverted
	q.Max = ratingMax
	q.Keyword = questionKeyword(rec.Get("keyword"))

	if err := im.store.SaveQuestion(ctx, &q); err != nil {
		var verr *entities.ValidationError
		if !errors.As(err, &verr) {
			return false, errors.Wrapf(err, "line %d: failed to save question %s", rec.Line, q)
		}
		im.log.WithError(err).WithField("line", rec.Line).Errorf("failed to save question %s", q)
		return false, nil
	}
	im.questions.Set(legacyID, q.ID)
	im.verbosef("Created/updated question %s", q.Text)
	return true, nil
}
