package entities

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("not found")

// Store is the target entity store the importer writes into.
//
// FindOrNew* return the stored entity matching the natural key, or a new
// unsaved entity (ID 0) carrying only the key. Save* validate, then insert
// or update, and set the ID on insert.
type Store interface {
	FindOrNewDepartment(ctx context.Context, name string) (Department, error)
	SaveDepartment(ctx context.Context, d *Department) error

	FindOrNewCourse(ctx context.Context, key CourseKey) (Course, error)
	SaveCourse(ctx context.Context, c *Course) error

	FindOrNewInstructor(ctx context.Context, key InstructorKey) (Instructor, error)
	FindInstructor(ctx context.Context, id int64) (Instructor, error)
	SaveInstructor(ctx context.Context, i *Instructor) error

	FindOrNewQuestion(ctx context.Context, text string) (SurveyQuestion, error)
	SaveQuestion(ctx context.Context, q *SurveyQuestion) error

	FindOrNewKlass(ctx context.Context, key KlassKey) (Klass, error)
	FindKlass(ctx context.Context, id int64) (Klass, error)
	SaveKlass(ctx context.Context, k *Klass) error

	// LinkInstructor records an instructorship. It reports false when the
	// pair was already linked.
	LinkInstructor(ctx context.Context, klassID, instructorID int64) (bool, error)

	FindOrNewAnswer(ctx context.Context, key AnswerKey) (SurveyAnswer, error)
	FindAnswer(ctx context.Context, id int64) (SurveyAnswer, error)
	SaveAnswer(ctx context.Context, a *SurveyAnswer) error
}
