// Package postgres implements entities.Store on a pgx connection pool. The
// schema in schema.sql must already exist.
package postgres

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hkn-eecs/hkn/modules/coursesurveys/domain/entities"
)

const foreignKeyViolation = "23503"

type Store struct {
	pool *pgxpool.Pool
}

var _ entities.Store = (*Store)(nil)

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Open creates a pool and pings the server.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "db connect failed")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "db connect failed")
	}
	return pool, nil
}

func (s *Store) FindOrNewDepartment(ctx context.Context, name string) (entities.Department, error) {
	var d entities.Department
	err := s.pool.QueryRow(ctx, departmentByNameQuery, name).Scan(&d.ID, &d.Name, &d.Abbr)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Department{Name: name}, nil
	}
	if err != nil {
		return entities.Department{}, errors.Wrapf(err, "find department %q", name)
	}
	return d, nil
}

func (s *Store) SaveDepartment(ctx context.Context, d *entities.Department) error {
	if err := entities.Validate("department", *d); err != nil {
		return err
	}
	if d.ID == 0 {
		return s.insert(ctx, &d.ID, "department", departmentInsertQuery, d.Name, d.Abbr)
	}
	return s.update(ctx, "department", departmentUpdateQuery, d.ID, d.Name, d.Abbr)
}

func (s *Store) FindOrNewCourse(ctx context.Context, key entities.CourseKey) (entities.Course, error) {
	var c entities.Course
	err := s.pool.QueryRow(ctx, courseByKeyQuery, key.DepartmentID, key.Prefix, key.CourseNumber, key.Suffix).Scan(
		&c.ID, &c.DepartmentID, &c.Prefix, &c.CourseNumber, &c.Suffix, &c.Name, &c.Description, &c.Units, &c.Prereqs,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Course{CourseKey: key}, nil
	}
	if err != nil {
		return entities.Course{}, errors.Wrapf(err, "find course %+v", key)
	}
	return c, nil
}

func (s *Store) SaveCourse(ctx context.Context, c *entities.Course) error {
	if err := entities.Validate("course", *c); err != nil {
		return err
	}
	if c.ID == 0 {
		return s.insert(ctx, &c.ID, "course", courseInsertQuery,
			c.DepartmentID, c.Prefix, c.CourseNumber, c.Suffix, c.Name, c.Description, c.Units, c.Prereqs)
	}
	return s.update(ctx, "course", courseUpdateQuery,
		c.ID, c.DepartmentID, c.Prefix, c.CourseNumber, c.Suffix, c.Name, c.Description, c.Units, c.Prereqs)
}

func scanInstructor(row pgx.Row) (entities.Instructor, error) {
	var i entities.Instructor
	err := row.Scan(&i.ID, &i.FirstName, &i.LastName, &i.Email, &i.Title, &i.PhoneNumber,
		&i.Office, &i.HomePage, &i.Interests, &i.Picture, &i.Private)
	return i, err
}

func (s *Store) FindOrNewInstructor(ctx context.Context, key entities.InstructorKey) (entities.Instructor, error) {
	i, err := scanInstructor(s.pool.QueryRow(ctx, instructorByNameQuery, key.FirstName, key.LastName))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Instructor{InstructorKey: key, Private: true}, nil
	}
	if err != nil {
		return entities.Instructor{}, errors.Wrapf(err, "find instructor %q %q", key.FirstName, key.LastName)
	}
	return i, nil
}

func (s *Store) FindInstructor(ctx context.Context, id int64) (entities.Instructor, error) {
	i, err := scanInstructor(s.pool.QueryRow(ctx, instructorByIDQuery, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Instructor{}, entities.ErrNotFound
	}
	if err != nil {
		return entities.Instructor{}, errors.Wrapf(err, "find instructor %d", id)
	}
	return i, nil
}

func (s *Store) SaveInstructor(ctx context.Context, i *entities.Instructor) error {
	if err := entities.Validate("instructor", *i); err != nil {
		return err
	}
	if i.ID == 0 {
		return s.insert(ctx, &i.ID, "instructor", instructorInsertQuery,
			i.FirstName, i.LastName, i.Email, i.Title, i.PhoneNumber, i.Office, i.HomePage, i.Interests, i.Picture, i.Private)
	}
	return s.update(ctx, "instructor", instructorUpdateQuery,
		i.ID, i.FirstName, i.LastName, i.Email, i.Title, i.PhoneNumber, i.Office, i.HomePage, i.Interests, i.Picture, i.Private)
}

func (s *Store) FindOrNewQuestion(ctx context.Context, text string) (entities.SurveyQuestion, error) {
	var (
		q       entities.SurveyQuestion
		keyword string
	)
	err := s.pool.QueryRow(ctx, questionByTextQuery, text).Scan(&q.ID, &q.Text, &q.Important, &q.Inverted, &q.Max, &keyword)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.SurveyQuestion{Text: text, Keyword: entities.KeywordNone}, nil
	}
	if err != nil {
		return entities.SurveyQuestion{}, errors.Wrapf(err, "find survey question %q", text)
	}
	q.Keyword = entities.Keyword(keyword)
	return q, nil
}

func (s *Store) SaveQuestion(ctx context.Context, q *entities.SurveyQuestion) error {
	if err := entities.Validate("survey question", *q); err != nil {
		return err
	}
	if q.ID == 0 {
		return s.insert(ctx, &q.ID, "survey question", questionInsertQuery,
			q.Text, q.Important, q.Inverted, q.Max, string(q.Keyword))
	}
	return s.update(ctx, "survey question", questionUpdateQuery,
		q.ID, q.Text, q.Important, q.Inverted, q.Max, string(q.Keyword))
}

func scanKlass(row pgx.Row) (entities.Klass, error) {
	var k entities.Klass
	err := row.Scan(&k.ID, &k.CourseID, &k.Semester, &k.Section, &k.Notes)
	return k, err
}

func (s *Store) FindOrNewKlass(ctx context.Context, key entities.KlassKey) (entities.Klass, error) {
	k, err := scanKlass(s.pool.QueryRow(ctx, klassByKeyQuery, key.CourseID, key.Semester))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Klass{KlassKey: key}, nil
	}
	if err != nil {
		return entities.Klass{}, errors.Wrapf(err, "find klass %+v", key)
	}
	return k, nil
}

func (s *Store) FindKlass(ctx context.Context, id int64) (entities.Klass, error) {
	k, err := scanKlass(s.pool.QueryRow(ctx, klassByIDQuery, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Klass{}, entities.ErrNotFound
	}
	if err != nil {
		return entities.Klass{}, errors.Wrapf(err, "find klass %d", id)
	}
	return k, nil
}

func (s *Store) SaveKlass(ctx context.Context, k *entities.Klass) error {
	if err := entities.Validate("klass", *k); err != nil {
		return err
	}
	if k.ID == 0 {
		return s.insert(ctx, &k.ID, "klass", klassInsertQuery, k.CourseID, k.Semester, k.Section, k.Notes)
	}
	return s.update(ctx, "klass", klassUpdateQuery, k.ID, k.CourseID, k.Semester, k.Section, k.Notes)
}

func (s *Store) LinkInstructor(ctx context.Context, klassID, instructorID int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, instructorshipInsertQuery, klassID, instructorID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return false, entities.ErrNotFound
		}
		return false, errors.Wrapf(err, "link instructor %d to klass %d", instructorID, klassID)
	}
	return tag.RowsAffected() > 0, nil
}

func scanAnswer(row pgx.Row) (entities.SurveyAnswer, error) {
	var a entities.SurveyAnswer
	err := row.Scan(&a.ID, &a.KlassID, &a.InstructorID, &a.SurveyQuestionID, &a.Frequencies,
		&a.Mean, &a.Deviation, &a.Median, &a.Order)
	return a, err
}

func (s *Store) FindOrNewAnswer(ctx context.Context, key entities.AnswerKey) (entities.SurveyAnswer, error) {
	a, err := scanAnswer(s.pool.QueryRow(ctx, answerByKeyQuery, key.KlassID, key.InstructorID, key.SurveyQuestionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.SurveyAnswer{AnswerKey: key}, nil
	}
	if err != nil {
		return entities.SurveyAnswer{}, errors.Wrapf(err, "find survey answer %+v", key)
	}
	return a, nil
}

func (s *Store) FindAnswer(ctx context.Context, id int64) (entities.SurveyAnswer, error) {
	a, err := scanAnswer(s.pool.QueryRow(ctx, answerByIDQuery, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.SurveyAnswer{}, entities.ErrNotFound
	}
	if err != nil {
		return entities.SurveyAnswer{}, errors.Wrapf(err, "find survey answer %d", id)
	}
	return a, nil
}

func (s *Store) SaveAnswer(ctx context.Context, a *entities.SurveyAnswer) error {
	if err := entities.Validate("survey answer", *a); err != nil {
		return err
	}
	if a.ID == 0 {
		return s.insert(ctx, &a.ID, "survey answer", answerInsertQuery,
			a.KlassID, a.InstructorID, a.SurveyQuestionID, a.Frequencies, a.Mean, a.Deviation, a.Median, a.Order)
	}
	return s.update(ctx, "survey answer", answerUpdateQuery,
		a.ID, a.KlassID, a.InstructorID, a.SurveyQuestionID, a.Frequencies, a.Mean, a.Deviation, a.Median, a.Order)
}

func (s *Store) insert(ctx context.Context, id *int64, entity, query string, args ...any) error {
	if err := s.pool.QueryRow(ctx, query, args...).Scan(id); err != nil {
		return errors.Wrapf(err, "insert %s", entity)
	}
	return nil
}

func (s *Store) update(ctx context.Context, entity, query string, args ...any) error {
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return errors.Wrapf(err, "update %s", entity)
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(entities.ErrNotFound, "update %s %v", entity, args[0])
	}
	return nil
}
