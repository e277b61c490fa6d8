// Package memory implements entities.Store with in-process maps. It backs
// dry runs and tests; nothing is persisted when the process exits.
package memory

import (
	"context"
	"sync"

	"github.com/hkn-eecs/hkn/modules/coursesurveys/domain/entities"
)

type instructorshipKey struct {
	klassID      int64
	instructorID int64
}

// Store implements entities.Store using in-memory data structures.
type Store struct {
	mu sync.RWMutex // Protects all maps

	departments map[int64]entities.Department
	courses     map[int64]entities.Course
	instructors map[int64]entities.Instructor
	questions   map[int64]entities.SurveyQuestion
	klasses     map[int64]entities.Klass
	answers     map[int64]entities.SurveyAnswer
	links       map[instructorshipKey]struct{}

	// Natural key indexes
	departmentByName    map[string]int64
	courseByKey         map[entities.CourseKey]int64
	instructorByName    map[entities.InstructorKey]int64
	questionByText      map[string]int64
	klassByKey          map[entities.KlassKey]int64
	answerByKey         map[entities.AnswerKey]int64
	klassInstructorList map[int64][]int64

	nextID int64
}

var _ entities.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		departments:         make(map[int64]entities.Department),
		courses:             make(map[int64]entities.Course),
		instructors:         make(map[int64]entities.Instructor),
		questions:           make(map[int64]entities.SurveyQuestion),
		klasses:             make(map[int64]entities.Klass),
		answers:             make(map[int64]entities.SurveyAnswer),
		links:               make(map[instructorshipKey]struct{}),
		departmentByName:    make(map[string]int64),
		courseByKey:         make(map[entities.CourseKey]int64),
		instructorByName:    make(map[entities.InstructorKey]int64),
		questionByText:      make(map[string]int64),
		klassByKey:          make(map[entities.KlassKey]int64),
		answerByKey:         make(map[entities.AnswerKey]int64),
		klassInstructorList: make(map[int64][]int64),
	}
}

func (s *Store) allocID() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) FindOrNewDepartment(_ context.Context, name string) (entities.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.departmentByName[name]; ok {
		return s.departments[id], nil
	}
	return entities.Department{Name: name}, nil
}

func (s *Store) SaveDepartment(_ context.Context, d *entities.Department) error {
	if err := entities.Validate("department", *d); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == 0 {
		d.ID = s.allocID()
	} else {
		delete(s.departmentByName, s.departments[d.ID].Name)
	}
	s.departments[d.ID] = *d
	s.departmentByName[d.Name] = d.ID
	return nil
}

func (s *Store) FindOrNewCourse(_ context.Context, key entities.CourseKey) (entities.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.courseByKey[key]; ok {
		return s.courses[id], nil
	}
	return entities.Course{CourseKey: key}, nil
}

func (s *Store) SaveCourse(_ context.Context, c *entities.Course) error {
	if err := entities.Validate("course", *c); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.allocID()
	} else {
		delete(s.courseByKey, s.courses[c.ID].CourseKey)
	}
	s.courses[c.ID] = *c
	s.courseByKey[c.CourseKey] = c.ID
	return nil
}

func (s *Store) FindOrNewInstructor(_ context.Context, key entities.InstructorKey) (entities.Instructor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.instructorByName[key]; ok {
		return s.instructors[id], nil
	}
	// New instructors are private until the import says otherwise.
	return entities.Instructor{InstructorKey: key, Private: true}, nil
}

func (s *Store) FindInstructor(_ context.Context, id int64) (entities.Instructor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.instructors[id]
	if !ok {
		return entities.Instructor{}, entities.ErrNotFound
	}
	return i, nil
}

func (s *Store) SaveInstructor(_ context.Context, i *entities.Instructor) error {
	if err := entities.Validate("instructor", *i); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i.ID == 0 {
		i.ID = s.allocID()
	} else {
		delete(s.instructorByName, s.instructors[i.ID].InstructorKey)
	}
	s.instructors[i.ID] = *i
	s.instructorByName[i.InstructorKey] = i.ID
	return nil
}

func (s *Store) FindOrNewQuestion(_ context.Context, text string) (entities.SurveyQuestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.questionByText[text]; ok {
		return s.questions[id], nil
	}
	return entities.SurveyQuestion{Text: text, Keyword: entities.KeywordNone}, nil
}

func (s *Store) SaveQuestion(_ context.Context, q *entities.SurveyQuestion) error {
	if err := entities.Validate("survey question", *q); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.ID == 0 {
		q.ID = s.allocID()
	} else {
		delete(s.questionByText, s.questions[q.ID].Text)
	}
	s.questions[q.ID] = *q
	s.questionByText[q.Text] = q.ID
	return nil
}

func (s *Store) FindOrNewKlass(_ context.Context, key entities.KlassKey) (entities.Klass, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.klassByKey[key]; ok {
		return s.klasses[id], nil
	}
	return entities.Klass{KlassKey: key}, nil
}

func (s *Store) FindKlass(_ context.Context, id int64) (entities.Klass, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k, ok := s.klasses[id]
	if !ok {
		return entities.Klass{}, entities.ErrNotFound
	}
	return k, nil
}

func (s *Store) SaveKlass(_ context.Context, k *entities.Klass) error {
	if err := entities.Validate("klass", *k); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if k.ID == 0 {
		k.ID = s.allocID()
	} else {
		delete(s.klassByKey, s.klasses[k.ID].KlassKey)
	}
	s.klasses[k.ID] = *k
	s.klassByKey[k.KlassKey] = k.ID
	return nil
}

func (s *Store) LinkInstructor(_ context.Context, klassID, instructorID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.klasses[klassID]; !ok {
		return false, entities.ErrNotFound
	}
	if _, ok := s.instructors[instructorID]; !ok {
		return false, entities.ErrNotFound
	}
	key := instructorshipKey{klassID: klassID, instructorID: instructorID}
	if _, ok := s.links[key]; ok {
		return false, nil
	}
	s.links[key] = struct{}{}
	s.klassInstructorList[klassID] = append(s.klassInstructorList[klassID], instructorID)
	return true, nil
}

func (s *Store) FindOrNewAnswer(_ context.Context, key entities.AnswerKey) (entities.SurveyAnswer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.answerByKey[key]; ok {
		return s.answers[id], nil
	}
	return entities.SurveyAnswer{AnswerKey: key}, nil
}

func (s *Store) FindAnswer(_ context.Context, id int64) (entities.SurveyAnswer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.answers[id]
	if !ok {
		return entities.SurveyAnswer{}, entities.ErrNotFound
	}
	return a, nil
}

func (s *Store) SaveAnswer(_ context.Context, a *entities.SurveyAnswer) error {
	if err := entities.Validate("survey answer", *a); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		a.ID = s.allocID()
	} else {
		delete(s.answerByKey, s.answers[a.ID].AnswerKey)
	}
	s.answers[a.ID] = *a
	s.answerByKey[a.AnswerKey] = a.ID
	return nil
}

// Counts reports how many rows of each kind the store holds.
func (s *Store) Counts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]int{
		"departments":         len(s.departments),
		"courses":             len(s.courses),
		"instructors":         len(s.instructors),
		"survey_questions":    len(s.questions),
		"klasses":             len(s.klasses),
		"instructors_klasses": len(s.links),
		"survey_answers":      len(s.answers),
	}
}

// Departments returns all stored departments.
func (s *Store) Departments() []entities.Department {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Department, 0, len(s.departments))
	for _, d := range s.departments {
		out = append(out, d)
	}
	return out
}

// Courses returns all stored courses.
func (s *Store) Courses() []entities.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, c)
	}
	return out
}

// KlassInstructors returns instructor ids linked to a klass in link order.
func (s *Store) KlassInstructors(klassID int64) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]int64(nil), s.klassInstructorList[klassID]...)
}
