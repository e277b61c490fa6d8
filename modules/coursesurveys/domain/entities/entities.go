package entities

import "fmt"

const InvalidCourseName = "[ INVALID COURSE ]"

type Department struct {
	ID   int64
	Name string `validate:"required"`
	Abbr string
}

func (d Department) String() string {
	return fmt.Sprintf("Department{id=%d name=%q abbr=%q}", d.ID, d.Name, d.Abbr)
}

type CourseKey struct {
	DepartmentID int64 `validate:"required"`
	Prefix       string
	CourseNumber string
	Suffix       string
}

type Course struct {
	ID int64
	CourseKey
	Name        string `validate:"required"`
	Description string
	Units       int
	Prereqs     string
}

func (c Course) Abbr() string {
	return c.Prefix + c.CourseNumber + c.Suffix
}

func (c Course) String() string {
	return fmt.Sprintf("Course{id=%d department_id=%d number=%q name=%q units=%d}", c.ID, c.DepartmentID, c.Abbr(), c.Name, c.Units)
}

type KlassKey struct {
	CourseID int64  `validate:"required"`
	Semester string `validate:"required"`
}

type Klass struct {
	ID int64
	KlassKey
	Section int
	Notes   string
}

func (k Klass) String() string {
	return fmt.Sprintf("Klass{id=%d course_id=%d semester=%q section=%d}", k.ID, k.CourseID, k.Semester, k.Section)
}

type InstructorKey struct {
	FirstName string
	LastName  string `validate:"required"`
}

type Instructor struct {
	ID int64
	InstructorKey
	Email       string
	Title       string
	PhoneNumber string
	Office      string
	HomePage    string
	Interests   string
	Picture     string
	Private     bool
}

func (i Instructor) FullName() string {
	if i.FirstName == "" {
		return i.LastName
	}
	return i.FirstName + " " + i.LastName
}

func (i Instructor) String() string {
	return fmt.Sprintf("Instructor{id=%d name=%q title=%q private=%t}", i.ID, i.FullName(), i.Title, i.Private)
}

type Keyword string

const (
	KeywordProfEff    Keyword = "prof_eff"
	KeywordTAEff      Keyword = "ta_eff"
	KeywordWorthwhile Keyword = "worthwhile"
	KeywordNone       Keyword = "none"
)

type SurveyQuestion struct {
	ID        int64
	Text      string `validate:"required"`
	Important bool
	Inverted  bool
	Max       int
	Keyword   Keyword `validate:"oneof=prof_eff ta_eff worthwhile none"`
}

func (q SurveyQuestion) String() string {
	return fmt.Sprintf("SurveyQuestion{id=%d text=%q keyword=%s max=%d}", q.ID, q.Text, q.Keyword, q.Max)
}

type AnswerKey struct {
	KlassID          int64 `validate:"required"`
	InstructorID     int64 `validate:"required"`
	SurveyQuestionID int64 `validate:"required"`
}

type SurveyAnswer struct {
	ID int64
	AnswerKey
	Frequencies string
	Mean        float64
	Deviation   float64
	Median      float64
	Order       int
}

func (a SurveyAnswer) String() string {
	return fmt.Sprintf("SurveyAnswer{id=%d klass_id=%d instructor_id=%d question_id=%d order=%d mean=%g}",
		a.ID, a.KlassID, a.InstructorID, a.SurveyQuestionID, a.Order, a.Mean)
}
