package entities

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"
)

func TestValidate_Course(t *testing.T) {
	t.Parallel()

	c := Course{CourseKey: CourseKey{DepartmentID: 1, Prefix: "CS", CourseNumber: "61", Suffix: "A"}}
	err := Validate("course", c)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "course", verr.Entity)
	require.Equal(t, map[string]string{"Name": "can't be blank"}, verr.Errors)
	require.Equal(t, "invalid course: Name can't be blank", verr.Error())

	c.Name = InvalidCourseName
	require.NoError(t, Validate("course", c))
}

func TestValidate_EmbeddedKeys(t *testing.T) {
	t.Parallel()

	err := Validate("klass", Klass{})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Contains(t, verr.Errors, "CourseID")
	require.Contains(t, verr.Errors, "Semester")

	require.NoError(t, Validate("klass", Klass{KlassKey: KlassKey{CourseID: 3, Semester: "20103"}}))
}

func TestValidate_QuestionKeyword(t *testing.T) {
	t.Parallel()

	q := SurveyQuestion{Text: "Rate the professor", Keyword: "bogus"}
	err := Validate("survey question", q)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "must be one of [prof_eff ta_eff worthwhile none]", verr.Errors["Keyword"])

	q.Keyword = KeywordProfEff
	require.NoError(t, Validate("survey question", q))
}

func TestInstructor_FullName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Ada Lovelace", Instructor{InstructorKey: InstructorKey{FirstName: "Ada", LastName: "Lovelace"}}.FullName())
	require.Equal(t, "Staff", Instructor{InstructorKey: InstructorKey{LastName: "Staff"}}.FullName())
}
