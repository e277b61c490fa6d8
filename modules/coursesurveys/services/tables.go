package services

import (
	"strings"

	"github.com/go-faster/errors"
)

// Table names a legacy table as accepted by --skip.
type Table string

const (
	TableInstructors     Table = "instructors"
	TableQuestions       Table = "questions"
	TableSeasons         Table = "seasons"
	TableDepartments     Table = "departments"
	TableCourses         Table = "courses"
	TableKlasses         Table = "klasses"
	TableInstructorships Table = "instructors_klasses"
	TableAnswers         Table = "answers"
)

// TableOrder is the order tables are imported in. Every table comes after
// the tables its foreign keys point at.
var TableOrder = []Table{
	TableInstructors,
	TableQuestions,
	TableSeasons,
	TableDepartments,
	TableCourses,
	TableKlasses,
	TableInstructorships,
	TableAnswers,
}

type tableDef struct {
	dump   string
	cache  string
	fields []string
}

var tableDefs = map[Table]tableDef{
	TableAnswers: {
		dump:   "answer",
		cache:  "answers.cache",
		fields: []string{"id", "klassid", "questionid", "frequencies", "mean", "deviation", "median", "orderinsurvey", "instructorid"},
	},
	TableInstructors: {
		dump:  "instructor",
		cache: "instructors.cache",
		fields: []string{
			"id", "firstname", "lastname", "departmentid", "role", "title", "divisionid", "phone", "fax", "email",
			"office", "url", "comment_url", "assistant", "interests", "current", "most_recent_class", "picture_url", "private",
		},
	},
	TableQuestions: {
		dump:   "question",
		fields: []string{"id", "text", "subject", "important", "inverted", "ratingmax", "short", "keyword"},
	},
	TableKlasses: {
		dump:   "klass",
		cache:  "klasses.cache",
		fields: []string{"id", "courseid", "seasonid", "year", "section", "url"},
	},
	TableSeasons: {
		dump:   "season",
		fields: []string{"id", "name", "fraction"},
	},
	TableCourses: {
		dump:   "course",
		fields: []string{"id", "coursename", "coursenumber", "level", "departmentid", "description", "url", "units", "current", "prerequisites", "newsgroup"},
	},
	TableDepartments: {
		dump:   "department",
		fields: []string{"id", "name", "abbrev"},
	},
	TableInstructorships: {
		dump:   "instructor_klass",
		fields: []string{"klassid", "instructorid"},
	},
}

// ParseTable accepts a table name as written on the command line.
func ParseTable(name string) (Table, error) {
	t := Table(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := tableDefs[t]; !ok {
		return "", errors.Wrapf(ErrUnknownTable, "%q (want one of %s)", name, TableNames())
	}
	return t, nil
}

func TableNames() string {
	names := make([]string, 0, len(TableOrder))
	for _, t := range TableOrder {
		names = append(names, string(t))
	}
	return strings.Join(names, "|")
}

// DumpFile is the file name of the table's dump inside the dump directory.
func (t Table) DumpFile() string {
	return tableDefs[t].dump + ".txt"
}

// CacheFile is empty for tables that are never cached.
func (t Table) CacheFile() string {
	return tableDefs[t].cache
}

func (t Table) Fields() []string {
	return tableDefs[t].fields
}
