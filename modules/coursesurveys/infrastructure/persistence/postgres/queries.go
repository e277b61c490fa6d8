package postgres

const (
	departmentByNameQuery = `SELECT id, name, abbr FROM departments WHERE name = $1 ORDER BY id LIMIT 1`
	departmentInsertQuery = `INSERT INTO departments (name, abbr) VALUES ($1, $2) RETURNING id`
	departmentUpdateQuery = `UPDATE departments SET name = $2, abbr = $3 WHERE id = $1`

	courseByKeyQuery = `SELECT id, department_id, prefix, course_number, suffix, name, description, units, prereqs
	FROM courses
	WHERE department_id = $1 AND prefix = $2 AND course_number = $3 AND suffix = $4
	ORDER BY id LIMIT 1`
	courseInsertQuery = `INSERT INTO courses (department_id, prefix, course_number, suffix, name, description, units, prereqs)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	courseUpdateQuery = `UPDATE courses
	SET department_id = $2, prefix = $3, course_number = $4, suffix = $5, name = $6, description = $7, units = $8, prereqs = $9
	WHERE id = $1`

	instructorColumns     = `id, first_name, last_name, email, title, phone_number, office, home_page, interests, picture, private`
	instructorByNameQuery = `SELECT ` + instructorColumns + ` FROM instructors WHERE first_name = $1 AND last_name = $2 ORDER BY id LIMIT 1`
	instructorByIDQuery   = `SELECT ` + instructorColumns + ` FROM instructors WHERE id = $1`
	instructorInsertQuery = `INSERT INTO instructors (first_name, last_name, email, title, phone_number, office, home_page, interests, picture, private)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	instructorUpdateQuery = `UPDATE instructors
	SET first_name = $2, last_name = $3, email = $4, title = $5, phone_number = $6, office = $7, home_page = $8, interests = $9, picture = $10, private = $11
	WHERE id = $1`

	questionByTextQuery = `SELECT id, text, important, inverted, max, keyword FROM survey_questions WHERE text = $1 ORDER BY id LIMIT 1`
	questionInsertQuery = `INSERT INTO survey_questions (text, important, inverted, max, keyword) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	questionUpdateQuery = `UPDATE survey_questions SET text = $2, important = $3, inverted = $4, max = $5, keyword = $6 WHERE id = $1`

	klassColumns     = `id, course_id, semester, section, notes`
	klassByKeyQuery  = `SELECT ` + klassColumns + ` FROM klasses WHERE course_id = $1 AND semester = $2 ORDER BY id LIMIT 1`
	klassByIDQuery   = `SELECT ` + klassColumns + ` FROM klasses WHERE id = $1`
	klassInsertQuery = `INSERT INTO klasses (course_id, semester, section, notes) VALUES ($1, $2, $3, $4) RETURNING id`
	klassUpdateQuery = `UPDATE klasses SET course_id = $2, semester = $3, section = $4, notes = $5 WHERE id = $1`

	instructorshipInsertQuery = `INSERT INTO instructors_klasses (klass_id, instructor_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	answerColumns     = `id, klass_id, instructor_id, survey_question_id, frequencies, mean, deviation, median, "order"`
	answerByKeyQuery  = `SELECT ` + answerColumns + ` FROM survey_answers WHERE klass_id = $1 AND instructor_id = $2 AND survey_question_id = $3 ORDER BY id LIMIT 1`
	answerByIDQuery   = `SELECT ` + answerColumns + ` FROM survey_answers WHERE id = $1`
	answerInsertQuery = `INSERT INTO survey_answers (klass_id, instructor_id, survey_question_id, frequencies, mean, deviation, median, "order")
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	answerUpdateQuery = `UPDATE survey_answers
	SET klass_id = $2, instructor_id = $3, survey_question_id = $4, frequencies = $5, mean = $6, deviation = $7, median = $8, "order" = $9
	WHERE id = $1`
)
