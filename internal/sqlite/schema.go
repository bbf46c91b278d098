package sqlite

// Subset of the conference-management schema read and written by the tool.
// Table and column names follow the conference database so snapshots can be
// exported table by table.
const (
	createSubmissionTypes = `CREATE TABLE IF NOT EXISTS submission_submissiontype (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);`

	createSubmissions = `CREATE TABLE IF NOT EXISTS submission_submission (
    id INTEGER PRIMARY KEY,
    code TEXT,
    title TEXT NOT NULL,
    state TEXT NOT NULL,
    submission_type_id INTEGER NOT NULL,
    main_author_id INTEGER,
    paper_id TEXT,
    FOREIGN KEY (submission_type_id) REFERENCES submission_submissiontype(id)
);`

	createAnswerOptions = `CREATE TABLE IF NOT EXISTS submission_answeroption (
    id INTEGER PRIMARY KEY,
    question_id INTEGER NOT NULL,
    answer TEXT NOT NULL
);`

	createAnswers = `CREATE TABLE IF NOT EXISTS submission_answer (
    id INTEGER PRIMARY KEY,
    submission_id INTEGER NOT NULL,
    question_id INTEGER NOT NULL,
    answer TEXT,
    FOREIGN KEY (submission_id) REFERENCES submission_submission(id)
);`

	createAnswerAnswerOptions = `CREATE TABLE IF NOT EXISTS submission_answer_options (
    id INTEGER PRIMARY KEY,
    answer_id INTEGER NOT NULL,
    answeroption_id INTEGER NOT NULL,
    FOREIGN KEY (answer_id) REFERENCES submission_answer(id),
    FOREIGN KEY (answeroption_id) REFERENCES submission_answeroption(id)
);`
)

const (
	idxSubmissionsState = `CREATE INDEX IF NOT EXISTS idx_submission_state ON submission_submission(state);`
	idxAnswersQuestion  = `CREATE INDEX IF NOT EXISTS idx_answer_question ON submission_answer(question_id, submission_id);`
	idxAnswerOptions    = `CREATE INDEX IF NOT EXISTS idx_answer_options_answer ON submission_answer_options(answer_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createSubmissionTypes,
	createSubmissions,
	createAnswerOptions,
	createAnswers,
	createAnswerAnswerOptions,
}

var indexDDL = []string{
	idxSubmissionsState,
	idxAnswersQuestion,
	idxAnswerOptions,
}
