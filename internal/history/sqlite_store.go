package history

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/petrijr/trilho/pkg/api"
)

// SQLiteStore is a Store backed by SQLite.
//
// It expects an *sql.DB that uses a SQLite driver (for example,
// "modernc.org/sqlite"). The caller is responsible for importing
// the driver, e.g.:
//
//	import _ "modernc.org/sqlite"
type SQLiteStore struct {
	db *sql.DB
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore initializes the required schema in the given database
// and returns a new SQLiteStore.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			process_name TEXT NOT NULL,
			status TEXT NOT NULL,
			steps INTEGER NOT NULL,
			input BLOB,
			output BLOB,
			error TEXT,
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL
		);`,
	)
	return err
}

func (s *SQLiteStore) SaveRun(run *api.Run) error {
	input, err := EncodeContext(run.Input)
	if err != nil {
		return err
	}

	output, err := EncodeContext(run.Output)
	if err != nil {
		return err
	}

	errStr := ""
	if run.Err != nil {
		errStr = run.Err.Error()
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO runs (id, process_name, status, steps, input, output, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Name,
		string(run.Status),
		run.Steps,
		input,
		output,
		errStr,
		run.StartedAt.UnixNano(),
		run.FinishedAt.UnixNano(),
	)
	return err
}

func (s *SQLiteStore) GetRun(id string) (*api.Run, error) {
	row := s.db.QueryRow(`
		SELECT id, process_name, status, steps, input, output, error, started_at, finished_at
		FROM runs
		WHERE id = ?`,
		id,
	)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}

	return run, nil
}

func (s *SQLiteStore) ListRuns(filter Filter) ([]*api.Run, error) {
	query := `
		SELECT id, process_name, status, steps, input, output, error, started_at, finished_at
		FROM runs`
	var args []any
	var clauses []string

	if filter.Name != "" {
		clauses = append(clauses, "process_name = ?")
		args = append(args, filter.Name)
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(filter.Status))
	}

	if len(clauses) > 0 {
		query = query + " WHERE " + strings.Join(clauses, " AND ")
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*api.Run

	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*api.Run, error) {
	var run api.Run
	var statusStr string
	var input, output []byte
	var errStr sql.NullString
	var startedNs, finishedNs int64

	if err := sc.Scan(&run.ID, &run.Name, &statusStr, &run.Steps, &input, &output, &errStr, &startedNs, &finishedNs); err != nil {
		return nil, err
	}

	run.Status = api.Status(statusStr)
	run.StartedAt = time.Unix(0, startedNs)
	run.FinishedAt = time.Unix(0, finishedNs)

	in, err := DecodeContext(input)
	if err != nil {
		return nil, err
	}
	run.Input = in

	out, err := DecodeContext(output)
	if err != nil {
		return nil, err
	}
	run.Output = out

	if errStr.Valid && errStr.String != "" {
		run.Err = errors.New(errStr.String)
	}

	return &run, nil
}
