package record

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gopsql/db"
)

// testDB adapts a sqlmock-backed *sql.DB to the db.DB interface. Queries
// are matched verbatim (QueryMatcherEqual) against the deterministic SQL
// the builders generate.
type testDB struct {
	*sql.DB
}

func newTestDB(t *testing.T) (db.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
		conn.Close()
	})
	return &testDB{conn}, mock
}

func (d *testDB) DriverName() string {
	return "sqlmock"
}

func (d *testDB) ErrGetCode(err error) string {
	return ""
}

func (d *testDB) ErrNoRows() error {
	return sql.ErrNoRows
}

func (d *testDB) Commit(ctx context.Context) error {
	return nil
}

func (d *testDB) Rollback(ctx context.Context) error {
	return nil
}

func (d *testDB) BeginTx(ctx context.Context, isolationLevel string, readOnly bool) (db.Tx, error) {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &testTx{tx}, nil
}

func (d *testDB) Exec(query string, args ...interface{}) (db.Result, error) {
	return d.DB.Exec(query, args...)
}

func (d *testDB) ExecContext(ctx context.Context, query string, args ...interface{}) (db.Result, error) {
	return d.DB.ExecContext(ctx, query, args...)
}

func (d *testDB) Query(query string, args ...interface{}) (db.Rows, error) {
	return d.DB.Query(query, args...)
}

func (d *testDB) QueryContext(ctx context.Context, query string, args ...interface{}) (db.Rows, error) {
	return d.DB.QueryContext(ctx, query, args...)
}

func (d *testDB) QueryRow(query string, args ...interface{}) db.Row {
	return d.DB.QueryRow(query, args...)
}

func (d *testDB) QueryRowContext(ctx context.Context, query string, args ...interface{}) db.Row {
	return d.DB.QueryRowContext(ctx, query, args...)
}

type testTx struct {
	*sql.Tx
}

func (tx *testTx) Commit(ctx context.Context) error {
	return tx.Tx.Commit()
}

func (tx *testTx) Rollback(ctx context.Context) error {
	return tx.Tx.Rollback()
}

func (tx *testTx) Exec(query string, args ...interface{}) (db.Result, error) {
	return tx.Tx.Exec(query, args...)
}

func (tx *testTx) ExecContext(ctx context.Context, query string, args ...interface{}) (db.Result, error) {
	return tx.Tx.ExecContext(ctx, query, args...)
}

func (tx *testTx) Query(query string, args ...interface{}) (db.Rows, error) {
	return tx.Tx.Query(query, args...)
}

func (tx *testTx) QueryContext(ctx context.Context, query string, args ...interface{}) (db.Rows, error) {
	return tx.Tx.QueryContext(ctx, query, args...)
}

func (tx *testTx) QueryRow(query string, args ...interface{}) db.Row {
	return tx.Tx.QueryRow(query, args...)
}

func (tx *testTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) db.Row {
	return tx.Tx.QueryRowContext(ctx, query, args...)
}

// sqlmockRows starts a result set with the given columns.
func sqlmockRows(columns ...string) *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

// newResult is an exec result affecting the given number of rows.
func newResult(affected int64) driver.Result {
	return sqlmock.NewResult(0, affected)
}

// usersSchema is the fixture most tests share: an auto-increment primary
// key and a defaulted name.
func usersSchema() Schema {
	return Schema{
		"id":   {Type: "positive", PrimaryKey: true, AutoIncrement: true},
		"name": {Type: "string", Default: "Untitled"},
	}
}

// postsSchema adds a "deleted" field, putting the model in soft-delete
// mode.
func postsSchema() Schema {
	return Schema{
		"id":      {Type: "positive", PrimaryKey: true, AutoIncrement: true},
		"title":   {Type: "string"},
		"deleted": {Type: "integer", Default: 0},
	}
}
