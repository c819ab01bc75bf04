package record

import (
	"fmt"
	"strings"

	"github.com/gopsql/db"
)

type (
	// SQL is a statement ready for execution, created with Model.NewSQL
	// or built by one of the statement builders (SelectSQL, InsertSQL,
	// UpdateSQL, DeleteSQL).
	SQL struct {
		model  *Model
		sql    string
		values []interface{}
	}
)

// NewSQL creates a SQL with a statement as the first argument and any
// placeholder parameters after it. If the connection supports parameter
// conversion (see db.ConvertParameters), the statement and values are
// converted here.
func (m *Model) NewSQL(sql string, values ...interface{}) *SQL {
	sql = strings.TrimSpace(sql)
	if c, ok := m.connection.(db.ConvertParameters); ok {
		sql, values = c.ConvertParameters(sql, values)
	}
	return &SQL{
		model:  m,
		sql:    sql,
		values: values,
	}
}

func (s *SQL) String() string {
	return s.sql
}

// Query executes the statement and returns all resulting rows, each as a
// Values map keyed by column name. []byte cells are normalized to string.
func (s *SQL) Query() ([]Values, error) {
	if s.sql == "" {
		return nil, nil
	}
	if s.model.connection == nil {
		return nil, ErrNoConnection
	}
	s.model.log(s.sql, s.values)
	rows, err := s.model.connection.Query(s.sql, s.values...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []Values
	for rows.Next() {
		cells := make([]interface{}, len(columns))
		dests := make([]interface{}, len(columns))
		for i := range cells {
			dests[i] = &cells[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, err
		}
		row := Values{}
		for i, column := range columns {
			row[column] = normalizeValue(cells[i])
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// MustQuery is like Query but panics if the query fails.
func (s *SQL) MustQuery() []Values {
	rows, err := s.Query()
	if err != nil {
		panic(err)
	}
	return rows
}

// QueryRow gets results from the first row and puts the value of each
// column into the corresponding dest.
func (s *SQL) QueryRow(dest ...interface{}) error {
	if s.sql == "" {
		return nil
	}
	if s.model.connection == nil {
		return ErrNoConnection
	}
	s.model.log(s.sql, s.values)
	return s.model.connection.QueryRow(s.sql, s.values...).Scan(dest...)
}

// MustQueryRow is like QueryRow but panics if the query fails.
func (s *SQL) MustQueryRow(dest ...interface{}) {
	if err := s.QueryRow(dest...); err != nil {
		panic(err)
	}
}

// Execute executes an INSERT, UPDATE or DELETE without returning rows and
// reports the number of rows affected.
func (s *SQL) Execute() (int64, error) {
	if s.sql == "" {
		return 0, nil
	}
	if s.model.connection == nil {
		return 0, ErrNoConnection
	}
	s.model.log(s.sql, s.values)
	result, err := s.model.connection.Exec(s.sql, s.values...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// MustExecute is like Execute but panics if execution fails.
func (s *SQL) MustExecute() int64 {
	affected, err := s.Execute()
	if err != nil {
		panic(err)
	}
	return affected
}

func normalizeValue(value interface{}) interface{} {
	if b, ok := value.([]byte); ok {
		return string(b)
	}
	return value
}

// whereConditions renders sorted equality conditions for a predicate map,
// appending the condition values to args. Placeholder numbering continues
// from the current length of args.
func whereConditions(query Query, args *[]interface{}) []string {
	conditions := make([]string, 0, len(query))
	for _, name := range sortedKeys(query) {
		*args = append(*args, query[name])
		conditions = append(conditions, fmt.Sprintf("%s = $%d", name, len(*args)))
	}
	return conditions
}

func conditionsToStr(conds []string, prefix string) (out string) {
	moreThanOne := len(conds) > 1
	for i, cond := range conds {
		if i > 0 {
			out += " AND "
		}
		if moreThanOne {
			out += "(" + cond + ")"
		} else {
			out += cond
		}
	}
	if out != "" {
		out = prefix + out
	}
	return
}
