package record

import (
	"strconv"
	"strings"
)

type (
	// SelectSQL is a SELECT statement builder created with Model.Select.
	SelectSQL struct {
		model   *Model
		fields  []string
		query   Query
		orderBy string
		limit   int
		offset  int
	}
)

// Select creates a SELECT statement builder. Without arguments every schema
// field is selected, in sorted order ("*" when the schema is empty). The
// optional expressions replace that list.
//
//	rows, err := users.Select("COUNT(*)").Where(record.Query{"name": "Alice"}).Query()
func (m *Model) Select(expressions ...string) *SelectSQL {
	fields := expressions
	if len(fields) == 0 {
		if len(m.fieldNames) == 0 {
			fields = []string{"*"}
		} else {
			fields = m.Fields()
		}
	}
	return &SelectSQL{
		model:  m,
		fields: fields,
	}
}

// ResetSelect replaces the selected expressions.
func (s *SelectSQL) ResetSelect(expressions ...string) *SelectSQL {
	s.fields = expressions
	return s
}

// Where sets the equality predicate map filtering the statement.
func (s *SelectSQL) Where(query Query) *SelectSQL {
	s.query = query
	return s
}

// OrderBy adds an ORDER BY expression, e.g. "id ASC".
func (s *SelectSQL) OrderBy(expression string) *SelectSQL {
	s.orderBy = expression
	return s
}

// Limit adds a LIMIT clause; zero means no limit.
func (s *SelectSQL) Limit(count int) *SelectSQL {
	s.limit = count
	return s
}

// Offset adds an OFFSET clause; zero means no offset.
func (s *SelectSQL) Offset(start int) *SelectSQL {
	s.offset = start
	return s
}

func (s *SelectSQL) build() (string, []interface{}) {
	var args []interface{}
	sql := "SELECT " + strings.Join(s.fields, ", ") + " FROM " + s.model.tableName
	sql += conditionsToStr(whereConditions(s.query, &args), " WHERE ")
	if s.orderBy != "" {
		sql += " ORDER BY " + s.orderBy
	}
	if s.limit > 0 {
		sql += " LIMIT " + strconv.Itoa(s.limit)
	}
	if s.offset > 0 {
		sql += " OFFSET " + strconv.Itoa(s.offset)
	}
	return sql, args
}

func (s *SelectSQL) String() string {
	sql, _ := s.build()
	return sql
}

// Query executes the statement, returning each row as a Values map.
func (s *SelectSQL) Query() ([]Values, error) {
	sql, args := s.build()
	return s.model.NewSQL(sql, args...).Query()
}

// QueryRow executes the statement and scans the first row into dest.
func (s *SelectSQL) QueryRow(dest ...interface{}) error {
	sql, args := s.build()
	return s.model.NewSQL(sql, args...).QueryRow(dest...)
}
