package record

import (
	"fmt"
	"strings"
)

type (
	// InsertSQL is an INSERT statement builder created with Model.Insert.
	InsertSQL struct {
		model            *Model
		values           Values
		outputExpression string
	}
)

// Insert creates an INSERT statement builder with the given field values.
//
//	var id interface{}
//	users.Insert(record.Values{"name": "Alice"}).Returning("id").QueryRow(&id)
//
// Record.Insert is the higher-level entry point; it validates first and
// strips auto-increment fields.
func (m *Model) Insert(values Values) *InsertSQL {
	return &InsertSQL{
		model:  m,
		values: values,
	}
}

// Returning adds a RETURNING clause to retrieve values from inserted rows.
func (s *InsertSQL) Returning(expressions ...string) *InsertSQL {
	s.outputExpression = strings.Join(expressions, ", ")
	return s
}

func (s *InsertSQL) build() (string, []interface{}) {
	var sql string
	var args []interface{}
	if len(s.values) == 0 {
		sql = "INSERT INTO " + s.model.tableName + " DEFAULT VALUES"
	} else {
		fields := sortedKeys(s.values)
		numbers := make([]string, 0, len(fields))
		for i, field := range fields {
			args = append(args, s.values[field])
			numbers = append(numbers, fmt.Sprintf("$%d", i+1))
		}
		sql = "INSERT INTO " + s.model.tableName +
			" (" + strings.Join(fields, ", ") + ") VALUES (" + strings.Join(numbers, ", ") + ")"
	}
	if s.outputExpression != "" {
		sql += " RETURNING " + s.outputExpression
	}
	return sql, args
}

func (s *InsertSQL) String() string {
	sql, _ := s.build()
	return sql
}

// Execute executes the statement and reports the number of rows affected.
func (s *InsertSQL) Execute() (int64, error) {
	sql, args := s.build()
	return s.model.NewSQL(sql, args...).Execute()
}

// QueryRow executes the statement and scans the RETURNING row into dest.
func (s *InsertSQL) QueryRow(dest ...interface{}) error {
	sql, args := s.build()
	return s.model.NewSQL(sql, args...).QueryRow(dest...)
}
