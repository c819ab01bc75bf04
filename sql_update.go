package record

import (
	"fmt"
	"strings"
)

type (
	// UpdateSQL is an UPDATE statement builder created with Model.Update.
	UpdateSQL struct {
		model *Model
		set   Values
		query Query
	}
)

// Update creates an UPDATE statement builder setting the given field
// values.
//
//	affected, err := users.Update(record.Values{"name": "Bob"}).
//		Where(record.Query{"id": 1}).Execute()
//
// Record.Update is the higher-level entry point; it merges, validates and
// reconciles the record.
func (m *Model) Update(set Values) *UpdateSQL {
	return &UpdateSQL{
		model: m,
		set:   set,
	}
}

// Where sets the equality predicate map filtering the statement.
func (s *UpdateSQL) Where(query Query) *UpdateSQL {
	s.query = query
	return s
}

func (s *UpdateSQL) build() (string, []interface{}) {
	if len(s.set) == 0 {
		return "", nil
	}
	var args []interface{}
	fields := make([]string, 0, len(s.set))
	for _, name := range sortedKeys(s.set) {
		args = append(args, s.set[name])
		fields = append(fields, fmt.Sprintf("%s = $%d", name, len(args)))
	}
	sql := "UPDATE " + s.model.tableName + " SET " + strings.Join(fields, ", ")
	sql += conditionsToStr(whereConditions(s.query, &args), " WHERE ")
	return sql, args
}

func (s *UpdateSQL) String() string {
	sql, _ := s.build()
	return sql
}

// Execute executes the statement and reports the number of rows affected.
func (s *UpdateSQL) Execute() (int64, error) {
	sql, args := s.build()
	return s.model.NewSQL(sql, args...).Execute()
}
