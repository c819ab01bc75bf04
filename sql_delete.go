package record

type (
	// DeleteSQL is a DELETE statement builder created with Model.Delete.
	DeleteSQL struct {
		model *Model
		query Query
	}
)

// Delete creates a DELETE statement builder.
//
//	affected, err := users.Delete().Where(record.Query{"id": 1}).Execute()
//
// Model.DeleteWhere and Record.Delete are the higher-level entry points;
// they respect soft-delete mode, this builder does not.
func (m *Model) Delete() *DeleteSQL {
	return &DeleteSQL{
		model: m,
	}
}

// Where sets the equality predicate map filtering the statement.
func (s *DeleteSQL) Where(query Query) *DeleteSQL {
	s.query = query
	return s
}

func (s *DeleteSQL) build() (string, []interface{}) {
	var args []interface{}
	sql := "DELETE FROM " + s.model.tableName
	sql += conditionsToStr(whereConditions(s.query, &args), " WHERE ")
	return sql, args
}

func (s *DeleteSQL) String() string {
	sql, _ := s.build()
	return sql
}

// Execute executes the statement and reports the number of rows affected.
func (s *DeleteSQL) Execute() (int64, error) {
	sql, args := s.build()
	return s.model.NewSQL(sql, args...).Execute()
}
