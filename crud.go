package record

type (
	// GetOption configures Model.Get.
	GetOption func(*getOptions)

	getOptions struct {
		limit    int
		offset   int
		orderBy  string
		hasOrder bool
		desc     bool
	}
)

// DefaultLimit is the row limit applied by Get when no Limit option is
// given.
const DefaultLimit = 100

// Limit caps the number of rows returned by Get. Zero or negative means
// DefaultLimit.
func Limit(n int) GetOption {
	return func(o *getOptions) {
		o.limit = n
	}
}

// Offset skips the first n rows.
func Offset(n int) GetOption {
	return func(o *getOptions) {
		o.offset = n
	}
}

// OrderBy orders the result by the given field instead of the default
// (the primary key, when one exists).
func OrderBy(field string) GetOption {
	return func(o *getOptions) {
		o.orderBy = field
		o.hasOrder = true
	}
}

// Descending reverses the sort order of Get.
func Descending() GetOption {
	return func(o *getOptions) {
		o.desc = true
	}
}

// withSoftDeleteFilter returns a copy of query. In soft-delete mode the
// copy filters deleted = 0 unless the caller's query already has a
// "deleted" key. The caller's map is never mutated.
func (m Model) withSoftDeleteFilter(query Query) Query {
	out := Query{}
	for name, value := range query {
		out[name] = value
	}
	if m.softDelete {
		if _, ok := out[deletedField]; !ok {
			out[deletedField] = 0
		}
	}
	return out
}

// Get returns the records matching query, or calls the registered override.
// See DefaultGet.
func (m *Model) Get(query Query, options ...GetOption) ([]*Record, error) {
	if fn := m.ops.get; fn != nil {
		return fn(m, query, options...)
	}
	return DefaultGet(m, query, options...)
}

// DefaultGet is the default Model.Get implementation. It issues a filtered,
// bounded, ordered SELECT (limit DefaultLimit, offset 0, ordered by the
// primary key ascending when one exists) with the soft-delete filter
// applied, and wraps every returned row through the record constructor.
func DefaultGet(m *Model, query Query, options ...GetOption) ([]*Record, error) {
	opts := getOptions{limit: DefaultLimit}
	for _, option := range options {
		option(&opts)
	}
	if opts.limit <= 0 {
		opts.limit = DefaultLimit
	}
	if !opts.hasOrder && m.primaryKey != "" {
		opts.orderBy = m.primaryKey
	}
	s := m.Select().Where(m.withSoftDeleteFilter(query)).Limit(opts.limit).Offset(opts.offset)
	if opts.orderBy != "" {
		direction := " ASC"
		if opts.desc {
			direction = " DESC"
		}
		s.OrderBy(opts.orderBy + direction)
	}
	rows, err := s.Query()
	if err != nil {
		return nil, err
	}
	out := make([]*Record, 0, len(rows))
	for _, row := range rows {
		r, err := m.New(row)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// GetOne returns the first record matching query, or calls the registered
// override. See DefaultGetOne.
func (m *Model) GetOne(query Query) (*Record, error) {
	if fn := m.ops.getOne; fn != nil {
		return fn(m, query)
	}
	return DefaultGetOne(m, query)
}

// DefaultGetOne is the default Model.GetOne implementation: a soft-delete
// filtered SELECT limited to one row. Zero matching rows is not an error;
// the record is nil.
func DefaultGetOne(m *Model, query Query) (*Record, error) {
	rows, err := m.Select().Where(m.withSoftDeleteFilter(query)).Limit(1).Query()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return m.New(rows[0])
}

// DeleteWhere removes all rows matching query, or calls the registered
// override. See DefaultDeleteWhere.
func (m *Model) DeleteWhere(query Query) (int64, error) {
	if fn := m.ops.deleteWhere; fn != nil {
		return fn(m, query)
	}
	return DefaultDeleteWhere(m, query)
}

// DefaultDeleteWhere is the default Model.DeleteWhere implementation. In
// soft-delete mode it forces deleted = 0 into the filter (already-deleted
// rows are never touched again) and issues an UPDATE setting deleted = 1;
// otherwise it issues a hard DELETE. Returns the number of affected rows.
func DefaultDeleteWhere(m *Model, query Query) (int64, error) {
	filter := Query{}
	for name, value := range query {
		filter[name] = value
	}
	if m.softDelete {
		filter[deletedField] = 0
		return m.Update(Values{deletedField: 1}).Where(filter).Execute()
	}
	return m.Delete().Where(filter).Execute()
}

// Count returns the number of rows matching query, with the same
// soft-delete filter as Get.
func (m *Model) Count(query Query) (count int, err error) {
	err = m.Select().ResetSelect("COUNT(*)").Where(m.withSoftDeleteFilter(query)).QueryRow(&count)
	return
}

// Exists reports whether at least one row matches query, with the same
// soft-delete filter as Get.
func (m *Model) Exists(query Query) (exists bool, err error) {
	if m.connection == nil {
		return false, ErrNoConnection
	}
	var one int
	err = m.Select().ResetSelect("1 AS one").Where(m.withSoftDeleteFilter(query)).Limit(1).QueryRow(&one)
	if err == m.connection.ErrNoRows() {
		err = nil
		return
	}
	exists = one == 1
	return
}

// Raw executes an arbitrary SQL statement through the connection and
// returns only the resulting rows, each as a Values map. It is the escape
// hatch for queries the generated operations cannot express.
func (m *Model) Raw(sql string, args ...interface{}) ([]Values, error) {
	return m.NewSQL(sql, args...).Query()
}
