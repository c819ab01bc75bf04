package record

import (
	"encoding/json"
	"fmt"
)

// Record is one table row, populated and validated against its model's
// schema. Records are created by Model.New (or fetched by Get/GetOne) and
// persisted with Insert, Update and Delete. A Record is not safe for
// concurrent mutation.
type Record struct {
	model  *Model
	values Values
}

// New constructs a Record from raw values:
//
//  1. Keys not present in the schema are silently dropped. This is a
//     deliberate permissiveness, not a failure.
//  2. Field transforms are applied to the provided values.
//  3. The result is validated against the full schema; defaults are
//     resolved for omitted fields.
//
// The returned record satisfies the schema's required/type constraints, or
// an error explains exactly which field failed and why.
func (m *Model) New(raw Values) (*Record, error) {
	filtered := Values{}
	for name, value := range raw {
		f, ok := m.schema[name]
		if !ok {
			continue
		}
		if f.Transform != nil && value != nil {
			value = f.Transform(value)
		}
		filtered[name] = value
	}
	validated, err := m.checkValues(filtered)
	if err != nil {
		return nil, err
	}
	return &Record{model: m, values: validated}, nil
}

// MustNew is like New but panics if construction fails.
func (m *Model) MustNew(raw Values) *Record {
	r, err := m.New(raw)
	if err != nil {
		panic(err)
	}
	return r
}

// Model returns the record's model.
func (r *Record) Model() *Model {
	return r.model
}

// Get returns the value of the named field, or nil if unset.
func (r *Record) Get(name string) interface{} {
	return r.values[name]
}

// Has reports whether the record has a value for the named field.
func (r *Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Set assigns a field value. Names not present in the schema are ignored.
// The value is validated on the next Insert or Update, not here.
func (r *Record) Set(name string, value interface{}) {
	if _, ok := r.model.schema[name]; ok {
		r.values[name] = value
	}
}

// Values returns a copy of the record's field values.
func (r *Record) Values() Values {
	out := Values{}
	for name, value := range r.values {
		out[name] = value
	}
	return out
}

func (r *Record) String() string {
	j, _ := json.Marshal(r.values)
	return string(j)
}

// Insert persists the record, or the registered override. See
// DefaultInsert.
func (r *Record) Insert() error {
	if fn := r.model.ops.insert; fn != nil {
		return fn(r)
	}
	return DefaultInsert(r)
}

// DefaultInsert is the default Record.Insert implementation: it validates
// the record's values, strips auto-increment fields from the payload and
// issues the INSERT. If the schema has a primary key, the generated key is
// read back with RETURNING and the freshly inserted row is fetched again by
// primary key, refreshing the record in place; without a primary key the
// insert is issued as-is.
//
// The refetch filters on the primary key alone, without the soft-delete
// filter, so a row inserted with a non-zero deleted value is still found.
// It chains on the insert, so it observes the new row provided the
// connection has read-your-writes consistency.
func DefaultInsert(r *Record) error {
	m := r.model
	payload, err := m.checkValues(r.values)
	if err != nil {
		return err
	}
	for _, name := range m.fieldNames {
		if m.schema[name].AutoIncrement {
			delete(payload, name)
		}
	}
	insert := m.Insert(payload)
	if m.primaryKey == "" {
		_, err := insert.Execute()
		return err
	}
	var id interface{}
	if err := insert.Returning(m.primaryKey).QueryRow(&id); err != nil {
		return err
	}
	rows, err := m.Select().Where(Query{m.primaryKey: id}).Limit(1).Query()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("inserted row %v not found in table %q", id, m.tableName)
	}
	fetched, err := m.New(rows[0])
	if err != nil {
		return err
	}
	r.values = fetched.values
	return nil
}

// Update merges changes over the record's current values and persists the
// result, or calls the registered override. See DefaultUpdate.
func (r *Record) Update(changes Values) error {
	if fn := r.model.ops.update; fn != nil {
		return fn(r, changes)
	}
	return DefaultUpdate(r, changes)
}

// DefaultUpdate is the default Record.Update implementation: it merges
// changes (schema-known keys only) over a copy of the record's values,
// validates the merged result against the full schema, and only then issues
// the UPDATE filtered on the primary key. On success the record's in-memory
// values are reconciled with the persisted state. A model without a primary
// key cannot update records; that is reported here, at call time.
func DefaultUpdate(r *Record, changes Values) error {
	m := r.model
	if m.primaryKey == "" {
		return fmt.Errorf("cannot update table %q: no primary key defined", m.tableName)
	}
	merged := Values{}
	for name, value := range r.values {
		merged[name] = value
	}
	for name, value := range changes {
		if _, ok := m.schema[name]; ok {
			merged[name] = value
		}
	}
	validated, err := m.checkValues(merged)
	if err != nil {
		return err
	}
	key, ok := r.values[m.primaryKey]
	if !ok {
		return fmt.Errorf("cannot update table %q: record has no %q value", m.tableName, m.primaryKey)
	}
	set := Values{}
	for name, value := range validated {
		if !m.schema[name].AutoIncrement {
			set[name] = value
		}
	}
	if _, err := m.Update(set).Where(Query{m.primaryKey: key}).Execute(); err != nil {
		return err
	}
	r.values = validated
	return nil
}

// Delete removes the record's row: in soft-delete mode it flips the deleted
// flag to 1, otherwise it issues a hard DELETE. The in-memory record keeps
// its values either way. A model without a primary key cannot delete
// records; that is reported here, at call time, because such a model is
// still valid for insert/get use.
func (r *Record) Delete() error {
	m := r.model
	if m.primaryKey == "" {
		return fmt.Errorf("cannot delete from table %q: no primary key defined", m.tableName)
	}
	key, ok := r.values[m.primaryKey]
	if !ok {
		return fmt.Errorf("cannot delete from table %q: record has no %q value", m.tableName, m.primaryKey)
	}
	if m.softDelete {
		_, err := m.Update(Values{deletedField: 1}).Where(Query{m.primaryKey: key}).Execute()
		if err == nil {
			r.values[deletedField] = 1
		}
		return err
	}
	_, err := m.Delete().Where(Query{m.primaryKey: key}).Execute()
	return err
}
