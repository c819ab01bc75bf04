package record

import (
	"fmt"
	"reflect"
)

type (
	// Statics maps helper names to functions copied onto the model at
	// definition time. They are not fields; retrieve them with
	// Model.Static.
	Statics map[string]interface{}

	// Overrides supplies replacement implementations for the generated
	// operations. Keys are restricted to "get", "getOne", "insert",
	// "update" and "deleteWhere"; each value must be a function with
	// that operation's signature (GetFunc, GetOneFunc, InsertFunc,
	// UpdateFunc, DeleteWhereFunc). Anything else is a definition-time
	// error naming the offending key and the table.
	Overrides map[string]interface{}

	// GetFunc replaces Model.Get.
	GetFunc func(m *Model, query Query, options ...GetOption) ([]*Record, error)

	// GetOneFunc replaces Model.GetOne.
	GetOneFunc func(m *Model, query Query) (*Record, error)

	// InsertFunc replaces Record.Insert.
	InsertFunc func(r *Record) error

	// UpdateFunc replaces Record.Update.
	UpdateFunc func(r *Record, changes Values) error

	// DeleteWhereFunc replaces Model.DeleteWhere.
	DeleteWhereFunc func(m *Model, query Query) (int64, error)

	// operations holds the per-operation capability slots; a nil slot
	// means the default implementation.
	operations struct {
		get         GetFunc
		getOne      GetOneFunc
		insert      InsertFunc
		update      UpdateFunc
		deleteWhere DeleteWhereFunc
	}
)

// setOverrides validates the override map and fills the operation slots.
// Called once at definition time; afterwards the map itself is discarded.
func (m *Model) setOverrides(o Overrides) error {
	slots := map[string]interface{}{
		"get":         &m.ops.get,
		"getOne":      &m.ops.getOne,
		"insert":      &m.ops.insert,
		"update":      &m.ops.update,
		"deleteWhere": &m.ops.deleteWhere,
	}
	for _, name := range sortedKeys(o) {
		slot, ok := slots[name]
		if !ok {
			return fmt.Errorf("cannot override %q in table %q: not an overridable operation",
				name, m.tableName)
		}
		sv := reflect.ValueOf(slot).Elem()
		rv := reflect.ValueOf(o[name])
		if !rv.IsValid() || rv.Kind() != reflect.Func || !rv.Type().ConvertibleTo(sv.Type()) {
			return fmt.Errorf("override %q in table %q must be a %s",
				name, m.tableName, sv.Type())
		}
		sv.Set(rv.Convert(sv.Type()))
	}
	return nil
}

// setStatics validates that every static helper is a function and stores
// them on the model.
func (m *Model) setStatics(s Statics) error {
	for _, name := range sortedKeys(s) {
		v := s[name]
		if v == nil || reflect.ValueOf(v).Kind() != reflect.Func {
			return fmt.Errorf("static %q in table %q must be a function", name, m.tableName)
		}
		m.statics[name] = v
	}
	return nil
}
