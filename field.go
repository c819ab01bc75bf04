package record

import (
	"reflect"
	"sync"
	"time"
)

type (
	// Schema maps field names to their definitions. Field names are used
	// as column names verbatim. Iteration over a schema is always done in
	// sorted field-name order so that generated SQL is deterministic.
	Schema map[string]Field

	// Field describes one schema field: the name of its type-check
	// predicate, an optional default (a literal value or a zero-argument
	// producer function), flags, and optional custom validation and
	// transformation hooks.
	Field struct {
		// Type is the name of a type-check predicate, e.g. "string",
		// "number", "positive". See RegisterType.
		Type string

		// Default is used when no value is provided. It is either a
		// literal value, or a zero-argument function producing one.
		// A function default is invoked each time it is needed, so it
		// may legitimately return a fresh value per record, e.g.
		// time.Now or uuid.NewString.
		Default interface{}

		// Nullable fields may be missing or null without an error and
		// without a default being applied.
		Nullable bool

		// AutoIncrement fields are generated by the database: they are
		// never required by validation and are stripped from insert
		// payloads. A schema with exactly one auto-increment field and
		// no explicit primary key uses it as the primary key.
		AutoIncrement bool

		// PrimaryKey marks the field used to build WHERE clauses for
		// single-record operations. At most one field may carry it.
		PrimaryKey bool

		// Validate, if set, is run against the resolved value after the
		// type check. Returning false fails validation.
		Validate func(interface{}) bool

		// Transform, if set, is applied to a provided (non-default)
		// value before type checking when constructing a record.
		Transform func(interface{}) interface{}
	}

	// Values maps field names to values, e.g. data for a record.
	Values map[string]interface{}

	// Query is a flat equality-only filter: {field: value, ...}. No range
	// queries, no logical OR, no joins.
	Query map[string]interface{}
)

// hasDefault reports whether the field carries a default.
func (f Field) hasDefault() bool {
	return f.Default != nil
}

// resolveDefault returns the field's default value, invoking it first if it
// is a zero-argument function. Resolution happens per call, not once.
func (f Field) resolveDefault() interface{} {
	if f.Default == nil {
		return nil
	}
	rv := reflect.ValueOf(f.Default)
	if rv.Kind() == reflect.Func && rv.Type().NumIn() == 0 && rv.Type().NumOut() > 0 {
		return rv.Call(nil)[0].Interface()
	}
	return f.Default
}

var (
	typeCheckersMutex sync.RWMutex

	typeCheckers = map[string]func(interface{}) bool{
		"any":      func(interface{}) bool { return true },
		"string":   isString,
		"number":   isNumber,
		"integer":  isInteger,
		"positive": isPositive,
		"boolean":  isBoolean,
		"time":     isTime,
	}
)

// RegisterType adds a type-check predicate under the given name, making it
// available as a Field.Type. Registering an existing name replaces the
// built-in predicate.
func RegisterType(name string, check func(interface{}) bool) {
	typeCheckersMutex.Lock()
	defer typeCheckersMutex.Unlock()
	typeCheckers[name] = check
}

func typeChecker(name string) (func(interface{}) bool, bool) {
	typeCheckersMutex.RLock()
	defer typeCheckersMutex.RUnlock()
	check, ok := typeCheckers[name]
	return check, ok
}

func isString(value interface{}) bool {
	switch value.(type) {
	case string, []byte:
		return true
	}
	return false
}

func isNumber(value interface{}) bool {
	_, ok := asFloat(value)
	return ok
}

func isInteger(value interface{}) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func isPositive(value interface{}) bool {
	f, ok := asFloat(value)
	return ok && f > 0
}

func isBoolean(value interface{}) bool {
	_, ok := value.(bool)
	return ok
}

func isTime(value interface{}) bool {
	switch value.(type) {
	case time.Time, *time.Time:
		return true
	}
	return false
}

// asFloat converts any numeric value to float64.
func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
