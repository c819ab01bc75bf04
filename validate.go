package record

import "fmt"

// ValidationError is returned when a value set does not satisfy the schema.
// It names the table, the offending field and the reason.
type ValidationError struct {
	Table  string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return `table "` + e.Table + `", field "` + e.Field + `": ` + e.Reason
}

// checkValues validates values against the full schema and returns the
// validated value set with defaults applied. For every schema field:
//
//  1. A missing or null value is substituted with the field's default if
//     one exists; otherwise nullable and auto-increment fields are skipped
//     entirely, and anything else is a missing-required-field error.
//  2. The (possibly defaulted) value must satisfy the field's type
//     predicate.
//  3. The field's custom Validate predicate, if any, must return true.
//
// Fields are independent, so iteration order cannot affect the outcome.
// checkValues is pure: it never touches storage and never mutates values.
func (m Model) checkValues(values Values) (Values, error) {
	out := Values{}
	for _, name := range m.fieldNames {
		f := m.schema[name]
		value, present := values[name]
		if !present || value == nil {
			if f.hasDefault() {
				value = f.resolveDefault()
			} else if f.Nullable || f.AutoIncrement {
				continue
			} else {
				return nil, &ValidationError{m.tableName, name, "missing required field"}
			}
		}
		check, ok := typeChecker(f.Type)
		if !ok {
			return nil, &ValidationError{m.tableName, name, fmt.Sprintf("unknown type %q", f.Type)}
		}
		if !check(value) {
			return nil, &ValidationError{m.tableName, name,
				fmt.Sprintf("expected %s, got %s", f.Type, typeName(value))}
		}
		if f.Validate != nil && !f.Validate(value) {
			return nil, &ValidationError{m.tableName, name,
				fmt.Sprintf("value %v failed custom validation", value)}
		}
		out[name] = value
	}
	return out, nil
}

// Validate checks values against the schema, returning a *ValidationError
// describing the first violation, or nil if the value set is acceptable.
// Mutating operations run this before any statement reaches the connection,
// so invalid data never reaches storage.
func (m Model) Validate(values Values) error {
	_, err := m.checkValues(values)
	return err
}

// IsValid is the non-throwing form of Validate: it reports whether values
// satisfy the schema, swallowing the underlying failure. When a logger is
// set, the swallowed failure is logged for diagnostics.
func (m Model) IsValid(values Values) bool {
	if err := m.Validate(values); err != nil {
		if m.logger != nil {
			m.logger.Debug(err.Error())
		}
		return false
	}
	return true
}
