package record

import (
	"fmt"
	"sort"
	"strings"
)

// sortedKeys returns the keys of a string-keyed map in sorted order. All
// schema, value and query iteration goes through this so generated SQL and
// reported errors are deterministic.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// typeName describes a value's dynamic type for error messages.
func typeName(value interface{}) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", value)
}

// sqlLiteral renders a literal default for CREATE TABLE output. Only simple
// scalars are representable; everything else (producer functions included)
// yields false.
func sqlLiteral(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'", true
	case bool:
		return fmt.Sprint(v), true
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return fmt.Sprint(v), true
	}
	return "", false
}
