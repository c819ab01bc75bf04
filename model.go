package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gopsql/db"
	"github.com/gopsql/logger"
)

type (
	// Model is a database table created from a table name and a field
	// schema. It holds the query-execution connection, an optional
	// logger, and metadata inferred from the schema once at definition
	// time: the primary-key field, soft-delete mode, static helpers and
	// operation overrides.
	Model struct {
		connection db.DB
		logger     logger.Logger
		*modelInfo
	}

	modelInfo struct {
		tableName  string
		schema     Schema
		fieldNames []string // sorted
		primaryKey string   // "" if none
		softDelete bool
		statics    Statics
		ops        operations
	}
)

// deletedField is the field name that switches a model to soft-delete mode.
const deletedField = "deleted"

var (
	ErrNoConnection = errors.New("no connection")
)

// Define creates a Model from a table name and a field schema. The table
// name must not be empty and the schema must not be nil (an empty schema is
// allowed). Options may be a db.DB connection, a logger.Logger, Overrides,
// or Statics, in any order.
//
//	users := record.MustDefine("users", record.Schema{
//		"id":   {Type: "positive", PrimaryKey: true, AutoIncrement: true},
//		"name": {Type: "string", Default: "Untitled"},
//	}, conn, logger.StandardLogger)
//
// Schema problems (duplicate primary key, unknown type name, bad override
// target) are reported here, never deferred to call time.
func Define(tableName string, schema Schema, options ...interface{}) (*Model, error) {
	if tableName == "" {
		return nil, errors.New("table name must not be empty")
	}
	if schema == nil {
		return nil, fmt.Errorf("schema for table %q must not be nil", tableName)
	}
	info, err := analyzeSchema(tableName, schema)
	if err != nil {
		return nil, err
	}
	m := &Model{modelInfo: info}
	for _, option := range options {
		switch o := option.(type) {
		case db.DB:
			m.SetConnection(o)
		case logger.Logger:
			m.SetLogger(o)
		case Overrides:
			if err := m.setOverrides(o); err != nil {
				return nil, err
			}
		case Statics:
			if err := m.setStatics(o); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unsupported option %s for table %q", typeName(option), tableName)
		}
	}
	return m, nil
}

// MustDefine is like Define but panics if the definition fails.
func MustDefine(tableName string, schema Schema, options ...interface{}) *Model {
	m, err := Define(tableName, schema, options...)
	if err != nil {
		panic(err)
	}
	return m
}

// analyzeSchema scans the schema once: it validates every field definition,
// infers the primary-key field and detects soft-delete mode.
func analyzeSchema(tableName string, schema Schema) (*modelInfo, error) {
	info := &modelInfo{
		tableName: tableName,
		schema:    Schema{},
		statics:   Statics{},
	}
	var autoIncrement []string
	for _, name := range sortedKeys(schema) {
		f := schema[name]
		if f.Type == "" {
			return nil, fmt.Errorf("field %q in table %q has no type", name, tableName)
		}
		if _, ok := typeChecker(f.Type); !ok {
			return nil, fmt.Errorf("field %q in table %q has unknown type %q", name, tableName, f.Type)
		}
		if f.PrimaryKey {
			if info.primaryKey != "" {
				return nil, fmt.Errorf("table %q has more than one primary key (%q and %q)",
					tableName, info.primaryKey, name)
			}
			info.primaryKey = name
		}
		if f.AutoIncrement {
			autoIncrement = append(autoIncrement, name)
		}
		if name == deletedField {
			info.softDelete = true
		}
		info.schema[name] = f
		info.fieldNames = append(info.fieldNames, name)
	}
	// a single auto-increment field is the primary key unless one was
	// marked explicitly
	if info.primaryKey == "" && len(autoIncrement) == 1 {
		info.primaryKey = autoIncrement[0]
	}
	return info, nil
}

func (m Model) String() string {
	return `model (table: "` + m.tableName + `") has ` +
		strconv.Itoa(len(m.fieldNames)) + " fields"
}

// Table name of the Model.
func (m Model) TableName() string {
	return m.tableName
}

// PrimaryKey returns the inferred primary-key field name, or "" if the
// schema defines none.
func (m Model) PrimaryKey() string {
	return m.primaryKey
}

// SoftDelete reports whether the model is in soft-delete mode, i.e. the
// schema contains a field named "deleted".
func (m Model) SoftDelete() bool {
	return m.softDelete
}

// Fields returns the schema's field names in sorted order.
func (m Model) Fields() []string {
	return append([]string{}, m.fieldNames...)
}

// HasField reports whether the schema defines the named field.
func (m Model) HasField(name string) bool {
	_, ok := m.schema[name]
	return ok
}

// Field returns the definition of the named field.
func (m Model) Field(name string) (Field, bool) {
	f, ok := m.schema[name]
	return f, ok
}

// Static returns the static helper registered under name, or nil.
func (m Model) Static(name string) interface{} {
	return m.statics[name]
}

// Clone returns a copy of the model.
func (m *Model) Clone() *Model {
	return &Model{
		connection: m.connection,
		logger:     m.logger,
		modelInfo: &modelInfo{
			tableName:  m.tableName,
			schema:     m.schema,
			fieldNames: m.fieldNames,
			primaryKey: m.primaryKey,
			softDelete: m.softDelete,
			statics:    m.statics,
			ops:        m.ops,
		},
	}
}

// Quiet returns a copy of the model without logger.
func (m *Model) Quiet() *Model {
	return m.Clone().SetLogger(nil)
}

// SetOptions sets database connection (see SetConnection) and/or logger
// (see SetLogger). Overrides and Statics are fixed at Define time and
// cannot be changed here.
func (m *Model) SetOptions(options ...interface{}) *Model {
	for _, option := range options {
		switch o := option.(type) {
		case db.DB:
			m.SetConnection(o)
		case logger.Logger:
			m.SetLogger(o)
		}
	}
	return m
}

// Connection returns the query-execution collaborator of the Model; the
// escape hatch for arbitrary queries. ErrNoConnection is returned by
// operations if no connection is set.
func (m *Model) Connection() db.DB {
	return m.connection
}

// Set a database connection for the Model.
func (m *Model) SetConnection(db db.DB) *Model {
	m.connection = db
	return m
}

// Set the logger for the Model. Use logger.StandardLogger if you want to use
// Go's built-in standard logging package. By default, no logger is used, so
// the SQL statements are not printed to the console.
func (m *Model) SetLogger(logger logger.Logger) *Model {
	m.logger = logger
	return m
}

func (m Model) log(sql string, args []interface{}) {
	if m.logger == nil || sql == "" {
		return
	}
	if len(args) == 0 {
		m.logger.Debug(sql)
		return
	}
	m.logger.Debug(sql, args)
}

// Schema generates a CREATE TABLE statement from the field map. Data types
// derive from the type predicate names:
//
//	| Type              | PostgreSQL Data Type |
//	|-------------------|----------------------|
//	| integer, positive | bigint               |
//	| number            | numeric              |
//	| boolean           | boolean              |
//	| time              | timestamptz          |
//	| other             | text                 |
//
// An auto-increment primary key renders as SERIAL PRIMARY KEY. Literal
// defaults are rendered when representable; producer defaults are not.
// This is plain string generation, not a migration facility.
func (m Model) Schema() string {
	lines := make([]string, 0, len(m.fieldNames))
	for _, name := range m.fieldNames {
		lines = append(lines, "\t"+name+" "+m.columnDataType(name))
	}
	return "CREATE TABLE " + m.tableName + " (\n" + strings.Join(lines, ",\n") + "\n);\n"
}

// DropSchema generates a DROP TABLE IF EXISTS statement.
func (m Model) DropSchema() string {
	return "DROP TABLE IF EXISTS " + m.tableName + ";\n"
}

func (m Model) columnDataType(name string) string {
	f := m.schema[name]
	if f.AutoIncrement && name == m.primaryKey {
		return "SERIAL PRIMARY KEY"
	}
	var dataType string
	switch f.Type {
	case "integer", "positive":
		dataType = "bigint"
	case "number":
		dataType = "numeric"
	case "boolean":
		dataType = "boolean"
	case "time":
		dataType = "timestamptz"
	default:
		dataType = "text"
	}
	if f.hasDefault() {
		if literal, ok := sqlLiteral(f.Default); ok {
			dataType += " DEFAULT " + literal
		}
	}
	if name == m.primaryKey {
		dataType += " PRIMARY KEY"
	} else if !f.Nullable {
		dataType += " NOT NULL"
	}
	return dataType
}
