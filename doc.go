// Package record generates validated CRUD operations from a declarative
// field schema.
//
// # Overview
//
// Package record maps a table name plus a field-definition map to a model
// with typed field validation, default-value resolution, and generated
// get/getOne/insert/update/delete operations. Statements are executed
// through an injected github.com/gopsql/db connection; the package builds
// the SQL, the connection talks to the database.
//
// Key features include:
//   - Declarative schemas: type predicates, defaults (literal or computed),
//     nullable/auto-increment/primary-key flags, custom validators and
//     transforms
//   - Primary-key inference and soft-delete semantics (a field named
//     "deleted" switches delete to an update of the flag and filters reads)
//   - Per-operation overrides installed at definition time
//   - Static helper functions attached to the model
//   - Statement builders (SELECT, INSERT, UPDATE, DELETE) for everything
//     the generated operations cannot express, plus Raw as a last resort
//
// # Basic Usage
//
// Define a model and perform CRUD operations:
//
//	users := record.MustDefine("users", record.Schema{
//		"id":    {Type: "positive", PrimaryKey: true, AutoIncrement: true},
//		"name":  {Type: "string", Default: "Untitled"},
//		"email": {Type: "string", Nullable: true},
//	}, conn)
//
//	// Construct and insert a record; the generated id is fetched back
//	u := users.MustNew(record.Values{"name": "Alice"})
//	if err := u.Insert(); err != nil {
//		// ...
//	}
//	fmt.Println(u.Get("id")) // populated by the insert
//
//	// Fetch records
//	rows, err := users.Get(record.Query{"name": "Alice"}, record.Limit(10))
//	one, err := users.GetOne(record.Query{"id": 1}) // nil when not found
//
//	// Update and delete
//	err = u.Update(record.Values{"name": "Bob"})
//	err = u.Delete()
//
// # Validation
//
// Every value set passes the type checker before any statement reaches the
// connection. A field value must satisfy the predicate named by its Type;
// missing values are resolved from defaults, or skipped when the field is
// nullable or auto-increment, or rejected as missing. Custom predicates
// run after the type check:
//
//	record.Schema{
//		"age": {Type: "integer", Validate: func(v interface{}) bool {
//			return v.(int) >= 18
//		}},
//	}
//
// Validate returns the underlying *ValidationError; IsValid only reports
// a boolean and never fails. Function defaults are resolved per record,
// so time.Now or uuid.NewString produce fresh values each time.
//
// # Soft Delete
//
// A schema containing a field named "deleted" puts the whole model in
// soft-delete mode: Record.Delete and Model.DeleteWhere issue an UPDATE
// setting deleted = 1, and Get/GetOne/Count/Exists filter deleted = 0
// unless the caller's query sets "deleted" explicitly. DeleteWhere always
// forces deleted = 0 into its filter so already-deleted rows are never
// touched again.
//
// # Overrides and Statics
//
// Replacement implementations for get, getOne, insert, update and
// deleteWhere can be supplied at definition time; every other name is
// rejected. Defaults stay available as DefaultGet, DefaultGetOne,
// DefaultInsert, DefaultUpdate and DefaultDeleteWhere so an override can
// wrap rather than reimplement:
//
//	audited := record.Overrides{
//		"deleteWhere": func(m *record.Model, q record.Query) (int64, error) {
//			log.Println("deleting from", m.TableName(), q)
//			return record.DefaultDeleteWhere(m, q)
//		},
//	}
//	posts := record.MustDefine("posts", schema, conn, audited)
//
// Statics are arbitrary helper functions attached to the model and
// retrieved with Static(name).
//
// # Connections and Logging
//
// Any github.com/gopsql/db implementation can be injected, at definition
// time or later with SetConnection. With a github.com/gopsql/logger set,
// every generated statement is logged before execution; Quiet returns a
// copy of the model that logs nothing.
package record
