package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverridesRejectUnknownOperation(t *testing.T) {
	_, err := Define("users", usersSchema(), Overrides{
		"isValid": func(m *Model, q Query) (*Record, error) { return nil, nil },
	})
	assert.EqualError(t, err,
		`cannot override "isValid" in table "users": not an overridable operation`)
}

func TestOverridesRejectWrongSignature(t *testing.T) {
	for _, c := range []struct {
		name  string
		value interface{}
		err   string
	}{
		{
			"not a function",
			42,
			`override "insert" in table "users" must be a record.InsertFunc`,
		},
		{
			"nil",
			nil,
			`override "insert" in table "users" must be a record.InsertFunc`,
		},
		{
			"wrong function type",
			func() {},
			`override "insert" in table "users" must be a record.InsertFunc`,
		},
	} {
		t.Run(c.name, func(t *testing.T) {
			_, err := Define("users", usersSchema(), Overrides{"insert": c.value})
			assert.EqualError(t, err, c.err)
		})
	}
}

func TestOverridesAcceptTypedAndUntypedFunctions(t *testing.T) {
	_, err := Define("users", usersSchema(), Overrides{
		"getOne": GetOneFunc(func(m *Model, q Query) (*Record, error) { return nil, nil }),
	})
	assert.NoError(t, err)

	// a plain function literal with the right shape converts too
	_, err = Define("users", usersSchema(), Overrides{
		"getOne": func(m *Model, q Query) (*Record, error) { return nil, nil },
	})
	assert.NoError(t, err)
}

func TestOverrideDispatch(t *testing.T) {
	var calls []string
	m := MustDefine("users", usersSchema(), Overrides{
		"get": func(m *Model, q Query, options ...GetOption) ([]*Record, error) {
			calls = append(calls, "get")
			return nil, nil
		},
		"getOne": func(m *Model, q Query) (*Record, error) {
			calls = append(calls, "getOne")
			return m.New(Values{"id": 7, "name": "canned"})
		},
		"insert": func(r *Record) error {
			calls = append(calls, "insert")
			return nil
		},
		"update": func(r *Record, changes Values) error {
			calls = append(calls, "update")
			r.Set("name", changes["name"].(string))
			return nil
		},
		"deleteWhere": func(m *Model, q Query) (int64, error) {
			calls = append(calls, "deleteWhere")
			return 3, nil
		},
	})

	_, err := m.Get(Query{})
	require.NoError(t, err)

	one, err := m.GetOne(Query{"id": 7})
	require.NoError(t, err)
	require.NotNil(t, one)
	assert.Equal(t, "canned", one.Get("name"))

	r := m.MustNew(Values{"name": "Alice"})
	require.NoError(t, r.Insert())
	require.NoError(t, r.Update(Values{"name": "Bob"}))
	assert.Equal(t, "Bob", r.Get("name"))

	affected, err := m.DeleteWhere(Query{"name": "Bob"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)

	assert.Equal(t, []string{"get", "getOne", "insert", "update", "deleteWhere"}, calls)
}

func TestOverrideOnlyReplacesItsOperation(t *testing.T) {
	conn, mock := newTestDB(t)
	m := MustDefine("users", usersSchema(), conn, Overrides{
		"deleteWhere": func(m *Model, q Query) (int64, error) { return 0, nil },
	})

	// get is not overridden; it still hits the connection
	mock.ExpectQuery("SELECT id, name FROM users ORDER BY id ASC LIMIT 100").
		WillReturnRows(sqlmockRows("id", "name"))
	_, err := m.Get(Query{})
	require.NoError(t, err)

	affected, err := m.DeleteWhere(Query{})
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestOverrideCanWrapDefault(t *testing.T) {
	conn, mock := newTestDB(t)
	audited := 0
	m := MustDefine("users", usersSchema(), conn, Overrides{
		"deleteWhere": func(m *Model, q Query) (int64, error) {
			audited++
			return DefaultDeleteWhere(m, q)
		},
	})
	mock.ExpectExec("DELETE FROM users WHERE name = $1").
		WithArgs("Bob").
		WillReturnResult(newResult(2))
	affected, err := m.DeleteWhere(Query{"name": "Bob"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.Equal(t, 1, audited)
}
