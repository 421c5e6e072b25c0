package stmt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golobby/stmt"
)

type account struct {
	ID       int64
	Username string
	Email    string
	Age      *int
}

func setup(t *testing.T, conf stmt.ConnectionConfig) *stmt.DB {
	t.Helper()
	conf.Driver = "sqlite3"
	conf.ConnectionString = ":memory:"
	db, err := stmt.Connect(conf)
	require.NoError(t, err)
	// every pooled connection to :memory: is a separate database
	db.SQLDB().SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.SQLDB().Exec(`CREATE TABLE accounts (id INTEGER PRIMARY KEY, username TEXT, email TEXT, age INTEGER)`)
	require.NoError(t, err)
	return db
}

func TestSQLite(t *testing.T) {
	ctx := context.Background()

	for _, interpolate := range []bool{false, true} {
		db := setup(t, stmt.ConnectionConfig{Interpolate: interpolate})

		for _, row := range [][]string{
			{"amirreza", "amirreza@example.com", "31"},
			{"milad", "milad@example.com", "17"},
			{"o'neil", "oneil@example.com", "45"},
		} {
			records, err := db.Builder().
				Insert("accounts", "username", "email", "age").
				Values(row...).
				Returns("id", "username").
				Execute(ctx)
			require.NoError(t, err)
			require.Len(t, records, 1)
			name, _ := records[0].Get("username")
			assert.Equal(t, row[0], name)
		}

		records, err := stmt.SelectOf[account](db.Builder()).
			WhereOp("age", stmt.GE, "18").
			Paginate(10, 0).
			Execute(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)

		accounts, err := stmt.Bind[account](records)
		require.NoError(t, err)
		assert.Equal(t, "amirreza", accounts[0].Username)
		require.NotNil(t, accounts[0].Age)
		assert.Equal(t, 31, *accounts[0].Age)
		assert.Equal(t, "o'neil", accounts[1].Username)

		records, err = db.Builder().
			Update("accounts").
			Set("email", "milad@example.org").
			Where("username", "milad").
			Returns("email").
			Execute(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		email, _ := records[0].Get("email")
		assert.Equal(t, "milad@example.org", email)

		records, err = db.Builder().
			Delete("accounts").
			WhereOp("age", stmt.LT, "18").
			Or().
			Where("username", "nobody").
			Returns("*").
			Execute(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, []string{"id", "username", "email", "age"}, records[0].Columns())

		records, err = db.Raw(ctx, "SELECT count(*) AS n FROM accounts")
		require.NoError(t, err)
		n, _ := records[0].Get("n")
		assert.Equal(t, int64(2), n)

		_, err = db.Raw(ctx, "DELETE FROM accounts")
		assert.ErrorIs(t, err, stmt.ErrUnsafeQuery)

		_, err = db.Builder().Insert("missing", "a").Values("1").Execute(ctx)
		assert.True(t, stmt.IsBackend(err))
	}
}
