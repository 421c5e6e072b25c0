package stmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyCheck(t *testing.T) {
	t.Run("wildcard select", func(t *testing.T) {
		b := New(nil).Select("*").From("records").Page()
		err := b.Finalize()
		var unsafe *UnsafeQueryError
		require.ErrorAs(t, err, &unsafe)
		assert.Equal(t, "wildcard select disallowed", unsafe.Reason)
		assert.ErrorIs(t, b.Err(), ErrUnsafeQuery)
	})

	t.Run("qualified wildcard select", func(t *testing.T) {
		err := New(nil).Select("records.*").From("records").Finalize()
		assert.ErrorIs(t, err, ErrUnsafeQuery)
	})

	t.Run("wildcard select allowed", func(t *testing.T) {
		err := New(nil, WithPolicy(Policy{AllowWildcardSelect: true})).Select("*").From("records").Finalize()
		assert.NoError(t, err)
	})

	t.Run("returning star is not a wildcard select", func(t *testing.T) {
		err := New(nil).Delete("records").Where("id", "1").Returns("*").Finalize()
		assert.NoError(t, err)
	})

	t.Run("insert is bounded", func(t *testing.T) {
		assert.NoError(t, New(nil).Insert("records", "a").Values("1").Finalize())
	})
}

func TestPolicyCheckText(t *testing.T) {
	strict := Policy{}
	for _, tc := range []struct {
		statement string
		reason    string
	}{
		{"SELECT id FROM records", ""},
		{"SELECT * FROM records", reasonWildcard},
		{"select count(*) from records", ""},
		{"INSERT INTO archive SELECT * FROM records", reasonWildcard},
		{"INSERT INTO records (a) VALUES ('x')", ""},
		{"DELETE FROM records", reasonUnbounded},
		{"DELETE FROM records WHERE id = 1", ""},
		{"UPDATE records SET a = 1", reasonUnbounded},
		{"update records set a = 1 where id = 2", ""},
		{"DROP TABLE records", reasonUnbounded},
		{"ALTER TABLE records ADD COLUMN b TEXT", reasonUnbounded},
		{"SELECT id FROM and_records WHERE note = 'DELETE everything'", ""},
		{"SELECT id FROM records WHERE note = 'it''s; DROP TABLE x'", ""},
		{"INSERT INTO records (id) VALUES (1) ON CONFLICT (id) DO UPDATE SET id = 1", ""},
		{"SELECT updated_by FROM records", ""},
		{"DELETE FROM records -- WHERE", reasonUnbounded},
		{"DELETE FROM records /* WHERE */", reasonUnbounded},
		{"DELETE FROM records -- no filter\nWHERE id = 1", ""},
		{"DELETE FROM records /* by id */ WHERE id = 1", ""},
		{"SELECT id FROM a WHERE id = 1; DELETE FROM records", reasonUnbounded},
		{"UPDATE records SET admin = true; SELECT 1 LIMIT 1", reasonUnbounded},
		{"DELETE FROM records WHERE id = 1; SELECT * FROM records", reasonWildcard},
		{"DELETE FROM records WHERE id = 1;;", ""},
		{"SELECT $$ DELETE FROM records $$ AS body", ""},
		{"SELECT $fn$ it's; DROP TABLE x $fn$ AS body", ""},
		{"DELETE FROM records WHERE id = $1", ""},
		{"SELECT $$ WHERE $$; DELETE FROM records", reasonUnbounded},
	} {
		t.Run(tc.statement, func(t *testing.T) {
			err := strict.CheckText(tc.statement)
			if tc.reason == "" {
				assert.NoError(t, err)
				return
			}
			var unsafe *UnsafeQueryError
			require.ErrorAs(t, err, &unsafe)
			assert.Equal(t, tc.reason, unsafe.Reason)
		})
	}

	t.Run("permissive policy", func(t *testing.T) {
		p := Policy{AllowWildcardSelect: true, AllowUnboundedMutation: true}
		assert.NoError(t, p.CheckText("SELECT * FROM records"))
		assert.NoError(t, p.CheckText("DROP TABLE records"))
		assert.ErrorIs(t, p.CheckText("INSERT INTO a SELECT * FROM b"), ErrUnsafeQuery)
	})
}

func TestTokenize(t *testing.T) {
	assert.Equal(t,
		[]string{"SELECT", "A", ",", "COUNT", "(", "*", ")", "FROM", "T", "WHERE", "B", "=", "?", ";"},
		tokenize("select a, count(*) from t where b = 'it''s';"),
	)
	assert.Equal(t,
		[]string{"DELETE", "FROM", "T", "WHERE", "ID", "=", "$1"},
		tokenize("delete -- comment where\nfrom t /* limit */ where id = $1"),
	)
	assert.Equal(t,
		[]string{"SELECT", "?", ",", "?"},
		tokenize("select $body$ where ; $body$, $$x$$"),
	)
	assert.Equal(t, []string{"SELECT", "?"}, tokenize("select $$ unterminated"))
	assert.Equal(t, []string{"SELECT"}, tokenize("select /* unterminated"))
}
