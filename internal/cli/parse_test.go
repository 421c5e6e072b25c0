package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golobby/stmt"
)

func TestParseCondition(t *testing.T) {
	tests := []struct {
		raw  string
		want condition
	}{
		{"age>=30", condition{"age", stmt.GE, "30"}},
		{"age >= 30", condition{"age", stmt.GE, "30"}},
		{"email <> a@b.c", condition{"email", stmt.NE, "a@b.c"}},
		{"email!=a@b.c", condition{"email", stmt.NE, "a@b.c"}},
		{"name=a=b", condition{"name", stmt.EQ, "a=b"}},
		{"a>b=c", condition{"a", stmt.GT, "b=c"}},
		{"n<5", condition{"n", stmt.LT, "5"}},
		{"deleted_at IS NULL", condition{"deleted_at", stmt.IsNull, ""}},
		{"deleted_at is not null", condition{"deleted_at", stmt.IsNotNull, ""}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseCondition(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, raw := range []string{"age", "=3", " IS NULL"} {
		_, err := parseCondition(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseAssignment(t *testing.T) {
	column, value, err := parseAssignment(" email =a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "email", column)
	assert.Equal(t, "a@b.c", value)

	column, value, err = parseAssignment("note=")
	require.NoError(t, err)
	assert.Equal(t, "note", column)
	assert.Equal(t, "", value)

	_, _, err = parseAssignment("email")
	assert.Error(t, err)
	_, _, err = parseAssignment("=x")
	assert.Error(t, err)
}
