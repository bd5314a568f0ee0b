package stormsql_test

import (
	"testing"

	"github.com/shishikan-sg/shishikan/pkg/stormsql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelect(t *testing.T) {
	sc, err := stormsql.ParseSelect("SELECT * FROM foods WHERE ListID = 'abc123' ORDER BY CreatedAt DESC LIMIT 2, 5")
	require.NoError(t, err)

	assert.Equal(t, "foods", sc.Tablename)
	assert.False(t, sc.Count)
	assert.Equal(t, 2, sc.Skip)
	assert.Equal(t, 5, sc.Limit)
	assert.Equal(t, []string{"CreatedAt"}, sc.OrderBy)
	assert.True(t, sc.OrderByReversed)

	ok, err := sc.Matcher.Match(&hit{ListID: "abc123"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParseSelect_Count(t *testing.T) {
	sc, err := stormsql.ParseSelect("SELECT count(*) FROM users")
	require.NoError(t, err)

	assert.Equal(t, "users", sc.Tablename)
	assert.True(t, sc.Count)
}

func TestParseSelect_Errors(t *testing.T) {
	_, err := stormsql.ParseSelect("DELETE FROM users")
	assert.EqualError(t, err, "not a select statement")

	_, err = stormsql.ParseSelect("SELECT * FROM users WHERE Email")
	assert.Error(t, err)
}
