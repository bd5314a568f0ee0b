package stormsql_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/pkg/stormsql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hit struct {
	ListID     string
	OwnerID    string
	Price      string
	Categories []string
	CreatedAt  int64
}

var fields = map[string]string{
	"listId":     "ListID",
	"ownerId":    "OwnerID",
	"price":      "Price",
	"categories": "Categories",
	"createdAt":  "CreatedAt",
}

func mapper(attribute string) (string, error) {
	if f, ok := fields[attribute]; ok {
		return f, nil
	}
	return "", errors.Errorf("unknown attribute %s", attribute)
}

func TestParseFilter(t *testing.T) {
	h := &hit{
		ListID:     "abc123",
		OwnerID:    "user9",
		Price:      "2",
		Categories: []string{"Ramen", "Japanese"},
		CreatedAt:  1600000000,
	}

	tests := []struct {
		filter string
		match  bool
	}{
		{``, true},
		{`listId = "abc123"`, true},
		{`listId = "abc124"`, false},
		{`listId = "abc123" AND ownerId = "user9"`, true},
		{`listId = "abc123" AND ownerId = "user8"`, false},
		{`listId = "nope" OR ownerId = "user9"`, true},
		{`(price = "1" OR price = "2") AND categories = "Ramen"`, true},
		{`categories = "Pizza"`, false},
		{`categories != "Pizza"`, true},
		{`NOT listId = "abc123"`, false},
		{`createdAt > 1500000000`, true},
		{`createdAt <= 1500000000`, false},
		{`categories IN ("Pizza", "Japanese")`, true},
		{`categories IN ("Pizza")`, false},
		{`categories NOT IN ("Ramen")`, false},
		{`price IN ("1", "2")`, true},
		{`listId = "a--b#c/*d*/"`, false},
	}

	for _, tt := range tests {
		m, err := stormsql.ParseFilter(tt.filter, mapper)
		require.NoError(t, err, tt.filter)

		ok, err := m.Match(h)
		require.NoError(t, err, tt.filter)
		assert.Equal(t, tt.match, ok, tt.filter)
	}
}

func TestParseFilter_Errors(t *testing.T) {
	for _, filter := range []string{
		`unknown = "x"`,
		`listId = "abc" LIMIT 1`,
		`listId = "abc" ORDER BY listId`,
		`listId =`,
		`"abc" = listId`,
		`listId = "a"; DROP TABLE hits`,
		`listId = "abc123" /* OR 1 = 1 */`,
		`listId = "abc123" -- OR ownerId = "user9"`,
		`listId = "abc123" # OR ownerId = "user9"`,
		`listId = "abc123" /*! OR 1 = 1 */`,
	} {
		_, err := stormsql.ParseFilter(filter, mapper)
		assert.Error(t, err, filter)
	}
}
