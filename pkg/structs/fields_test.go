package structs_test

import (
	"testing"

	"github.com/shishikan-sg/shishikan/pkg/structs"
	"github.com/stretchr/testify/assert"
)

type food struct {
	Price string
	Tags  []string
}

func TestGetField(t *testing.T) {
	v, err := structs.GetField(&food{Price: "2"}, "Price")
	assert.NoError(t, err)
	assert.Equal(t, "2", v)

	_, err = structs.GetField(&food{}, "Unknown")
	assert.Error(t, err)
}

func TestStrings(t *testing.T) {
	f := &food{Price: "2", Tags: []string{"spicy", "", "late-night"}}

	v, err := structs.Strings(f, "Tags")
	assert.NoError(t, err)
	assert.Equal(t, []string{"spicy", "late-night"}, v)

	v, err = structs.Strings(f, "Price")
	assert.NoError(t, err)
	assert.Equal(t, []string{"2"}, v)

	v, err = structs.Strings(&food{}, "Price")
	assert.NoError(t, err)
	assert.Empty(t, v)
}
