package libssk_test

import (
	"testing"

	"github.com/shishikan-sg/shishikan/pkg/libssk"
	"github.com/stretchr/testify/assert"
)

func TestFoodFromList(t *testing.T) {
	assert.Equal(t, `listId = "abc123"`, libssk.FoodFromList("abc123", ""))
	assert.Equal(t, `listId = "abc123" AND ownerId = "user9"`, libssk.FoodFromList("abc123", "user9"))
	assert.Equal(t,
		`listId = "6b5c0c4e-8a35-4c56-9d0b-8f0e7f5a8a1e" AND ownerId = "112233445566778899"`,
		libssk.FoodFromList("6b5c0c4e-8a35-4c56-9d0b-8f0e7f5a8a1e", "112233445566778899"),
	)

	// Pure
	for i := 0; i < 10; i++ {
		assert.Equal(t, libssk.FoodFromList("abc123", "user9"), libssk.FoodFromList("abc123", "user9"))
	}
}

func TestFoodFromList_InvalidIdentifiers(t *testing.T) {
	assert.Panics(t, func() { libssk.FoodFromList("", "") })
	assert.Panics(t, func() { libssk.FoodFromList(`abc" OR listId = "x`, "") })
	assert.Panics(t, func() { libssk.FoodFromList("abc123", "user 9") })
	assert.Panics(t, func() { libssk.FoodFromList("abc123", `user9"`) })
}

func TestValidIdentifier(t *testing.T) {
	assert.True(t, libssk.ValidIdentifier("abc123"))
	assert.True(t, libssk.ValidIdentifier("6b5c0c4e-8a35-4c56-9d0b-8f0e7f5a8a1e"))
	assert.False(t, libssk.ValidIdentifier(""))
	assert.False(t, libssk.ValidIdentifier("abc_123"))
	assert.False(t, libssk.ValidIdentifier(`"`))
	assert.False(t, libssk.ValidIdentifier("été"))
}

func TestComposition(t *testing.T) {
	assert.Equal(t, `price = "1"`, libssk.Eq("price", "1"))
	assert.Panics(t, func() { libssk.Eq("price", `1"`) })
	assert.Panics(t, func() { libssk.Eq("price", "") })

	assert.Equal(t, `a = "1" AND b = "2"`, libssk.And(libssk.Eq("a", "1"), "", libssk.Eq("b", "2")))
	assert.Equal(t, "", libssk.And())
	assert.Equal(t, `a = "1"`, libssk.Or(libssk.Eq("a", "1")))
	assert.Equal(t, `(a = "1" OR a = "2")`, libssk.Or(libssk.Eq("a", "1"), libssk.Eq("a", "2")))
	assert.Equal(t,
		`(a = "1" OR a = "2") AND b = "3"`,
		libssk.And(libssk.Or(libssk.Eq("a", "1"), libssk.Eq("a", "2")), libssk.Eq("b", "3")),
	)
}

func TestEnums(t *testing.T) {
	assert.True(t, libssk.PriceModerate.Valid())
	assert.Equal(t, "$$", libssk.PriceModerate.Label())
	assert.False(t, libssk.PriceTier("5").Valid())

	assert.True(t, libssk.VerdictMustTry.Valid())
	assert.False(t, libssk.Verdict("meh").Valid())
}
