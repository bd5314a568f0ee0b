package model_test

import (
	"testing"

	"github.com/shishikan-sg/shishikan/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestList_IsReadableBy(t *testing.T) {
	owner := &model.User{Base: model.Base{ID: "u1"}}
	stranger := &model.User{Base: model.Base{ID: "u2"}}

	public := &model.List{UserID: "u1", Visibility: model.VisibilityPublic}
	assert.True(t, public.IsReadableBy(nil))
	assert.True(t, public.IsReadableBy(stranger))
	assert.True(t, public.IsOwnedBy(owner))
	assert.False(t, public.IsOwnedBy(stranger))

	private := &model.List{UserID: "u1", Visibility: model.VisibilityPrivate}
	assert.False(t, private.IsReadableBy(nil))
	assert.False(t, private.IsReadableBy(stranger))
	assert.True(t, private.IsReadableBy(owner))
}

func TestBase_IsNew(t *testing.T) {
	user := model.NewUser("g-1", "ah.beng@example.com", "Ah Beng")
	assert.True(t, user.IsNew())

	user.SetID("u1")
	assert.False(t, user.IsNew())
}
