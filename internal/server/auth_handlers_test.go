package server_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/appleboy/gofight/v2"
	"github.com/shishikan-sg/shishikan/internal/server"
	"github.com/shishikan-sg/shishikan/internal/server/session"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fastjson"
)

func TestRequestGoogle(t *testing.T) {
	engine, ctrl, r := setup(t)

	params := gofight.D{}
	r.POST("/auth/google").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid_parameters","message":"id_token is required."}}`, r.Body.String())
	})

	params["id_token"] = "forged"
	r.POST("/auth/google").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid_token","message":"Invalid ID token."}}`, r.Body.String())
	})

	var id string
	params["id_token"] = "google-1"
	r.POST("/auth/google").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code, r.Body.String())

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)

		id = string(v.Get("user", "id").GetStringBytes())
		assert.Regexp(t, `^[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-4[a-fA-F0-9]{3}-[8|9|aA|bB][a-fA-F0-9]{3}-[a-fA-F0-9]{12}$`, id)
		assert.Equal(t, "Ah Beng", string(v.Get("user", "name").GetStringBytes()))
		assert.Equal(t, "ah.beng@example.com", string(v.Get("user", "email").GetStringBytes()))
		assert.Equal(t, "https://lh3/beng.jpg", string(v.Get("user", "profile_image_url").GetStringBytes()))
		assert.Len(t, string(v.Get("session", "access_token").GetStringBytes()), session.TokenLength)

		expireAt, err := time.Parse(time.RFC3339Nano, string(v.Get("session", "expire_at").GetStringBytes()))
		assert.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(ctrl.AccessTokenTTL), expireAt, time.Minute)
	})

	// Signing in again reuses the account.
	r.POST("/auth/google").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, id, string(v.Get("user", "id").GetStringBytes()))
	})

	user, err := ctrl.Database.FindUserByGoogleID("1")
	assert.NoError(t, err)
	assert.Equal(t, id, user.ID)

	sessions, err := ctrl.Database.FindSessionsByUserID(id)
	assert.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestRequestGoogle_NoRegistration(t *testing.T) {
	engine, ctrl, r := setup(t, func(ctrl *server.Controller) {
		ctrl.NoRegistration = true
	})

	r.POST("/auth/google").SetJSON(gofight.D{"id_token": "google-2"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusForbidden, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"registration_closed","message":"Registration is closed."}}`, r.Body.String())
	})

	// Existing accounts can still sign in.
	createUserWithSession(t, ctrl, "2", "siew.ling")
	r.POST("/auth/google").SetJSON(gofight.D{"id_token": "google-2"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code, r.Body.String())
	})
}

func TestRequestSignOut(t *testing.T) {
	engine, ctrl, r := setup(t)

	r.POST("/auth/sign_out").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid_token","message":"Invalid login credentials."}}`, r.Body.String())
	})

	_, session := createUserWithSession(t, ctrl, "1", "ah.beng")

	r.POST("/auth/sign_out").SetHeader(authorization(session)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNoContent, r.Code, r.Body.String())
	})

	r.GET("/users/me").SetHeader(authorization(session)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid_token","message":"Invalid login credentials."}}`, r.Body.String())
	})
}

func TestRequestMe(t *testing.T) {
	engine, ctrl, r := setup(t)

	user, session := createUserWithSession(t, ctrl, "1", "ah.beng")

	r.GET("/users/me").SetHeader(gofight.H{"Authorization": "Basic " + session.AccessToken}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
	})

	r.GET("/users/me").SetHeader(authorization(session)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"id":"`+user.ID+`","name":"ah.beng","email":"ah.beng@example.com","profile_image_url":""}`, r.Body.String())
	})

	// Expired session.
	session.ExpireAt = time.Now().Add(-time.Minute)
	assert.NoError(t, ctrl.Database.Save(session))

	r.GET("/users/me").SetHeader(authorization(session)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"expired_token","message":"The provided access token has expired."}}`, r.Body.String())
	})
}
