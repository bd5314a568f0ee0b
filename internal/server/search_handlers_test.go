package server_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/shishikan-sg/shishikan/internal/model"
	"github.com/shishikan-sg/shishikan/pkg/libssk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"
)

func TestRequestCategories(t *testing.T) {
	engine, ctrl, r := setup(t)

	seed(t, ctrl)

	r.GET("/categories").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)

		var names []string
		for _, c := range v.GetArray() {
			names = append(names, string(c.GetStringBytes("name")))
		}
		assert.ElementsMatch(t, []string{"Noodles", "Rice", "Dessert"}, names)
	})
}

func TestRequestSearch(t *testing.T) {
	engine, ctrl, r := setup(t)

	owner, ownerSession := createUserWithSession(t, ctrl, "1", "ah.beng")
	stranger, strangerSession := createUserWithSession(t, ctrl, "2", "siew.ling")

	public := createList(t, ctrl, owner, model.VisibilityPublic)
	private := createList(t, ctrl, owner, model.VisibilityPrivate)
	secret := createList(t, ctrl, stranger, model.VisibilityPrivate)

	err := ctrl.Index.Save(context.Background(),
		libssk.Hit{ObjectID: "laksa", ListID: public.ID, OwnerID: owner.ID, Visibility: model.VisibilityPublic, Name: "Katong laksa", Verdict: "must-try", CreatedAt: 1},
		libssk.Hit{ObjectID: "satay", ListID: public.ID, OwnerID: owner.ID, Visibility: model.VisibilityPublic, Name: "Lau pa sat satay", Verdict: "okay", CreatedAt: 2},
		libssk.Hit{ObjectID: "chendol", ListID: private.ID, OwnerID: owner.ID, Visibility: model.VisibilityPrivate, Name: "Durian chendol", Verdict: "must-try", CreatedAt: 3},
		libssk.Hit{ObjectID: "rojak", ListID: secret.ID, OwnerID: stranger.ID, Visibility: model.VisibilityPrivate, Name: "Rojak", Verdict: "avoid", CreatedAt: 4},
	)
	require.NoError(t, err)

	search := func(session *model.Session, params url.Values, fn gofight.ResponseFunc) {
		t.Helper()

		req := gofight.New().GET("/search?" + params.Encode())
		if session != nil {
			req.SetHeader(authorization(session))
		}
		req.Run(engine, fn)
	}

	ids := func(body string) []string {
		v, err := fastjson.Parse(body)
		require.NoError(t, err)

		var ids []string
		for _, hit := range v.GetArray("hits") {
			ids = append(ids, string(hit.GetStringBytes("objectID")))
		}
		return ids
	}

	search(nil, url.Values{}, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code, r.Body.String())
		assert.Equal(t, []string{"satay", "laksa"}, ids(r.Body.String()))
	})

	search(ownerSession, url.Values{}, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.Equal(t, []string{"chendol", "satay", "laksa"}, ids(r.Body.String()))
	})

	search(strangerSession, url.Values{"filters": {`visibility = "private"`}}, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.Equal(t, []string{"rojak"}, ids(r.Body.String()))
	})

	search(nil, url.Values{"filters": {`listId = "` + private.ID + `"`}}, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.Empty(t, ids(r.Body.String()))
	})

	search(ownerSession, url.Values{"query": {"laksa"}}, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.Equal(t, []string{"laksa"}, ids(r.Body.String()))
	})

	search(ownerSession, url.Values{"facets": {"verdict"}}, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, 2, v.GetInt("facets", "verdict", "must-try"))
		assert.Equal(t, 1, v.GetInt("facets", "verdict", "okay"))
		assert.Nil(t, v.Get("facets", "verdict", "avoid"))
	})

	search(nil, url.Values{"filters": {`) OR (visibility = "private"`}}, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code, r.Body.String())
	})

	search(nil, url.Values{"facets": {"name"}}, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid_parameters","message":"Invalid facet: name"}}`, r.Body.String())
	})

	search(nil, url.Values{"hits_per_page": {"many"}}, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid_parameters","message":"Invalid search params."}}`, r.Body.String())
	})
}
