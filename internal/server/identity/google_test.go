package identity_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shishikan-sg/shishikan/internal/server/identity"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokeninfo(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		exp := time.Now().Add(time.Hour).Unix()
		aud := "client-id"

		switch r.URL.Query().Get("id_token") {
		case "valid":
		case "expired":
			exp = time.Now().Add(-time.Hour).Unix()
		case "other-audience":
			aud = "other"
		case "broken":
			w.WriteHeader(http.StatusInternalServerError)
			return
		default:
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"invalid_token","error_description":"Invalid Value"}`)
			return
		}

		fmt.Fprintf(w, `{"iss":"https://accounts.google.com","aud":%q,"sub":"1234567890","email":"ah.beng@example.com","email_verified":"true","name":"Ah Beng","picture":"https://lh3/pic.jpg","exp":"%d"}`, aud, exp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogle_Verify(t *testing.T) {
	srv := tokeninfo(t)
	verifier, err := identity.NewGoogle(srv.Client(), srv.URL, "client-id")
	require.NoError(t, err)

	id, err := verifier.Verify(context.Background(), "valid")
	require.NoError(t, err)
	assert.Equal(t, &identity.Identity{
		Subject: "1234567890",
		Email:   "ah.beng@example.com",
		Name:    "Ah Beng",
		Picture: "https://lh3/pic.jpg",
	}, id)

	for _, token := range []string{"", "garbage", "expired", "other-audience"} {
		_, err = verifier.Verify(context.Background(), token)
		assert.Equal(t, http.StatusUnauthorized, sskerror.StatusCode(err), token)
	}

	_, err = verifier.Verify(context.Background(), "broken")
	assert.Equal(t, http.StatusInternalServerError, sskerror.StatusCode(err))
}

func TestNewGoogle(t *testing.T) {
	_, err := identity.NewGoogle(nil, "", "")
	assert.Error(t, err)
}
