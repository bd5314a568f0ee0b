package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/pkg/libssk"
)

// Login connects to a Shishikan server with a Google ID token.
func Login(ctx context.Context) error {
	cfg := Config{}

	endpoint, err := readline.Line("Endpoint: ")
	if err != nil {
		return errors.Wrap(err, "could not read endpoint from stdin")
	}
	cfg.Endpoint = strings.TrimSpace(endpoint)

	client, err := libssk.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return errors.Wrap(err, "could not reach given endpoint")
	}

	token, err := readline.Password("Google ID token: ")
	if err != nil {
		return errors.Wrap(err, "could not read ID token from stdin")
	}

	user, err := client.AuthenticateWithGoogle(ctx, strings.TrimSpace(string(token)))
	if err != nil {
		return errors.Wrap(err, "could not login")
	}
	cfg.User = *user
	cfg.Session = client.Session()

	fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Email)
	return Save(cfg)
}
