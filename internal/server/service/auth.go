package service

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/internal/database"
	"github.com/shishikan-sg/shishikan/internal/model"
	"github.com/shishikan-sg/shishikan/internal/server/identity"
	"github.com/shishikan-sg/shishikan/internal/server/session"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
)

type (
	// An AuthService signs users in and out.
	AuthService interface {
		// SignIn signs in, or signs up, the owner of the Google ID token and opens a session.
		SignIn(ctx context.Context, params SignInParams) (*model.User, *model.Session, error)
		// SignOut closes the given session.
		SignOut(session *model.Session) error
	}

	// SignInParams are used to sign in a user.
	SignInParams struct {
		IDToken   string `json:"id_token" validate:"required"`
		UserAgent string `json:"-"`
	}

	authService struct {
		db             database.Client
		sessions       session.Manager
		verifier       identity.Verifier
		noRegistration bool
	}
)

// NewAuth returns a new AuthService.
func NewAuth(db database.Client, sessions session.Manager, verifier identity.Verifier, noRegistration bool) AuthService {
	return &authService{
		db:             db,
		sessions:       sessions,
		verifier:       verifier,
		noRegistration: noRegistration,
	}
}

func (s *authService) SignIn(ctx context.Context, params SignInParams) (*model.User, *model.Session, error) {
	id, err := s.verifier.Verify(ctx, params.IDToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.db.FindUserByGoogleID(id.Subject)
	switch {
	case err == nil:
	case s.db.IsNotFound(err):
		if s.noRegistration {
			return nil, nil, sskerror.NewWithTagCode(http.StatusForbidden, sskerror.TagRegistration, "Registration is closed.")
		}
		user = model.NewUser(id.Subject, id.Email, id.Name)
	default:
		return nil, nil, errors.Wrap(err, "could not get access to database")
	}

	// Profile is refreshed from the identity provider at each sign in.
	if id.Email != "" {
		user.Email = id.Email
	}
	user.Name = id.Name
	user.ProfileImageURL = id.Picture
	if err = s.db.Save(user); err != nil {
		return nil, nil, errors.Wrap(err, "could not persist user")
	}

	session, err := s.sessions.Create(user, params.UserAgent)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *authService) SignOut(session *model.Session) error {
	return s.sessions.Revoke(session)
}
