package session

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/internal/database"
	"github.com/shishikan-sg/shishikan/internal/model"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
)

// TokenLength is the length of the access tokens.
const TokenLength = 32

type (
	// A Manager manages sessions.
	Manager interface {
		// Create creates and persists a new session for the given user.
		Create(user *model.User, userAgent string) (*model.Session, error)
		// Validate returns the valid session of the given access token.
		Validate(token string) (*model.Session, error)
		// Authenticate returns the user and the session of the given access token.
		Authenticate(token string) (*model.User, *model.Session, error)
		// Revoke deletes the given session.
		Revoke(session *model.Session) error
	}

	manager struct {
		db  database.Client
		ttl time.Duration
	}
)

// NewManager returns a new manager issuing sessions valid for ttl.
func NewManager(db database.Client, ttl time.Duration) Manager {
	return &manager{
		db:  db,
		ttl: ttl,
	}
}

func invalid() error {
	return sskerror.NewWithTagCode(http.StatusUnauthorized, sskerror.TagInvalidToken, "Invalid login credentials.")
}

func (m *manager) Create(user *model.User, userAgent string) (*model.Session, error) {
	session := &model.Session{
		UserID:      user.ID,
		UserAgent:   userAgent,
		ExpireAt:    time.Now().Add(m.ttl).UTC(),
		AccessToken: SecureToken(TokenLength),
	}

	return session, errors.Wrap(m.db.Save(session), "could not persist session")
}

func (m *manager) Validate(token string) (*model.Session, error) {
	if len(token) != TokenLength {
		return nil, invalid()
	}

	session, err := m.db.FindSessionByAccessToken(token)
	if err != nil {
		if m.db.IsNotFound(err) {
			return nil, invalid()
		}
		return nil, errors.Wrap(err, "could not get access to database")
	}

	if !SecureCompare(session.AccessToken, token) {
		return nil, invalid()
	}

	if session.ExpireAt.Before(time.Now()) {
		return nil, sskerror.NewWithTagCode(http.StatusUnauthorized, sskerror.TagExpiredToken, "The provided access token has expired.")
	}

	return session, nil
}

func (m *manager) Authenticate(token string) (*model.User, *model.Session, error) {
	session, err := m.Validate(token)
	if err != nil {
		return nil, nil, err
	}

	user, err := m.db.FindUser(session.UserID)
	if err != nil {
		if m.db.IsNotFound(err) {
			return nil, nil, invalid()
		}
		return nil, nil, errors.Wrap(err, "could not get access to database")
	}

	return user, session, nil
}

func (m *manager) Revoke(session *model.Session) error {
	return errors.Wrap(m.db.Delete(session), "could not delete session")
}
