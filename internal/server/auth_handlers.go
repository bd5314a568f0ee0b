package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shishikan-sg/shishikan/internal/server/serializer"
	"github.com/shishikan-sg/shishikan/internal/server/service"
)

// auth contains all authentication handlers.
type auth struct {
	service service.AuthService
}

///// Google
////
//

// Google signs in, or signs up, the owner of a Google ID token.
func (h *auth) Google(c echo.Context) error {
	var params service.SignInParams
	if err := c.Bind(&params); err != nil {
		return err
	}
	if err := c.Validate(&params); err != nil {
		return err
	}
	params.UserAgent = c.Request().UserAgent()

	user, session, err := h.service.SignIn(c.Request().Context(), params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Authentication(user, session))
}

///// Sign out
////
//

// SignOut terminates the current session.
func (h *auth) SignOut(c echo.Context) error {
	if err := h.service.SignOut(currentSession(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

///// Me
////
//

// Me renders the current user.
func (h *auth) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, serializer.CurrentUser(currentUser(c)))
}
