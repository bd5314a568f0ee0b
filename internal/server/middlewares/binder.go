package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
)

type binder struct {
	echo.DefaultBinder
	methodsWithBody map[string]bool
}

// NewBinder returns a wrapp of the default binder implementation binding only JSON bodies.
// Path and query params are read explicitly by the handlers.
func NewBinder() echo.Binder {
	return &binder{
		methodsWithBody: map[string]bool{
			http.MethodPost:  true,
			http.MethodPatch: true,
			http.MethodPut:   true,
		},
	}
}

// Bind implements the echo.Bind interface.
func (b *binder) Bind(i any, c echo.Context) error {
	if c.Request().ContentLength == 0 && b.methodsWithBody[c.Request().Method] {
		return sskerror.BadRequest("Request body can't be empty.")
	}

	err := b.BindBody(c, i)
	if err == nil {
		return nil
	}

	var herr *echo.HTTPError
	if errors.As(err, &herr) && herr.Code == http.StatusUnsupportedMediaType {
		return sskerror.NewWithTagCode(http.StatusUnsupportedMediaType, sskerror.TagInvalidParameters, "Request body must be JSON.")
	}
	return sskerror.BadRequest("Malformed JSON body.")
}
