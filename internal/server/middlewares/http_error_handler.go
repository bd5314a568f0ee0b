package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
	"github.com/sirupsen/logrus"
)

// HTTPErrorHandler returns an error handler that formats rendered errors.
func HTTPErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			herr   *echo.HTTPError
			sskerr *sskerror.SSKError
		)
		switch {
		case errors.As(err, &herr):
			if herr.Code >= 500 {
				internal(log, err, c)
				return
			}
			if herr.Internal != nil {
				log.WithError(herr.Internal).Debug("echo error")
			}

			_ = c.JSON(herr.Code, echo.Map{
				"error": echo.Map{
					"message": fmt.Sprint(herr.Message),
				},
			})
		case errors.As(err, &sskerr):
			status := sskerror.StatusCode(sskerr)
			if status < 500 {
				_ = c.JSON(status, sskerr)
				return
			}

			internal(log, err, c)
		default:
			internal(log, err, c)
		}
	}
}

func internal(log logrus.FieldLogger, err error, c echo.Context) {
	id := uuid.Must(uuid.NewV4()).String()
	log.WithFields(logrus.Fields{
		"error_id": id,
		"method":   c.Request().Method,
		"uri":      c.Request().RequestURI,
	}).WithError(err).Error("unexpected error")

	_ = c.JSON(http.StatusInternalServerError, echo.Map{
		"error": echo.Map{
			"message": fmt.Sprintf("Unexpected error (id: %s)", id),
		},
	})
}
