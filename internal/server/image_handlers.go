package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
	"github.com/shishikan-sg/shishikan/internal/storage"
)

// image contains the image handlers.
type image struct {
	store storage.Store
}

// Upload stores the `image` form file and renders its URL.
func (h *image) Upload(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return sskerror.BadRequest("No image provided.")
	}

	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "could not open uploaded image")
	}
	defer f.Close()

	img, err := storage.ReadImage(f)
	if err != nil {
		return err
	}

	url, err := img.Put(c.Request().Context(), h.store)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
