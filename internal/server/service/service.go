// Package service implements the API use cases on top of the database, the search index and the identity providers.
package service

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/internal/database"
	"github.com/shishikan-sg/shishikan/internal/model"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
	"github.com/shishikan-sg/shishikan/pkg/libssk"
)

// M is an arbitrary map.
type M map[string]any

func listNotFound() error {
	return sskerror.NotFound("List not found.")
}

// readableList returns the list for the given id when the viewer (nil for anonymous) can read it.
// Private lists of other users are reported as not found.
func readableList(db database.Client, viewer *model.User, id string) (*model.List, error) {
	if !libssk.ValidIdentifier(id) {
		return nil, listNotFound()
	}

	list, err := db.FindList(id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, listNotFound()
		}
		return nil, errors.Wrap(err, "could not get access to database")
	}

	if !list.IsReadableBy(viewer) {
		return nil, listNotFound()
	}
	return list, nil
}

func forbidden(message string) error {
	return sskerror.NewWithTagCode(http.StatusForbidden, sskerror.TagForbidden, message)
}
