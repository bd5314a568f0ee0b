package libssk

import (
	"encoding/json"
	"fmt"
	"io"
)

// An SSKError reprensents an HTTP error returned by the Shishikan server.
type SSKError struct {
	StatusCode int
	Err        struct {
		Tag     string `json:"tag"`
		Message string `json:"message"`
	} `json:"error"`
}

func parseSSKError(r io.Reader, code int) error {
	var sskerr SSKError
	dec := json.NewDecoder(r)
	if err := dec.Decode(&sskerr); err != nil || sskerr.Err.Message == "" {
		return fmt.Errorf("unexpected HTTP status %d", code)
	}
	sskerr.StatusCode = code
	return &sskerr
}

func (e *SSKError) Error() string {
	return e.Err.Message
}
