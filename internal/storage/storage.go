// Package storage stores the uploaded food images.
package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
)

// Drivers.
const (
	DriverFilesystem = "filesystem"
	DriverS3         = "s3"
)

// MaxImageSize is the largest accepted image, in bytes.
const MaxImageSize = 10 << 20

// extensions of the accepted image content types.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// A Store persists images and returns their public URL.
type Store interface {
	Put(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// An Image is an uploaded image checked by ReadImage.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadImage reads an uploaded image, detects its content type and generates its storage name.
// It rejects unsupported types and images larger than MaxImageSize.
func ReadImage(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxImageSize {
		return nil, sskerror.NewWithTagCode(http.StatusRequestEntityTooLarge, sskerror.TagInvalidParameters, "Image is too large")
	}

	contentType := http.DetectContentType(data)
	ext, ok := extensions[contentType]
	if !ok {
		return nil, sskerror.NewWithTagCode(http.StatusUnsupportedMediaType, sskerror.TagInvalidParameters, "Unsupported image type")
	}

	return &Image{
		Name:        uuid.Must(uuid.NewV4()).String() + ext,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// Put stores the image in the given store.
func (img *Image) Put(ctx context.Context, store Store) (string, error) {
	return store.Put(ctx, img.Name, img.ContentType, bytes.NewReader(img.Data))
}
