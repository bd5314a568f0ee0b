package storage_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
	"github.com/shishikan-sg/shishikan/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// png is the signature of a PNG file.
var png = []byte("\x89PNG\x0D\x0A\x1A\x0A\x00\x00\x00\x0DIHDR")

func TestReadImage(t *testing.T) {
	img, err := storage.ReadImage(bytes.NewReader(png))
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.True(t, strings.HasSuffix(img.Name, ".png"))

	_, err = storage.ReadImage(strings.NewReader("#!/bin/sh\nrm -rf /"))
	assert.Equal(t, http.StatusUnsupportedMediaType, sskerror.StatusCode(err))

	large := io.MultiReader(bytes.NewReader(png), bytes.NewReader(make([]byte, storage.MaxImageSize)))
	_, err = storage.ReadImage(large)
	assert.Equal(t, http.StatusRequestEntityTooLarge, sskerror.StatusCode(err))
}

func TestFilesystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	fs, err := storage.NewFilesystem(dir, "http://localhost:5000/images")
	require.NoError(t, err)

	img, err := storage.ReadImage(bytes.NewReader(png))
	require.NoError(t, err)

	u, err := img.Put(context.Background(), fs)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/images/"+img.Name, u)

	data, err := os.ReadFile(filepath.Join(dir, img.Name))
	require.NoError(t, err)
	assert.Equal(t, png, data)

	// Names never escape the directory.
	u, err = fs.Put(context.Background(), "../../escape.png", "image/png", bytes.NewReader(png))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/images/escape.png", u)
	assert.FileExists(t, filepath.Join(dir, "escape.png"))

	// Never overwritten
	_, err = fs.Put(context.Background(), "escape.png", "image/png", bytes.NewReader(png))
	assert.Error(t, err)
}

type putter struct {
	input *s3.PutObjectInput
	body  []byte
}

func (p *putter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	p.input = params
	p.body, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3(t *testing.T) {
	p := &putter{}
	store := storage.NewS3WithClient(p, storage.S3Config{
		Bucket:    "shishikan",
		Region:    "ap-southeast-1",
		Prefix:    "/images/",
		PublicURL: "https://cdn.example.com/",
	})

	u, err := store.Put(context.Background(), "abc.png", "image/png", bytes.NewReader(png))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/images/abc.png", u)
	assert.Equal(t, "shishikan", aws.ToString(p.input.Bucket))
	assert.Equal(t, "images/abc.png", aws.ToString(p.input.Key))
	assert.Equal(t, "image/png", aws.ToString(p.input.ContentType))
	assert.Equal(t, png, p.body)

	store = storage.NewS3WithClient(p, storage.S3Config{Bucket: "shishikan", Region: "ap-southeast-1"})
	u, err = store.Put(context.Background(), "abc.png", "image/png", bytes.NewReader(png))
	require.NoError(t, err)
	assert.Equal(t, "https://shishikan.s3.ap-southeast-1.amazonaws.com/abc.png", u)
}
