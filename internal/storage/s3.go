package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

// An ObjectPutter uploads objects to a bucket.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// An S3 stores images in an AWS S3 bucket.
type S3 struct {
	client    ObjectPutter
	bucket    string
	prefix    string
	publicURL string
}

// S3Config configures the S3 store.
type S3Config struct {
	Bucket    string
	Region    string
	Prefix    string // Key prefix
	PublicURL string // Public URL of the bucket or its CDN
}

// NewS3 returns a S3 store configured from the default AWS credentials chain.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3: missing bucket")
	}

	awscfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, errors.Wrap(err, "s3: could not load AWS config")
	}

	return NewS3WithClient(s3.NewFromConfig(awscfg), cfg), nil
}

// NewS3WithClient returns a S3 store using the given client.
func NewS3WithClient(client ObjectPutter, cfg S3Config) *S3 {
	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = "https://" + cfg.Bucket + ".s3." + cfg.Region + ".amazonaws.com"
	}

	return &S3{
		client:    client,
		bucket:    cfg.Bucket,
		prefix:    strings.Trim(cfg.Prefix, "/"),
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

// Put implements Store.
func (s *S3) Put(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	key := path.Join(s.prefix, path.Base(name))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errors.Wrap(err, "s3: could not upload image")
	}

	return s.publicURL + "/" + key, nil
}
