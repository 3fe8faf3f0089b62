// Package avatar stores profile pictures in an S3-compatible bucket and
// returns the URL the profile should point at.
package avatar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/phishshield/internal/client/config"
	"github.com/google/uuid"
)

// MaxSize is the largest accepted image, in bytes.
const MaxSize = 5 << 20

var (
	ErrDisabled        = errors.New("avatar uploads are not configured")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image is too large")
)

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// seams for tests
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
	newObjectKey          = func(userID, ext string) string {
		return fmt.Sprintf("avatars/%s/%s%s", userID, uuid.NewString(), ext)
	}
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, userID, path string) (string, error)
}

type S3Uploader struct {
	client objectPutter
	cfg    config.AvatarConfig
}

// NewS3Uploader builds an uploader for cfg using static credentials.
// BaseEndpoint, when set, selects an S3-compatible service such as MinIO and
// switches to path-style addressing.
func NewS3Uploader(ctx context.Context, cfg config.AvatarConfig) (*S3Uploader, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{client: client, cfg: cfg}, nil
}

// ContentType returns the MIME type for an image path, or
// ErrUnsupportedType.
func ContentType(path string) (string, error) {
	ct, ok := contentTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(path))
	}
	return ct, nil
}

// Upload puts the image at path under a fresh key of userID's prefix.
func (u *S3Uploader) Upload(ctx context.Context, userID, path string) (string, error) {
	ct, err := ContentType(path)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat image: %w", err)
	}
	if info.Size() > MaxSize {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, info.Size(), MaxSize)
	}

	return u.put(ctx, newObjectKey(userID, strings.ToLower(filepath.Ext(path))), ct, info.Size(), f)
}

func (u *S3Uploader) put(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.cfg.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	return u.PublicURL(key), nil
}

// PublicURL is where key can be fetched from.
func (u *S3Uploader) PublicURL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	switch {
	case u.cfg.PublicBaseURL != "":
		return strings.TrimRight(u.cfg.PublicBaseURL, "/") + "/" + escaped
	case u.cfg.BaseEndpoint != "":
		return strings.TrimRight(u.cfg.BaseEndpoint, "/") + "/" + u.cfg.Bucket + "/" + escaped
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, escaped)
	}
}
