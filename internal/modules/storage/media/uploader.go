package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/foliolabs/core/internal/config"
)

// Uploader writes media objects to the bucket and resolves their public
// URLs. The S3 implementation holds the service-level credentials; tests
// substitute a fake.
type Uploader interface {
	Upload(ctx context.Context, filename string, payload []byte, contentType string) (string, error)
	BaseURL() string
}

type s3Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Uploader builds the bucket client from the service-level storage
// credentials. These are distinct from anything request-scoped; only the
// upload handler ever sees this client.
func NewS3Uploader(opts config.StorageConfig) (Uploader, error) {
	if !opts.Configured() {
		return nil, fmt.Errorf("incomplete storage config: region/access_key_id/secret_access_key are required")
	}

	s3opts := s3.Options{
		Region:       opts.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		UsePathStyle: opts.PathStyle,
	}
	if endpoint := strings.TrimSpace(opts.Endpoint); endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		s3opts.BaseEndpoint = aws.String(strings.TrimSuffix(endpoint, "/"))
		s3opts.UsePathStyle = true
	}

	return &s3Uploader{
		client:  s3.New(s3opts),
		bucket:  opts.Bucket,
		baseURL: resolveBaseURL(opts),
	}, nil
}

// Upload writes the object with a no-overwrite condition: a filename
// collision fails instead of clobbering the existing object.
func (u *s3Uploader) Upload(ctx context.Context, filename string, payload []byte, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(u.bucket),
		Key:          aws.String(filename),
		Body:         bytes.NewReader(payload),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=3600"),
		IfNoneMatch:  aws.String("*"),
	})
	if err != nil {
		return "", fmt.Errorf("storage upload failed: %w", err)
	}
	return u.baseURL + "/" + filename, nil
}

func (u *s3Uploader) BaseURL() string { return u.baseURL }

func resolveBaseURL(opts config.StorageConfig) string {
	if domain := strings.TrimRight(strings.TrimSpace(opts.CustomDomain), "/"); domain != "" {
		return domain
	}
	if endpoint := strings.TrimSpace(opts.Endpoint); endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		return strings.TrimSuffix(endpoint, "/") + "/" + opts.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
}
