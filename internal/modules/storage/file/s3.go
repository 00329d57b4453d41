package file

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appcfg "github.com/folio-space/core/internal/config"
)

// S3Store uploads objects to an S3-compatible bucket (AWS, Wasabi, MinIO and
// friends via a custom endpoint).
type S3Store struct {
	client       *s3.Client
	bucket       string
	endpoint     string
	region       string
	customDomain string
	keyPrefix    string
	pathStyle    bool
}

func NewS3Store(opts appcfg.S3Options) (*S3Store, error) {
	if opts.Bucket == "" || opts.Region == "" || opts.AccessKeyID == "" || opts.SecretAccessKey == "" {
		return nil, fmt.Errorf("incomplete s3 config: bucket/region/access_key_id/secret_access_key are required")
	}

	endpoint := opts.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	endpoint = strings.TrimSuffix(endpoint, "/")

	pathStyle := opts.PathStyleAccess
	if endpoint != "" {
		// Non-AWS endpoints typically require path-style addressing.
		pathStyle = true
	}

	client := s3.New(s3.Options{
		Region: opts.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			opts.AccessKeyID, opts.SecretAccessKey, ""),
	}, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = pathStyle
	})

	return &S3Store{
		client:       client,
		bucket:       opts.Bucket,
		endpoint:     endpoint,
		region:       opts.Region,
		customDomain: opts.CustomDomain,
		keyPrefix:    opts.KeyPrefix,
		pathStyle:    pathStyle,
	}, nil
}

// Put uploads payload under key and returns the public URL.
func (s *S3Store) Put(ctx context.Context, key string, payload []byte, contentType string) (string, error) {
	key = s.fullKey(key)
	if key == "" {
		return "", fmt.Errorf("invalid s3 object key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return s.publicURL(key), nil
}

// Remove deletes an object. Used to roll back partially completed batches.
func (s *S3Store) Remove(ctx context.Context, key string) error {
	key = s.fullKey(key)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// KeyFromURL recovers the object key from a URL produced by Put, so rollback
// and sweeps don't need a separate key column.
func (s *S3Store) KeyFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	key := strings.Trim(u.Path, "/")
	if s.pathStyle {
		key = strings.TrimPrefix(key, s.bucket+"/")
	}
	if s.keyPrefix != "" {
		key = strings.TrimPrefix(key, s.keyPrefix+"/")
	}
	return key
}

func (s *S3Store) fullKey(key string) string {
	key = strings.Trim(strings.ReplaceAll(key, "\\", "/"), "/")
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + key
	}
	return key
}

func (s *S3Store) publicURL(key string) string {
	if s.customDomain != "" {
		return s.customDomain + "/" + key
	}
	if s.endpoint != "" {
		if s.pathStyle {
			return s.endpoint + "/" + s.bucket + "/" + key
		}
		return strings.Replace(s.endpoint, "://", "://"+s.bucket+".", 1) + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
