package file

import (
	"testing"

	appcfg "github.com/folio-space/core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts appcfg.S3Options) *S3Store {
	t.Helper()
	if opts.Bucket == "" {
		opts.Bucket = "folio-media"
	}
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}
	opts.AccessKeyID = "AKIATEST"
	opts.SecretAccessKey = "secret"
	store, err := NewS3Store(opts)
	require.NoError(t, err)
	return store
}

func TestNewS3StoreRequiresCredentials(t *testing.T) {
	_, err := NewS3Store(appcfg.S3Options{Bucket: "b", Region: "r"})
	assert.Error(t, err)
}

func TestPublicURLVariants(t *testing.T) {
	aws := newTestStore(t, appcfg.S3Options{})
	assert.Equal(t,
		"https://folio-media.s3.us-east-1.amazonaws.com/uploads/a.png",
		aws.publicURL("uploads/a.png"))

	minio := newTestStore(t, appcfg.S3Options{Endpoint: "minio.internal:9000"})
	assert.Equal(t,
		"https://minio.internal:9000/folio-media/uploads/a.png",
		minio.publicURL("uploads/a.png"))

	cdn := newTestStore(t, appcfg.S3Options{CustomDomain: "https://cdn.example.com"})
	assert.Equal(t, "https://cdn.example.com/uploads/a.png", cdn.publicURL("uploads/a.png"))
}

func TestKeyFromURLRoundTrip(t *testing.T) {
	aws := newTestStore(t, appcfg.S3Options{})
	url := aws.publicURL(aws.fullKey("uploads/2026/01/a.png"))
	assert.Equal(t, "uploads/2026/01/a.png", aws.KeyFromURL(url))

	minio := newTestStore(t, appcfg.S3Options{Endpoint: "minio.internal:9000", KeyPrefix: "media"})
	url = minio.publicURL(minio.fullKey("uploads/a.png"))
	assert.Equal(t, "https://minio.internal:9000/folio-media/media/uploads/a.png", url)
	assert.Equal(t, "uploads/a.png", minio.KeyFromURL(url))

	assert.Equal(t, "", minio.KeyFromURL("://bad"))
}

func TestFullKeyNormalizes(t *testing.T) {
	store := newTestStore(t, appcfg.S3Options{KeyPrefix: "media"})
	assert.Equal(t, "media/uploads/a.png", store.fullKey("/uploads\\a.png/"))
}
