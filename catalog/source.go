package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"hzfm/config"
)

// Source yields the raw metadata table.
type Source interface {
	Fetch(ctx context.Context) (io.ReadCloser, error)
	// Name identifies the source in logs.
	Name() string
}

// HTTPSource reads the table with an unauthenticated GET.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource creates an HTTPSource whose client gives up after timeout.
// A zero timeout leaves the request bounded only by its context.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (s *HTTPSource) Name() string { return s.URL }

func (s *HTTPSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fetchErr(err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fetchErr(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fetchErr(fmt.Errorf("GET %s: unexpected status %s", s.URL, resp.Status))
	}
	return resp.Body, nil
}

// MinioSource reads the table from an object in an S3-compatible bucket.
type MinioSource struct {
	client *minio.Client
	bucket string
	object string
}

// NewMinioClient creates a minio client from the storage settings in cfg.
func NewMinioClient(cfg *config.Config) (*minio.Client, error) {
	if cfg.MinioEndpoint == "" {
		return nil, fmt.Errorf("MINIO_ENDPOINT is not set")
	}
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return client, nil
}

func NewMinioSource(client *minio.Client, bucket, object string) *MinioSource {
	return &MinioSource{client: client, bucket: bucket, object: object}
}

func (s *MinioSource) Name() string { return "s3://" + s.bucket + "/" + s.object }

func (s *MinioSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fetchErr(err)
	}
	// GetObject is lazy; Stat surfaces NoSuchKey and connection errors now.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, fetchErr(err)
	}
	return obj, nil
}

// Upload validates a metadata table and stores it as the configured object.
func (s *MinioSource) Upload(ctx context.Context, r io.Reader) (int, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxTableBytes+1))
	if err != nil {
		return 0, fmt.Errorf("read table: %w", err)
	}
	if len(body) > maxTableBytes {
		return 0, fmt.Errorf("table exceeds %d bytes", maxTableBytes)
	}
	records, err := Parse(bytes.NewReader(body))
	if err != nil {
		return 0, err
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return 0, fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return 0, fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.object, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return 0, fmt.Errorf("upload %s: %w", s.Name(), err)
	}
	return len(records), nil
}

// NewSource picks the metadata source named by cfg.MetadataSource.
func NewSource(cfg *config.Config) (Source, error) {
	if cfg.MetadataSource == config.SourceMinio {
		client, err := NewMinioClient(cfg)
		if err != nil {
			return nil, err
		}
		return NewMinioSource(client, cfg.MinioBucket, cfg.MinioObject), nil
	}
	return NewHTTPSource(cfg.MetadataURL, cfg.MetadataFetchTimeout), nil
}
