// Package wordsrc opens word list sources: local files (memory-mapped) or
// S3 objects addressed as s3://bucket/key.
package wordsrc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/exp/mmap"

	"github.com/eunmann/membench/internal/logctx"
)

// DefaultPath is the word list read when no source is configured.
const DefaultPath = "overview.txt"

// ErrSourceUnavailable indicates the word source could not be opened.
var ErrSourceUnavailable = errors.New("word source unavailable")

// ObjectGetter is the subset of the S3 client used to stream objects.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Opener opens word sources. The zero Opener loads the default AWS
// configuration on first use of an s3:// source.
type Opener struct {
	S3 ObjectGetter
}

// Open opens uri with a zero Opener.
func Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	var o Opener
	return o.Open(ctx, uri)
}

// Open returns a reader over the source's bytes. The caller must close it.
func (o *Opener) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if IsS3URI(uri) {
		return o.openS3(ctx, uri)
	}
	return openFile(ctx, uri)
}

// mappedFile exposes a memory-mapped file as a sequential reader.
type mappedFile struct {
	*io.SectionReader
	m *mmap.ReaderAt
}

func (f *mappedFile) Close() error {
	return f.m.Close()
}

func openFile(ctx context.Context, path string) (io.ReadCloser, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrSourceUnavailable, path, err)
	}
	log := logctx.FromContext(ctx)
	log.Debug().
		Str("path", path).
		Int("bytes", m.Len()).
		Msg("mapped word source")
	return &mappedFile{
		SectionReader: io.NewSectionReader(m, 0, int64(m.Len())),
		m:             m,
	}, nil
}

func (o *Opener) openS3(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, fmt.Errorf("invalid S3 URI %q: missing object key", uri)
	}

	if o.S3 == nil {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: load AWS config: %w", ErrSourceUnavailable, err)
		}
		o.S3 = s3.NewFromConfig(cfg)
	}

	resp, err := o.S3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get object s3://%s/%s: %w", ErrSourceUnavailable, bucket, key, err)
	}

	log := logctx.FromContext(ctx)
	log.Debug().
		Str("bucket", bucket).
		Str("key", key).
		Int64("bytes", aws.ToInt64(resp.ContentLength)).
		Msg("streaming word source from S3")
	return resp.Body, nil
}

// IsS3URI reports whether uri uses the s3:// scheme.
func IsS3URI(uri string) bool {
	return strings.HasPrefix(uri, "s3://")
}

// ParseS3URI splits s3://bucket/key into its parts. The key may be empty.
func ParseS3URI(uri string) (bucket, key string, err error) {
	if !IsS3URI(uri) {
		return "", "", errors.New("invalid S3 URI: must start with s3://")
	}

	path := strings.TrimPrefix(uri, "s3://")
	bucket, key, _ = strings.Cut(path, "/")
	if bucket == "" {
		return "", "", errors.New("invalid S3 URI: missing bucket name")
	}
	return bucket, key, nil
}
