package manifest

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

// S3Scheme prefixes manifest locations stored in S3.
const S3Scheme = "s3://"

// Source provides raw manifest bytes.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// FileSource reads a manifest from the local filesystem.
type FileSource struct {
	Path string
}

// Fetch implements Source.
func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest %s", s.Path)
	}
	return data, nil
}

func (s FileSource) String() string {
	return s.Path
}

// S3API is the subset of *s3.Client used by S3Source.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads a manifest from an S3 object.
//
//	client := s3.New(s3.Options{Region: "us-east-1"})
//	src := manifest.S3Source{Client: client, Bucket: "config", Key: "routes.json"}
type S3Source struct {
	Client S3API
	Bucket string
	Key    string
}

// Fetch implements Source.
func (s S3Source) Fetch(ctx context.Context) ([]byte, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "s3 get %s", s.String())
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "s3 read %s", s.String())
	}
	return data, nil
}

func (s S3Source) String() string {
	return S3Scheme + s.Bucket + "/" + s.Key
}

// Open returns the source for location: an S3Source for
// "s3://bucket/key" and a FileSource for anything else. client may be nil
// for file locations.
func Open(location string, client S3API) (Source, error) {
	if !strings.HasPrefix(location, S3Scheme) {
		if location == "" {
			return nil, errors.New("empty manifest location")
		}
		return FileSource{Path: location}, nil
	}

	bucket, key, ok := strings.Cut(strings.TrimPrefix(location, S3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return nil, errors.Errorf("invalid s3 location %q: want s3://bucket/key", location)
	}
	if client == nil {
		return nil, errors.Errorf("no s3 client for %s", location)
	}
	return S3Source{Client: client, Bucket: bucket, Key: key}, nil
}
