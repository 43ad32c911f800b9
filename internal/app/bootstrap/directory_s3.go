package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/carebridge/medchat/internal/config"
	"github.com/carebridge/medchat/internal/directory"
)

const s3Scheme = "s3://"

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// LoadDirectory is BuildDirectory plus support for DIRECTORY_FILE values of
// the form s3://bucket/key, fetched with the shared AWS config.
func LoadDirectory(ctx context.Context, cfg *appconfig.Config, awsCfg *aws.Config) (*directory.Directory, error) {
	if cfg == nil || !IsS3URI(cfg.DirectoryFile) {
		return BuildDirectory(cfg)
	}
	if awsCfg == nil {
		return nil, errors.New("bootstrap: s3 directory requires aws config")
	}
	return loadS3Directory(ctx, s3.NewFromConfig(*awsCfg), cfg.DirectoryFile)
}

// IsS3URI reports whether path names an S3 object.
func IsS3URI(path string) bool {
	return strings.HasPrefix(strings.TrimSpace(path), s3Scheme)
}

func loadS3Directory(ctx context.Context, api objectGetter, uri string) (*directory.Directory, error) {
	bucket, key, err := splitS3URI(uri)
	if err != nil {
		return nil, err
	}
	out, err := api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: fetch directory %s: %w", uri, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: read directory %s: %w", uri, err)
	}
	dir, err := directory.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: load directory: %w", err)
	}
	return dir, nil
}

func splitS3URI(uri string) (string, string, error) {
	rest := strings.TrimPrefix(strings.TrimSpace(uri), s3Scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("bootstrap: invalid s3 uri %q", uri)
	}
	return bucket, key, nil
}
