package bootstrap

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/carebridge/medchat/internal/config"
)

type fakeObjects struct {
	body   string
	err    error
	bucket string
	key    string
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestLoadS3Directory(t *testing.T) {
	api := &fakeObjects{body: `
specialties:
  - name: Dermatology
    doctors:
      - name: Dr. Skin
        email: skin@example.com
time_slots: ["11:00 AM"]
`}
	dir, err := loadS3Directory(context.Background(), api, "s3://clinic-config/medchat/directory.yaml")
	require.NoError(t, err)
	assert.Equal(t, "clinic-config", api.bucket)
	assert.Equal(t, "medchat/directory.yaml", api.key)
	assert.Equal(t, []string{"Dermatology"}, dir.SpecialtyNames())
}

func TestLoadS3DirectoryErrors(t *testing.T) {
	_, err := loadS3Directory(context.Background(), &fakeObjects{}, "s3://bucket-only")
	assert.Error(t, err)

	_, err = loadS3Directory(context.Background(), &fakeObjects{err: errors.New("access denied")}, "s3://b/k.yaml")
	assert.ErrorContains(t, err, "access denied")

	_, err = loadS3Directory(context.Background(), &fakeObjects{body: "specialties: []"}, "s3://b/k.yaml")
	assert.Error(t, err)
}

func TestLoadDirectoryRequiresAWSForS3(t *testing.T) {
	_, err := LoadDirectory(context.Background(), &appconfig.Config{DirectoryFile: "s3://b/k.yaml"}, nil)
	assert.Error(t, err)

	dir, err := LoadDirectory(context.Background(), &appconfig.Config{}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, dir.TimeSlots)
}

func TestIsS3URI(t *testing.T) {
	assert.True(t, IsS3URI(" s3://bucket/key"))
	assert.False(t, IsS3URI("/etc/medchat/directory.yaml"))
}
