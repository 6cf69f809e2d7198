package storage

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
)

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestPutUsesPrefixedUUIDKey(t *testing.T) {
	fake := &fakeS3{}
	u := &S3Uploader{client: fake, bucket: "photos", endpoint: "https://r2.example.com/"}

	key, err := u.Put(context.Background(), "/barbers/7/", "image/webp", []byte("data"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "barbers/7/"))
	assert.Len(t, strings.TrimPrefix(key, "barbers/7/"), 36)
	assert.Equal(t, "photos", aws.ToString(fake.in.Bucket))
	assert.Equal(t, "image/webp", aws.ToString(fake.in.ContentType))
	assert.Equal(t, []byte("data"), fake.body)

	assert.Equal(t, "https://r2.example.com/photos/"+key, u.URL(key))
}

func TestPutWrapsError(t *testing.T) {
	u := &S3Uploader{client: &fakeS3{err: errors.New("denied")}, bucket: "photos"}

	_, err := u.Put(context.Background(), "barbers", "image/webp", nil)
	assert.ErrorContains(t, err, "denied")
	assert.Equal(t, "https://photos.s3.amazonaws.com/k", u.URL("k"))
}
