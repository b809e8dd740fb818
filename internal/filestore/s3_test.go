package filestore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/flexbase/internal/config"
	"github.com/msomdec/flexbase/internal/domain"
)

// fakeObjects is an in-memory ObjectAPI keyed by bucket/key.
type fakeObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: make(map[string][]byte)}
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("not found")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_RoundTrip(t *testing.T) {
	fake := newFakeObjects()
	store := NewS3Store(fake, "sneakers", "media")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "posts/1_x_a.png", []byte("png")))
	assert.Contains(t, fake.objects, "sneakers/media/posts/1_x_a.png")

	data, err := store.Get(ctx, "posts/1_x_a.png")
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	require.NoError(t, store.Delete(ctx, "posts/1_x_a.png"))
	_, err = store.Get(ctx, "posts/1_x_a.png")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestS3Store_PutError(t *testing.T) {
	fake := newFakeObjects()
	fake.putErr = errors.New("connection refused")
	store := NewS3Store(fake, "sneakers", "")

	err := store.Save(context.Background(), "profiles/user_1.png", []byte("png"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection refused")
}

func TestNewS3StoreFromConfig(t *testing.T) {
	store, err := NewS3StoreFromConfig(context.Background(), config.MediaConfig{
		Backend:     "s3",
		S3Bucket:    "sneakers",
		S3Region:    "us-east-1",
		S3Endpoint:  "http://127.0.0.1:9000",
		S3AccessKey: "minio",
		S3SecretKey: "minio123",
		S3Prefix:    "flexbase",
	})
	require.NoError(t, err)

	client, ok := store.client.(*s3.Client)
	require.True(t, ok, "expected a real *s3.Client")
	assert.Equal(t, "http://127.0.0.1:9000", aws.ToString(client.Options().BaseEndpoint))
	assert.True(t, client.Options().UsePathStyle)
	assert.Equal(t, "flexbase/profiles/user_1.png", store.objectKey("profiles/user_1.png"))
}
