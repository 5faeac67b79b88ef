package blob

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkarpenko/valentine/internal/common"
)

type fakeS3 struct {
	lastInput *s3.PutObjectInput
	err       error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func newTestClient(f *fakeS3) *Client {
	return &Client{s3: f, bucket: "valentine-images", publicBaseURL: "http://127.0.0.1:9000"}
}

func TestUpload_Success(t *testing.T) {
	f := &fakeS3{}
	c := newTestClient(f)

	url, err := c.Upload(context.Background(), "abc123/photo1.jpg", "image/jpeg", strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/valentine-images/abc123/photo1.jpg", url)

	require.NotNil(t, f.lastInput)
	assert.Equal(t, "valentine-images", *f.lastInput.Bucket)
	assert.Equal(t, "abc123/photo1.jpg", *f.lastInput.Key)
	assert.Equal(t, "image/jpeg", *f.lastInput.ContentType)

	body, err := io.ReadAll(f.lastInput.Body)
	require.NoError(t, err)
	assert.Equal(t, "img", string(body))
}

func TestUpload_IsInsertNotUpsert(t *testing.T) {
	f := &fakeS3{}
	c := newTestClient(f)

	_, err := c.Upload(context.Background(), "abc123/photo1.jpg", "image/jpeg", strings.NewReader("img"))
	require.NoError(t, err)

	require.NotNil(t, f.lastInput.IfNoneMatch, "upload must be conditional on the key not existing")
	assert.Equal(t, "*", *f.lastInput.IfNoneMatch)
}

func TestUpload_ExistingObject(t *testing.T) {
	f := &fakeS3{err: &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "At least one of the pre-conditions you specified did not hold"}}
	c := newTestClient(f)

	_, err := c.Upload(context.Background(), "abc123/photo1.jpg", "image/jpeg", strings.NewReader("img"))
	require.ErrorIs(t, err, common.ErrObjectExists)
}

func TestUpload_GenericFailure(t *testing.T) {
	f := &fakeS3{err: errors.New("network sad")}
	c := newTestClient(f)

	_, err := c.Upload(context.Background(), "abc123/photo1.jpg", "image/jpeg", strings.NewReader("img"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrObjectExists)
	assert.Contains(t, err.Error(), "put object")
}
