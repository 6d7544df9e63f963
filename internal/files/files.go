package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Object represents an S3 object
type S3Object struct {
	Bucket string
	Key    string
}

// NewS3Object creates a new S3Object
func NewS3Object(bucket, key string) S3Object {
	return S3Object{Bucket: bucket, Key: key}
}

// URI returns a human-readable URI for the S3 object
func (obj S3Object) URI() string {
	return fmt.Sprintf("s3://%s/%s", obj.Bucket, obj.Key)
}

// HeadObjectAPI is the S3 operation used to look up object metadata
type HeadObjectAPI interface {
	HeadObject(ctx context.Context, input *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// PutObjectAPI is the S3 operation used to store objects
type PutObjectAPI interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// UploadObject stores body at obj with the given content type
func UploadObject(ctx context.Context, client PutObjectAPI, obj S3Object, body io.Reader, contentType string) error {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(obj.Bucket),
		Key:         aws.String(obj.Key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return ErrorObjectNotStored(obj.URI(), err)
	}
	return nil
}

// Attachment is a file stored in S3 whose size is looked up on demand.
// It satisfies the stored file shape the template filters accept.
type Attachment struct {
	ctx    context.Context
	client HeadObjectAPI
	Object S3Object
}

// NewAttachment binds obj to the client used to size it
func NewAttachment(ctx context.Context, client HeadObjectAPI, obj S3Object) *Attachment {
	return &Attachment{ctx: ctx, client: client, Object: obj}
}

// Name returns the last path element of the object key
func (a *Attachment) Name() string {
	return path.Base(a.Object.Key)
}

// Size returns the stored object's content length
func (a *Attachment) Size() (int64, error) {
	resp, err := a.client.HeadObject(a.ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.Object.Bucket),
		Key:    aws.String(a.Object.Key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return 0, ErrorObjectNotFound(a.Object.URI())
		}
		return 0, ErrorMetadataNotRetrieved(a.Object.URI(), err)
	}
	return aws.ToInt64(resp.ContentLength), nil
}

// isS3NotFound checks if an error is a "not found" error from S3
func isS3NotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return true
		}
	}
	return false
}
