package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"career-backend/internal/shared/storage/object"
)

// Options configures the S3 store. Endpoint and static keys are optional and
// allow S3-compatible services such as MinIO.
type Options struct {
	Region    string
	Bucket    string
	Prefix    string
	KMSKeyID  string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// Store keeps objects in one bucket under an optional key prefix.
type Store struct {
	client   *s3.Client
	bucket   string
	prefix   string
	kmsKeyID string
	sse      bool
}

// New loads AWS configuration from the environment, overlaid with opts.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &Store{
		client:   client,
		bucket:   opts.Bucket,
		prefix:   strings.Trim(strings.TrimSpace(opts.Prefix), "/"),
		kmsKeyID: strings.TrimSpace(opts.KMSKeyID),
		// S3-compatible endpoints often reject SSE headers unless a KMS key is set.
		sse: endpoint == "" || strings.TrimSpace(opts.KMSKeyID) != "",
	}, nil
}

// Save streams the upload to S3. Size is counted on the way through since the
// body length is not known up front.
func (s *Store) Save(ctx context.Context, up object.Upload) (object.Stored, error) {
	key, err := object.BuildKey(up.OwnerID, up.Folder, up.FileName)
	if err != nil {
		return object.Stored{}, err
	}
	if err := ctx.Err(); err != nil {
		return object.Stored{}, err
	}
	mimeType, body, err := object.Sniff(up.Body, up.FileName)
	if err != nil {
		return object.Stored{}, err
	}

	objectKey := s.objectKey(key)
	counter := &object.CountingReader{R: body}
	input := &s3.PutObjectInput{
		Bucket:             aws.String(s.bucket),
		Key:                aws.String(objectKey),
		Body:               counter,
		ContentType:        aws.String(mimeType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", path.Base(key))),
		Metadata:           map[string]string{"folder": up.Folder},
	}
	s.applyEncryption(input)

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return object.Stored{}, fmt.Errorf("s3 put %s/%s: %w", s.bucket, objectKey, err)
	}
	return object.Stored{Key: key, Size: counter.N, MimeType: mimeType}, nil
}

// Open downloads a stored object for reading.
func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	objectKey := s.objectKey(storageKey)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, object.ErrNotFound
		}
		return nil, fmt.Errorf("s3 get %s/%s: %w", s.bucket, objectKey, err)
	}
	return out.Body, nil
}

// Delete removes a stored object.
func (s *Store) Delete(ctx context.Context, storageKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	objectKey := s.objectKey(storageKey)
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}); err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", s.bucket, objectKey, err)
	}
	return nil
}

func (s *Store) applyEncryption(input *s3.PutObjectInput) {
	if !s.sse {
		return
	}
	if s.kmsKeyID != "" {
		input.ServerSideEncryption = s3types.ServerSideEncryptionAwsKms
		input.SSEKMSKeyId = aws.String(s.kmsKeyID)
		return
	}
	input.ServerSideEncryption = s3types.ServerSideEncryptionAes256
}

func (s *Store) objectKey(key string) string {
	return applyPrefix(s.prefix, key)
}

func applyPrefix(prefix, key string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	key = strings.TrimLeft(key, "/")
	switch {
	case prefix == "":
		return key
	case key == "":
		return prefix
	default:
		return prefix + "/" + key
	}
}

var _ object.ObjectStore = (*Store)(nil)
