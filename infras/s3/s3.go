package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"path"
	"strings"

	"hotelledger/config"
	"hotelledger/infras/otel"
	"hotelledger/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
	otelAttrSize      = "size"
)

// S3 is the object store statement archives are written to.
type S3 interface {
	Upload(ctx context.Context, objectKey, contentType string, data []byte) (url string, err error)
	UploadJSON(ctx context.Context, directory, fileName string, value any) (url string, err error)
}

// PutObjectAPI is the slice of the S3 client the archive needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Impl struct {
	client       PutObjectAPI
	bucket       string
	publicDomain string
	otel         otel.Otel
}

// NewWithClient builds the store on an existing client.
func NewWithClient(client PutObjectAPI, bucket, publicDomain string, otl otel.Otel) S3 {
	return &s3Impl{
		client:       client,
		bucket:       bucket,
		publicDomain: strings.TrimSuffix(publicDomain, "/"),
		otel:         otl,
	}
}

func New(cfg *config.Config, otl otel.Otel) S3 {
	opts := cfg.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")),
		awsConfig.WithRegion(opts.Region),
	)
	if err != nil {
		log.Error().Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return NewWithClient(client, opts.BucketName, opts.PublicDomain, otl)
}

func (svc *s3Impl) Upload(ctx context.Context, objectKey, contentType string, data []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    svc.bucket,
		otelAttrSize:      len(data),
	})

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return constant.Empty, errors.Wrapf(err, "failed to upload %s", objectKey)
	}

	return svc.publicDomain + "/" + objectKey, nil
}

// UploadJSON stores value as an indented JSON document under directory.
func (svc *s3Impl) UploadJSON(ctx context.Context, directory, fileName string, value any) (string, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return constant.Empty, errors.Wrap(err, "failed to marshal document")
	}

	return svc.Upload(ctx, path.Join(directory, fileName), constant.ContentTypeJSON, data)
}
