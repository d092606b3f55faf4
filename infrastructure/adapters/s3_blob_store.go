package adapters

import (
	"bytes"
	"context"
	"fmt"
	"generate-video-pipeline/application/ports/outbound"
	"generate-video-pipeline/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"
)

type s3BlobStore struct {
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

func NewS3BlobStore(s3Svc *s3.S3, s3Config *config.S3Config) outbound.BlobStorePort {
	return &s3BlobStore{
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

func (s *s3BlobStore) Save(ctx context.Context, data []byte, logicalPath string, contentType string) (string, error) {
	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(s.s3Config.BucketName),
		Key:           aws.String(logicalPath),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	}

	_, err := s.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		log.Error().
			Err(err).
			Str("bucket", s.s3Config.BucketName).
			Str("key", logicalPath).
			Msg("Failed to upload artifact to S3")
		return "", err
	}

	log.Debug().
		Str("key", logicalPath).
		Msg("Successfully uploaded artifact to S3")

	return logicalPath, nil
}

func (s *s3BlobStore) Delete(ctx context.Context, ref string) error {
	_, err := s.s3Svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(ref),
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("bucket", s.s3Config.BucketName).
			Str("key", ref).
			Msg("Failed to delete artifact from S3")
	}
	return err
}

func (s *s3BlobStore) UrlFor(ref string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, ref)
}
