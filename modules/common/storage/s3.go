package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"doodle-magic-server/modules/common/apperrors"
	"doodle-magic-server/modules/common/config"
	"doodle-magic-server/modules/common/imaging"
	"doodle-magic-server/modules/common/model"
)

// s3Store keeps the whole bundle (both images plus metadata.json) as objects
// under <prefix>/<id>/. The bucket is private, so locators route through the
// in-process byte-serving endpoint rather than exposing object URLs.
type s3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3Store(cfg *config.Config) (Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	log.Println("✅ [S3] Storage backend initialized")
	return &s3Store{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.S3Bucket,
		prefix: cfg.S3Prefix,
	}, nil
}

func (s *s3Store) keyFor(id, filename string) string {
	return fmt.Sprintf("%s/%s/%s", s.prefix, id, filename)
}

func (s *s3Store) putObject(ctx context.Context, id, filename string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.keyFor(id, filename)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return err
}

func (s *s3Store) getObject(ctx context.Context, id, filename string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.keyFor(id, filename)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, apperrors.NotFound(fmt.Sprintf("artifact not found: %s/%s", id, filename))
		}
		return nil, storageErr("get object", id, err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func (s *s3Store) Put(ctx context.Context, id, role string, data []byte) (string, error) {
	filename := model.FileNameFor(role)
	if err := s.putObject(ctx, id, filename, data, imaging.ContentTypeFor(filename)); err != nil {
		return "", storageErr("put object", id, err)
	}

	log.Printf("📤 [S3] Uploaded %s (%d bytes)", s.keyFor(id, filename), len(data))
	return s.Locator(id, role), nil
}

func (s *s3Store) Get(ctx context.Context, id, role string) ([]byte, error) {
	return s.getObject(ctx, id, model.FileNameFor(role))
}

func (s *s3Store) GetFile(ctx context.Context, id, filename string) ([]byte, error) {
	return s.getObject(ctx, id, filename)
}

func (s *s3Store) PutRecord(ctx context.Context, rec *model.RequestRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return storageErr("encode record", rec.ID, err)
	}

	if err := s.putObject(ctx, rec.ID, model.RecordFileName, data, "application/json"); err != nil {
		return storageErr("put record", rec.ID, err)
	}

	log.Printf("💾 [S3] Record created: %s", rec.ID)
	return nil
}

func (s *s3Store) GetRecord(ctx context.Context, id string) (*model.RequestRecord, error) {
	data, err := s.getObject(ctx, id, model.RecordFileName)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.NotFound(fmt.Sprintf("results not found: %s", id))
		}
		return nil, err
	}

	var rec model.RequestRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, storageErr("decode record", id, err)
	}
	return &rec, nil
}

func (s *s3Store) Locator(id, role string) string {
	return fmt.Sprintf("/api/images/%s/%s", id, model.FileNameFor(role))
}

func (s *s3Store) Inline() bool {
	return false
}
