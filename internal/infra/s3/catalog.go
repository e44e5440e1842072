package infra_s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	infra_csvtable "github.com/humanbelnik/kinopick/internal/infra/csvtable"
	"github.com/humanbelnik/kinopick/internal/model"
)

const contentType = "text/csv; charset=utf-8"

// CatalogStorage keeps the catalog table as a single object. PutObject replaces the object
// as a whole, so a failed save leaves the previous version in place.
type CatalogStorage struct {
	client *s3.Client

	bucketName string
	key        string
	comma      rune

	logger *slog.Logger
}

func NewCatalogStorage(client *s3.Client, bucketName, key string, comma rune) *CatalogStorage {
	if comma == 0 {
		comma = ','
	}
	return &CatalogStorage{
		client:     client,
		bucketName: bucketName,
		key:        key,
		comma:      comma,
		logger:     slog.Default(),
	}
}

// Load returns an empty catalog when the object does not exist yet.
func (s *CatalogStorage) Load(ctx context.Context) (model.Catalog, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.key),
	})
	if err != nil {
		if isNotFound(err) {
			s.logger.Warn("catalog object not found, starting empty",
				slog.String("bucket", s.bucketName),
				slog.String("key", s.key),
			)
			return model.Catalog{}, nil
		}
		return nil, fmt.Errorf("failed to load object from S3: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object content: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return model.Catalog{}, nil
	}

	return infra_csvtable.Decode(bytes.NewReader(data), infra_csvtable.WithComma(s.comma))
}

func (s *CatalogStorage) Save(ctx context.Context, c model.Catalog) error {
	var buf bytes.Buffer
	if err := infra_csvtable.Encode(&buf, c, infra_csvtable.WithComma(s.comma)); err != nil {
		return err
	}

	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	}); err != nil {
		return fmt.Errorf("failed to save object to S3: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiError smithy.APIError
	if errors.As(err, &apiError) {
		switch apiError.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
