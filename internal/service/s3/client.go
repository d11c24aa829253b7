package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"thumbdrive/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	uploadTimeout  = 10 * time.Minute
)

// Client предоставляет методы для работы с S3-совместимым хранилищем
type Client struct {
	client   *s3.Client
	endpoint string
}

// NewClient создает новый экземпляр клиента S3
func NewClient(conf *Config) (*Client, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	if conf.AccessKeyID == "" || conf.SecretAccessKey == "" {
		return nil, fmt.Errorf("missing required configuration: accessKeyID and secretAccessKey are required")
	}

	// Создаем конфигурацию AWS
	creds := aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
		conf.AccessKeyID,
		conf.SecretAccessKey,
		"",
	))

	// Создаем клиента с кастомными настройками
	client := s3.New(s3.Options{
		BaseEndpoint:     aws.String(conf.Endpoint),
		Region:           conf.Region,
		Credentials:      creds,
		RetryMode:        aws.RetryModeAdaptive,
		RetryMaxAttempts: 3,
	})

	return &Client{
		client:   client,
		endpoint: strings.TrimRight(conf.Endpoint, "/"),
	}, nil
}

// Fetch получает содержимое объекта из S3
func (h *Client) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("%w: bucket and key are required", domain.ErrStorageRead)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := h.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("%w: object not found: %s", domain.ErrStorageRead, key)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageRead, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading object body: %v", domain.ErrStorageRead, err)
	}

	return data, nil
}

// Store загружает байты в S3 под указанным ключом.
// Флаг public управляет ACL public-read загружаемого объекта.
func (h *Client) Store(ctx context.Context, bucket, key string, data []byte, contentType string, public bool) error {
	if bucket == "" || key == "" {
		return fmt.Errorf("%w: bucket and key are required", domain.ErrStorageWrite)
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}
	if public {
		input.ACL = types.ObjectCannedACLPublicRead
	}

	if _, err := h.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}

	return nil
}

// ObjectURL возвращает полный адрес объекта в хранилище
func (h *Client) ObjectURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", h.endpoint, bucket, key)
}
