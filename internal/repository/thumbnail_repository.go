package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"thumbdrive/internal/domain"
)

// DynamoAPI покрывает операции DynamoDB, используемые репозиторием
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// ThumbnailRepository хранит записи метаданных в одной плоской таблице DynamoDB
type ThumbnailRepository struct {
	client DynamoAPI
	table  string
}

func NewThumbnailRepository(client DynamoAPI, table string) *ThumbnailRepository {
	return &ThumbnailRepository{client: client, table: table}
}

// NewDynamoClient создает клиента DynamoDB для указанного региона
func NewDynamoClient(region, accessKeyID, secretAccessKey string) *dynamodb.Client {
	creds := aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
		accessKeyID,
		secretAccessKey,
		"",
	))

	return dynamodb.New(dynamodb.Options{
		Region:           region,
		Credentials:      creds,
		RetryMode:        aws.RetryModeAdaptive,
		RetryMaxAttempts: 3,
	})
}

// Put сохраняет запись в таблицу. Запись с тем же id перезаписывается безусловно.
func (r *ThumbnailRepository) Put(ctx context.Context, record *domain.ThumbnailRecord) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("%w: marshaling record: %v", domain.ErrStoreWrite, err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}

	return nil
}

// GetByID получает запись по идентификатору
func (r *ThumbnailRepository) GetByID(ctx context.Context, id string) (*domain.ThumbnailRecord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("getting record %s: %w", id, err)
	}

	if len(out.Item) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, id)
	}

	var record domain.ThumbnailRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, fmt.Errorf("unmarshaling record %s: %w", id, err)
	}

	return &record, nil
}

// DeleteByID удаляет запись по идентификатору. Удаление идемпотентно:
// отсутствие записи не является ошибкой. SDK возвращает успех только
// на статус 2xx, поэтому nil-ошибка равносильна подтверждению стора.
func (r *ThumbnailRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return false, fmt.Errorf("deleting record %s: %w", id, err)
	}

	return true, nil
}

// ScanAll возвращает все записи таблицы, прозрачно проходя по страницам
// через LastEvaluatedKey. Порядок записей определяется стором.
func (r *ThumbnailRepository) ScanAll(ctx context.Context) ([]domain.ThumbnailRecord, error) {
	var records []domain.ThumbnailRecord
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scanning table %s: %w", r.table, err)
		}

		var page []domain.ThumbnailRecord
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshaling scan page: %w", err)
		}
		records = append(records, page...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return records, nil
}
