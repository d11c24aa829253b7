package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thumbdrive/internal/domain"
	"thumbdrive/internal/repository"
)

// fakeDynamo разыгрывает заранее заданные ответы DynamoDB
type fakeDynamo struct {
	items     map[string]map[string]types.AttributeValue
	pages     []*dynamodb.ScanOutput
	startKeys []map[string]types.AttributeValue
	lastPut   *dynamodb.PutItemInput
	putErr    error
	deleteErr error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue)}
}

func (f *fakeDynamo) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.lastPut = params
	id := params.Item["id"].(*types.AttributeValueMemberS).Value
	f.items[id] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	id := params.Key["id"].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.items[id]}, nil
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	id := params.Key["id"].(*types.AttributeValueMemberS).Value
	delete(f.items, id)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.startKeys = append(f.startKeys, params.ExclusiveStartKey)
	page := f.pages[len(f.startKeys)-1]
	return page, nil
}

func record(id, url string) domain.ThumbnailRecord {
	now := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)
	return domain.ThumbnailRecord{
		ID:                id,
		URL:               url,
		ApproxReducedSize: "53.0 KB",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func marshalRecord(t *testing.T, rec domain.ThumbnailRecord) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(rec)
	require.NoError(t, err)
	return item
}

func TestPut_StoresItem(t *testing.T) {
	client := newFakeDynamo()
	repo := repository.NewThumbnailRepository(client, "thumbnails")

	rec := record("id-1", "https://storage.example.com/b/cat_thumbnail.png")
	require.NoError(t, repo.Put(context.Background(), &rec))

	require.NotNil(t, client.lastPut)
	assert.Equal(t, "thumbnails", *client.lastPut.TableName)
	assert.Equal(t, "id-1", client.lastPut.Item["id"].(*types.AttributeValueMemberS).Value)
}

func TestPut_WrapsStoreError(t *testing.T) {
	client := newFakeDynamo()
	client.putErr = errors.New("throttled")
	repo := repository.NewThumbnailRepository(client, "thumbnails")

	rec := record("id-1", "u")
	err := repo.Put(context.Background(), &rec)
	require.ErrorIs(t, err, domain.ErrStoreWrite)
}

func TestGetByID_ReturnsStoredRecord(t *testing.T) {
	client := newFakeDynamo()
	repo := repository.NewThumbnailRepository(client, "thumbnails")

	want := record("id-1", "https://storage.example.com/b/cat_thumbnail.png")
	client.items["id-1"] = marshalRecord(t, want)

	got, err := repo.GetByID(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.URL, got.URL)
	assert.Equal(t, want.ApproxReducedSize, got.ApproxReducedSize)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))
}

func TestGetByID_NotFound(t *testing.T) {
	client := newFakeDynamo()
	repo := repository.NewThumbnailRepository(client, "thumbnails")

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestDeleteByID_IdempotentOnMissingID(t *testing.T) {
	client := newFakeDynamo()
	repo := repository.NewThumbnailRepository(client, "thumbnails")

	// Удаление несуществующей записи: стор отвечает успехом
	ok, err := repo.DeleteByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeleteByID_SurfacesStoreError(t *testing.T) {
	client := newFakeDynamo()
	client.deleteErr = errors.New("access denied")
	repo := repository.NewThumbnailRepository(client, "thumbnails")

	ok, err := repo.DeleteByID(context.Background(), "id-1")
	require.Error(t, err)
	assert.False(t, ok)
}

func TestScanAll_FollowsPagination(t *testing.T) {
	client := newFakeDynamo()
	repo := repository.NewThumbnailRepository(client, "thumbnails")

	key2 := map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "id-2"}}
	key4 := map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "id-4"}}

	client.pages = []*dynamodb.ScanOutput{
		{
			Items: []map[string]types.AttributeValue{
				marshalRecord(t, record("id-1", "u1")),
				marshalRecord(t, record("id-2", "u2")),
			},
			LastEvaluatedKey: key2,
		},
		{
			Items: []map[string]types.AttributeValue{
				marshalRecord(t, record("id-3", "u3")),
				marshalRecord(t, record("id-4", "u4")),
			},
			LastEvaluatedKey: key4,
		},
		{
			Items: []map[string]types.AttributeValue{
				marshalRecord(t, record("id-5", "u5")),
			},
		},
	}

	records, err := repo.ScanAll(context.Background())
	require.NoError(t, err)

	// Все страницы собраны в один список в порядке стора
	require.Len(t, records, 5)
	for i, want := range []string{"id-1", "id-2", "id-3", "id-4", "id-5"} {
		assert.Equal(t, want, records[i].ID)
	}

	// Токены пагинации переданы между вызовами
	require.Len(t, client.startKeys, 3)
	assert.Nil(t, client.startKeys[0])
	assert.Equal(t, key2, client.startKeys[1])
	assert.Equal(t, key4, client.startKeys[2])
}

func TestScanAll_EmptyTable(t *testing.T) {
	client := newFakeDynamo()
	client.pages = []*dynamodb.ScanOutput{{}}
	repo := repository.NewThumbnailRepository(client, "thumbnails")

	records, err := repo.ScanAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}
