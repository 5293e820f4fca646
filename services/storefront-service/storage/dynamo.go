package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoStore keeps each key as one item in a table whose partition key is
// the string attribute "storage_key".
type DynamoStore struct {
	client *dynamodb.Client
	table  string
}

func NewDynamoStore(client *dynamodb.Client, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

type ddbItem struct {
	StorageKey string `dynamodbav:"storage_key"`
	Value      string `dynamodbav:"value"`
	UpdatedAt  string `dynamodbav:"updated_at"`
}

func (d *DynamoStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	k, err := attributevalue.MarshalMap(map[string]string{"storage_key": key})
	if err != nil {
		return nil, false, fmt.Errorf("marshal key: %w", err)
	}
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{TableName: &d.table, Key: k})
	if err != nil {
		return nil, false, fmt.Errorf("dynamodb GetItem failed: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, false, nil
	}
	var item ddbItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, false, fmt.Errorf("unmarshal item: %w", err)
	}
	return []byte(item.Value), true, nil
}

func (d *DynamoStore) Set(ctx context.Context, key string, value []byte) error {
	av, err := attributevalue.MarshalMap(ddbItem{
		StorageKey: key,
		Value:      string(value),
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}
	if _, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{TableName: &d.table, Item: av}); err != nil {
		return fmt.Errorf("dynamodb PutItem failed: %w", err)
	}
	return nil
}

func (d *DynamoStore) Delete(ctx context.Context, key string) error {
	k, err := attributevalue.MarshalMap(map[string]string{"storage_key": key})
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}
	if _, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{TableName: &d.table, Key: k}); err != nil {
		return fmt.Errorf("dynamodb DeleteItem failed: %w", err)
	}
	return nil
}

// Keys scans the table for keys starting with prefix. It reads the whole
// table and is meant for maintenance tools, not request paths.
func (d *DynamoStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	projection := "storage_key"
	input := &dynamodb.ScanInput{TableName: &d.table, ProjectionExpression: &projection}

	var keys []string
	for {
		out, err := d.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("dynamodb Scan failed: %w", err)
		}
		for _, raw := range out.Items {
			var item ddbItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, fmt.Errorf("unmarshal item: %w", err)
			}
			if strings.HasPrefix(item.StorageKey, prefix) {
				keys = append(keys, item.StorageKey)
			}
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	sort.Strings(keys)
	return keys, nil
}
