package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/planventure-api/internal/domain"
)

// TripRepo provides typed DynamoDB operations for the trips table.
type TripRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewTripRepo(client *dynamodb.Client, tableName string) *TripRepo {
	return &TripRepo{client: client, tableName: tableName}
}

func (r *TripRepo) Put(ctx context.Context, t *domain.Trip) error {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return fmt.Errorf("marshal trip: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *TripRepo) Get(ctx context.Context, tripID string) (*domain.Trip, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("trip_id", tripID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("trip not found: %w", domain.ErrNotFound)
	}
	var t domain.Trip
	if err := attributevalue.UnmarshalMap(out.Item, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByUser returns all trips owned by userID via the user_id GSI.
func (r *TripRepo) ListByUser(ctx context.Context, userID string) ([]domain.Trip, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("user_id-index"),
		KeyConditionExpression:    aws.String("user_id = :u"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":u": &types.AttributeValueMemberS{Value: userID}},
	})
	if err != nil {
		return nil, err
	}
	var trips []domain.Trip
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *TripRepo) Update(ctx context.Context, tripID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(withUpdatedAt(updates))
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("trip_id", tripID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *TripRepo) Delete(ctx context.Context, tripID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("trip_id", tripID),
	})
	return err
}
