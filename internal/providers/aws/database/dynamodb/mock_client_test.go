package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putInput(table string, item map[string]types.AttributeValue) *dynamodb.PutItemInput {
	return &dynamodb.PutItemInput{TableName: aws.String(table), Item: item}
}

func TestMockDynamoDBClient_Conditions(t *testing.T) {
	ctx := context.Background()
	client := newTestTables()
	item := map[string]types.AttributeValue{
		"recipeId": &types.AttributeValueMemberN{Value: "1"},
		"userId":   &types.AttributeValueMemberS{Value: "alice"},
	}

	_, err := client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(testRecipesTable),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(recipeId)"),
	})
	require.NoError(t, err)

	_, err = client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(testRecipesTable),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(#r)"),
		ExpressionAttributeNames: map[string]string{
			"#r": "recipeId",
		},
	})
	var ccf *types.ConditionalCheckFailedException
	assert.True(t, errors.As(err, &ccf))

	_, err = client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(testRecipesTable),
		Key:                 recipeKey("bob", 1),
		ConditionExpression: aws.String("attribute_exists (recipeId)"),
	})
	assert.True(t, errors.As(err, &ccf), "same recipeId under another owner is a different item")
	assert.Equal(t, 1, client.ItemCount(testRecipesTable))
}

func TestMockDynamoDBClient_UnknownTable(t *testing.T) {
	client := NewMockDynamoDBClient()

	_, err := client.GetItem(context.Background(), &dynamodb.GetItemInput{
		TableName: aws.String("missing"),
		Key:       recipeKey("alice", 1),
	})

	var rnf *types.ResourceNotFoundException
	assert.True(t, errors.As(err, &rnf))
}

func TestMockDynamoDBClient_UpdateActions(t *testing.T) {
	ctx := context.Background()
	client := newTestTables()
	_, err := client.PutItem(ctx, putInput(testRecipesTable, map[string]types.AttributeValue{
		"recipeId": &types.AttributeValueMemberN{Value: "1"},
		"userId":   &types.AttributeValueMemberS{Value: "alice"},
		"views":    &types.AttributeValueMemberN{Value: "2"},
		"image":    &types.AttributeValueMemberS{Value: "old"},
	}))
	require.NoError(t, err)

	out, err := client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(testRecipesTable),
		Key:              recipeKey("alice", 1),
		UpdateExpression: aws.String("SET #n = :n\nADD views :one\nREMOVE image"),
		ExpressionAttributeNames: map[string]string{
			"#n": "recipeName",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":n":   &types.AttributeValueMemberS{Value: "Soup"},
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	require.NoError(t, err)

	assert.Equal(t, &types.AttributeValueMemberS{Value: "Soup"}, out.Attributes["recipeName"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "3"}, out.Attributes["views"])
	assert.NotContains(t, out.Attributes, "image")
}

func TestMockDynamoDBClient_QueryPagination(t *testing.T) {
	ctx := context.Background()
	client := newTestTables()
	client.QueryPageSize = 2
	for _, id := range []string{"3", "1", "2", "10", "5"} {
		_, err := client.PutItem(ctx, putInput(testRecipesTable, map[string]types.AttributeValue{
			"recipeId": &types.AttributeValueMemberN{Value: id},
			"userId":   &types.AttributeValueMemberS{Value: "alice"},
		}))
		require.NoError(t, err)
	}

	var (
		ids      []string
		startKey map[string]types.AttributeValue
		pages    int
	)
	for {
		out, err := client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(testRecipesTable),
			IndexName:              aws.String("recipesGlobalSecondaryIndex"),
			KeyConditionExpression: aws.String("userId = :u"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":u": &types.AttributeValueMemberS{Value: "alice"},
			},
			ExclusiveStartKey: startKey,
		})
		require.NoError(t, err)
		pages++
		for _, item := range out.Items {
			ids = append(ids, getStringValue(item["recipeId"]))
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	assert.Equal(t, []string{"1", "2", "3", "5", "10"}, ids)
	assert.Equal(t, 3, pages)
}
