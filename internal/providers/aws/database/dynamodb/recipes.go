package dynamodb

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/api"
	apperrors "github.com/DeanGilewicz/serverless-recipes-BE/internal/errors"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/logger"
)

const (
	attrRecipeID     = "recipeId"
	attrUserID       = "userId"
	attrRecipeName   = "recipeName"
	attrSlug         = "slug"
	attrIngredients  = "ingredients"
	attrInstructions = "instructions"
	attrImage        = "image"
	attrUpdatedAt    = "updatedAt"
)

// RecipeRepository implements the database.RecipeRepository interface using DynamoDB.
// The table is keyed by (recipeId, userId); owner scoped reads go through a global
// secondary index keyed by (userId, recipeId).
type RecipeRepository struct {
	client    Client
	tableName string
	indexName string
	logger    *slog.Logger
}

// NewRecipeRepository creates a new DynamoDB-backed recipe repository.
func NewRecipeRepository(client Client, tableName, indexName string, log *slog.Logger) *RecipeRepository {
	return &RecipeRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    log,
	}
}

// recipeItem represents the structure stored in DynamoDB.
type recipeItem struct {
	RecipeID     int64            `dynamodbav:"recipeId"`
	UserID       string           `dynamodbav:"userId"`
	RecipeName   string           `dynamodbav:"recipeName"`
	Slug         string           `dynamodbav:"slug"`
	Ingredients  []api.Ingredient `dynamodbav:"ingredients"`
	Instructions string           `dynamodbav:"instructions"`
	Image        string           `dynamodbav:"image,omitempty"`
	CreatedAt    string           `dynamodbav:"createdAt"`
	UpdatedAt    string           `dynamodbav:"updatedAt"`
}

func toItem(r *api.Recipe) recipeItem {
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []api.Ingredient{}
	}
	return recipeItem{
		RecipeID:     r.RecipeID,
		UserID:       r.UserID,
		RecipeName:   r.RecipeName,
		Slug:         r.Slug,
		Ingredients:  ingredients,
		Instructions: r.Instructions,
		Image:        r.Image,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (i *recipeItem) toAPI() *api.Recipe {
	ingredients := i.Ingredients
	if ingredients == nil {
		ingredients = []api.Ingredient{}
	}
	return &api.Recipe{
		RecipeID:     i.RecipeID,
		UserID:       i.UserID,
		RecipeName:   i.RecipeName,
		Slug:         i.Slug,
		Ingredients:  ingredients,
		Instructions: i.Instructions,
		Image:        i.Image,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func recipeKey(ownerID string, recipeID int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrRecipeID: &types.AttributeValueMemberN{Value: strconv.FormatInt(recipeID, 10)},
		attrUserID:   &types.AttributeValueMemberS{Value: ownerID},
	}
}

func unmarshalRecipe(av map[string]types.AttributeValue) (*api.Recipe, error) {
	var item recipeItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, apperrors.ErrInternalError("stored recipe is malformed",
			fmt.Errorf("unmarshal recipe item: %w", err))
	}
	return item.toAPI(), nil
}

func (r *RecipeRepository) logCall(ctx context.Context, reqLogger *slog.Logger, operation string, args ...any) {
	logArgs := append([]any{
		"operation", operation,
		"table", r.tableName,
	}, args...)
	logArgs = append(logArgs, logger.GetDeadlineInfo(ctx)...)
	reqLogger.Debug("calling external service", "context", logger.SliceToMap(logArgs))
}

// CreateRecipe writes a recipe only if no record with its recipeId exists, then reads it back
// with a consistent read. An existing ID is reported as ErrRecipeExists and is never overwritten.
func (r *RecipeRepository) CreateRecipe(ctx context.Context, recipe *api.Recipe) (*api.Recipe, error) {
	reqLogger := logger.DeriveRequestLogger(ctx, r.logger)

	av, err := attributevalue.MarshalMap(toItem(recipe))
	if err != nil {
		return nil, apperrors.ErrInternalError("failed to encode recipe",
			fmt.Errorf("marshal recipe item: %w", err))
	}

	r.logCall(ctx, reqLogger, "DynamoDB.PutItem", "recipe_id", recipe.RecipeID, "user_id", recipe.UserID)

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(recipeId)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if stderrors.As(err, &ccf) {
			return nil, apperrors.ErrRecipeExists(nil)
		}
		return nil, apperrors.ErrDatabaseError("failed to create recipe", err)
	}

	r.logCall(ctx, reqLogger, "DynamoDB.GetItem", "recipe_id", recipe.RecipeID, "consistent_read", true)

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            recipeKey(recipe.UserID, recipe.RecipeID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, apperrors.ErrDatabaseError("failed to read back recipe", err)
	}
	if result.Item == nil {
		return nil, apperrors.ErrDatabaseError("recipe missing after create", nil)
	}

	return unmarshalRecipe(result.Item)
}

// ListRecipes queries the owner index, following pagination until exhausted.
func (r *RecipeRepository) ListRecipes(ctx context.Context, ownerID string) ([]*api.Recipe, error) {
	keyCond := expression.Key(attrUserID).Equal(expression.Value(ownerID))
	return r.queryIndex(ctx, keyCond, nil, 0)
}

// GetRecipe returns the owner's recipe or nil when it does not exist.
func (r *RecipeRepository) GetRecipe(ctx context.Context, ownerID string, recipeID int64) (*api.Recipe, error) {
	keyCond := expression.Key(attrUserID).Equal(expression.Value(ownerID)).
		And(expression.Key(attrRecipeID).Equal(expression.Value(recipeID)))

	recipes, err := r.queryIndex(ctx, keyCond, nil, 1)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, nil
	}
	return recipes[0], nil
}

// GetRecipeBySlug returns the owner's first recipe with the given slug or nil.
func (r *RecipeRepository) GetRecipeBySlug(ctx context.Context, ownerID, slug string) (*api.Recipe, error) {
	keyCond := expression.Key(attrUserID).Equal(expression.Value(ownerID))
	filter := expression.Name(attrSlug).Equal(expression.Value(slug))

	recipes, err := r.queryIndex(ctx, keyCond, &filter, 1)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, nil
	}
	return recipes[0], nil
}

// queryIndex runs a query against the owner index. With limit > 0 it stops as soon as that many
// matching recipes have been collected.
func (r *RecipeRepository) queryIndex(
	ctx context.Context,
	keyCond expression.KeyConditionBuilder,
	filter *expression.ConditionBuilder,
	limit int,
) ([]*api.Recipe, error) {
	reqLogger := logger.DeriveRequestLogger(ctx, r.logger)

	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if filter != nil {
		builder = builder.WithFilter(*filter)
	}
	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query expression: %w", err)
	}

	recipes := make([]*api.Recipe, 0)
	var startKey map[string]types.AttributeValue

	for {
		r.logCall(ctx, reqLogger, "DynamoDB.Query", "index", r.indexName, "paginated", startKey != nil)

		result, queryErr := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(r.indexName),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if queryErr != nil {
			return nil, apperrors.ErrDatabaseError("failed to query recipes", queryErr)
		}

		for _, av := range result.Items {
			recipe, unmarshalErr := unmarshalRecipe(av)
			if unmarshalErr != nil {
				return nil, unmarshalErr
			}
			recipes = append(recipes, recipe)
			if limit > 0 && len(recipes) >= limit {
				return recipes, nil
			}
		}

		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	reqLogger.Debug("recipes queried", "count", len(recipes))

	return recipes, nil
}

// UpdateRecipe replaces every editable field of an existing recipe and returns the new state.
// An empty image removes the attribute rather than storing "".
func (r *RecipeRepository) UpdateRecipe(
	ctx context.Context,
	ownerID string,
	recipeID int64,
	fields *api.RecipeFields,
) (*api.Recipe, error) {
	ingredients := fields.Ingredients
	if ingredients == nil {
		ingredients = []api.Ingredient{}
	}

	update := expression.Set(expression.Name(attrIngredients), expression.Value(ingredients)).
		Set(expression.Name(attrInstructions), expression.Value(fields.Instructions)).
		Set(expression.Name(attrRecipeName), expression.Value(fields.RecipeName)).
		Set(expression.Name(attrSlug), expression.Value(fields.Slug)).
		Set(expression.Name(attrUpdatedAt), expression.Value(fields.UpdatedAt))
	if fields.Image == "" {
		update = update.Remove(expression.Name(attrImage))
	} else {
		update = update.Set(expression.Name(attrImage), expression.Value(fields.Image))
	}

	return r.updateExisting(ctx, ownerID, recipeID, update)
}

// UpdateRecipeImage sets only the image reference and the update timestamp.
func (r *RecipeRepository) UpdateRecipeImage(
	ctx context.Context,
	ownerID string,
	recipeID int64,
	imageURL, updatedAt string,
) (*api.Recipe, error) {
	update := expression.Set(expression.Name(attrImage), expression.Value(imageURL)).
		Set(expression.Name(attrUpdatedAt), expression.Value(updatedAt))

	return r.updateExisting(ctx, ownerID, recipeID, update)
}

func (r *RecipeRepository) updateExisting(
	ctx context.Context,
	ownerID string,
	recipeID int64,
	update expression.UpdateBuilder,
) (*api.Recipe, error) {
	reqLogger := logger.DeriveRequestLogger(ctx, r.logger)

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name(attrRecipeID))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build update expression: %w", err)
	}

	r.logCall(ctx, reqLogger, "DynamoDB.UpdateItem", "recipe_id", recipeID, "user_id", ownerID)

	result, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       recipeKey(ownerID, recipeID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if stderrors.As(err, &ccf) {
			return nil, apperrors.ErrRecipeNotFound(nil)
		}
		return nil, apperrors.ErrDatabaseError("failed to update recipe", err)
	}

	return unmarshalRecipe(result.Attributes)
}

// DeleteRecipe removes an existing recipe and returns the state it had before deletion.
func (r *RecipeRepository) DeleteRecipe(ctx context.Context, ownerID string, recipeID int64) (*api.Recipe, error) {
	reqLogger := logger.DeriveRequestLogger(ctx, r.logger)

	r.logCall(ctx, reqLogger, "DynamoDB.DeleteItem", "recipe_id", recipeID, "user_id", ownerID)

	result, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 recipeKey(ownerID, recipeID),
		ConditionExpression: aws.String("attribute_exists(recipeId)"),
		ReturnValues:        types.ReturnValueAllOld,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if stderrors.As(err, &ccf) {
			return nil, apperrors.ErrRecipeNotFound(nil)
		}
		return nil, apperrors.ErrDatabaseError("failed to delete recipe", err)
	}

	return unmarshalRecipe(result.Attributes)
}
