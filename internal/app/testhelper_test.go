package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/providers/aws/cognito"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/providers/aws/database/dynamodb"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/testutil"
)

const (
	testRecipesTable  = "recipes"
	testCountersTable = "counters"
)

type fakeImageStore struct {
	uploads int
	url     string
	err     error
}

func (f *fakeImageStore) Upload(_ context.Context, ownerID string, recipeID int64, _, ext string, _ []byte) (string, error) {
	f.uploads++
	if f.err != nil {
		return "", f.err
	}
	if f.url != "" {
		return f.url, nil
	}
	return "https://images.example.com/" + ownerID + "/" + ext, nil
}

type testEnv struct {
	svc     *Service
	dynamo  *dynamodb.MockDynamoDBClient
	cognito *cognito.MockClient
	images  *fakeImageStore
	counter *dynamodb.CounterRepository
}

// newTestEnv wires a Service to in-memory tables seeded with counter start.
func newTestEnv(t *testing.T, start int64) *testEnv {
	t.Helper()

	log := testutil.SilentLogger()
	client := dynamodb.NewMockDynamoDBClient()
	client.CreateTable(testRecipesTable, "recipeId", "userId")
	client.CreateIndex(testRecipesTable, constants.DefaultRecipesIndex, "userId", "recipeId")
	client.CreateTable(testCountersTable, "id", "")

	counter := dynamodb.NewCounterRepository(client, testCountersTable, log)
	require.NoError(t, counter.Seed(context.Background(), start))

	cognitoClient := cognito.NewMockClient()
	images := &fakeImageStore{}

	svc := NewService(
		dynamodb.NewRecipeRepository(client, testRecipesTable, constants.DefaultRecipesIndex, log),
		counter,
		cognito.NewGateway(cognitoClient, "client-id", "", log),
		images,
		log,
	)
	svc.now = func() time.Time { return time.UnixMilli(1700000000123) }

	return &testEnv{svc: svc, dynamo: client, cognito: cognitoClient, images: images, counter: counter}
}
