package lambdaapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/api"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/app"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/config"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/providers/aws/cognito"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/providers/aws/database/dynamodb"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/testutil"
)

type noImages struct{}

func (noImages) Upload(context.Context, string, int64, string, string, []byte) (string, error) {
	return "", nil
}

func newTestService(t *testing.T) *app.Service {
	t.Helper()
	log := testutil.SilentLogger()
	client := dynamodb.NewMockDynamoDBClient()
	client.CreateTable("recipes", "recipeId", "userId")
	client.CreateIndex("recipes", constants.DefaultRecipesIndex, "userId", "recipeId")
	client.CreateTable("counters", "id", "")
	counter := dynamodb.NewCounterRepository(client, "counters", log)
	require.NoError(t, counter.Seed(context.Background(), 41))

	return app.NewService(
		dynamodb.NewRecipeRepository(client, "recipes", constants.DefaultRecipesIndex, log),
		counter,
		cognito.NewGateway(cognito.NewMockClient(), "client-id", "", log),
		noImages{},
		log,
	)
}

func invoke(t *testing.T, svc *app.Service, event events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	t.Helper()
	handler := NewHandler(svc, &config.Config{AllowedOrigin: "https://recipes.example.com"})

	// API Gateway always stamps the account; algnhsa uses it to recognise the event type.
	event.RequestContext.AccountID = "123456789012"
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "req-1"})
	out, err := handler.Invoke(ctx, payload)
	require.NoError(t, err)

	var resp events.APIGatewayProxyResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	return resp
}

// header reads a response header whether the adapter filled the single or multi value map.
func header(resp events.APIGatewayProxyResponse, name string) string {
	if v, ok := resp.Headers[name]; ok {
		return v
	}
	if v := resp.MultiValueHeaders[name]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func TestNewHandler_Health(t *testing.T) {
	resp := invoke(t, newTestService(t), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/health",
		Resource:   "/health",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Body, `"status":"ok"`)
}

func TestNewHandler_AuthorizerClaims(t *testing.T) {
	svc := newTestService(t)

	t.Run("owner from authorizer", func(t *testing.T) {
		resp := invoke(t, svc, events.APIGatewayProxyRequest{
			HTTPMethod: http.MethodPost,
			Path:       "/recipes",
			Resource:   "/recipes",
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"recipeName":"Mom's Chili!","ingredients":[{"name":"beef","amount":"1 lb"}],"instructions":"Brown & simmer"}`,
			RequestContext: events.APIGatewayProxyRequestContext{
				HTTPMethod: http.MethodPost,
				Authorizer: map[string]any{
					"claims": map[string]any{"cognito:username": "alice"},
				},
			},
		})

		require.Equal(t, http.StatusCreated, resp.StatusCode, resp.Body)
		var recipe api.Recipe
		require.NoError(t, json.Unmarshal([]byte(resp.Body), &recipe))
		assert.Equal(t, int64(42), recipe.RecipeID)
		assert.Equal(t, "alice", recipe.UserID)
		assert.Equal(t, "moms-chili", recipe.Slug)
		assert.Equal(t, "https://recipes.example.com", header(resp, "Access-Control-Allow-Origin"))
	})

	t.Run("bearer token alone is not trusted", func(t *testing.T) {
		resp := invoke(t, svc, events.APIGatewayProxyRequest{
			HTTPMethod: http.MethodGet,
			Path:       "/recipes",
			Resource:   "/recipes",
			Headers: map[string]string{
				constants.AuthorizationHeader: constants.BearerPrefix + testutil.AccessToken("alice", time.Now().Add(time.Hour)),
			},
		})

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
