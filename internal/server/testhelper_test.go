package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/app"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/providers/aws/cognito"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/providers/aws/database/dynamodb"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/testutil"
)

type fakeImageStore struct {
	uploads int
}

func (f *fakeImageStore) Upload(_ context.Context, ownerID string, _ int64, _, ext string, _ []byte) (string, error) {
	f.uploads++
	return "https://images.example.com/" + ownerID + "." + ext, nil
}

type testServer struct {
	router  *Router
	cognito *cognito.MockClient
	images  *fakeImageStore
}

// newTestServer builds a router over in-memory tables with the counter seeded at start.
// Bearer ID tokens are decoded for the owner, as on the local dev server.
func newTestServer(t *testing.T, start int64) *testServer {
	t.Helper()

	log := testutil.SilentLogger()
	client := dynamodb.NewMockDynamoDBClient()
	client.CreateTable("recipes", "recipeId", "userId")
	client.CreateIndex("recipes", constants.DefaultRecipesIndex, "userId", "recipeId")
	client.CreateTable("counters", "id", "")

	counter := dynamodb.NewCounterRepository(client, "counters", log)
	require.NoError(t, counter.Seed(context.Background(), start))

	cognitoClient := cognito.NewMockClient()
	images := &fakeImageStore{}
	svc := app.NewService(
		dynamodb.NewRecipeRepository(client, "recipes", constants.DefaultRecipesIndex, log),
		counter,
		cognito.NewGateway(cognitoClient, "client-id", "", log),
		images,
		log,
	)

	router := NewRouter(svc, Options{
		AllowedOrigin:      "https://recipes.example.com",
		DecodeBearerClaims: true,
	})
	return &testServer{router: router, cognito: cognitoClient, images: images}
}

func idToken(owner string) string {
	return testutil.Token(jwt.MapClaims{
		"cognito:username": owner,
		"exp":              time.Now().Add(time.Hour).Unix(),
	})
}

// do sends a request through the full router. An empty owner sends no Authorization header.
func (s *testServer) do(t *testing.T, method, path, owner string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	if body == nil {
		body = http.NoBody
	}
	req := httptest.NewRequest(method, path, body)
	if owner != "" {
		req.Header.Set(constants.AuthorizationHeader, constants.BearerPrefix+idToken(owner))
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}
