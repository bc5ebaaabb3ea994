package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/app"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/logger"
	awsProvider "github.com/DeanGilewicz/serverless-recipes-BE/internal/providers/aws/app"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/testutil"
)

func bareRouter(opts Options) *Router {
	svc := app.NewService(nil, nil, nil, nil, testutil.SilentLogger())
	return &Router{svc: svc, opts: opts}
}

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		ctx    func(context.Context) context.Context
		opts   Options
		assert func(t *testing.T, id string)
	}{
		{
			name: "generates uuid",
			ctx:  func(ctx context.Context) context.Context { return ctx },
			assert: func(t *testing.T, id string) {
				assert.Len(t, id, 36)
			},
		},
		{
			name: "uses lambda request id",
			ctx: func(ctx context.Context) context.Context {
				return lambdacontext.NewContext(ctx, &lambdacontext.LambdaContext{AwsRequestID: "lambda-123"})
			},
			opts: Options{RequestIDExtractor: awsProvider.NewLambdaContextExtractor()},
			assert: func(t *testing.T, id string) {
				assert.Equal(t, "lambda-123", id)
			},
		},
		{
			name: "keeps existing id",
			ctx: func(ctx context.Context) context.Context {
				return logger.WithRequestID(ctx, "existing-456")
			},
			opts: Options{RequestIDExtractor: awsProvider.NewLambdaContextExtractor()},
			assert: func(t *testing.T, id string) {
				assert.Equal(t, "existing-456", id)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = logger.GetRequestID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
			req = req.WithContext(tt.ctx(req.Context()))
			rr := httptest.NewRecorder()

			bareRouter(tt.opts).requestIDMiddleware(next).ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			tt.assert(t, got)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	router := NewRouter(app.NewService(nil, nil, nil, nil, testutil.SilentLogger()), Options{
		AllowedOrigin: "https://recipes.example.com",
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/recipes", http.NoBody)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "https://recipes.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), constants.RefreshTokenHeader)
	})

	t.Run("error responses carry headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/recipes", http.NoBody)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "https://recipes.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "application/json", rr.Header().Get(constants.ContentTypeHeader))
	})
}

func TestOwnerMiddleware(t *testing.T) {
	var owner string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner = ownerFromContext(r)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("bearer ignored outside dev", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/recipes", http.NoBody)
		req.Header.Set(constants.AuthorizationHeader, constants.BearerPrefix+idToken("alice"))
		rr := httptest.NewRecorder()

		bareRouter(Options{}).ownerMiddleware(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("bearer decoded in dev", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/recipes", http.NoBody)
		req.Header.Set(constants.AuthorizationHeader, constants.BearerPrefix+idToken("alice"))
		rr := httptest.NewRecorder()

		bareRouter(Options{DecodeBearerClaims: true}).ownerMiddleware(next).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "alice", owner)
	})

	t.Run("malformed bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/recipes", http.NoBody)
		req.Header.Set(constants.AuthorizationHeader, constants.BearerPrefix+"not-a-jwt")
		rr := httptest.NewRecorder()

		bareRouter(Options{DecodeBearerClaims: true}).ownerMiddleware(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRequestTimeoutMiddleware(t *testing.T) {
	var deadline time.Time
	var ok bool
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		deadline, ok = r.Context().Deadline()
	})

	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	bareRouter(Options{}).requestTimeoutMiddleware(time.Minute)(next).ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestHandleHealth(t *testing.T) {
	router := NewRouter(app.NewService(nil, nil, nil, nil, testutil.SilentLogger()), Options{})
	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","version":"`+*constants.GetVersion()+`"}`, rr.Body.String())
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
