// Package lambdaapi provides the Lambda handler for the API Gateway REST API, adapting the chi
// router through algnhsa.
package lambdaapi

import (
	"github.com/akrylysov/algnhsa"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/app"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/config"
	awsProvider "github.com/DeanGilewicz/serverless-recipes-BE/internal/providers/aws/app"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/server"
)

// NewHandler creates a new Lambda handler with the given service.
// Owner identity on protected routes is taken from the Cognito authorizer claims of the proxy
// event, never from the bearer token.
func NewHandler(svc *app.Service, cfg *config.Config) lambda.Handler {
	router := server.NewRouter(svc, server.Options{
		RequestTimeout:     cfg.RequestTimeout,
		AllowedOrigin:      cfg.AllowedOrigin,
		RequestIDExtractor: awsProvider.NewLambdaContextExtractor(),
	})
	return algnhsa.New(router.Handler(), &algnhsa.Options{
		RequestType: algnhsa.RequestTypeAPIGatewayV1,
	})
}
