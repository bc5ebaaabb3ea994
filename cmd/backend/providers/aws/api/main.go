// Package main is the API Gateway Lambda entrypoint of the recipes backend.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/app"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/config"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/logger"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/providers/aws/lambdaapi"
)

func main() {
	cfg := config.MustLoad()
	log := logger.Initialize(constants.Production, cfg.GetLogLevel())

	svc, err := app.Initialize(context.Background(), cfg, log)
	if err != nil {
		log.Error("failed to initialize service", "error", err)
		os.Exit(1)
	}

	log.Debug("starting lambda handler", "version", *constants.GetVersion())
	lambda.Start(lambdaapi.NewHandler(svc, cfg))
}
