package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/saulo-duarte/ascend-lambda/internal/container"
)

func main() {
	c := container.New()
	adapter := httpadapter.NewV2(c.Router())

	lambda.Start(adapter.ProxyWithContext)
}
