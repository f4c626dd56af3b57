package main

import (
	"context"
	"encoding/json"
	"os"

	"hooksync/internal"
	"hooksync/pkg/resource"
)

func main() {
	logger := internal.NewLogger("out")

	env, err := internal.LoadBuildEnv(os.Getenv)
	if err != nil {
		logger.Fatalf("build environment: %v", err)
	}

	response, err := resource.Out(context.Background(), os.Stdin, env, logger)
	if err != nil {
		logger.Fatalf("%v", err)
	}

	if err := json.NewEncoder(os.Stdout).Encode(response); err != nil {
		logger.Fatalf("write response: %v", err)
	}
}
