package main

import (
	"encoding/json"
	"os"

	"hooksync/internal"
	"hooksync/pkg/resource"
)

func main() {
	logger := internal.NewLogger("check")

	response, err := resource.Check(os.Stdin)
	if err != nil {
		logger.Fatalf("%v", err)
	}

	if err := json.NewEncoder(os.Stdout).Encode(response); err != nil {
		logger.Fatalf("write response: %v", err)
	}
}
