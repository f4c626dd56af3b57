package main

import (
	"encoding/json"
	"os"

	"hooksync/internal"
	"hooksync/pkg/resource"
)

func main() {
	logger := internal.NewLogger("in")

	response, err := resource.In(os.Stdin)
	if err != nil {
		logger.Fatalf("%v", err)
	}

	if err := json.NewEncoder(os.Stdout).Encode(response); err != nil {
		logger.Fatalf("write response: %v", err)
	}
}
