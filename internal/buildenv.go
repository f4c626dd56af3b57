package internal

import (
	"encoding/json"
	"fmt"
)

// BuildEnv carries the Concourse build metadata the resource needs. It is
// read once at process start so the URL composer stays a pure function of
// its inputs.
type BuildEnv struct {
	TeamName     string
	PipelineName string
	ExternalURL  string
	InstanceVars InstanceVars
}

// LoadBuildEnv reads the build metadata through lookup (os.Getenv in the
// binaries). A malformed BUILD_PIPELINE_INSTANCE_VARS value is fatal; it is
// surfaced here, before any remote call is attempted.
func LoadBuildEnv(lookup func(string) string) (BuildEnv, error) {
	env := BuildEnv{
		TeamName:     lookup("BUILD_TEAM_NAME"),
		PipelineName: lookup("BUILD_PIPELINE_NAME"),
		ExternalURL:  lookup("ATC_EXTERNAL_URL"),
	}
	if raw := lookup("BUILD_PIPELINE_INSTANCE_VARS"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &env.InstanceVars); err != nil {
			return env, fmt.Errorf("parse BUILD_PIPELINE_INSTANCE_VARS: %w", err)
		}
	}
	return env, nil
}
