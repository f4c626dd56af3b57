package internal

import (
	"strings"
	"testing"
)

const validInput = `{
	"source": {
		"github_api": "https://api.github.com",
		"github_token": "secret"
	},
	"params": {
		"org": "acme",
		"repo": "widgets",
		"operation": "create",
		"resource_name": "repo-src",
		"webhook_token": "tok"
	}
}`

// TestParseOutRequest tests that a well-formed document parses and validates.
func TestParseOutRequest(t *testing.T) {
	req, err := ParseOutRequest(strings.NewReader(validInput))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.Source.GithubAPI != "https://api.github.com" {
		t.Fatalf("unexpected github_api %q", req.Source.GithubAPI)
	}
	if req.Params.Operation != OperationCreate {
		t.Fatalf("unexpected operation %q", req.Params.Operation)
	}
}

// TestParseOutRequestMissingFields tests that each required field is enforced.
func TestParseOutRequestMissingFields(t *testing.T) {
	cases := map[string]string{
		"github_api":    `{"source":{"github_token":"t"},"params":{"org":"o","repo":"r","operation":"create","resource_name":"n","webhook_token":"w"}}`,
		"github_token":  `{"source":{"github_api":"a"},"params":{"org":"o","repo":"r","operation":"create","resource_name":"n","webhook_token":"w"}}`,
		"org":           `{"source":{"github_api":"a","github_token":"t"},"params":{"repo":"r","operation":"create","resource_name":"n","webhook_token":"w"}}`,
		"repo":          `{"source":{"github_api":"a","github_token":"t"},"params":{"org":"o","operation":"create","resource_name":"n","webhook_token":"w"}}`,
		"resource_name": `{"source":{"github_api":"a","github_token":"t"},"params":{"org":"o","repo":"r","operation":"create","webhook_token":"w"}}`,
		"webhook_token": `{"source":{"github_api":"a","github_token":"t"},"params":{"org":"o","repo":"r","operation":"create","resource_name":"n"}}`,
		"operation":     `{"source":{"github_api":"a","github_token":"t"},"params":{"org":"o","repo":"r","resource_name":"n","webhook_token":"w"}}`,
	}
	for field, doc := range cases {
		if _, err := ParseOutRequest(strings.NewReader(doc)); err == nil {
			t.Fatalf("expected error for missing %s", field)
		}
	}
}

// TestParseOutRequestBadOperation tests that unknown operations are rejected.
func TestParseOutRequestBadOperation(t *testing.T) {
	doc := `{"source":{"github_api":"a","github_token":"t"},"params":{"org":"o","repo":"r","operation":"upsert","resource_name":"n","webhook_token":"w"}}`
	if _, err := ParseOutRequest(strings.NewReader(doc)); err == nil {
		t.Fatalf("expected error for operation upsert")
	}
}

// TestDesiredEventsDefault tests that the push default applies only when no
// events are supplied.
func TestDesiredEventsDefault(t *testing.T) {
	events := Params{}.DesiredEvents()
	if len(events) != 1 || events[0] != "push" {
		t.Fatalf("expected default [push], got %v", events)
	}

	events = Params{Events: []string{"pull_request"}}.DesiredEvents()
	if len(events) != 1 || events[0] != "pull_request" {
		t.Fatalf("expected [pull_request], got %v", events)
	}
}

// TestDesiredEventsDeduplicates tests set semantics with first-occurrence
// order preserved, without mutating the params.
func TestDesiredEventsDeduplicates(t *testing.T) {
	params := Params{Events: []string{"push", "pull_request", "push", "push"}}
	events := params.DesiredEvents()
	if len(events) != 2 || events[0] != "push" || events[1] != "pull_request" {
		t.Fatalf("expected [push pull_request], got %v", events)
	}
	if len(params.Events) != 4 {
		t.Fatalf("params were mutated: %v", params.Events)
	}
}

// TestInstanceVarsOrder tests that document order survives decoding.
func TestInstanceVarsOrder(t *testing.T) {
	doc := `{"source":{"github_api":"a","github_token":"t"},"params":{"org":"o","repo":"r","operation":"create","resource_name":"n","webhook_token":"w","pipeline_instance_vars":{"env":"prod","region":"eu","zone":"a"}}}`
	req, err := ParseOutRequest(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	vars := req.Params.InstanceVars
	if len(vars) != 3 {
		t.Fatalf("expected 3 vars, got %d", len(vars))
	}
	want := []InstanceVar{{"env", "prod"}, {"region", "eu"}, {"zone", "a"}}
	for i, v := range vars {
		if v != want[i] {
			t.Fatalf("var %d: expected %v, got %v", i, want[i], v)
		}
	}
}

// TestInstanceVarsNotObject tests that a non-object value is rejected.
func TestInstanceVarsNotObject(t *testing.T) {
	var vars InstanceVars
	if err := vars.UnmarshalJSON([]byte(`["env"]`)); err == nil {
		t.Fatalf("expected error for non-object instance vars")
	}
}
