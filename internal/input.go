package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Operations accepted in params.operation.
const (
	OperationCreate = "create"
	OperationDelete = "delete"
)

// DefaultEvents is the event list applied when a put supplies none.
var DefaultEvents = []string{"push"}

// Source is the resource-level configuration shared by every step.
type Source struct {
	ConcourseURL string `json:"concourse_url,omitempty"`
	GithubAPI    string `json:"github_api"`
	GithubToken  string `json:"github_token"`
}

// Params configures a single put step.
type Params struct {
	Org          string       `json:"org"`
	Repo         string       `json:"repo"`
	Operation    string       `json:"operation"`
	Pipeline     string       `json:"pipeline,omitempty"`
	ResourceName string       `json:"resource_name"`
	WebhookToken string       `json:"webhook_token"`
	Events       []string     `json:"events,omitempty"`
	InstanceVars InstanceVars `json:"pipeline_instance_vars,omitempty"`
}

// OutRequest is the document Concourse writes to the out binary's stdin.
type OutRequest struct {
	Source Source `json:"source"`
	Params Params `json:"params"`
}

// InstanceVar is a single pipeline instance variable.
type InstanceVar struct {
	Key   string
	Value string
}

// InstanceVars preserves the document order of a JSON object, which plain
// map decoding would lose. Order matters because the variables become query
// fragments of the callback URL.
type InstanceVars []InstanceVar

func (v *InstanceVars) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("instance vars must be a JSON object")
	}
	out := InstanceVars{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("instance var %q: %w", key, err)
		}
		out = append(out, InstanceVar{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*v = out
	return nil
}

// ParseOutRequest decodes and validates the put input document.
func ParseOutRequest(r io.Reader) (OutRequest, error) {
	var req OutRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return req, fmt.Errorf("parse input: %w", err)
	}
	if err := req.validate(); err != nil {
		return req, err
	}
	return req, nil
}

func (r OutRequest) validate() error {
	if r.Source.GithubAPI == "" {
		return errors.New("source.github_api is required")
	}
	if r.Source.GithubToken == "" {
		return errors.New("source.github_token is required")
	}
	if r.Params.Org == "" {
		return errors.New("params.org is required")
	}
	if r.Params.Repo == "" {
		return errors.New("params.repo is required")
	}
	if r.Params.ResourceName == "" {
		return errors.New("params.resource_name is required")
	}
	if r.Params.WebhookToken == "" {
		return errors.New("params.webhook_token is required")
	}
	switch r.Params.Operation {
	case OperationCreate, OperationDelete:
		return nil
	default:
		return fmt.Errorf("params.operation must be %q or %q, got %q",
			OperationCreate, OperationDelete, r.Params.Operation)
	}
}

// DesiredEvents returns the de-duplicated event set for the hook, applying
// the default when the put supplies none. The parsed params are left
// untouched; first-occurrence order is preserved.
func (p Params) DesiredEvents() []string {
	if len(p.Events) == 0 {
		return append([]string(nil), DefaultEvents...)
	}
	seen := make(map[string]struct{}, len(p.Events))
	out := make([]string, 0, len(p.Events))
	for _, event := range p.Events {
		if _, ok := seen[event]; ok {
			continue
		}
		seen[event] = struct{}{}
		out = append(out, event)
	}
	return out
}
