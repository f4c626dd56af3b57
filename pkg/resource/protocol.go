// Package resource implements the Concourse resource protocol around the
// webhook reconciliation engine. The out step does the real work; check and
// in only keep the protocol contract, since hook state never produces new
// versions on its own.
package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"hooksync/internal"
)

// Version identifies a hook after reconciliation.
type Version struct {
	ID string `json:"id"`
}

// MetadataField is a name/value pair shown in the Concourse UI.
type MetadataField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CheckRequest is the document written to the check binary's stdin.
type CheckRequest struct {
	Source  internal.Source `json:"source"`
	Version *Version        `json:"version,omitempty"`
}

// CheckResponse lists the versions check reports.
type CheckResponse []Version

// InRequest is the document written to the in binary's stdin.
type InRequest struct {
	Source  internal.Source `json:"source"`
	Version Version         `json:"version"`
}

// InResponse echoes the fetched version.
type InResponse struct {
	Version  Version         `json:"version"`
	Metadata []MetadataField `json:"metadata"`
}

// OutResponse carries the reconciled hook identity.
type OutResponse struct {
	Version  Version         `json:"version"`
	Metadata []MetadataField `json:"metadata,omitempty"`
}

// Check echoes the version Concourse already knows, or nothing on the first
// run.
func Check(input io.Reader) (CheckResponse, error) {
	var req CheckRequest
	if err := json.NewDecoder(input).Decode(&req); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	if req.Version == nil || req.Version.ID == "" {
		return CheckResponse{}, nil
	}
	return CheckResponse{*req.Version}, nil
}

// In re-emits the requested version; there is nothing to fetch.
func In(input io.Reader) (InResponse, error) {
	var req InRequest
	if err := json.NewDecoder(input).Decode(&req); err != nil {
		return InResponse{}, fmt.Errorf("parse input: %w", err)
	}
	if req.Version.ID == "" {
		return InResponse{}, errors.New("version.id is required")
	}
	return InResponse{Version: req.Version, Metadata: []MetadataField{}}, nil
}
