package github

import (
	"context"
	"errors"
	"strings"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://api.github.com"

// NewTokenClient creates a GitHub SDK client authenticating every request
// with the given token. Any api endpoint other than the public one is
// treated as a GitHub Enterprise root.
func NewTokenClient(ctx context.Context, apiURL, token string) (*gh.Client, error) {
	if token == "" {
		return nil, errors.New("github token is required")
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, ts)

	baseURL := strings.TrimRight(apiURL, "/")
	if baseURL != "" && baseURL != defaultBaseURL {
		return gh.NewEnterpriseClient(baseURL, baseURL, httpClient)
	}
	return gh.NewClient(httpClient), nil
}
