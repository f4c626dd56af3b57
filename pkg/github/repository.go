package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	gh "github.com/google/go-github/v57/github"
)

// notFoundHint explains the dominant real-world cause of a 404 from the
// hooks API: listing hooks needs administrator access on the repository and
// a token carrying the admin:repo_hook scope.
const notFoundHint = "check that the token's user is a repository administrator and the token has the admin:repo_hook scope"

// RemoteError is a failed call to the hooks API.
type RemoteError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteError) Error() string {
	msg := fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Body)
	if e.StatusCode == http.StatusNotFound {
		msg = msg + " (" + notFoundHint + ")"
	}
	return msg
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Repository performs the hook operations for a single GitHub repository.
type Repository struct {
	client *gh.Client
	owner  string
	repo   string
	logger *log.Logger
}

// NewRepository binds a client to one owner/repo pair. A nil logger
// discards output.
func NewRepository(client *gh.Client, owner, repo string, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Repository{client: client, owner: owner, repo: repo, logger: logger}
}

// ListHooks fetches every hook registered on the repository, following
// pagination.
func (r *Repository) ListHooks(ctx context.Context) ([]*gh.Hook, error) {
	opts := &gh.ListOptions{PerPage: 100}
	var all []*gh.Hook
	for {
		hooks, resp, err := r.client.Repositories.ListHooks(ctx, r.owner, r.repo, opts)
		if err != nil {
			return nil, wrapRemote("list hooks", resp, err)
		}
		all = append(all, hooks...)
		if resp.NextPage == 0 {
			r.logger.Printf("listed %d hooks on %s/%s", len(all), r.owner, r.repo)
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

// CreateHook registers a new hook and returns it as reported by the API.
func (r *Repository) CreateHook(ctx context.Context, hook *gh.Hook) (*gh.Hook, error) {
	created, resp, err := r.client.Repositories.CreateHook(ctx, r.owner, r.repo, hook)
	if err != nil {
		return nil, wrapRemote("create hook", resp, err)
	}
	return created, nil
}

// EditHook patches an existing hook.
func (r *Repository) EditHook(ctx context.Context, id int64, hook *gh.Hook) (*gh.Hook, error) {
	updated, resp, err := r.client.Repositories.EditHook(ctx, r.owner, r.repo, id, hook)
	if err != nil {
		return nil, wrapRemote("update hook", resp, err)
	}
	return updated, nil
}

// DeleteHook removes a hook by id.
func (r *Repository) DeleteHook(ctx context.Context, id int64) error {
	resp, err := r.client.Repositories.DeleteHook(ctx, r.owner, r.repo, id)
	if err != nil {
		return wrapRemote("delete hook", resp, err)
	}
	return nil
}

func wrapRemote(op string, resp *gh.Response, err error) error {
	remote := &RemoteError{Op: op, Err: err}
	var ger *gh.ErrorResponse
	if errors.As(err, &ger) {
		if ger.Response != nil {
			remote.StatusCode = ger.Response.StatusCode
		}
		remote.Body = ger.Message
	} else if resp != nil {
		remote.StatusCode = resp.StatusCode
	}
	if remote.Body == "" {
		remote.Body = err.Error()
	}
	return remote
}
