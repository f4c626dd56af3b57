package resource

import (
	"context"
	"io"
	"log"
	"strings"

	"hooksync/internal"
	"hooksync/pkg/concourse"
	"hooksync/pkg/github"
	"hooksync/pkg/reconcile"
)

// Out runs one reconciliation end to end: validate the input document,
// compose the callback URL, fetch the registered hooks, decide and apply a
// single action, and return the response to print on stdout.
func Out(ctx context.Context, input io.Reader, env internal.BuildEnv, logger *log.Logger) (OutResponse, error) {
	req, err := internal.ParseOutRequest(input)
	if err != nil {
		return OutResponse{}, err
	}

	callbackURL, err := concourse.Compose(req.Source, req.Params, env)
	if err != nil {
		return OutResponse{}, err
	}

	client, err := github.NewTokenClient(ctx, req.Source.GithubAPI, req.Source.GithubToken)
	if err != nil {
		return OutResponse{}, err
	}
	repo := github.NewRepository(client, req.Params.Org, req.Params.Repo, logger)

	return Reconcile(ctx, repo, req.Params, callbackURL, logger)
}

// Reconcile drives the engine against a hook repository. Split from Out so
// tests can supply a stub repository.
func Reconcile(ctx context.Context, repo reconcile.HookRepository, params internal.Params, callbackURL string, logger *log.Logger) (OutResponse, error) {
	desired := reconcile.Desired{
		Config: reconcile.HookConfig{URL: callbackURL, ContentType: "json"},
		Events: params.DesiredEvents(),
	}

	hooks, err := repo.ListHooks(ctx)
	if err != nil {
		return OutResponse{}, err
	}

	engine := reconcile.NewEngine(logger)
	action, err := engine.Decide(reconcile.Op(params.Operation), desired, hooks)
	if err != nil {
		return OutResponse{}, err
	}
	result, err := engine.Apply(ctx, repo, action)
	if err != nil {
		return OutResponse{}, err
	}

	return OutResponse{
		Version: Version{ID: result.ID},
		Metadata: []MetadataField{
			{Name: "action", Value: action.Kind.String()},
			{Name: "url", Value: callbackURL},
			{Name: "events", Value: strings.Join(desired.Events, ",")},
		},
	}, nil
}
