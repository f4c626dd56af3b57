package reconcile

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	gh "github.com/google/go-github/v57/github"
)

// HookRepository is the slice of the hooks API the engine needs. The owner
// and repository are bound at construction time; pkg/github provides the
// real implementation and tests stub it.
type HookRepository interface {
	ListHooks(ctx context.Context) ([]*gh.Hook, error)
	CreateHook(ctx context.Context, hook *gh.Hook) (*gh.Hook, error)
	EditHook(ctx context.Context, id int64, hook *gh.Hook) (*gh.Hook, error)
	DeleteHook(ctx context.Context, id int64) error
}

// Engine decides and applies reconciliation actions.
type Engine struct {
	logger *log.Logger
	now    func() time.Time
}

// NewEngine creates an engine. A nil logger discards output.
func NewEngine(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Engine{logger: logger, now: time.Now}
}

// Decide picks the single action that brings the registered hooks in line
// with the desired state.
//
// A create intent against a matching hook only patches when the event sets
// differ; event comparison is order-independent. A delete intent against a
// missing hook succeeds with a synthesized timestamp identity, keeping
// deletes idempotent.
func (e *Engine) Decide(op Op, desired Desired, hooks []*gh.Hook) (Action, error) {
	match := FindMatch(hooks, desired.Config)
	switch op {
	case OpCreate:
		if match == nil {
			return Action{Kind: KindCreate, Desired: desired}, nil
		}
		if !sameEventSet(match.Events, desired.Events) {
			return Action{Kind: KindUpdate, Desired: desired, HookID: match.GetID()}, nil
		}
		return Action{Kind: KindNoOp, Desired: desired, HookID: match.GetID()}, nil
	case OpDelete:
		if match == nil {
			id := strconv.FormatInt(e.now().UnixMilli(), 10)
			return Action{Kind: KindAlreadyAbsent, Desired: desired, SyntheticID: id}, nil
		}
		return Action{Kind: KindDelete, Desired: desired, HookID: match.GetID()}, nil
	default:
		return Action{}, fmt.Errorf("unknown operation %q", op)
	}
}

// Apply executes the action against the repository, issuing at most one
// write, and returns the resulting hook identity.
func (e *Engine) Apply(ctx context.Context, repo HookRepository, action Action) (Result, error) {
	switch action.Kind {
	case KindCreate:
		created, err := repo.CreateHook(ctx, action.Desired.hookBody())
		if err != nil {
			return Result{}, err
		}
		e.logger.Printf("created hook %d", created.GetID())
		return Result{ID: formatID(created.GetID())}, nil
	case KindUpdate:
		updated, err := repo.EditHook(ctx, action.HookID, action.Desired.hookBody())
		if err != nil {
			return Result{}, err
		}
		e.logger.Printf("updated hook %d events to %v", updated.GetID(), action.Desired.Events)
		return Result{ID: formatID(updated.GetID())}, nil
	case KindNoOp:
		e.logger.Printf("hook %d already up to date", action.HookID)
		return Result{ID: formatID(action.HookID)}, nil
	case KindDelete:
		if err := repo.DeleteHook(ctx, action.HookID); err != nil {
			return Result{}, err
		}
		e.logger.Printf("deleted hook %d", action.HookID)
		return Result{ID: formatID(action.HookID)}, nil
	case KindAlreadyAbsent:
		e.logger.Printf("hook already absent, nothing to delete")
		return Result{ID: action.SyntheticID}, nil
	default:
		return Result{}, fmt.Errorf("unknown action kind %d", action.Kind)
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func sameEventSet(a, b []string) bool {
	as := make(map[string]struct{}, len(a))
	for _, event := range a {
		as[event] = struct{}{}
	}
	bs := make(map[string]struct{}, len(b))
	for _, event := range b {
		bs[event] = struct{}{}
	}
	if len(as) != len(bs) {
		return false
	}
	for event := range as {
		if _, ok := bs[event]; !ok {
			return false
		}
	}
	return true
}
