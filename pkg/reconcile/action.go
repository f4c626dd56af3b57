package reconcile

import (
	gh "github.com/google/go-github/v57/github"
)

// Op is the reconciliation intent carried by params.operation.
type Op string

const (
	OpCreate Op = "create"
	OpDelete Op = "delete"
)

// Desired describes the webhook the put step wants to exist (or not).
type Desired struct {
	Config HookConfig
	Events []string
}

// hookBody renders the desired hook in the shape the create and edit
// endpoints take.
func (d Desired) hookBody() *gh.Hook {
	return &gh.Hook{
		Name:   gh.String("web"),
		Active: gh.Bool(true),
		Config: d.Config.Map(),
		Events: d.Events,
	}
}

// Kind enumerates the concrete actions the engine can pick.
type Kind int

const (
	// KindCreate registers a new hook.
	KindCreate Kind = iota
	// KindUpdate patches an existing hook whose event set drifted.
	KindUpdate
	// KindNoOp leaves an already-matching hook untouched.
	KindNoOp
	// KindDelete removes the matched hook.
	KindDelete
	// KindAlreadyAbsent records a delete of a hook that does not exist.
	KindAlreadyAbsent
)

func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "create"
	case KindUpdate:
		return "update"
	case KindNoOp:
		return "noop"
	case KindDelete:
		return "delete"
	case KindAlreadyAbsent:
		return "already-absent"
	default:
		return "unknown"
	}
}

// Action is the engine's decision: what to do, and to which hook.
type Action struct {
	Kind    Kind
	Desired Desired
	// HookID is set for Update, NoOp and Delete.
	HookID int64
	// SyntheticID is set for AlreadyAbsent, where no remote hook exists to
	// lend the run an identity.
	SyntheticID string
}

// Result identifies the hook after the operation. It is the sole externally
// observable artifact of a reconciliation.
type Result struct {
	ID string `json:"id"`
}
