package reconcile

import (
	gh "github.com/google/go-github/v57/github"
)

// HookConfig is the comparison key identifying a webhook: where it delivers
// and how. Keys GitHub reports on an existing hook beyond these two
// (insecure_ssl, secret, ...) never participate in matching.
type HookConfig struct {
	URL         string
	ContentType string
}

// Map renders the config in the shape the hooks API expects.
func (c HookConfig) Map() map[string]interface{} {
	return map[string]interface{}{
		"url":          c.URL,
		"content_type": c.ContentType,
	}
}

// ContainedIn reports whether every desired key is present in the hook's
// config with an equal value. Subset containment, not full equality: the
// remote side is free to carry extra keys.
func (c HookConfig) ContainedIn(hook *gh.Hook) bool {
	for key, want := range c.Map() {
		got, ok := hook.Config[key]
		if !ok || got != want {
			return false
		}
	}
	return true
}

// FindMatch returns the first hook whose config contains the desired config,
// or nil. A missing match is a normal outcome, not an error; the engine
// branches on it.
func FindMatch(hooks []*gh.Hook, desired HookConfig) *gh.Hook {
	for _, hook := range hooks {
		if hook != nil && desired.ContainedIn(hook) {
			return hook
		}
	}
	return nil
}
