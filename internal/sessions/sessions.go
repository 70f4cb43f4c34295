// Package sessions provides in-memory session management for open
// calculators and chat conversations.
//
// Each calculator session exclusively owns its Input/Result State and each
// conversation owns its Message history; nothing is shared across sessions.
// Nothing is persisted: state lives until the client closes the session or
// the janitor expires it after an idle period.
package sessions

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned for an unknown or expired session id.
	ErrNotFound = errors.New("session not found")
	// ErrBusy is returned when a conversation already has an assistant
	// call outstanding.
	ErrBusy = errors.New("conversation has a request in flight")
)

// Option configures a store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
