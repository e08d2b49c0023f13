// Package domain contains the core business entities and interfaces.
package domain

import "context"

// SessionRegistry is the port for sessions: the mapping from a client
// address to its currently valid token. It holds at most one token per
// address.
type SessionRegistry interface {
	// Put stores token for address, replacing any previous token.
	Put(ctx context.Context, address, token string) error
	// Token returns the token stored for address and whether one exists.
	Token(ctx context.Context, address string) (string, bool, error)
	// Count returns the number of addresses holding a session.
	Count(ctx context.Context) (int, error)
}
