package qr

import (
	"context"
	"time"
)

// Store persists the issuance log. Append-only; nothing in the verify
// path reads it back.
type Store interface {
	Append(ctx context.Context, token IssuedToken) error
}

// UsageStore tracks token consumption for the optional single-use mode.
// MarkUsed must be atomic: the first caller wins, every later caller for
// the same token id gets used=true.
type UsageStore interface {
	MarkUsed(ctx context.Context, tokenID string, ttl time.Duration) (alreadyUsed bool, err error)
}
