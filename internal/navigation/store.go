package navigation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys of the per-visitor entries carried between screens.
const (
	KeyCheckout      = "checkout"
	KeyCheckoutState = "checkout_state"
	KeyResult        = "result"
)

var ErrNoVisitor = errors.New("navigation: visitor id is empty")

// Store holds transient, per-visitor screen context. Entries expire after the
// store's TTL and are never persisted beyond it.
type Store interface {
	Save(ctx context.Context, visitorID, key string, value []byte) error
	Load(ctx context.Context, visitorID, key string) ([]byte, bool, error)
	Discard(ctx context.Context, visitorID string, keys ...string) error
}

// Save encodes v and stores it under key for the visitor.
func Save[T any](ctx context.Context, s Store, visitorID, key string, v *T) error {
	if visitorID == "" {
		return ErrNoVisitor
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("navigation: encode %s: %w", key, err)
	}
	return s.Save(ctx, visitorID, key, b)
}

// Load returns the visitor's entry under key. ok is false when the entry is
// missing or expired.
func Load[T any](ctx context.Context, s Store, visitorID, key string) (v *T, ok bool, err error) {
	if visitorID == "" {
		return nil, false, nil
	}
	b, ok, err := s.Load(ctx, visitorID, key)
	if err != nil || !ok {
		return nil, false, err
	}
	v = new(T)
	if err := json.Unmarshal(b, v); err != nil {
		return nil, false, fmt.Errorf("navigation: decode %s: %w", key, err)
	}
	return v, true, nil
}
