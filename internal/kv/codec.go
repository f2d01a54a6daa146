package kv

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON decodes the value under key into dst. It reports false, leaving dst
// untouched, when the key is absent.
func GetJSON(ctx context.Context, s Store, key string, dst any) (bool, error) {
	b, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("%w: decode %s: %v", ErrSerialization, key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrSerialization, key, err)
	}
	return s.Set(ctx, key, b)
}
