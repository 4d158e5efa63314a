// Package storage resolves product image references to URLs a browser can
// load. The backend stores either absolute URLs or bare object keys; keys
// are resolved by the configured driver.
package storage

import (
	"context"
	"strings"
)

type Resolver interface {
	URL(ctx context.Context, key string) (string, error)
}

// IsAbsolute reports whether ref already is a loadable URL.
func IsAbsolute(ref string) bool {
	for _, p := range []string{"http://", "https://", "//", "data:"} {
		if strings.HasPrefix(ref, p) {
			return true
		}
	}
	return false
}

// Resolve returns ref unchanged when it is empty or absolute, and the
// driver URL otherwise.
func Resolve(ctx context.Context, r Resolver, ref string) (string, error) {
	if ref == "" || IsAbsolute(ref) || r == nil {
		return ref, nil
	}
	return r.URL(ctx, ref)
}

// Passthrough leaves keys as they are.
type Passthrough struct{}

func (Passthrough) URL(_ context.Context, key string) (string, error) { return key, nil }

func (Passthrough) String() string { return "none" }
