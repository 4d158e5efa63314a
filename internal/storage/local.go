package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// Local serves keys from a static URL prefix, e.g. files uploaded to the
// backend's disk and exposed under /uploads.
type Local struct {
	URLPrefix string
}

func NewLocal(urlPrefix string) *Local {
	return &Local{URLPrefix: urlPrefix}
}

func (l *Local) URL(_ context.Context, key string) (string, error) {
	key = path.Clean("/" + strings.TrimSpace(key))
	if key == "/" {
		return "", fmt.Errorf("empty storage key")
	}
	return strings.TrimRight(l.URLPrefix, "/") + key, nil
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.URLPrefix) }
