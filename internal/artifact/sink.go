// Package artifact persists generated integration files. A Sink receives
// relative paths and raw bytes; backends decide layout. Paths are
// validated before any backend sees them.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

// Sink defines operations for persisting generated artifacts.
type Sink interface {
	Write(ctx context.Context, rel string, data []byte) error
	Flush(ctx context.Context) error
}

var ErrUnsafePath = errors.New("unsafe artifact path")

// ValidatePath rejects paths that could escape the sink root: empty,
// absolute, volume-qualified, or containing a ".." element. Paths use
// "/" separators regardless of platform.
func ValidatePath(rel string) error {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return fmt.Errorf("%w: empty path", ErrUnsafePath)
	}
	if strings.HasPrefix(rel, "/") || strings.HasPrefix(rel, "\\") {
		return fmt.Errorf("%w: absolute path %q", ErrUnsafePath, rel)
	}
	if strings.Contains(rel, ":") {
		return fmt.Errorf("%w: volume-qualified path %q", ErrUnsafePath, rel)
	}
	clean := path.Clean(strings.ReplaceAll(rel, "\\", "/"))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: traversal in %q", ErrUnsafePath, rel)
	}
	return nil
}

// normalizeRel trims and slash-normalizes a validated relative path.
func normalizeRel(rel string) string {
	return path.Clean(strings.ReplaceAll(strings.TrimSpace(rel), "\\", "/"))
}

// ContentTypeFor maps generated artifact extensions to MIME types so
// object stores and the gateway serve them usefully.
func ContentTypeFor(rel string) string {
	switch strings.ToLower(path.Ext(rel)) {
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".js":
		return "text/javascript"
	case ".md":
		return "text/markdown"
	default:
		return "application/octet-stream"
	}
}
