package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirSink writes artifacts under a local directory root.
type DirSink struct {
	root string
}

func NewDirSink(root string) (*DirSink, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("artifact root is required")
	}
	return &DirSink{root: root}, nil
}

// Root returns the directory all writes are placed under.
func (s *DirSink) Root() string {
	if s == nil {
		return ""
	}
	return s.root
}

func (s *DirSink) Write(_ context.Context, rel string, data []byte) error {
	if s == nil {
		return fmt.Errorf("sink is nil")
	}
	if err := ValidatePath(rel); err != nil {
		return err
	}
	dst := filepath.Join(s.root, filepath.FromSlash(normalizeRel(rel)))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	if data == nil {
		data = []byte{}
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", rel, err)
	}
	return nil
}

func (s *DirSink) Flush(context.Context) error { return nil }
