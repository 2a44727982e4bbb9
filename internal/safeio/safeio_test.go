package safeio

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func newRoot(t *testing.T) (string, *SafeFS) {
	t.Helper()
	dir := t.TempDir()
	fsys, err := NewSafeFS(dir)
	if err != nil {
		t.Fatalf("NewSafeFS: %v", err)
	}
	return dir, fsys
}

func TestSafeFSReadsRelativePath(t *testing.T) {
	dir, fsys := newRoot(t)
	sub := filepath.Join(dir, "slack")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "endpoints.js"), []byte("class SlackAPI {}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := fsys.SafeReadFile(filepath.Join("slack", "endpoints.js"))
	if err != nil {
		t.Fatalf("SafeReadFile: %v", err)
	}
	if string(data) != "class SlackAPI {}" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestSafeFSAllowsAbsoluteUnderRoot(t *testing.T) {
	dir, fsys := newRoot(t)
	p := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(p, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := fsys.SafeReadFile(p); err != nil {
		t.Fatalf("SafeReadFile absolute: %v", err)
	}
}

func TestSafeFSRejectsTraversal(t *testing.T) {
	_, fsys := newRoot(t)
	for _, p := range []string{"..", filepath.Join("..", "secret"), filepath.Join("a", "..", "..", "b")} {
		if _, err := fsys.SafeReadFile(p); err == nil {
			t.Fatalf("expected rejection for %q", p)
		}
	}
}

func TestSafeFSRejectsAbsoluteOutsideRoot(t *testing.T) {
	_, fsys := newRoot(t)
	outside := filepath.Join(t.TempDir(), "x.txt")
	if err := os.WriteFile(outside, []byte("no"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := fsys.SafeReadFile(outside); err == nil {
		t.Fatal("expected rejection for absolute path outside root")
	}
}

func TestSafeFSRejectsSymlinkEscape(t *testing.T) {
	dir, fsys := newRoot(t)
	outside := filepath.Join(t.TempDir(), "leak.txt")
	if err := os.WriteFile(outside, []byte("leak"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	link := filepath.Join(dir, "leak.txt")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlink not supported: %v", err)
	}
	if _, err := fsys.SafeReadFile("leak.txt"); err == nil {
		t.Fatal("expected rejection for symlink escaping root")
	}
}

func TestSafeFSReadDir(t *testing.T) {
	dir, fsys := newRoot(t)
	sub := filepath.Join(dir, "github")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"api-config.json", "README.md"} {
		if err := os.WriteFile(filepath.Join(sub, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	entries, err := fsys.SafeReadDir("github")
	if err != nil {
		t.Fatalf("SafeReadDir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if _, err := fsys.SafeReadDir(filepath.Join("github", "api-config.json")); err == nil {
		t.Fatal("expected error listing a regular file")
	}
}

func TestSafeFSOpenImplementsFS(t *testing.T) {
	dir, fsys := newRoot(t)
	if err := os.WriteFile(filepath.Join(dir, "run.json"), []byte(`{"ok":true}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := fsys.Open("run.json")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Fatalf("unexpected content: %q", data)
	}
	if _, err := fsys.Open("../run.json"); err == nil {
		t.Fatal("expected fs.ValidPath rejection")
	}
}

func TestNewSafeFSRejectsBadRoot(t *testing.T) {
	if _, err := NewSafeFS(""); err == nil {
		t.Fatal("expected error for empty root")
	}
	file := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewSafeFS(file); err == nil {
		t.Fatal("expected error for non-directory root")
	}
}
