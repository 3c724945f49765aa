package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLocalList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b_rule.yaml", "id: R2\nname: second\n")
	writeFile(t, dir, "a_rule.yaml", "id: R1\nname: first\n")
	writeFile(t, dir, "multi.yaml", "id: M1\n---\nid: M2\n")
	writeFile(t, dir, "parser.yaml", "ParserName: vimDnsContoso\nParserQuery: q\n")
	writeFile(t, dir, "nested/hunt.yml", "id: H1\n")
	writeFile(t, dir, "connector.json", `{"id": "C1", "title": "Conn"}`)
	writeFile(t, dir, "readme.md", "not content")
	writeFile(t, dir, "anonymous.yaml", "query: q\n")

	entries, err := NewLocal().List(context.Background(), dir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	wantIDs := []string{"R1", "anonymous", "R2", "C1", "M1", "M2", "H1", "vimDnsContoso"}
	if len(entries) != len(wantIDs) {
		t.Fatalf("List() returned %d entries, want %d", len(entries), len(wantIDs))
	}
	for i, want := range wantIDs {
		if entries[i].ID != want {
			t.Errorf("List() entry[%d].ID = %q, want %q", i, entries[i].ID, want)
		}
	}
}

func TestLocalListSkipsBroken(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.yaml", "id: OK\n")
	writeFile(t, dir, "broken.yaml", "id: [unclosed\n")
	writeFile(t, dir, "empty.yaml", "")

	entries, err := NewLocal().List(context.Background(), dir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "OK" {
		t.Errorf("List() = %v, want only the good document", entries)
	}
}

func TestLocalListMissingDir(t *testing.T) {
	_, err := NewLocal().List(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("List() on missing directory should fail")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("List() error = %v, want fs.ErrNotExist in chain", err)
	}
}

func TestLocalListNotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "file.yaml", "id: X\n")
	if _, err := NewLocal().List(context.Background(), filepath.Join(dir, "file.yaml")); err == nil {
		t.Fatal("List() on a file should fail")
	}
}
