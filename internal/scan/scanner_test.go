package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.txt"))
	touch(t, filepath.Join(root, "nested", "B.TXT"))
	touch(t, filepath.Join(root, "nested", "photo.jpg"))
	touch(t, filepath.Join(root, ".cache", "c.txt"))
	single := filepath.Join(t.TempDir(), "export.log")
	touch(t, single)

	files, err := Resolve(root, single)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	var got []string
	for _, f := range files {
		got = append(got, f.Path)
	}
	want := []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "nested", "B.TXT"),
		single,
	}
	if len(got) != len(want) {
		t.Fatalf("Resolve = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Resolve[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if files[0].Size != 1 {
		t.Errorf("size = %d", files[0].Size)
	}
}

func TestResolveMissing(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing path")
	}
}
