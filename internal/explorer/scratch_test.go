package explorer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScratch_Lifecycle(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	s := NewScratch(dir, 1234)

	if filepath.Base(s.SelectionPath) != "shellkit-selection.1234" ||
		filepath.Base(s.DepthPath) != "shellkit-depth.1234" {
		t.Errorf("unexpected scratch names %q %q", s.SelectionPath, s.DepthPath)
	}

	if err := s.WriteDepth(4); err != nil {
		t.Fatal(err)
	}

	if got := ReadDepth(s.DepthPath, 6); got != 4 {
		t.Errorf("ReadDepth() = %d, want 4", got)
	}

	if err := s.AppendSelection([]string{"src"}); err != nil {
		t.Fatal(err)
	}

	if err := s.AppendSelection([]string{filepath.Join("src", "app")}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(s.SelectionPath)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "src\nsrc/app\n" {
		t.Errorf("selection dump = %q", data)
	}

	if err := s.Remove(); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	assertAbsent(t, s)

	if err := s.Remove(); err != nil {
		t.Errorf("second Remove() error = %v", err)
	}
}

func TestReadDepth_Fallback(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	if got := ReadDepth(filepath.Join(dir, "missing"), 5); got != 5 {
		t.Errorf("ReadDepth(missing) = %d, want 5", got)
	}

	bad := filepath.Join(dir, "bad")
	if err := os.WriteFile(bad, []byte("eleven"), 0600); err != nil {
		t.Fatal(err)
	}

	if got := ReadDepth(bad, 6); got != 6 {
		t.Errorf("ReadDepth(bad) = %d, want 6", got)
	}

	if got := ReadDepth("", 2); got != 2 {
		t.Errorf("ReadDepth(\"\") = %d, want 2", got)
	}
}

func assertAbsent(t *testing.T, s *Scratch) {
	t.Helper()

	for _, p := range []string{s.SelectionPath, s.DepthPath} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("scratch file %s still exists (err=%v)", p, err)
		}
	}
}
