package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"bindery/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestRunAllCoversConfiguredPaths(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	target := t.TempDir()

	results := RunAll(cfg, target)
	if len(results) != 3 {
		t.Fatalf("expected 3 checks, got %d", len(results))
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("expected all checks to pass, failed: %+v", failed)
	}

	results = RunAll(cfg, filepath.Join(target, "missing"))
	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "Target directory" {
		t.Fatalf("expected target check to fail, got %+v", failed)
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := RunAll(nil, t.TempDir()); results != nil {
		t.Fatalf("expected nil results for nil config, got %+v", results)
	}
}
