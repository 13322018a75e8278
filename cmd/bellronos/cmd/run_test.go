package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withTempPackageDir(t *testing.T) {
	t.Helper()
	old := packageDir
	packageDir = t.TempDir()
	t.Cleanup(func() { packageDir = old })
}

func TestRunFileAndReportSuccess(t *testing.T) {
	withTempPackageDir(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "program.bel")
	if err := os.WriteFile(path, []byte("set x to 1\nimport io\nio.print(\"hello\")\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	mgr, err := newPackageManager()
	if err != nil {
		t.Fatalf("newPackageManager: %v", err)
	}

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	runErr := runFileAndReport(mgr, path)
	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)

	if runErr != nil {
		t.Fatalf("unexpected error: %v\noutput: %s", runErr, buf.String())
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected output to contain 'hello', got %q", buf.String())
	}
}

func TestRunFileAndReportMissingFile(t *testing.T) {
	withTempPackageDir(t)
	mgr, err := newPackageManager()
	if err != nil {
		t.Fatalf("newPackageManager: %v", err)
	}

	runErr := runFileAndReport(mgr, filepath.Join(t.TempDir(), "does-not-exist.bel"))
	if runErr == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !strings.HasPrefix(runErr.Error(), "IO error:") {
		t.Fatalf("expected an IO error, got %q", runErr.Error())
	}
}

func TestRunFileAndReportTypeError(t *testing.T) {
	withTempPackageDir(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.bel")
	if err := os.WriteFile(path, []byte("set x to 1 + \"a\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	mgr, err := newPackageManager()
	if err != nil {
		t.Fatalf("newPackageManager: %v", err)
	}

	runErr := runFileAndReport(mgr, path)
	if runErr == nil {
		t.Fatal("expected a type error")
	}
	if !strings.HasPrefix(runErr.Error(), "Type error:") {
		t.Fatalf("expected a Type error, got %q", runErr.Error())
	}
}
