package interop

import (
	"os"
	"os/exec"
	"strings"
	"testing"
)

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not found on PATH, skipping", name)
	}
}

func TestExecuteUnsupportedLanguageIsRuntimeError(t *testing.T) {
	r := New()
	if _, err := r.Execute("cobol", "DISPLAY 'HI'."); err == nil {
		t.Fatal("expected an error for an unsupported language")
	}
}

func TestExecutePython(t *testing.T) {
	requireTool(t, "python")
	r := New()
	out, err := r.Execute("python", "print('hi from python')")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "hi from python") {
		t.Fatalf("got %q", out)
	}
}

func TestExecuteJavaScript(t *testing.T) {
	requireTool(t, "node")
	r := New()
	out, err := r.Execute("javascript", "console.log('hi from node')")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "hi from node") {
		t.Fatalf("got %q", out)
	}
}

func TestExecuteCCompilesRunsAndCleansUpTempFiles(t *testing.T) {
	requireTool(t, "gcc")
	r := New()
	code := `#include <stdio.h>
int main() { printf("hi from c"); return 0; }
`
	out, err := r.Execute("c", code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "hi from c") {
		t.Fatalf("got %q", out)
	}
	for _, p := range []string{r.path("bellronos_interop.c"), r.path("bellronos_interop_bin")} {
		if _, statErr := os.Stat(p); !os.IsNotExist(statErr) {
			t.Fatalf("expected temp file %s to be cleaned up after a successful run", p)
		}
	}
}

func TestExecuteCCompileFailureStillCleansUpSourceFile(t *testing.T) {
	requireTool(t, "gcc")
	r := New()
	src := r.path("bellronos_interop.c")
	if _, err := r.Execute("c", "this is not valid C"); err == nil {
		t.Fatal("expected a compilation error")
	}
	if _, statErr := os.Stat(src); !os.IsNotExist(statErr) {
		t.Fatalf("expected temp source file to be cleaned up after a compile failure")
	}
}
