// Package interop shells out to a handful of real language toolchains so
// an InteropCall expression can run a fragment of foreign source and
// report back its captured stdout, satisfying interp.InteropExecutor.
package interop

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/Architecture-Mechanism/bellronos/internal/bellerrors"
)

// Runner executes foreign-language source fragments via os/exec, one
// toolchain per supported language. Temp file removal runs through
// defer, so a source file is cleaned up on every exit path, including
// when the compile step itself fails.
type Runner struct {
	// Dir is the working directory temp source/binaries are written to
	// and compiled in. Defaults to os.TempDir() when empty.
	Dir string
}

// New constructs a Runner using the OS temp directory.
func New() *Runner {
	return &Runner{Dir: os.TempDir()}
}

// Execute dispatches to the toolchain for language, satisfying
// interp.InteropExecutor.
func (r *Runner) Execute(language, source string) (string, error) {
	switch language {
	case "c":
		return r.executeC(source)
	case "python":
		return r.executePython(source)
	case "javascript":
		return r.executeJavaScript(source)
	case "java":
		return r.executeJava(source)
	case "rust":
		return r.executeRust(source)
	case "swift":
		return r.executeSwift(source)
	default:
		return "", bellerrors.New(bellerrors.Runtime, "unsupported interop language: %s", language)
	}
}

func (r *Runner) path(name string) string {
	return filepath.Join(r.Dir, name)
}

// run executes name with args, returning stdout on success or a Runtime
// error carrying stderr on a non-zero exit. Every language's compile
// and execute step goes through this one helper, so exit-status
// checking is uniform across languages.
func run(label string, name string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return "", bellerrors.New(bellerrors.Runtime, "%s error: %s", label, stderr.String())
		}
		return "", bellerrors.New(bellerrors.Runtime, "%s error: %s", label, err.Error())
	}
	return stdout.String(), nil
}

func cleanup(paths ...string) {
	for _, p := range paths {
		os.Remove(p)
	}
}

func (r *Runner) executeC(code string) (string, error) {
	src := r.path("bellronos_interop.c")
	bin := r.path("bellronos_interop_bin")
	if err := os.WriteFile(src, []byte(code), 0o644); err != nil {
		return "", bellerrors.New(bellerrors.IO, "failed to write C source: %s", err.Error())
	}
	defer cleanup(src, bin)

	if _, err := run("C compilation", "gcc", src, "-o", bin); err != nil {
		return "", err
	}
	return run("C execution", bin)
}

func (r *Runner) executePython(code string) (string, error) {
	return run("Python execution", "python", "-c", code)
}

func (r *Runner) executeJavaScript(code string) (string, error) {
	return run("JavaScript execution", "node", "-e", code)
}

func (r *Runner) executeJava(code string) (string, error) {
	src := r.path("Temp.java")
	class := r.path("Temp.class")
	if err := os.WriteFile(src, []byte(code), 0o644); err != nil {
		return "", bellerrors.New(bellerrors.IO, "failed to write Java source: %s", err.Error())
	}
	defer cleanup(src, class)

	if _, err := run("Java compilation", "javac", "-d", r.Dir, src); err != nil {
		return "", err
	}
	return run("Java execution", "java", "-cp", r.Dir, "Temp")
}

func (r *Runner) executeRust(code string) (string, error) {
	src := r.path("bellronos_interop.rs")
	bin := r.path("bellronos_interop_bin")
	if err := os.WriteFile(src, []byte(code), 0o644); err != nil {
		return "", bellerrors.New(bellerrors.IO, "failed to write Rust source: %s", err.Error())
	}
	defer cleanup(src, bin)

	if _, err := run("Rust compilation", "rustc", src, "-o", bin); err != nil {
		return "", err
	}
	return run("Rust execution", bin)
}

func (r *Runner) executeSwift(code string) (string, error) {
	src := r.path("bellronos_interop.swift")
	if err := os.WriteFile(src, []byte(code), 0o644); err != nil {
		return "", bellerrors.New(bellerrors.IO, "failed to write Swift source: %s", err.Error())
	}
	defer cleanup(src)

	return run("Swift execution", "swift", src)
}
