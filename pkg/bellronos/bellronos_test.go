package bellronos_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Architecture-Mechanism/bellronos/internal/bellerrors"
	"github.com/Architecture-Mechanism/bellronos/internal/packagemgr"
	"github.com/Architecture-Mechanism/bellronos/pkg/bellronos"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestEngineRunFixtures runs a handful of representative programs end
// to end through the public Engine façade and snapshots the resulting
// value's Inspect() form plus anything the program printed via
// io.print.
func TestEngineRunFixtures(t *testing.T) {
	fixtures := []struct {
		name string
		src  string
	}{
		{
			name: "AssignAndArithmetic",
			src:  "set x to 2\nset y to 3\nset z to x + y\n",
		},
		{
			name: "FunctionDefAndCall",
			src:  "define add(a: int, b: int) -> int:\nreturn a + b\nadd(1, 2)\n",
		},
		{
			name: "ForLoopOverList",
			src:  "set xs to [1, 2, 3]\nfor i in xs:\nset last to i\n",
		},
		{
			name: "IfElse",
			src:  "if 1 < 2:\nset r to \"yes\"\nelse:\nset r to \"no\"\n",
		},
		{
			name: "ClassInstantiation",
			src:  "class Point:\ndefine hello(self: Point) -> string:\nreturn \"hi\"\nset p to Point()\n",
		},
		{
			name: "ImportStdlibModule",
			src:  "import math\n",
		},
		{
			name: "IoPrint",
			src:  "import io\nio.print(\"hello\")\n",
		},
		{
			name: "MathSqrt",
			src:  "import math\nmath.sqrt(9)\n",
		},
		{
			name: "MethodCall",
			src:  "class Point:\ndefine hello(self: Point) -> string:\nreturn \"hi\"\nset p to Point()\np.hello()\n",
		},
	}

	for _, f := range fixtures {
		t.Run(f.name, func(t *testing.T) {
			var out bytes.Buffer
			engine := bellronos.New(bellronos.WithOutput(&out))
			val, err := engine.Run(f.src, f.name+".bel")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			snaps.MatchSnapshot(t, "result", val.Inspect())
			snaps.MatchSnapshot(t, "stdout", out.String())
		})
	}
}

// TestEngineRunNegativeFixtures snapshots the "<kind> error: <detail>"
// rendering for programs that must be rejected, and pins down which
// kind each rejection carries: a bad operand pair is the checker's
// (Type), a non-list for-iterable is the evaluator's (Runtime).
func TestEngineRunNegativeFixtures(t *testing.T) {
	fixtures := []struct {
		name     string
		src      string
		wantKind bellerrors.Kind
	}{
		{name: "StringPlusInt", src: "set x to 1 + \"a\"\n", wantKind: bellerrors.Type},
		{name: "ForOverNonList", src: "for i in 5:\nset x to i\n", wantKind: bellerrors.Runtime},
	}

	for _, f := range fixtures {
		t.Run(f.name, func(t *testing.T) {
			engine := bellronos.New()
			_, err := engine.Run(f.src, f.name+".bel")
			if err == nil {
				t.Fatalf("expected an error")
			}
			be, ok := err.(*bellerrors.BellronosError)
			if !ok {
				t.Fatalf("got %T, want *bellerrors.BellronosError", err)
			}
			if be.Kind != f.wantKind {
				t.Fatalf("got %s error, want %s: %v", be.Kind, f.wantKind, err)
			}
			snaps.MatchSnapshot(t, "error", err.Error())
		})
	}
}

// An import the standard library doesn't satisfy falls through to the
// package manager, and a package that was never installed surfaces as
// an IO error from its file read.
func TestEngineRunImportUnknownPackageIsIOError(t *testing.T) {
	mgr, err := packagemgr.New(t.TempDir())
	if err != nil {
		t.Fatalf("packagemgr.New: %v", err)
	}
	engine := bellronos.New(bellronos.WithPackageManager(mgr))
	_, runErr := engine.Run("import does_not_exist\n", "neg.bel")
	if runErr == nil {
		t.Fatal("expected an error importing a package that is not installed")
	}
	if !strings.HasPrefix(runErr.Error(), "IO error:") {
		t.Fatalf("expected an IO error, got %q", runErr.Error())
	}
}
