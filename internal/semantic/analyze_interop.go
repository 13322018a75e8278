package semantic

import (
	"strings"

	"github.com/Architecture-Mechanism/bellronos/internal/ast"
	"github.com/Architecture-Mechanism/bellronos/internal/types"
)

// checkInteropCall infers the interop call's result type from its
// language tag and source fragment by substring inspection: C, Python,
// and JavaScript each get a dedicated heuristic; every other language
// tag (including Java, Rust, and Swift) falls through to
// InteropUnknown.
func (a *Analyzer) checkInteropCall(e *ast.InteropCall, env *TypeEnv) (*types.Type, error) {
	return types.Interop(inferInteropKind(e.Language, e.Source)), nil
}

func inferInteropKind(language, source string) types.InteropKind {
	switch strings.ToLower(language) {
	case "c":
		return inferCType(source)
	case "python":
		return inferPythonType(source)
	case "javascript", "js":
		return inferJavaScriptType(source)
	default:
		return types.InteropUnknown
	}
}

func inferCType(source string) types.InteropKind {
	switch {
	case strings.Contains(source, "int"):
		return types.InteropInt
	case strings.Contains(source, "float"):
		return types.InteropFloat
	case strings.Contains(source, "char*"):
		return types.InteropString
	default:
		return types.InteropUnknown
	}
}

func inferPythonType(source string) types.InteropKind {
	switch {
	case strings.Contains(source, "int("):
		return types.InteropInt
	case strings.Contains(source, "float("):
		return types.InteropFloat
	case strings.Contains(source, "str("):
		return types.InteropString
	case strings.Contains(source, "list("):
		return types.InteropArray
	case strings.Contains(source, "dict("):
		return types.InteropObject
	default:
		return types.InteropUnknown
	}
}

func inferJavaScriptType(source string) types.InteropKind {
	switch {
	case strings.Contains(source, "Number("):
		return types.InteropFloat
	case strings.Contains(source, "String("):
		return types.InteropString
	case strings.Contains(source, "Boolean("):
		return types.InteropBool
	case strings.Contains(source, "Array("):
		return types.InteropArray
	case strings.Contains(source, "Object("):
		return types.InteropObject
	default:
		return types.InteropUnknown
	}
}
