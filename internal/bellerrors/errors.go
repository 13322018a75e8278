// Package bellerrors formats the six Bellronos error kinds the CLI and
// every collaborator propagate uncaught.
package bellerrors

import (
	"fmt"
	"strings"

	"github.com/Architecture-Mechanism/bellronos/internal/lexer"
)

// Kind is one of the six error kinds the CLI distinguishes.
type Kind int

const (
	IO Kind = iota
	Parse
	Type
	Runtime
	Network
	Package
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "IO"
	case Parse:
		return "Parse"
	case Type:
		return "Type"
	case Runtime:
		return "Runtime"
	case Network:
		return "Network"
	case Package:
		return "Package"
	default:
		return "Unknown"
	}
}

// BellronosError is the single error type every component raises. It
// always carries a Kind, a human-readable Message, and, where available,
// the source position it occurred at.
type BellronosError struct {
	Kind    Kind
	Message string
	Pos     *lexer.Position
}

func New(kind Kind, format string, args ...any) *BellronosError {
	return &BellronosError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NewAt(kind Kind, pos lexer.Position, format string, args ...any) *BellronosError {
	return &BellronosError{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: &pos}
}

// Error satisfies the error interface with the CLI's required
// `<kind> error: <detail>` rendering.
func (e *BellronosError) Error() string {
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Format produces a longer form with source-line context and a caret
// pointer under the offending column, the way a compiler diagnostic does.
func (e *BellronosError) Format(source string, color bool) string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	if e.Pos == nil {
		return sb.String()
	}
	lines := strings.Split(source, "\n")
	if e.Pos.Line < 1 || e.Pos.Line > len(lines) {
		return sb.String()
	}
	line := lines[e.Pos.Line-1]
	sb.WriteString(fmt.Sprintf(" (line %d, column %d)\n", e.Pos.Line, e.Pos.Column))
	sb.WriteString(line)
	sb.WriteString("\n")
	col := e.Pos.Column
	if col < 1 {
		col = 1
	}
	caretLine := strings.Repeat(" ", col-1) + "^"
	if color {
		caretLine = "\033[1;31m" + caretLine + "\033[0m"
	}
	sb.WriteString(caretLine)
	return sb.String()
}

// FormatErrors aggregates multiple errors, each labelled `[Error N of M]`.
func FormatErrors(errs []*BellronosError, source string, color bool) string {
	var sb strings.Builder
	for i, e := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d] ", i+1, len(errs)))
		sb.WriteString(e.Format(source, color))
		sb.WriteString("\n")
	}
	return sb.String()
}
