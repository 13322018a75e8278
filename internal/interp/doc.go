package interp

// Call's child environment.
//
// A function call never copies the captured environment. It allocates a
// fresh frame with NewEnclosedEnvironment(capturedEnv): lookup walks the
// chain outward, and an assignment writes through to the nearest
// enclosing scope that already binds the name, creating a local binding
// only when no scope does. A flat snapshot-and-overlay copy would agree
// with this only as long as nothing in the body writes to a name that
// lives in an outer scope; once it does, the copy silently loses the
// write. The chain is the discipline this evaluator commits to
// throughout.

// Instance construction.
//
// Calling a Class value always produces an Instance with an empty
// attribute map; the arguments in the call expression are evaluated (so
// a malformed argument still fails) but otherwise discarded. There is no
// constructor hook.

// Generators.
//
// A GeneratorDef captures its body and environment without ever running
// it; nothing in this package advances a GeneratorValue past that point,
// and a bare `yield` outside of one is a runtime error. Do not read
// anything into GeneratorValue.Cursor beyond "unused".
