package parser

// Block termination.
//
// Bellronos has no indentation rule, closing keyword, or braces around a
// block: a block is simply the run of statements up to end-of-stream or
// an `else` token. Taken completely literally, that makes a function or
// class body swallow every statement that follows it in the same source
// file, since nothing stops the block early; a function definition
// followed by a call of it would never run the call at module scope.
//
// This parser keeps the literal rule (run to EOF or `else`) but also
// ends a block immediately after a bare `return` statement, since a
// return unconditionally exits whatever is executing it; there is no
// useful meaning left in appending more statements to that same flat
// list. This is the one deliberate divergence from a fully literal
// reading of the block rule, and it is what lets a `define` body be
// followed by module-scope statements at all.
//
// Class bodies are bounded the same practical way: parsing methods stops
// at the first token that cannot begin another `define`.
