// Package sema type-checks a parsed program with Algorithm W.
//
// Check walks the top-level bindings in source order. Every expression node
// is annotated with its inferred type, and each binding's inferred type must
// agree with its declared signature. Name lookup during inference resolves
// local variables first, then top-level signatures, then data constructors;
// top-level types are instantiated with fresh variables at every use.
//
// Declaration-level problems (unknown type names, duplicate constructors, a
// missing main) are all reported in one pass. Body inference is fail-fast:
// the first failing binding aborts the check.
package sema
