//go:build !debug

// Package debug provides invariant checks for the mapping pipeline and the
// bus protocol. They are enabled with the debug build tag and compile to
// no-ops otherwise, so they cost nothing in the poll path of a release
// build.
//
// Guard checks that need extra computation with `if debug.Enabled {...}`.
package debug

// Enabled reports whether the assertions are compiled in.
const Enabled = false

// Assert panics with message if b is false.
func Assert(b bool, message string) {}
