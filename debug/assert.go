//go:build debug

package debug

// Enabled reports whether the assertions are compiled in.
const Enabled = true

func Assert(b bool, message string) {
	if !b {
		panic("assertion failed: " + message)
	}
}
