//go:build !unix

package display

// OpenFileLimit is not available on this platform.
func OpenFileLimit() (limit uint64, ok bool) {
	return 0, false
}
