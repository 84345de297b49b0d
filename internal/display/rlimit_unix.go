//go:build unix

package display

import (
	"math"

	"golang.org/x/sys/unix"
)

// OpenFileLimit returns the soft RLIMIT_NOFILE of the process.
// ok is false when the limit cannot be read or is unlimited.
func OpenFileLimit() (limit uint64, ok bool) {
	var rl unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		return 0, false
	}
	// Cur is signed on some platforms; infinity is -1 or MaxInt64 there.
	cur := uint64(rl.Cur)
	if cur >= math.MaxInt64 {
		return 0, false
	}
	return cur, true
}
