//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package registry

// lockFile is a no-op where flock is unavailable; concurrent invocations
// fall back to last-writer-wins.
func lockFile(path string) (func(), error) {
	return func() {}, nil
}
