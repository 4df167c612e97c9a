package generate_test

import (
	"testing"

	"github.com/gofrs/flock"
)

func lockFile(t *testing.T, path string) func() {
	t.Helper()
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock() = %v, %v", ok, err)
	}
	return func() { _ = lock.Unlock() }
}
