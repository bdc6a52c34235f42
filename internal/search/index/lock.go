package index

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// DefaultLockTimeout bounds how long writers and readers wait for the index lock.
const DefaultLockTimeout = 10 * time.Second

const lockRetryDelay = 100 * time.Millisecond

// lockPath is a sibling of dir so the lock survives AtomicSwap replacing dir.
func lockPath(dir string) string {
	return dir + ".lock"
}

// acquireLock obtains the lock guarding dir. Writers take it exclusively,
// readers shared. The returned func releases it.
func acquireLock(ctx context.Context, dir string, shared bool, timeout time.Duration) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return func() {}, errors.Wrap(err, "cannot create index parent dir")
	}
	l := flock.New(lockPath(dir))
	deadline := time.Now().Add(timeout)
	for {
		var (
			locked bool
			err    error
		)
		if shared {
			locked, err = l.TryRLock()
		} else {
			locked, err = l.TryLock()
		}
		if err != nil {
			return func() {}, errors.Wrapf(err, "cannot acquire index lock %s", l.Path())
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return func() {}, errors.Wrapf(ErrLocked, "lock: %s", l.Path())
		}
		select {
		case <-ctx.Done():
			return func() {}, ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}
}
