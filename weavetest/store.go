package weavetest

import (
	"testing"

	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/store/iavl"
)

// CommitKVStore returns the leveldb backed iavl store escrowd runs on,
// placed in a temporary directory that is removed with the test. Prefer
// store.MemStore unless a test needs commits and versions.
func CommitKVStore(t testing.TB) nftescrow.CommitKVStore {
	t.Helper()
	return iavl.NewCommitStore(t.TempDir(), "escrow")
}
