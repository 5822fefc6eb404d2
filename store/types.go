package store

import "github.com/iov-one/nftescrow"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = nftescrow.ReadOnlyKVStore
	SetDeleter       = nftescrow.SetDeleter
	KVStore          = nftescrow.KVStore
	Batch            = nftescrow.Batch
	Iterator         = nftescrow.Iterator
	CacheableKVStore = nftescrow.CacheableKVStore
	KVCacheWrap      = nftescrow.KVCacheWrap
	CommitKVStore    = nftescrow.CommitKVStore
	CommitID         = nftescrow.CommitID
	Model            = nftescrow.Model
)
