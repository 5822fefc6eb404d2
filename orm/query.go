package orm

import "github.com/iov-one/nftescrow"

func queryPrefix(db nftescrow.ReadOnlyKVStore, prefix []byte) []nftescrow.Model {
	var res []nftescrow.Model
	itr := db.Iterator(prefix, prefixEnd(prefix))
	defer itr.Close()
	for ; itr.Valid(); itr.Next() {
		res = append(res, nftescrow.Pair(itr.Key(), itr.Value()))
	}
	return res
}

// prefixEnd returns the first key that does not start with given prefix, or
// nil if there is no such key.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
