package weavetest

import (
	"testing"

	"github.com/iov-one/nftescrow"
)

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// nftescrow.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) nftescrow.Address {
	t.Helper()

	addr, err := nftescrow.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
