package escrow

import "github.com/iov-one/nftescrow/errors"

var (
	// ErrDisabled is returned when a state changing operation is requested
	// while the module is switched off.
	ErrDisabled = errors.Register(1000, "escrow disabled")

	// ErrInvalidAssetSource is returned when an asset notification does
	// not come from the collection named in its directive.
	ErrInvalidAssetSource = errors.Register(1001, "invalid asset source")

	// ErrMalformedDirective is returned when the payload attached to an
	// asset notification cannot be decoded into a known directive.
	ErrMalformedDirective = errors.Register(1002, "malformed directive")
)
