package weavetest

import "github.com/iov-one/nftescrow"

// Tx represents a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg nftescrow.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ nftescrow.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (nftescrow.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("not implemented")
}

func (tx *Tx) Marshal() ([]byte, error) {
	panic("not implemented")
}

// Msg is a message routed by its path, with no content of its own.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// Err if set is returned by Marshal and Unmarshal.
	Err error
	// ValidErr if set is returned by Validate.
	ValidErr error
}

var _ nftescrow.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.ValidErr
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}
