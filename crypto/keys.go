/*
Package crypto holds the ed25519 keys used to sign transactions and derive
the conditions (and addresses) of their owners.
*/
package crypto

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions we get from signatures
const ExtensionName = "sigs"

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// Signature is an ed25519 signature.
type Signature struct {
	Ed25519 []byte `json:"ed25519"`
}

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || sig == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition encodes the public key into a condition. An empty key has no
// condition.
func (p *PublicKey) Condition() nftescrow.Condition {
	if p == nil || len(p.Ed25519) == 0 {
		return nil
	}
	return nftescrow.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address of the condition this key represents.
func (p *PublicKey) Address() nftescrow.Address {
	return p.Condition().Address()
}

// Validate returns an error if this is not a valid ed25519 public key.
func (p *PublicKey) Validate() error {
	if p == nil || len(p.Ed25519) == 0 {
		return errors.Wrap(errors.ErrEmpty, "public key")
	}
	if len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInvalidInput, "public key length %d", len(p.Ed25519))
	}
	return nil
}

// Marshal implements nftescrow.Persistent.
func (p *PublicKey) Marshal() ([]byte, error) {
	return nftescrow.MarshalBinary(p)
}

// Unmarshal implements nftescrow.Persistent.
func (p *PublicKey) Unmarshal(raw []byte) error {
	return nftescrow.UnmarshalBinary(raw, p)
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInvalidState, "invalid private key")
	}
	bz := ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)
	return &Signature{Ed25519: bz}, nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
// Panics if the seed is not 32 bytes long.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	priv := ed25519.NewKeyFromSeed(seed)
	return &PrivateKey{Ed25519: priv}
}

// Marshal implements nftescrow.Persistent.
func (s *Signature) Marshal() ([]byte, error) {
	return nftescrow.MarshalBinary(s)
}

// Unmarshal implements nftescrow.Persistent.
func (s *Signature) Unmarshal(raw []byte) error {
	return nftescrow.UnmarshalBinary(raw, s)
}
