// Package crypto provides the ed25519 keys used to identify callers. A public
// key is represented by a "sigs/ed25519/<key>" condition, its address is the
// address of the caller.
package crypto

import (
	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions we get from signatures
const ExtensionName = "sigs"

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// GenPrivKeyEd25519 returns a random new private key.
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
func PrivKeyEd25519FromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "seed must be %d bytes", ed25519.SeedSize)
	}
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}, nil
}

// Validate returns an error if the key does not have the ed25519 size.
func (p *PrivateKey) Validate() error {
	if p == nil || len(p.Ed25519) != ed25519.PrivateKeySize {
		return errors.Wrap(errors.ErrInput, "invalid ed25519 private key")
	}
	return nil
}

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message), nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message, sig []byte) bool {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig)
}

// Condition encodes the public key into a condition.
func (p *PublicKey) Condition() bequest.Condition {
	if p == nil || len(p.Ed25519) == 0 {
		return nil
	}
	return bequest.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address of the caller authenticated with this key.
func (p *PublicKey) Address() bequest.Address {
	return p.Condition().Address()
}
