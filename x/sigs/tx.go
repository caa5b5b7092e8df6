package sigs

import (
	"github.com/iov-one/bequest/crypto"
	"github.com/iov-one/bequest/errors"
)

// SignedTx represents a transaction that contains signatures,
// which can be verified by the Decorator
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the
	// transaction content, excluding the signatures.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signatures of the signers.
	GetSignatures() []*Signature
}

// Signature binds a public key and a sequence to a signature.
type Signature struct {
	Pubkey    *crypto.PublicKey `json:"pubkey"`
	Signature []byte            `json:"signature"`
	Sequence  int64             `json:"sequence"`
}

// Validate ensures the signature meets basic standards
func (s *Signature) Validate() error {
	if s == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == nil || len(s.Pubkey.Ed25519) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if len(s.Signature) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}
