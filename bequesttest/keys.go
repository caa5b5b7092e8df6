package bequesttest

import (
	"encoding/binary"
	"testing"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/crypto"
)

// NewKey returns a new random private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the condition of a new random key.
func NewCondition() bequest.Condition {
	return NewKey().PublicKey().Condition()
}

// SequenceID returns an ID encoded as if it was generated by the orm
// sequence.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation. This function is a test helper that is using
// bequest.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) bequest.Address {
	t.Helper()

	addr, err := bequest.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
