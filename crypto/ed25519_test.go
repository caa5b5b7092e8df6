package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/bequest/bequesttest/assert"
	"github.com/iov-one/bequest/errors"
)

func TestEd25519Signing(t *testing.T) {
	private := GenPrivKeyEd25519()
	public := private.PublicKey()

	msg := []byte("foobar")
	msg2 := []byte("dingbooms")

	sig, err := private.Sign(msg)
	assert.Nil(t, err)
	sig2, err := private.Sign(msg2)
	assert.Nil(t, err)

	if bytes.Equal(sig, sig2) {
		t.Fatal("different messages produce the same signature")
	}
	if !public.Verify(msg, sig) {
		t.Fatal("cannot verify a message signed with this public key")
	}
	if !public.Verify(msg2, sig2) {
		t.Fatal("cannot verify a message signed with this public key")
	}
	if public.Verify(msg, sig2) {
		t.Fatal("verified message signature of the wrong message")
	}
	if public.Verify(msg, nil) {
		t.Fatal("verified a nil signature of a message")
	}
}

func TestEd25519Address(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	pub2 := GenPrivKeyEd25519().PublicKey()
	empty := PublicKey{}

	assert.Nil(t, pub.Condition().Validate())
	assert.Nil(t, pub2.Condition().Validate())
	if bytes.Equal(pub.Condition(), pub2.Condition()) {
		t.Fatal("two different keys have the same condition")
	}
	assert.Nil(t, pub.Address().Validate())
	if empty.Condition() != nil {
		t.Fatal("empty key must not produce a condition")
	}
}

func TestPrivKeyFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a, err := PrivKeyEd25519FromSeed(seed)
	assert.Nil(t, err)
	b, err := PrivKeyEd25519FromSeed(seed)
	assert.Nil(t, err)
	assert.Equal(t, a.PublicKey().Address(), b.PublicKey().Address())

	_, err = PrivKeyEd25519FromSeed([]byte("short"))
	assert.IsErr(t, errors.ErrInput, err)

	var broken PrivateKey
	_, err = broken.Sign([]byte("msg"))
	assert.IsErr(t, errors.ErrInput, err)
}
